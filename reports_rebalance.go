package rebalance

import (
	"fmt"
	"time"
)

// RebalanceReport is the complete result of a full-rebalance calculation:
// where the portfolio stands against its targets, and the trades that
// would close the gaps.
type RebalanceReport struct {
	Portfolio       string
	TotalValue      Money
	Currency        string
	Allocations     []AllocationComparison
	Trades          []TradeRecommendation
	UnallocatedCash Money // sell proceeds not reinvested by the buys
	CalculatedAt    time.Time
}

// Rebalance computes the full drift analysis and trade recommendations
// for the portfolio at the given price snapshot.
//
// It fails fast, before any arithmetic, on unusable input: a portfolio
// with no holdings, no targets, or targets that do not sum to 100%.
func (p *Portfolio) Rebalance(prices PriceMap) (*RebalanceReport, error) {
	if len(p.Holdings) == 0 {
		return nil, fmt.Errorf("%w: portfolio has no holdings", ErrInvalidAllocation)
	}
	if err := CheckTargets(p.Targets); err != nil {
		return nil, err
	}

	total, comparisons, err := Compare(p.Holdings, p.Targets, p.CashBalance, prices)
	if err != nil {
		return nil, err
	}

	trades, err := Recommend(p.Holdings, p.Targets, total, prices)
	if err != nil {
		return nil, err
	}

	currency := p.Currency()
	sellProceeds := M(0, currency)
	buyCosts := M(0, currency)
	for _, t := range trades {
		if t.Action == TradeSell {
			sellProceeds = sellProceeds.Add(t.EstimatedCost)
		} else {
			buyCosts = buyCosts.Add(t.EstimatedCost)
		}
	}
	unallocated := sellProceeds.Sub(buyCosts)
	if unallocated.IsNegative() {
		unallocated = M(0, currency)
	}

	return &RebalanceReport{
		Portfolio:       p.Name,
		TotalValue:      total.Round(2),
		Currency:        currency,
		Allocations:     comparisons,
		Trades:          trades,
		UnallocatedCash: unallocated.Round(2),
		CalculatedAt:    time.Now(),
	}, nil
}

// MarshalJSON implements the json.Marshaler interface for RebalanceReport.
func (r *RebalanceReport) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("portfolio", r.Portfolio)
	w.Append("totalPortfolioValue", r.TotalValue.Amount())
	w.Append("currency", r.Currency)
	w.Append("allocations", r.Allocations)
	w.Append("trades", r.Trades)
	w.Append("unallocatedCash", r.UnallocatedCash.Amount())
	w.Append("calculatedAt", r.CalculatedAt.Format(time.RFC3339))
	return w.MarshalJSON()
}
