package rebalance

import (
	"fmt"
	"slices"
	"time"
)

// CashReport is the result of allocating fresh cash across underweight
// asset classes: the buys to make, the cash left unspent, and the
// allocation picture against the post-deposit total.
type CashReport struct {
	Portfolio     string
	NewTotalValue Money // current total plus the new cash
	Currency      string
	Allocations   []AllocationComparison
	Trades        []TradeRecommendation
	RemainingCash Money
	CalculatedAt  time.Time
}

// classDeficit is an underweight class and how far below target it sits.
type classDeficit struct {
	class   AssetClass
	deficit Money
}

// RebalanceCash allocates newCash plus the existing cash balance across
// underweight classes with a greedy waterfall: the most underweight class
// is fully funded before the next one gets anything. Within a class the
// cash buys whole shares of the single holding with the highest current
// market value; it is not split across the class's holdings.
//
// Deficits are measured against the target value at the new total (current
// total plus new cash). The walk stops once less than one currency unit
// remains.
func (p *Portfolio) RebalanceCash(newCash Money, prices PriceMap) (*CashReport, error) {
	if newCash.IsNegative() {
		return nil, fmt.Errorf("%w: cash to invest must not be negative, got %s", ErrInvalidAllocation, newCash)
	}
	if len(p.Holdings) == 0 {
		return nil, fmt.Errorf("%w: portfolio has no holdings", ErrInvalidAllocation)
	}
	if err := CheckTargets(p.Targets); err != nil {
		return nil, err
	}

	currency := p.Currency()

	byClass := make(map[AssetClass][]*Holding)
	classValue := make(map[AssetClass]Money)
	currentTotal := p.CashBalance
	for i := range p.Holdings {
		h := &p.Holdings[i]
		value := h.Value(prices.Price(h.Ticker))
		byClass[h.Class] = append(byClass[h.Class], h)
		classValue[h.Class] = classValue[h.Class].Add(value)
		currentTotal = currentTotal.Add(value)
	}

	budget := newCash.Add(p.CashBalance)
	newTotal := currentTotal.Add(newCash)
	if newTotal.IsZero() {
		return nil, fmt.Errorf("%w: portfolio total value is zero, check prices", ErrDegenerateValuation)
	}

	targetPercent := make(map[AssetClass]Percent, len(p.Targets))
	var deficits []classDeficit
	for _, t := range p.Targets {
		targetPercent[t.Class] = t.Percent
		deficit := t.Percent.Of(newTotal).Sub(classValue[t.Class])
		if deficit.IsPositive() {
			deficits = append(deficits, classDeficit{class: t.Class, deficit: deficit})
		}
	}
	// Most underweight class first; ties keep target order.
	slices.SortStableFunc(deficits, func(a, b classDeficit) int {
		switch {
		case a.deficit.GreaterThan(b.deficit):
			return -1
		case a.deficit.LessThan(b.deficit):
			return 1
		default:
			return 0
		}
	})

	one := M(1, currency)
	remaining := budget
	var trades []TradeRecommendation
	for _, d := range deficits {
		if remaining.LessThan(one) {
			break
		}
		classHoldings := byClass[d.class]
		if len(classHoldings) == 0 {
			continue // a target with nothing to buy into
		}

		best := classHoldings[0]
		bestValue := best.Value(prices.Price(best.Ticker))
		for _, h := range classHoldings[1:] {
			if value := h.Value(prices.Price(h.Ticker)); value.GreaterThan(bestValue) {
				best, bestValue = h, value
			}
		}
		price := prices.Price(best.Ticker)
		if !price.IsPositive() {
			continue
		}

		cashForClass := remaining.Min(d.deficit)
		shares := cashForClass.DivPrice(price).Floor()
		if shares == 0 {
			continue
		}
		cost := price.Mul(Q(shares))
		trades = append(trades, TradeRecommendation{
			Ticker:        best.Ticker,
			Name:          best.Name,
			Class:         d.class,
			Action:        TradeBuy,
			Shares:        shares,
			Price:         price,
			EstimatedCost: cost,
		})
		remaining = remaining.Sub(cost)
	}

	// The allocation picture: current percentages against the pre-deposit
	// total, target values against the post-deposit total.
	var comparisons []AllocationComparison
	for _, class := range AssetClasses() {
		_, held := classValue[class]
		_, targeted := targetPercent[class]
		if !held && !targeted {
			continue
		}
		current := classValue[class]
		var currentPct Percent
		if currentTotal.IsPositive() {
			currentPct = PercentOf(current, currentTotal)
		}
		targetPct := targetPercent[class]
		comparisons = append(comparisons, AllocationComparison{
			Class:          class,
			CurrentPercent: currentPct,
			TargetPercent:  targetPct,
			Drift:          currentPct.Sub(targetPct),
			CurrentValue:   current,
			TargetValue:    targetPct.Of(newTotal),
		})
	}

	return &CashReport{
		Portfolio:     p.Name,
		NewTotalValue: newTotal.Round(2),
		Currency:      currency,
		Allocations:   comparisons,
		Trades:        trades,
		RemainingCash: remaining.Round(2),
		CalculatedAt:  time.Now(),
	}, nil
}

// MarshalJSON implements the json.Marshaler interface for CashReport.
func (r *CashReport) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("portfolio", r.Portfolio)
	w.Append("totalPortfolioValue", r.NewTotalValue.Amount())
	w.Append("currency", r.Currency)
	w.Append("allocations", r.Allocations)
	w.Append("trades", r.Trades)
	w.Append("remainingCash", r.RemainingCash.Amount())
	w.Append("calculatedAt", r.CalculatedAt.Format(time.RFC3339))
	return w.MarshalJSON()
}
