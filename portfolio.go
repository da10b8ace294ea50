package rebalance

import "fmt"

// Portfolio is the full snapshot the engine works on: holdings with their
// trade histories, target allocations, and the uninvested cash balance.
// It is assembled by the caller (typically from a ledger file); the engine
// holds no state of its own between calls.
type Portfolio struct {
	Name        string
	CashBalance Money
	Holdings    []Holding
	Targets     []TargetAllocation
}

// Currency returns the portfolio's reporting currency: the first holding
// with a currency set, or USD.
func (p *Portfolio) Currency() string {
	for _, h := range p.Holdings {
		if h.Currency != "" {
			return h.Currency
		}
	}
	return "USD"
}

// Holding returns the holding with this ticker, or nil if unknown.
func (p *Portfolio) Holding(ticker string) *Holding {
	for i := range p.Holdings {
		if p.Holdings[i].Ticker == ticker {
			return &p.Holdings[i]
		}
	}
	return nil
}

// Tickers returns the tickers of all holdings, in portfolio order.
func (p *Portfolio) Tickers() []string {
	tickers := make([]string, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		tickers = append(tickers, h.Ticker)
	}
	return tickers
}

// CheckTargets verifies that target allocations are usable for rebalancing:
// at least one target, no duplicated asset class, and percentages summing
// to exactly 100. There is no tolerance: a 99% sum is an input error, not
// something to normalize away.
func CheckTargets(targets []TargetAllocation) error {
	if len(targets) == 0 {
		return fmt.Errorf("%w: no target allocations defined", ErrInvalidAllocation)
	}
	seen := make(map[AssetClass]bool, len(targets))
	var sum Percent
	for _, t := range targets {
		if seen[t.Class] {
			return fmt.Errorf("%w: duplicate target for asset class %s", ErrInvalidAllocation, t.Class)
		}
		seen[t.Class] = true
		sum = sum.Add(t.Percent)
	}
	if !sum.Equal(P(100)) {
		return fmt.Errorf("%w: target allocations must sum to 100%%, got %s", ErrInvalidAllocation, sum)
	}
	return nil
}
