package rebalance

import "fmt"

// TargetAllocation assigns a target percentage of the portfolio to an
// asset class.
type TargetAllocation struct {
	Class   AssetClass
	Percent Percent
}

// AllocationComparison is the drift of one asset class against its target.
type AllocationComparison struct {
	Class          AssetClass
	CurrentPercent Percent
	TargetPercent  Percent
	Drift          Percent // current minus target
	CurrentValue   Money
	TargetValue    Money
}

// Compare values every holding at the snapshot prices and measures each
// asset class against its target. The total is the sum of all holding
// values plus the cash balance; comparisons cover the union of classes
// present in holdings and in targets, in canonical class order.
//
// A zero total is rejected with ErrDegenerateValuation: without value
// there are no meaningful percentages. A missing price values the holding
// at zero, it does not fail.
func Compare(holdings []Holding, targets []TargetAllocation, cashBalance Money, prices PriceMap) (Money, []AllocationComparison, error) {
	total := cashBalance
	classValue := make(map[AssetClass]Money)
	for i := range holdings {
		value := holdings[i].Value(prices.Price(holdings[i].Ticker))
		classValue[holdings[i].Class] = classValue[holdings[i].Class].Add(value)
		total = total.Add(value)
	}
	if total.IsZero() {
		return Money{}, nil, fmt.Errorf("%w: portfolio total value is zero, check prices", ErrDegenerateValuation)
	}

	targetPercent := make(map[AssetClass]Percent, len(targets))
	for _, t := range targets {
		targetPercent[t.Class] = t.Percent
	}

	var comparisons []AllocationComparison
	for _, class := range AssetClasses() {
		_, held := classValue[class]
		_, targeted := targetPercent[class]
		if !held && !targeted {
			continue
		}
		current := classValue[class]
		currentPct := PercentOf(current, total)
		targetPct := targetPercent[class]
		comparisons = append(comparisons, AllocationComparison{
			Class:          class,
			CurrentPercent: currentPct,
			TargetPercent:  targetPct,
			Drift:          currentPct.Sub(targetPct),
			CurrentValue:   current,
			TargetValue:    targetPct.Of(total),
		})
	}
	return total, comparisons, nil
}

// MarshalJSON implements the json.Marshaler interface for AllocationComparison.
func (c AllocationComparison) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("assetClass", c.Class)
	w.Append("currentPercentage", c.CurrentPercent)
	w.Append("targetPercentage", c.TargetPercent)
	w.Append("driftPercentage", c.Drift)
	w.Append("currentValue", c.CurrentValue.Amount())
	w.Append("targetValue", c.TargetValue.Amount())
	return w.MarshalJSON()
}
