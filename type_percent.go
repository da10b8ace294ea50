package rebalance

import "github.com/shopspring/decimal"

// Percent is an exact percentage value: P(60) is 60%.
//
// Unlike quantities and amounts, percentages are kept exact and only rounded
// at the two places the rebalancing arithmetic calls for it: PercentOf (a
// share of a total) and Of (a value from a percentage) both round half up to
// two fractional digits. Drift is a difference of already-rounded
// percentages and is never rounded again.
type Percent struct {
	value decimal.Decimal
}

// P creates a Percent from any numeric type.
func P[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Percent {
	return Percent{value: newDecimal(value)}
}

var hundred = decimal.NewFromInt(100)

// PercentOf returns the share of total that part represents, rounded to two
// fractional digits, half up.
func PercentOf(part, total Money) Percent {
	return Percent{value: part.value.Mul(hundred).Div(total.value).Round(2)}
}

// Of returns the amount that p percent of total represents, rounded to two
// fractional digits, half up.
func (p Percent) Of(total Money) Money {
	return Money{value: total.value.Mul(p.value).Div(hundred).Round(2), cur: total.cur}
}

func (p Percent) Add(q Percent) Percent { return Percent{value: p.value.Add(q.value)} }
func (p Percent) Sub(q Percent) Percent { return Percent{value: p.value.Sub(q.value)} }
func (p Percent) Equal(q Percent) bool  { return p.value.Equal(q.value) }

// LessThan reports whether p is strictly smaller than q.
func (p Percent) LessThan(q Percent) bool { return p.value.LessThan(q.value) }
func (p Percent) IsZero() bool            { return p.value.IsZero() }
func (p Percent) IsPositive() bool        { return p.value.IsPositive() }
func (p Percent) IsNegative() bool        { return p.value.IsNegative() }

func (p Percent) String() string { return p.value.StringFixed(2) + "%" }

// SignedString returns the percentage with an explicit sign, or "-" for zero.
func (p Percent) SignedString() string {
	if p.value.IsZero() {
		return "-"
	}
	if p.value.IsPositive() {
		return "+" + p.String()
	}
	return p.String()
}

// MarshalJSON implements the json.Marshaler interface for Percent.
func (p Percent) MarshalJSON() ([]byte, error) {
	return p.value.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Percent.
func (p *Percent) UnmarshalJSON(decimalBytes []byte) error {
	return p.value.UnmarshalJSON(decimalBytes)
}
