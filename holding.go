package rebalance

// Holding is one position in a portfolio: a security and its full trade
// history. The position size is never stored, it is always derived from
// the trades.
type Holding struct {
	Ticker   string
	Name     string
	Class    AssetClass
	Currency string
	Trades   []Trade
}

// Quantity returns the net position: total bought minus total sold.
func (h *Holding) Quantity() Quantity {
	var qty Quantity
	for _, t := range h.Trades {
		if t.Type == TradeBuy {
			qty = qty.Add(t.Quantity)
		} else {
			qty = qty.Sub(t.Quantity)
		}
	}
	return qty
}

// Value returns the market value of the position at the given price.
func (h *Holding) Value(price Money) Money {
	return price.Mul(h.Quantity())
}
