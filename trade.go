package rebalance

// TradeType identifies the direction of a trade.
type TradeType string

const (
	TradeBuy  TradeType = "BUY"
	TradeSell TradeType = "SELL"
)

// Trade is one executed buy or sell of a holding. Trades are input records:
// the engine never mutates them, it only rederives lots from them.
type Trade struct {
	ID       int64
	Date     Date
	Type     TradeType
	Quantity Quantity // number of shares, always positive
	Price    Money    // per-share execution price
	Fee      Money    // total transaction fee, possibly zero
}

// MarshalJSON implements the json.Marshaler interface for Trade.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("date", t.Date)
	w.Append("type", t.Type)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.Amount())
	if !t.Fee.IsZero() {
		w.Append("fee", t.Fee.Amount())
	}
	w.Optional("currency", t.Price.Currency())
	return w.MarshalJSON()
}
