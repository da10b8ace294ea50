package rebalance

// LotReport is the tax-lot state of one holding: the lots still open, the
// full disposition history, and the total realized gain. Lots are always
// rederived from the holding's trades; nothing here is stored.
type LotReport struct {
	Ticker            string
	Name              string
	OpenLots          []Lot
	Dispositions      []LotDisposition
	TotalRealizedGain Money
	Oversold          Quantity // sell quantity no lot could cover
}

// NewLotReport replays the trade history of the holding with this ticker
// and reports its open lots and realized dispositions.
//
// A positive Oversold quantity means the trade history sells more shares
// than it ever bought; the excess is ignored for lot state (never a
// negative position) but reported so the inconsistency is visible.
func (p *Portfolio) NewLotReport(ticker string) (*LotReport, error) {
	h := p.Holding(ticker)
	if h == nil {
		return nil, &UnknownHoldingError{Ticker: ticker}
	}

	open, dispositions, oversold, err := replayLots(h.Trades)
	if err != nil {
		return nil, err
	}

	total := M(0, h.Currency)
	for _, d := range dispositions {
		total = total.Add(d.RealizedGain)
	}

	return &LotReport{
		Ticker:            h.Ticker,
		Name:              h.Name,
		OpenLots:          open,
		Dispositions:      dispositions,
		TotalRealizedGain: total,
		Oversold:          oversold,
	}, nil
}

// UnknownHoldingError reports a ticker absent from the portfolio.
type UnknownHoldingError struct {
	Ticker string
}

func (e *UnknownHoldingError) Error() string {
	return "no holding with ticker " + e.Ticker
}

// MarshalJSON implements the json.Marshaler interface for LotReport.
func (r *LotReport) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("tickerSymbol", r.Ticker)
	w.Optional("name", r.Name)
	w.Append("openLots", r.OpenLots)
	w.Append("dispositions", r.Dispositions)
	w.Append("totalRealizedGain", r.TotalRealizedGain.Amount())
	if !r.Oversold.IsZero() {
		w.Append("oversold", r.Oversold)
	}
	return w.MarshalJSON()
}
