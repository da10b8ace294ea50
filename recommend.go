package rebalance

// DustThreshold is the per-class value delta below which rebalancing is
// not worth a trade. Classes drifting by less than one currency unit are
// left alone.
var DustThreshold = M(1, "")

// LotSaleDetail is the forward-looking consequence of a recommended sale
// on one lot. The estimated gain is fee-free: the sale has not executed,
// so its fee is unknown.
type LotSaleDetail struct {
	TradeID       int64
	PurchaseDate  Date
	Quantity      Quantity
	CostBasis     Money // per share
	EstimatedGain Money
}

// TradeRecommendation is one concrete buy or sell proposed to close an
// allocation gap.
type TradeRecommendation struct {
	Ticker        string
	Name          string
	Class         AssetClass
	Action        TradeType
	Shares        int64
	Price         Money // current per-share price
	EstimatedCost Money // price times shares
	CurrentWeight Percent
	TargetWeight  Percent
	LotDetails    []LotSaleDetail // present on sells only
}

// Recommend converts per-class drift into whole-share buy and sell
// recommendations.
//
// For each asset class the gap to the target value is split across the
// class's holdings in proportion to their share of the class value (or
// equally when the class is currently worthless). Gaps below DustThreshold
// are skipped, and so are holdings whose per-holding slice rounds down to
// zero shares or whose price is unknown. Sell recommendations carry a
// HIFO preview of the lots the sale would consume.
func Recommend(holdings []Holding, targets []TargetAllocation, totalValue Money, prices PriceMap) ([]TradeRecommendation, error) {
	byClass := make(map[AssetClass][]*Holding)
	classValue := make(map[AssetClass]Money)
	for i := range holdings {
		h := &holdings[i]
		byClass[h.Class] = append(byClass[h.Class], h)
		classValue[h.Class] = classValue[h.Class].Add(h.Value(prices.Price(h.Ticker)))
	}
	targetPercent := make(map[AssetClass]Percent, len(targets))
	for _, t := range targets {
		targetPercent[t.Class] = t.Percent
	}

	var trades []TradeRecommendation
	for _, class := range AssetClasses() {
		classHoldings := byClass[class]
		if len(classHoldings) == 0 {
			continue
		}
		classTotal := classValue[class]
		delta := targetPercent[class].Of(totalValue).Sub(classTotal)
		if delta.Abs().LessThan(DustThreshold) {
			continue // not worth a trade
		}

		action := TradeSell
		if delta.IsPositive() {
			action = TradeBuy
		}

		for _, h := range classHoldings {
			price := prices.Price(h.Ticker)
			if price.IsZero() {
				continue // value unknown, nothing sensible to recommend
			}
			holdingValue := h.Value(price)

			var proportion Quantity
			if classTotal.IsPositive() {
				proportion = holdingValue.DivPrice(classTotal).Round(6)
			} else {
				proportion = Q(1).Div(Q(len(classHoldings))).Round(6)
			}
			holdingDelta := delta.Mul(proportion)

			shares := holdingDelta.Abs().DivPrice(price).Floor()
			if shares == 0 {
				continue
			}

			trade := TradeRecommendation{
				Ticker:        h.Ticker,
				Name:          h.Name,
				Class:         class,
				Action:        action,
				Shares:        shares,
				Price:         price,
				EstimatedCost: price.Mul(Q(shares)),
				CurrentWeight: PercentOf(holdingValue, totalValue),
				TargetWeight:  PercentOf(holdingValue.Add(holdingDelta), totalValue),
			}

			if action == TradeSell {
				openLots, err := OpenLots(h.Trades)
				if err != nil {
					return nil, err
				}
				for _, sale := range SelectLotsForSale(openLots, Q(shares)) {
					trade.LotDetails = append(trade.LotDetails, LotSaleDetail{
						TradeID:       sale.Lot.TradeID,
						PurchaseDate:  sale.Lot.PurchaseDate,
						Quantity:      sale.Quantity,
						CostBasis:     sale.Lot.CostBasis,
						EstimatedGain: price.Sub(sale.Lot.CostBasis).Mul(sale.Quantity),
					})
				}
			}

			trades = append(trades, trade)
		}
	}
	return trades, nil
}

// MarshalJSON implements the json.Marshaler interface for TradeRecommendation.
func (t TradeRecommendation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("tickerSymbol", t.Ticker)
	w.Optional("name", t.Name)
	w.Append("assetClass", t.Class)
	w.Append("action", t.Action)
	w.Append("shares", t.Shares)
	w.Append("currentPrice", t.Price.Amount())
	w.Append("estimatedCost", t.EstimatedCost.Amount())
	w.Append("currentWeight", t.CurrentWeight)
	w.Append("targetWeight", t.TargetWeight)
	if t.LotDetails != nil {
		w.Append("lotDetails", t.LotDetails)
	}
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for LotSaleDetail.
func (d LotSaleDetail) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("tradeId", d.TradeID)
	w.Append("purchaseDate", d.PurchaseDate)
	w.Append("quantity", d.Quantity)
	w.Append("costBasis", d.CostBasis.Amount())
	w.Append("estimatedGain", d.EstimatedGain.Amount())
	return w.MarshalJSON()
}
