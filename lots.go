package rebalance

import (
	"cmp"
	"fmt"
	"slices"
)

// This file implements HIFO (highest-in-first-out) tax-lot accounting.
//
// Every buy trade opens a lot. Every sell consumes open lots starting with
// the highest cost basis per share, which minimizes the reported taxable
// gain. Consumption is a deterministic greedy walk: lots are values, and
// each step threads an updated copy of the lot list forward, so replaying
// the same trade history twice always yields identical results.

// Lot is a single purchase still tracked for cost-basis purposes.
type Lot struct {
	TradeID           int64
	PurchaseDate      Date
	OriginalQuantity  Quantity
	RemainingQuantity Quantity
	CostBasis         Money // per share, fees amortized over the lot
}

// LotDisposition records a sell consuming part of a lot.
type LotDisposition struct {
	BuyTradeID   int64
	SellTradeID  int64
	Quantity     Quantity
	CostBasis    Money // per share
	SellPrice    Money // per share, gross of fees
	RealizedGain Money // (net sell price - cost basis) * quantity
}

// LotSale pairs an open lot with the quantity a proposed sale would take
// from it. It is a preview: nothing is consumed.
type LotSale struct {
	Lot      Lot
	Quantity Quantity
}

// BuildLots creates one lot per buy trade, ignoring sells. The cost basis
// per share is the execution price plus the fee amortized over the lot's
// own quantity, rounded to 6 fractional digits, half up.
//
// A buy with a non-positive quantity is rejected with ErrInvalidTrade: it
// cannot open a lot, and amortizing its fee would divide by zero.
func BuildLots(trades []Trade) ([]Lot, error) {
	var lots []Lot
	for _, t := range trades {
		if t.Type != TradeBuy {
			continue
		}
		if !t.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: buy trade %d has non-positive quantity %s", ErrInvalidTrade, t.ID, t.Quantity)
		}
		basis := t.Price.Add(t.Fee.Div(t.Quantity).Round(6))
		lots = append(lots, Lot{
			TradeID:           t.ID,
			PurchaseDate:      t.Date,
			OriginalQuantity:  t.Quantity,
			RemainingQuantity: t.Quantity,
			CostBasis:         basis,
		})
	}
	return lots, nil
}

// OpenLots replays the full trade history and returns the lots that still
// hold shares, each with its remaining quantity.
//
// Sell quantity in excess of what open lots can cover is clamped: the lot
// state never goes negative and no error is raised. Use NewLotReport to
// surface the unmatched (oversold) quantity.
func OpenLots(trades []Trade) ([]Lot, error) {
	open, _, _, err := replayLots(trades)
	return open, err
}

// RealizedDispositions replays the full trade history and returns one
// disposition per (lot, sell) pairing, in consumption order.
//
// The realized gain nets the sell fee out of the sell price: per share,
// gain = (price - fee/quantity - cost basis), times the quantity consumed.
func RealizedDispositions(trades []Trade) ([]LotDisposition, error) {
	_, dispositions, _, err := replayLots(trades)
	return dispositions, err
}

// SelectLotsForSale previews which lots a sale of the given quantity would
// consume, in HIFO order, without consuming anything. The caller-supplied
// open lots are left untouched.
func SelectLotsForSale(openLots []Lot, quantityToSell Quantity) []LotSale {
	_, sales, _ := consumeHIFO(openLots, quantityToSell)
	return sales
}

// sortHIFO returns the lots ordered for consumption: highest cost basis
// first. Equal bases are broken by purchase date then trade ID, oldest
// first, so that replays are reproducible.
func sortHIFO(lots []Lot) []Lot {
	sorted := slices.Clone(lots)
	slices.SortStableFunc(sorted, func(a, b Lot) int {
		switch {
		case a.CostBasis.GreaterThan(b.CostBasis):
			return -1
		case a.CostBasis.LessThan(b.CostBasis):
			return 1
		case a.PurchaseDate.Before(b.PurchaseDate):
			return -1
		case a.PurchaseDate.After(b.PurchaseDate):
			return 1
		default:
			return cmp.Compare(a.TradeID, b.TradeID)
		}
	})
	return sorted
}

// sortedSells returns the sell trades ordered by date then trade ID.
func sortedSells(trades []Trade) []Trade {
	var sells []Trade
	for _, t := range trades {
		if t.Type == TradeSell {
			sells = append(sells, t)
		}
	}
	slices.SortStableFunc(sells, func(a, b Trade) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return cmp.Compare(a.ID, b.ID)
		}
	})
	return sells
}

// consumeHIFO applies one sale to the lots. It returns the updated lot
// list, the per-lot sales (holding each lot's pre-sale state), and the
// sale quantity that no lot could cover.
func consumeHIFO(lots []Lot, quantityToSell Quantity) (next []Lot, sales []LotSale, unmatched Quantity) {
	next = make([]Lot, 0, len(lots))
	remaining := quantityToSell
	for _, lot := range sortHIFO(lots) {
		if !remaining.IsPositive() || !lot.RemainingQuantity.IsPositive() {
			next = append(next, lot)
			continue
		}
		sold := lot.RemainingQuantity.Min(remaining)
		sales = append(sales, LotSale{Lot: lot, Quantity: sold})
		lot.RemainingQuantity = lot.RemainingQuantity.Sub(sold)
		remaining = remaining.Sub(sold)
		next = append(next, lot)
	}
	return next, sales, remaining
}

// replayLots rebuilds lots from the buys and walks every sell through HIFO
// consumption. Each call starts from a fresh lot reconstruction, so open
// lots and dispositions computed from the same trade list never share
// state.
func replayLots(trades []Trade) (open []Lot, dispositions []LotDisposition, oversold Quantity, err error) {
	lots, err := BuildLots(trades)
	if err != nil {
		return nil, nil, Quantity{}, err
	}
	for _, sell := range sortedSells(trades) {
		netPrice := sell.Price
		if !sell.Fee.IsZero() && sell.Quantity.IsPositive() {
			netPrice = sell.Price.Sub(sell.Fee.Div(sell.Quantity).Round(6))
		}

		var sales []LotSale
		var unmatched Quantity
		lots, sales, unmatched = consumeHIFO(lots, sell.Quantity)
		oversold = oversold.Add(unmatched)

		for _, s := range sales {
			gain := netPrice.Sub(s.Lot.CostBasis).Mul(s.Quantity)
			dispositions = append(dispositions, LotDisposition{
				BuyTradeID:   s.Lot.TradeID,
				SellTradeID:  sell.ID,
				Quantity:     s.Quantity,
				CostBasis:    s.Lot.CostBasis,
				SellPrice:    sell.Price,
				RealizedGain: gain,
			})
		}
	}
	for _, lot := range lots {
		if lot.RemainingQuantity.IsPositive() {
			open = append(open, lot)
		}
	}
	return open, dispositions, oversold, nil
}

// MarshalJSON implements the json.Marshaler interface for Lot.
func (l Lot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("tradeId", l.TradeID)
	w.Append("purchaseDate", l.PurchaseDate)
	w.Append("originalQuantity", l.OriginalQuantity)
	w.Append("remainingQuantity", l.RemainingQuantity)
	w.Append("costBasisPerShare", l.CostBasis.Amount())
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for LotDisposition.
func (d LotDisposition) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("buyTradeId", d.BuyTradeID)
	w.Append("sellTradeId", d.SellTradeID)
	w.Append("quantitySold", d.Quantity)
	w.Append("costBasisPerShare", d.CostBasis.Amount())
	w.Append("sellPricePerShare", d.SellPrice.Amount())
	w.Append("realizedGain", d.RealizedGain.Amount())
	return w.MarshalJSON()
}
