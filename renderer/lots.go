package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/rebalance"
)

// LotsMarkdown renders the open tax lots of one holding.
func LotsMarkdown(r *rebalance.LotReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Lots for %s\n\n", label(r.Ticker, r.Name))

	if len(r.OpenLots) == 0 {
		fmt.Fprint(&b, "No open lots.\n")
	} else {
		fmt.Fprintln(&b, "| Lot | Purchased | Original | Remaining | Basis/Share |")
		fmt.Fprintln(&b, "|---:|:---|---:|---:|---:|")
		for _, lot := range r.OpenLots {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
				lot.TradeID, lot.PurchaseDate, lot.OriginalQuantity, lot.RemainingQuantity, lot.CostBasis)
		}
	}

	if !r.Oversold.IsZero() {
		fmt.Fprintf(&b, "\n> Warning: %s shares sold in excess of recorded purchases.\n", r.Oversold)
	}

	return b.String()
}

// GainsMarkdown renders the realized gains history of one holding.
func GainsMarkdown(r *rebalance.LotReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Realized Gains for %s\n\n", label(r.Ticker, r.Name))

	if len(r.Dispositions) == 0 {
		fmt.Fprint(&b, "No realized gains.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Sell | Lot | Quantity | Basis/Share | Price/Share | Gain |")
	fmt.Fprintln(&b, "|---:|---:|---:|---:|---:|---:|")
	for _, d := range r.Dispositions {
		fmt.Fprintf(&b, "| %d | %d | %s | %s | %s | %s |\n",
			d.SellTradeID, d.BuyTradeID, d.Quantity, d.CostBasis, d.SellPrice, d.RealizedGain.SignedString())
	}
	fmt.Fprintf(&b, "| **Total** | | | | | **%s** |\n", r.TotalRealizedGain.SignedString())

	return b.String()
}

func label(ticker, name string) string {
	if name == "" {
		return ticker
	}
	return ticker + " (" + name + ")"
}
