// Package renderer turns engine reports into markdown. Rendering is pure
// formatting: every number is computed by the engine before it gets here.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/rebalance"
)

// HoldingsMarkdown renders the portfolio positions valued at the given
// prices.
func HoldingsMarkdown(p *rebalance.Portfolio, prices rebalance.PriceMap) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Holdings\n\n")
	fmt.Fprintln(&b, "| Ticker | Name | Class | Quantity | Price | Value |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|")

	total := p.CashBalance
	for _, h := range p.Holdings {
		price := prices.Price(h.Ticker)
		value := h.Value(price)
		total = total.Add(value)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			h.Ticker, h.Name, h.Class, h.Quantity(), price, value)
	}
	if !p.CashBalance.IsZero() {
		fmt.Fprintf(&b, "| Cash | | | | | %s |\n", p.CashBalance)
	}
	fmt.Fprintf(&b, "| **Total** | | | | | **%s** |\n", total)

	return b.String()
}
