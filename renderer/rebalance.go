package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/rebalance"
)

// RebalanceMarkdown renders the full-rebalance report: the allocation drift
// per asset class and the trades that would close it.
func RebalanceMarkdown(r *rebalance.RebalanceReport) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Rebalance Report\n\n")
	fmt.Fprintf(&b, "Total portfolio value: %s\n\n", r.TotalValue)

	writeAllocations(&b, r.Allocations)
	writeTrades(&b, r.Trades)

	if !r.UnallocatedCash.IsZero() {
		fmt.Fprintf(&b, "\nUnallocated cash after trades: %s\n", r.UnallocatedCash)
	}

	return b.String()
}

// InvestMarkdown renders the cash-deployment report: the buys allocating a
// fresh deposit to the most underweight classes.
func InvestMarkdown(r *rebalance.CashReport) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Investment Plan\n\n")
	fmt.Fprintf(&b, "Portfolio value after deposit: %s\n\n", r.NewTotalValue)

	writeAllocations(&b, r.Allocations)
	writeTrades(&b, r.Trades)

	fmt.Fprintf(&b, "\nCash left uninvested: %s\n", r.RemainingCash)

	return b.String()
}

func writeAllocations(b *strings.Builder, allocations []rebalance.AllocationComparison) {
	fmt.Fprint(b, "## Allocations\n\n")
	fmt.Fprintln(b, "| Class | Current | Target | Drift | Current Value | Target Value |")
	fmt.Fprintln(b, "|:---|---:|---:|---:|---:|---:|")
	for _, a := range allocations {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s |\n",
			a.Class, a.CurrentPercent, a.TargetPercent, a.Drift.SignedString(), a.CurrentValue, a.TargetValue)
	}
	fmt.Fprintln(b)
}

func writeTrades(b *strings.Builder, trades []rebalance.TradeRecommendation) {
	fmt.Fprint(b, "## Recommended Trades\n\n")
	if len(trades) == 0 {
		fmt.Fprint(b, "Nothing to do: the portfolio is on target.\n")
		return
	}

	fmt.Fprintln(b, "| Action | Ticker | Class | Shares | Price | Cost |")
	fmt.Fprintln(b, "|:---|:---|:---|---:|---:|---:|")
	for _, t := range trades {
		fmt.Fprintf(b, "| %s | %s | %s | %d | %s | %s |\n",
			t.Action, t.Ticker, t.Class, t.Shares, t.Price, t.EstimatedCost)
	}

	for _, t := range trades {
		if len(t.LotDetails) == 0 {
			continue
		}
		fmt.Fprintf(b, "\nSelling %s consumes:\n\n", t.Ticker)
		fmt.Fprintln(b, "| Lot | Purchased | Quantity | Basis/Share | Est. Gain |")
		fmt.Fprintln(b, "|---:|:---|---:|---:|---:|")
		for _, d := range t.LotDetails {
			fmt.Fprintf(b, "| %d | %s | %s | %s | %s |\n",
				d.TradeID, d.PurchaseDate, d.Quantity, d.CostBasis, d.EstimatedGain.SignedString())
		}
	}
}
