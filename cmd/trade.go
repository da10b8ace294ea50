package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance"
	"github.com/google/subcommands"
)

// --- Buy Command ---

type buyCmd struct {
	date     string
	ticker   string
	quantity float64
	price    float64
	fee      float64
	currency string
	memo     string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase shares to open or add to a tax lot" }
func (*buyCmd) Usage() string {
	return `buy -t <ticker> -q <quantity> -p <price> [-fee <fee>] [-c <currency>] [-d <date>] [-m <memo>]

  Purchases shares of a declared security. Each buy opens a new tax lot whose
  cost basis amortizes the fee across the shares.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", rebalance.Today().String(), "Trade date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Security ticker")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.Float64Var(&c.fee, "fee", 0, "Total transaction fee")
	f.StringVar(&c.currency, "c", "USD", "Currency of the price and fee")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.quantity <= 0 || c.price <= 0 || c.fee < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := rebalance.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	cmd := rebalance.NewBuyCmd(day, c.memo, c.ticker,
		rebalance.Q(c.quantity),
		rebalance.M(c.price, c.currency),
		rebalance.M(c.fee, c.currency))
	return appendCommand(cmd)
}

// --- Sell Command ---

type sellCmd struct {
	date     string
	ticker   string
	quantity float64
	price    float64
	fee      float64
	currency string
	memo     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares, consuming the highest-basis tax lots first" }
func (*sellCmd) Usage() string {
	return `sell -t <ticker> -q <quantity> -p <price> [-fee <fee>] [-c <currency>] [-d <date>] [-m <memo>]

  Sells shares of a declared security. Shares are consumed from the open tax
  lots with the highest cost basis first.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", rebalance.Today().String(), "Trade date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Security ticker")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.Float64Var(&c.fee, "fee", 0, "Total transaction fee")
	f.StringVar(&c.currency, "c", "USD", "Currency of the price and fee")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.quantity <= 0 || c.price <= 0 || c.fee < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := rebalance.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	cmd := rebalance.NewSellCmd(day, c.memo, c.ticker,
		rebalance.Q(c.quantity),
		rebalance.M(c.price, c.currency),
		rebalance.M(c.fee, c.currency))
	return appendCommand(cmd)
}
