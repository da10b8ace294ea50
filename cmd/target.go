package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance"
	"github.com/google/subcommands"
)

// targetCmd holds the flags for the 'target' subcommand.
type targetCmd struct {
	date    string
	class   string
	percent float64
	memo    string
}

func (*targetCmd) Name() string     { return "target" }
func (*targetCmd) Synopsis() string { return "set the target allocation for an asset class" }
func (*targetCmd) Usage() string {
	return `target -class <class> -p <percent> [-d <date>] [-m <memo>]

  Sets the desired portfolio percentage for an asset class. The most recent
  target for a class wins; targets across classes must sum to 100 before a
  rebalance report can be produced.
`
}

func (c *targetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", rebalance.Today().String(), "Date the target takes effect (YYYY-MM-DD)")
	f.StringVar(&c.class, "class", "", "Asset class the target applies to")
	f.Float64Var(&c.percent, "p", 0, "Target percentage of the total portfolio value")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *targetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.class == "" || c.percent <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := rebalance.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	class, err := rebalance.ParseAssetClass(c.class)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing asset class: %v\n", err)
		return subcommands.ExitUsageError
	}

	return appendCommand(rebalance.NewTarget(day, c.memo, class, rebalance.P(c.percent)))
}
