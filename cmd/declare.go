package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance"
	"github.com/google/subcommands"
)

// declareCmd holds the flags for the 'declare' subcommand.
type declareCmd struct {
	date     string
	ticker   string
	name     string
	class    string
	currency string
	memo     string
}

func (*declareCmd) Name() string     { return "declare" }
func (*declareCmd) Synopsis() string { return "declare a security before trading it" }
func (*declareCmd) Usage() string {
	return `declare -t <ticker> -n <name> -class <class> [-c <currency>] [-d <date>] [-m <memo>]

  Declares a security so subsequent buy and sell commands can reference it.
  The class must be one of EQUITY, BOND, COMMODITY, REAL_ESTATE or CASH.
`
}

func (c *declareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", rebalance.Today().String(), "Declaration date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Security ticker")
	f.StringVar(&c.name, "n", "", "Human readable security name")
	f.StringVar(&c.class, "class", "", "Asset class of the security")
	f.StringVar(&c.currency, "c", "", "Currency the security trades in (e.g. USD)")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *declareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.name == "" || c.class == "" {
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

	return appendCommand(rebalance.NewDeclare(day, c.memo, c.ticker, c.name, class, c.currency))
}
