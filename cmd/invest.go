package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance"
	"github.com/etnz/rebalance/renderer"
	"github.com/google/subcommands"
)

// investCmd holds the flags for the 'invest' subcommand.
type investCmd struct {
	cash     float64
	currency string
	json     bool
}

func (*investCmd) Name() string { return "invest" }
func (*investCmd) Synopsis() string {
	return "allocate new cash to the most underweight asset classes"
}
func (*investCmd) Usage() string {
	return `invest -cash <amount> [-c <currency>] [-json]

  Allocates new cash (plus the existing cash balance) across asset classes in
  order of largest deficit against the targets, buying whole shares of the
  most valuable holding in each class.
`
}

func (c *investCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.cash, "cash", 0, "Amount of new cash to deploy")
	f.StringVar(&c.currency, "c", "USD", "Currency of the new cash")
	f.BoolVar(&c.json, "json", false, "Emit the report as JSON instead of markdown")
}

func (c *investCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.cash < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	p, err := loadPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	prices, err := fetchPrices(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching quotes: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := p.RebalanceCash(rebalance.M(c.cash, c.currency), prices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.InvestMarkdown(report))
	return subcommands.ExitSuccess
}
