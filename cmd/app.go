// Package cmd implements the CLI application to manage a rebalancing ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/etnz/rebalance"
	"github.com/etnz/rebalance/quotes"
	"github.com/google/subcommands"
)

// Commands is the list of subcommands a main package registers.
var Commands = []subcommands.Command{
	&declareCmd{},
	&targetCmd{},
	&depositCmd{},
	&withdrawCmd{},
	&buyCmd{},
	&sellCmd{},
	&holdingsCmd{},
	&lotsCmd{},
	&gainsCmd{},
	&rebalanceCmd{},
	&investCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "rebalance.jsonl", "Path to the ledger file containing commands (JSONL format)")

// loadLedger decodes the app default ledger file.
func loadLedger() (*rebalance.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger file does not exist, starting from an empty ledger instead")
		return rebalance.NewLedger(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return rebalance.DecodeLedger(f)
}

// loadPortfolio decodes the ledger and replays it into the current portfolio state.
func loadPortfolio() (*rebalance.Portfolio, error) {
	ledger, err := loadLedger()
	if err != nil {
		return nil, err
	}
	return ledger.Portfolio()
}

// fetchPrices retrieves the latest quotes for every holding in the portfolio.
func fetchPrices(p *rebalance.Portfolio) (rebalance.PriceMap, error) {
	return quotes.NewClient().Prices(p.Tickers())
}

// appendCommand validates a command against the current ledger state and
// appends it to the app default ledger file.
func appendCommand(cmd rebalance.Command) subcommands.ExitStatus {
	ledger, err := loadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	validated, err := ledger.Add(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := rebalance.EncodeCommand(f, validated); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended %s command to %s\n", validated.What(), *ledgerFile)
	return subcommands.ExitSuccess
}
