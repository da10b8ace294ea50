package rebalance

import (
	"fmt"
	"iter"
	"slices"
)

// Ledger is the append-only record of everything that happened to a
// portfolio: security declarations, target weights, cash movements and
// trades. The portfolio state is never stored, it is replayed from the
// ledger on demand.
type Ledger struct {
	commands []Command
}

// NewLedger creates a new empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append adds commands to the ledger without validation. Callers that accept
// external input should go through Add instead.
func (l *Ledger) Append(cmds ...Command) {
	l.commands = append(l.commands, cmds...)
}

// Add validates a command against the current portfolio state and appends it.
// Buy and sell commands without an ID are assigned the next free one.
func (l *Ledger) Add(cmd Command) (Command, error) {
	p, err := l.Portfolio()
	if err != nil {
		return cmd, err
	}
	cmd, err = cmd.Validate(p)
	if err != nil {
		return cmd, err
	}
	switch c := cmd.(type) {
	case BuyCmd:
		if c.ID == 0 {
			c.ID = l.nextTradeID()
		}
		cmd = c
	case SellCmd:
		if c.ID == 0 {
			c.ID = l.nextTradeID()
		}
		cmd = c
	}
	l.Append(cmd)
	return cmd, nil
}

// Commands returns an iterator over the ledger commands in order.
func (l *Ledger) Commands() iter.Seq[Command] {
	return slices.Values(l.commands)
}

func (l *Ledger) nextTradeID() int64 {
	var max int64
	for _, cmd := range l.commands {
		switch c := cmd.(type) {
		case BuyCmd:
			if c.ID > max {
				max = c.ID
			}
		case SellCmd:
			if c.ID > max {
				max = c.ID
			}
		}
	}
	return max + 1
}

// stableSort orders the commands by date, preserving the relative order of
// same-day commands.
func (l *Ledger) stableSort() {
	slices.SortStableFunc(l.commands, func(a, b Command) int {
		if a.When().Before(b.When()) {
			return -1
		}
		if b.When().Before(a.When()) {
			return 1
		}
		return 0
	})
}

// Portfolio replays the ledger and returns the resulting portfolio state.
func (l *Ledger) Portfolio() (*Portfolio, error) {
	p := &Portfolio{}
	targets := make(map[AssetClass]Percent)

	for _, cmd := range l.commands {
		switch c := cmd.(type) {
		case Declare:
			if p.Holding(c.Ticker) != nil {
				return nil, fmt.Errorf("security %q declared twice", c.Ticker)
			}
			p.Holdings = append(p.Holdings, Holding{
				Ticker:   c.Ticker,
				Name:     c.Name,
				Class:    c.Class,
				Currency: c.Currency,
			})
		case Target:
			// the last target for a class wins.
			targets[c.Class] = c.Percent
		case Deposit:
			p.CashBalance = p.CashBalance.Add(c.Amount)
		case Withdraw:
			p.CashBalance = p.CashBalance.Sub(c.Amount)
		case BuyCmd:
			h := p.Holding(c.Ticker)
			if h == nil {
				return nil, fmt.Errorf("buy of undeclared security %q", c.Ticker)
			}
			h.Trades = append(h.Trades, Trade{
				ID:       c.ID,
				Date:     c.Date,
				Type:     TradeBuy,
				Quantity: c.Quantity,
				Price:    c.Price,
				Fee:      c.Fee,
			})
		case SellCmd:
			h := p.Holding(c.Ticker)
			if h == nil {
				return nil, fmt.Errorf("sell of undeclared security %q", c.Ticker)
			}
			h.Trades = append(h.Trades, Trade{
				ID:       c.ID,
				Date:     c.Date,
				Type:     TradeSell,
				Quantity: c.Quantity,
				Price:    c.Price,
				Fee:      c.Fee,
			})
		default:
			return nil, fmt.Errorf("unknown ledger command: %q", cmd.What())
		}
	}

	for _, class := range AssetClasses() {
		if pct, ok := targets[class]; ok {
			p.Targets = append(p.Targets, TargetAllocation{Class: class, Percent: pct})
		}
	}
	return p, nil
}
