package rebalance

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// amountCmd is a specialized struct to read a ledger amount in two fields.
type amountCmd struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a amountCmd) Money() Money {
	return M(a.Amount, a.Currency)
}

// tradeCmd is a specialized struct to read buy and sell lines, where the
// price and fee are plain decimals sharing a single currency field.
type tradeCmd struct {
	secCmd
	ID       int64           `json:"id"`
	Quantity Quantity        `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Fee      decimal.Decimal `json:"fee"`
	Currency string          `json:"currency"`
}

// DecodeLedger decodes commands from a stream of JSONL data, one command per
// line, and returns a date-sorted Ledger. Buy and sell lines without an ID
// are assigned one from their position in the stream, so hand-written ledgers
// stay valid.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	var tradeCount int64
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
		}

		var decoded Command
		var err error

		switch identifier.Command {
		case CmdDeclare:
			var cmd Declare
			err = json.Unmarshal(lineBytes, &cmd)
			decoded = cmd
		case CmdTarget:
			var cmd Target
			err = json.Unmarshal(lineBytes, &cmd)
			decoded = cmd
		case CmdDeposit:
			var temp struct {
				baseCmd
				amountCmd
			}
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			decoded = Deposit{baseCmd: temp.baseCmd, Amount: temp.Money()}
		case CmdWithdraw:
			var temp struct {
				baseCmd
				amountCmd
			}
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			decoded = Withdraw{baseCmd: temp.baseCmd, Amount: temp.Money()}
		case CmdBuy:
			var temp tradeCmd
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			tradeCount++
			if temp.ID == 0 {
				temp.ID = tradeCount
			}
			decoded = BuyCmd{
				secCmd:   temp.secCmd,
				ID:       temp.ID,
				Quantity: temp.Quantity,
				Price:    M(temp.Price, temp.Currency),
				Fee:      M(temp.Fee, temp.Currency),
			}
		case CmdSell:
			var temp tradeCmd
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			tradeCount++
			if temp.ID == 0 {
				temp.ID = tradeCount
			}
			decoded = SellCmd{
				secCmd:   temp.secCmd,
				ID:       temp.ID,
				Quantity: temp.Quantity,
				Price:    M(temp.Price, temp.Currency),
				Fee:      M(temp.Fee, temp.Currency),
			}
		default:
			err = fmt.Errorf("unknown ledger command: %q", identifier.Command)
		}

		if err != nil {
			return nil, err
		}
		ledger.Append(decoded)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	ledger.stableSort()

	return ledger, nil
}

// EncodeCommand marshals a single command to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeCommand(w io.Writer, cmd Command) error {
	decimal.MarshalJSONWithoutQuotes = true
	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal command: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write command: %w", err)
	}
	return nil
}

// EncodeLedger persists the ledger to an io.Writer in JSONL format, ordered
// by date. The sort is stable, same-day commands keep their relative order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	ledger.stableSort()
	for cmd := range ledger.Commands() {
		if err := EncodeCommand(w, cmd); err != nil {
			return err
		}
	}
	return nil
}
