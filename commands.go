package rebalance

import (
	"errors"
	"fmt"
)

// CommandType is a typed string for identifying ledger commands.
type CommandType string

// Command types used for identifying ledger entries.
const (
	CmdDeclare  CommandType = "declare"
	CmdTarget   CommandType = "target"
	CmdDeposit  CommandType = "deposit"
	CmdWithdraw CommandType = "withdraw"
	CmdBuy      CommandType = "buy"
	CmdSell     CommandType = "sell"
)

// Command defines the common interface for all entries that can be recorded
// in the ledger.
type Command interface {
	What() CommandType // What returns the command type (e.g. "buy", "declare").
	When() Date        // When returns the date on which the command occurred.
	Validate(p *Portfolio) (Command, error)
}

type baseCmd struct {
	Command CommandType `json:"command"`        // Command specifies the type of entry (e.g. "buy", "sell").
	Date    Date        `json:"date"`           // Date is the date when the entry took place.
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional rationale for the entry.
}

// What returns the command name, which is used to identify the type of entry.
func (t baseCmd) What() CommandType {
	return t.Command
}

// When returns the date of the entry.
func (t baseCmd) When() Date {
	return t.Date
}

// Rationale returns the memo associated with the entry.
func (t baseCmd) Rationale() string {
	return t.Memo
}

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("date", t.Date)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// Validate checks the base command fields. It sets the date to today if it's zero.
// It's meant to be embedded in other command validation methods.
func (t *baseCmd) Validate() {
	if t.Date == (Date{}) {
		t.Date = Today()
	}
}

// secCmd is a component for security-based commands (declare, buy, sell).
type secCmd struct {
	baseCmd
	Ticker string `json:"ticker"` // Ticker is the symbol of the security involved.
}

// Validate checks the security command fields. It validates the base command,
// ensures a ticker is present, and resolves it against the declared holdings.
func (t *secCmd) Validate(p *Portfolio) error {
	t.baseCmd.Validate()

	if t.Ticker == "" {
		return errors.New("ticker is missing")
	}

	if p.Holding(t.Ticker) == nil {
		return fmt.Errorf("security %q not declared in ledger", t.Ticker)
	}

	return nil
}

// MarshalJSON implements the json.Marshaler interface for secCmd.
func (t secCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("ticker", t.Ticker)
	return w.MarshalJSON()
}

// --- Declare Command ---

// Declare records a security for use in the ledger. It maps a ticker to a
// display name, an asset class and a currency.
type Declare struct {
	secCmd
	Name     string     `json:"name"`
	Class    AssetClass `json:"assetClass"`
	Currency string     `json:"currency,omitempty"`
}

// NewDeclare creates a new Declare command.
func NewDeclare(day Date, memo, ticker, name string, class AssetClass, currency string) Declare {
	return Declare{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdDeclare, Date: day, Memo: memo}, Ticker: ticker},
		Name:     name,
		Class:    class,
		Currency: currency,
	}
}

// MarshalJSON implements the json.Marshaler interface for Declare.
func (t Declare) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Append("name", t.Name)
	w.Append("assetClass", t.Class)
	w.Optional("currency", t.Currency)
	return w.MarshalJSON()
}

// Validate checks the Declare command's fields. It ensures the ticker is not
// already declared.
func (t Declare) Validate(p *Portfolio) (Command, error) {
	t.baseCmd.Validate()
	if t.Ticker == "" {
		return t, errors.New("declaration ticker is missing")
	}
	if p.Holding(t.Ticker) != nil {
		return t, fmt.Errorf("security %q already declared in ledger", t.Ticker)
	}
	return t, nil
}

// --- Target Command ---

// Target records the desired weight of an asset class. The last target for a
// class wins; together all targets must sum to 100%.
type Target struct {
	baseCmd
	Class   AssetClass `json:"assetClass"`
	Percent Percent    `json:"percent"`
}

// NewTarget creates a new Target command.
func NewTarget(day Date, memo string, class AssetClass, percent Percent) Target {
	return Target{
		baseCmd: baseCmd{Command: CmdTarget, Date: day, Memo: memo},
		Class:   class,
		Percent: percent,
	}
}

// MarshalJSON implements the json.Marshaler interface for Target.
func (t Target) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("assetClass", t.Class)
	w.Append("percent", t.Percent)
	return w.MarshalJSON()
}

// Validate checks the Target command's fields. It ensures the weight is in
// the (0, 100] range. The sum-to-100 rule is enforced at rebalance time, when
// the full target set is known.
func (t Target) Validate(p *Portfolio) (Command, error) {
	t.baseCmd.Validate()
	if !t.Percent.IsPositive() {
		return t, fmt.Errorf("target weight must be positive, got %s", t.Percent)
	}
	if P(100).LessThan(t.Percent) {
		return t, fmt.Errorf("target weight cannot exceed 100%%, got %s", t.Percent)
	}
	return t, nil
}

// --- Deposit Command ---

// Deposit records cash added to the portfolio.
type Deposit struct {
	baseCmd
	Amount Money // Amount is the quantity of cash deposited.
}

// NewDeposit creates a new Deposit command.
func NewDeposit(day Date, memo string, amount Money) Deposit {
	return Deposit{
		baseCmd: baseCmd{Command: CmdDeposit, Date: day, Memo: memo},
		Amount:  amount,
	}
}

func (t Deposit) Currency() string { return t.Amount.Currency() }

// MarshalJSON implements the json.Marshaler interface for Deposit.
func (t Deposit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// Validate checks the Deposit command's fields. It ensures the amount is
// positive.
func (t Deposit) Validate(p *Portfolio) (Command, error) {
	t.baseCmd.Validate()
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("deposit amount must be positive, got %s", t.Amount)
	}
	return t, nil
}

// --- Withdraw Command ---

// Withdraw records cash removed from the portfolio.
type Withdraw struct {
	baseCmd
	Amount Money // Amount is the quantity of cash withdrawn.
}

// NewWithdraw creates a new Withdraw command.
func NewWithdraw(day Date, memo string, amount Money) Withdraw {
	return Withdraw{
		baseCmd: baseCmd{Command: CmdWithdraw, Date: day, Memo: memo},
		Amount:  amount,
	}
}

func (t Withdraw) Currency() string { return t.Amount.Currency() }

// MarshalJSON implements the json.Marshaler interface for Withdraw.
func (t Withdraw) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// Validate checks the Withdraw command's fields. It ensures the amount is
// positive and covered by the cash balance.
func (t Withdraw) Validate(p *Portfolio) (Command, error) {
	t.baseCmd.Validate()
	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("withdraw amount must be positive, got %s", t.Amount)
	}
	if p.CashBalance.LessThan(t.Amount) {
		return t, fmt.Errorf("on %s, cannot withdraw %s, cash balance is %s", t.When(), t.Amount, p.CashBalance)
	}
	return t, nil
}

// --- Buy Command ---

// BuyCmd records the purchase of a quantity of a security at a unit price,
// opening a new tax lot.
type BuyCmd struct {
	secCmd
	ID       int64    `json:"id,omitempty"` // ID identifies the trade for lot tracking. Assigned on append when zero.
	Quantity Quantity // Quantity is the number of shares bought.
	Price    Money    // Price is the price paid per share.
	Fee      Money    // Fee is the transaction fee, amortized into the cost basis.
}

// NewBuyCmd creates a new BuyCmd.
func NewBuyCmd(day Date, memo, ticker string, quantity Quantity, price, fee Money) BuyCmd {
	return BuyCmd{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdBuy, Date: day, Memo: memo}, Ticker: ticker},
		Quantity: quantity,
		Price:    price,
		Fee:      fee,
	}
}

// MarshalJSON implements the json.Marshaler interface for BuyCmd.
func (t BuyCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Optional("id", t.ID)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.Amount())
	if !t.Fee.IsZero() {
		w.Append("fee", t.Fee.Amount())
	}
	w.Optional("currency", t.Price.Currency())
	return w.MarshalJSON()
}

// Validate checks the BuyCmd's fields. It ensures the quantity and price are
// positive and the fee is not negative.
func (t BuyCmd) Validate(p *Portfolio) (Command, error) {
	if err := t.secCmd.Validate(p); err != nil {
		return t, err
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("buy quantity must be positive, got %s", t.Quantity)
	}
	if !t.Price.IsPositive() {
		return t, fmt.Errorf("buy price must be positive, got %s", t.Price)
	}
	if t.Fee.IsNegative() {
		return t, fmt.Errorf("buy fee cannot be negative, got %s", t.Fee)
	}
	return t, nil
}

// --- Sell Command ---

// SellCmd records the sale of a quantity of a security at a unit price. The
// sale consumes open lots from the highest cost basis down.
type SellCmd struct {
	secCmd
	ID       int64    `json:"id,omitempty"` // ID identifies the trade for lot tracking. Assigned on append when zero.
	Quantity Quantity // Quantity is the number of shares sold.
	Price    Money    // Price is the price received per share.
	Fee      Money    // Fee is the transaction fee, deducted from the proceeds.
}

// NewSellCmd creates a new SellCmd.
func NewSellCmd(day Date, memo, ticker string, quantity Quantity, price, fee Money) SellCmd {
	return SellCmd{
		secCmd:   secCmd{baseCmd: baseCmd{Command: CmdSell, Date: day, Memo: memo}, Ticker: ticker},
		Quantity: quantity,
		Price:    price,
		Fee:      fee,
	}
}

// MarshalJSON implements the json.Marshaler interface for SellCmd.
func (t SellCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secCmd)
	w.Optional("id", t.ID)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.Amount())
	if !t.Fee.IsZero() {
		w.Append("fee", t.Fee.Amount())
	}
	w.Optional("currency", t.Price.Currency())
	return w.MarshalJSON()
}

// Validate checks the SellCmd's fields. It ensures the quantity and price are
// positive and that the position is sufficient to cover the sale.
func (t SellCmd) Validate(p *Portfolio) (Command, error) {
	if err := t.secCmd.Validate(p); err != nil {
		return t, err
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("sell quantity must be positive, got %s", t.Quantity)
	}
	if !t.Price.IsPositive() {
		return t, fmt.Errorf("sell price must be positive, got %s", t.Price)
	}
	if t.Fee.IsNegative() {
		return t, fmt.Errorf("sell fee cannot be negative, got %s", t.Fee)
	}

	pos := p.Holding(t.Ticker).Quantity()
	if pos.LessThan(t.Quantity) {
		return t, fmt.Errorf("on %s, cannot sell %s of %s, position is only %s", t.When(), t.Quantity, t.Ticker, pos)
	}
	return t, nil
}
