package depot

import (
	"fmt"
	"strconv"
	"strings"
)

// Action identifies what a raw broker row did to the account.
type Action string

const (
	Deposit    Action = "deposit"
	Withdrawal Action = "withdrawal"
	Buy        Action = "buy"
	Sell       Action = "sell"
)

// actionAliases maps the labels seen in broker exports to canonical actions.
// Swedish brokers label trades "Köp"/"Sälj"; cash rows are usually English.
var actionAliases = map[string]Action{
	"deposit":    Deposit,
	"insättning": Deposit,
	"withdrawal": Withdrawal,
	"uttag":      Withdrawal,
	"buy":        Buy,
	"köp":        Buy,
	"sell":       Sell,
	"sälj":       Sell,
}

// ParseAction resolves a raw action label to its canonical Action.
// Unknown labels are classified as trades and resolved by the quantity
// sign during normalization, matching the tolerant behavior of broker
// exports that invent new trade labels.
func ParseAction(label string) (Action, bool) {
	a, ok := actionAliases[strings.ToLower(strings.TrimSpace(label))]
	return a, ok
}

// IsCashflow reports whether the action moves external capital rather than securities.
func (a Action) IsCashflow() bool { return a == Deposit || a == Withdrawal }

// RawRecord is one row of a broker export, still untyped. Trades carry all
// six fields; cash rows leave Stock, Quantity and Price empty.
//
// Exports are reverse chronological (newest row first); the scheduler puts
// them back in causal order.
type RawRecord struct {
	Date       string
	Action     string
	Stock      string
	Quantity   string
	Price      string
	TotalValue string
}

// SchemaError reports a required numeric field that did not parse.
type SchemaError struct {
	Field string
	Value string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("field %s: invalid numeric value %q: %v", e.Field, e.Value, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// EventKind discriminates the two variants of the Event union.
type EventKind string

const (
	KindCashflow EventKind = "cashflow"
	KindTrade    EventKind = "trade"
)

// Event is a normalized, dated portfolio event: either an external cash
// movement or a security trade.
type Event interface {
	Kind() EventKind
	When() Date
}

// Cashflow is an external capital movement. Amount is signed: positive for
// deposits, negative for withdrawals, regardless of how the source row was
// signed.
type Cashflow struct {
	Date   Date
	Action Action // Deposit or Withdrawal
	Amount Money
}

func (c Cashflow) Kind() EventKind { return KindCashflow }
func (c Cashflow) When() Date      { return c.Date }

// Trade is a buy or sell of a security.
//
// Sign conventions follow the export: buys have positive Quantity and
// negative TotalValue (cash out), sells the reverse. UnitPrice is always
// positive.
type Trade struct {
	Date       Date
	Security   string
	Quantity   Quantity
	UnitPrice  Money
	TotalValue Money
}

func (t Trade) Kind() EventKind { return KindTrade }
func (t Trade) When() Date      { return t.Date }

// IsBuy reports whether the trade adds to the position.
func (t Trade) IsBuy() bool { return t.Quantity.IsPositive() }

// Fee returns the transaction cost folded into the trade: the difference
// between the cash that moved and the bare price*quantity value.
func (t Trade) Fee() Money {
	gross := t.UnitPrice.Mul(t.Quantity.Abs())
	if t.IsBuy() {
		return t.TotalValue.Abs().Sub(gross)
	}
	return gross.Sub(t.TotalValue)
}

// parseAmount parses a required numeric field, reporting a SchemaError on failure.
// Broker exports use both comma and dot decimal separators.
func parseAmount(field, value string) (float64, error) {
	s := strings.TrimSpace(value)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	s = strings.ReplaceAll(s, " ", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &SchemaError{Field: field, Value: value, Err: err}
	}
	return f, nil
}

// Normalize converts a raw broker row into its canonical Event.
//
// Cash rows keep only the label's polarity: the amount is forced positive
// for deposits and negative for withdrawals, because exports sign these
// columns inconsistently. Trade rows carry quantity, price and total value
// verbatim.
func Normalize(row RawRecord, currency string) (Event, error) {
	on, err := ParseDate(row.Date)
	if err != nil {
		return nil, err
	}

	total, err := parseAmount("Total_Value", row.TotalValue)
	if err != nil {
		return nil, err
	}

	if action, ok := ParseAction(row.Action); ok && action.IsCashflow() {
		amount := M(total, currency).Abs()
		if action == Withdrawal {
			amount = amount.Neg()
		}
		return Cashflow{Date: on, Action: action, Amount: amount}, nil
	}

	qty, err := parseAmount("Quantity", row.Quantity)
	if err != nil {
		return nil, err
	}
	price, err := parseAmount("Price", row.Price)
	if err != nil {
		return nil, err
	}

	trade := Trade{
		Date:       on,
		Security:   row.Stock,
		Quantity:   Q(qty),
		UnitPrice:  M(price, currency),
		TotalValue: M(total, currency),
	}
	if err := trade.validate(); err != nil {
		return nil, err
	}
	return trade, nil
}

// validate enforces the sign invariant between quantity and total value.
func (t Trade) validate() error {
	if t.Security == "" {
		return fmt.Errorf("trade on %s has no security", t.Date)
	}
	if t.Quantity.IsZero() {
		return fmt.Errorf("trade on %s of %s has zero quantity", t.Date, t.Security)
	}
	if t.Quantity.IsPositive() && !t.TotalValue.IsNegative() {
		return fmt.Errorf("buy of %s on %s must have a negative total value, got %s", t.Security, t.Date, t.TotalValue)
	}
	if t.Quantity.IsNegative() && !t.TotalValue.IsPositive() {
		return fmt.Errorf("sell of %s on %s must have a positive total value, got %s", t.Security, t.Date, t.TotalValue)
	}
	return nil
}
