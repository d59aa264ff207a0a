package depot

import (
	"fmt"
	"log"
	"maps"
)

// CapitalPolicy defines where external capital flows come from.
type CapitalPolicy int

const (
	// InferCapital derives capital injections implicitly: whenever a buy
	// cannot be funded by the cash balance, the shortfall is treated as
	// fresh external capital.
	InferCapital CapitalPolicy = iota
	// ExplicitCashflows derives capital flows from deposit and withdrawal
	// rows only.
	ExplicitCashflows
)

func (p CapitalPolicy) String() string {
	switch p {
	case InferCapital:
		return "infer"
	case ExplicitCashflows:
		return "explicit"
	default:
		return "unknown"
	}
}

// ParseCapitalPolicy parses a string into a CapitalPolicy.
func ParseCapitalPolicy(s string) (CapitalPolicy, error) {
	switch s {
	case "infer":
		return InferCapital, nil
	case "explicit":
		return ExplicitCashflows, nil
	default:
		return 0, fmt.Errorf("unknown capital policy: %q", s)
	}
}

// NAVPolicy defines how held positions are marked when valuing the portfolio.
type NAVPolicy int

const (
	// MarkToLastTrade values positions at the most recent traded price of
	// each security. It reflects realized market moves.
	MarkToLastTrade NAVPolicy = iota
	// MarkToPurchase values positions at the latest purchase price. It
	// reflects nothing but the cost paid, and exists for compatibility with
	// cost-basis reporting.
	MarkToPurchase
)

func (p NAVPolicy) String() string {
	switch p {
	case MarkToLastTrade:
		return "last-trade"
	case MarkToPurchase:
		return "purchase"
	default:
		return "unknown"
	}
}

// ParseNAVPolicy parses a string into a NAVPolicy.
func ParseNAVPolicy(s string) (NAVPolicy, error) {
	switch s {
	case "last-trade":
		return MarkToLastTrade, nil
	case "purchase":
		return MarkToPurchase, nil
	default:
		return 0, fmt.Errorf("unknown nav policy: %q", s)
	}
}

// FeePolicy defines how transaction costs hit the books.
type FeePolicy int

const (
	// FeeExpensed books fees immediately as a realized loss; the average
	// cost of a position stays comparable to its market price.
	FeeExpensed FeePolicy = iota
	// FeeInCost folds buy fees into the average cost of the position, so
	// they surface only when the position is disposed.
	FeeInCost
)

func (p FeePolicy) String() string {
	switch p {
	case FeeExpensed:
		return "expensed"
	case FeeInCost:
		return "in-cost"
	default:
		return "unknown"
	}
}

// ParseFeePolicy parses a string into a FeePolicy.
func ParseFeePolicy(s string) (FeePolicy, error) {
	switch s {
	case "expensed":
		return FeeExpensed, nil
	case "in-cost":
		return FeeInCost, nil
	default:
		return 0, fmt.Errorf("unknown fee policy: %q", s)
	}
}

// Config selects the behavioral variant of the engine. NAV and return
// figures differ materially between variants, so a deployment must pin one
// set and stick to it.
type Config struct {
	Currency string        // reporting currency, default SEK
	Capital  CapitalPolicy // default InferCapital
	NAV      NAVPolicy     // default MarkToLastTrade
	Fee      FeePolicy     // default FeeExpensed
}

// DefaultCurrency is used when the Config carries none.
const DefaultCurrency = "SEK"

func (c Config) withDefaults() Config {
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	return c
}

// CapitalFlow is one external capital movement, as seen from the investor:
// negative when money enters the portfolio, positive when it leaves.
// ValueBefore snapshots the portfolio value immediately before the flow was
// applied; the TWR solver closes its sub-period on it.
type CapitalFlow struct {
	Date        Date
	Amount      Money
	ValueBefore Money
}

// Applied records the side effects of one event on the ledger. Fee and
// RealizedPnL are zero for cashflows; RealizedPnL is assigned only on sells.
type Applied struct {
	Event       Event
	Fee         Money
	RealizedPnL Money
}

// positionEpsilon is the share-count magnitude below which a position is
// considered fully closed and its entries removed.
const positionEpsilon = 1e-4

// Ledger is the mutable bookkeeping state of one engine run. It is owned
// exclusively by the Process call that created it and must not be shared:
// Apply is not re-entrant.
type Ledger struct {
	cfg Config

	cash          Money
	positions     map[string]Quantity
	avgPrice      map[string]Money // cost basis per share, removed with the position
	lastPrice     map[string]Money // most recent traded price, never removed
	purchasePrice map[string]Money // latest buy price, never removed

	capitalIn Money
	fees      Money
	realized  Money

	flows []CapitalFlow
}

// NewLedger creates an empty ledger for one engine run.
func NewLedger(cfg Config) *Ledger {
	cfg = cfg.withDefaults()
	zero := M(0, cfg.Currency)
	return &Ledger{
		cfg:           cfg,
		cash:          zero,
		positions:     make(map[string]Quantity),
		avgPrice:      make(map[string]Money),
		lastPrice:     make(map[string]Money),
		purchasePrice: make(map[string]Money),
		capitalIn:     zero,
		fees:          zero,
		realized:      zero,
	}
}

// Apply mutates the ledger with a single event and returns the applied
// record carrying the event's side effects.
func (l *Ledger) Apply(ev Event) (Applied, error) {
	switch v := ev.(type) {
	case Cashflow:
		return l.applyCashflow(v), nil
	case Trade:
		if v.IsBuy() {
			return l.applyBuy(v), nil
		}
		return l.applySell(v), nil
	default:
		return Applied{}, fmt.Errorf("unhandled event type: %T", ev)
	}
}

func (l *Ledger) applyCashflow(cf Cashflow) Applied {
	flow := CapitalFlow{
		Date:        cf.Date,
		Amount:      cf.Amount.Neg(), // investor perspective: deposit = money out
		ValueBefore: l.PortfolioValue(),
	}
	l.cash = l.cash.Add(cf.Amount)
	if cf.Amount.IsPositive() {
		l.capitalIn = l.capitalIn.Add(cf.Amount)
	}
	// Deposits and withdrawals are external capital under either policy;
	// inference only adds flows for underfunded buys on top of them.
	l.flows = append(l.flows, flow)
	return Applied{Event: cf}
}

func (l *Ledger) applyBuy(t Trade) Applied {
	needed := t.TotalValue.Abs()

	switch l.cfg.Capital {
	case InferCapital:
		if l.cash.LessThan(needed) {
			shortfall := needed.Sub(l.cash)
			l.flows = append(l.flows, CapitalFlow{
				Date:        t.Date,
				Amount:      shortfall.Neg(),
				ValueBefore: l.PortfolioValue(),
			})
			l.capitalIn = l.capitalIn.Add(shortfall)
			l.cash = M(0, l.cfg.Currency)
		} else {
			l.cash = l.cash.Sub(needed)
		}
	case ExplicitCashflows:
		l.cash = l.cash.Add(t.TotalValue) // TotalValue is negative on buys
	}

	fee := t.Fee()
	l.fees = l.fees.Add(fee)

	// Weighted-average cost update. Under FeeExpensed the basis uses the
	// bare price*quantity value so it stays comparable to market prices;
	// under FeeInCost the full cash cost is capitalized instead.
	cost := t.UnitPrice.Mul(t.Quantity)
	if l.cfg.Fee == FeeInCost {
		cost = t.TotalValue.Abs()
	} else {
		l.realized = l.realized.Sub(fee)
	}

	oldQty := l.positions[t.Security]
	oldAvg := l.avgPrice[t.Security]
	newQty := oldQty.Add(t.Quantity)
	if newQty.Abs().LessThan(Q(positionEpsilon)) {
		// A buy can close a short left by a sell without position. The
		// removal rule applies on both paths, and guards the average
		// against a zero share count.
		delete(l.positions, t.Security)
		delete(l.avgPrice, t.Security)
	} else {
		l.avgPrice[t.Security] = oldAvg.Mul(oldQty).Add(cost).Div(newQty)
		l.positions[t.Security] = newQty
	}

	l.lastPrice[t.Security] = t.UnitPrice
	l.purchasePrice[t.Security] = t.UnitPrice

	return Applied{Event: t, Fee: fee}
}

func (l *Ledger) applySell(t Trade) Applied {
	l.cash = l.cash.Add(t.TotalValue) // proceeds, net of fees

	sellQty := t.Quantity.Abs()
	fee := t.Fee()
	l.fees = l.fees.Add(fee)
	if l.cfg.Fee == FeeExpensed {
		l.realized = l.realized.Sub(fee)
	}

	avg, held := l.avgPrice[t.Security]
	if !held {
		// Not a defined contract: a sell without a prior position books the
		// full proceeds as gain against a zero cost basis.
		log.Printf("%s: sell of %s without prior position, assuming zero cost basis", t.Date, t.Security)
		avg = M(0, l.cfg.Currency)
	}
	costBasis := avg.Mul(sellQty)
	pricePnL := t.TotalValue.Sub(costBasis)
	l.realized = l.realized.Add(pricePnL)

	remaining := l.positions[t.Security].Add(t.Quantity)
	if remaining.Abs().LessThan(Q(positionEpsilon)) {
		delete(l.positions, t.Security)
		delete(l.avgPrice, t.Security)
	} else {
		l.positions[t.Security] = remaining
	}
	// lastPrice deliberately survives the closed position: it still marks
	// the security if it is ever re-bought, and keeps NAV history stable.
	l.lastPrice[t.Security] = t.UnitPrice

	return Applied{Event: t, Fee: fee, RealizedPnL: pricePnL}
}

// NAV values the held positions according to the configured marking policy,
// cash excluded.
func (l *Ledger) NAV() Money {
	nav := M(0, l.cfg.Currency)
	for sec, qty := range l.positions {
		var price Money
		switch l.cfg.NAV {
		case MarkToLastTrade:
			price = l.lastPrice[sec]
		case MarkToPurchase:
			price = l.purchasePrice[sec]
		}
		nav = nav.Add(price.Mul(qty))
	}
	return nav
}

// PortfolioValue is cash plus NAV.
func (l *Ledger) PortfolioValue() Money { return l.cash.Add(l.NAV()) }

// Cash returns the current cash balance.
func (l *Ledger) Cash() Money { return l.cash }

// CapitalIn returns the cumulative external capital added so far.
func (l *Ledger) CapitalIn() Money { return l.capitalIn }

// Fees returns the cumulative transaction costs.
func (l *Ledger) Fees() Money { return l.fees }

// RealizedPnL returns the cumulative realized profit and loss.
func (l *Ledger) RealizedPnL() Money { return l.realized }

// Flows returns the append-only capital-flow log.
func (l *Ledger) Flows() []CapitalFlow { return l.flows }

// Positions returns a copy of the current share counts.
func (l *Ledger) Positions() map[string]Quantity {
	return maps.Clone(l.positions)
}

// PurchasePrices returns a copy of the latest purchase price per security.
func (l *Ledger) PurchasePrices() map[string]Money {
	return maps.Clone(l.purchasePrice)
}

// LastPrices returns a copy of the most recent traded price per security.
func (l *Ledger) LastPrices() map[string]Money {
	return maps.Clone(l.lastPrice)
}
