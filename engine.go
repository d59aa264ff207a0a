package depot

import (
	"sort"
)

// HistoryEntry is one valuation snapshot, appended once per distinct
// calendar date after every event of that date has been applied. Entries are
// immutable and ordered by ascending date; dates without events carry no
// entry.
type HistoryEntry struct {
	Date        Date
	Cash        Money
	NAV         Money
	Value       Money // always Cash + NAV
	CapitalIn   Money
	RealizedPnL Money
	Positions   map[string]Quantity
}

func (h HistoryEntry) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("date", h.Date).
		Append("cash", h.Cash).
		Append("nav", h.NAV).
		Append("value", h.Value).
		Append("capitalIn", h.CapitalIn).
		Append("realizedPnL", h.RealizedPnL).
		Append("positions", sortedPositions(h.Positions))
	return w.MarshalJSON()
}

// position is a named share count, used to export position maps with a
// stable order.
type position struct {
	Security string   `json:"security"`
	Quantity Quantity `json:"quantity"`
}

func sortedPositions(m map[string]Quantity) []position {
	list := make([]position, 0, len(m))
	for sec, qty := range m {
		list = append(list, position{Security: sec, Quantity: qty})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Security < list[j].Security })
	return list
}

// Stats is the final summary of one engine run.
type Stats struct {
	Date           Date
	Value          Money
	Cash           Money
	CapitalIn      Money
	SimpleReturn   Percent
	XIRR           Percent // 0 when the solver did not converge
	TWR            Percent
	AnnualizedTWR  Percent
	RealizedPnL    Money
	Fees           Money
	Holdings       map[string]Quantity
	PurchasePrices map[string]Money
	LastPrices     map[string]Money
}

func (s *Stats) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("date", s.Date).
		Append("value", s.Value).
		Append("cash", s.Cash).
		Append("capitalIn", s.CapitalIn).
		Append("simpleReturn", s.SimpleReturn).
		Append("xirr", s.XIRR).
		Append("twr", s.TWR).
		Append("annualizedTWR", s.AnnualizedTWR).
		Append("realizedPnL", s.RealizedPnL).
		Append("fees", s.Fees).
		Append("holdings", sortedPositions(s.Holdings))
	return w.MarshalJSON()
}

// Result is the complete outcome of processing one event stream.
type Result struct {
	Config  Config
	History []HistoryEntry
	TWR     []TWRPoint
	Flows   []CapitalFlow
	Events  []Applied

	ledger *Ledger
}

// Engine turns a normalized event stream into valuation history and
// performance figures. It carries no state between Process calls; each call
// starts from an empty ledger.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg Config) *Engine { return &Engine{cfg: cfg.withDefaults()} }

// Process runs the full computation over the given events, in any input
// order. Events are bucketed per calendar date and each bucket is applied
// atomically before its valuation snapshot is taken.
func (e *Engine) Process(events []Event) (*Result, error) {
	ledger := NewLedger(e.cfg)
	res := &Result{Config: e.cfg, ledger: ledger}

	for _, bucket := range DayBuckets(events) {
		for _, ev := range bucket.Events {
			ap, err := ledger.Apply(ev)
			if err != nil {
				return nil, err
			}
			res.Events = append(res.Events, ap)
		}
		res.History = append(res.History, HistoryEntry{
			Date:        bucket.Date,
			Cash:        ledger.Cash(),
			NAV:         ledger.NAV(),
			Value:       ledger.PortfolioValue(),
			CapitalIn:   ledger.CapitalIn(),
			RealizedPnL: ledger.RealizedPnL(),
			Positions:   ledger.Positions(),
		})
	}

	res.Flows = ledger.Flows()
	res.TWR = TWRSeries(res.History, res.Flows)
	return res, nil
}

// Stats summarizes the run as of the last history entry. It reports false
// when the run produced no history, which callers must treat as "not enough
// data" rather than a failure.
func (r *Result) Stats() (*Stats, bool) {
	if len(r.History) == 0 {
		return nil, false
	}
	last := r.History[len(r.History)-1]

	s := &Stats{
		Date:           last.Date,
		Value:          last.Value,
		Cash:           last.Cash,
		CapitalIn:      last.CapitalIn,
		SimpleReturn:   SimpleReturn(last.Value, last.CapitalIn),
		RealizedPnL:    r.ledger.RealizedPnL(),
		Fees:           r.ledger.Fees(),
		Holdings:       last.Positions,
		PurchasePrices: r.ledger.PurchasePrices(),
		LastPrices:     r.ledger.LastPrices(),
	}

	// Non-convergence surfaces as 0% in the summary; callers that need to
	// distinguish it call XIRR directly.
	if xirr, err := XIRR(r.Flows, last.Date, last.Value); err == nil {
		s.XIRR = xirr
	}

	if n := len(r.TWR); n > 0 {
		s.TWR = r.TWR[n-1].TWR
		s.AnnualizedTWR = AnnualizedTWR(s.TWR, r.History[0].Date, last.Date)
	}
	return s, true
}

func (r *Result) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("currency", r.Config.Currency).
		Append("history", r.History).
		Append("twr", r.TWR)
	if stats, ok := r.Stats(); ok {
		w.Append("stats", stats)
	}
	return w.MarshalJSON()
}
