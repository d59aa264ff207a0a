package depot

import (
	"testing"
)

// The canonical three-day scenario: a deposit, a buy, a partial sell.
func threeDayEvents() []Event {
	return []Event{
		depositOn(day1, 1000),
		buyOn(day2, "ABC", 10, 50, -500),
		buyOn(day3, "ABC", -5, 60, 300),
	}
}

func TestEngineProcess(t *testing.T) {
	result, err := NewEngine(Config{}).Process(threeDayEvents())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.History) != 3 {
		t.Fatalf("got %d history entries, want 3", len(result.History))
	}

	h := result.History

	if !h[0].Cash.Equal(M(1000, "SEK")) || !h[0].Value.Equal(M(1000, "SEK")) {
		t.Errorf("day 1: cash %s value %s, want 1000 and 1000", h[0].Cash, h[0].Value)
	}

	if !h[1].Cash.Equal(M(500, "SEK")) {
		t.Errorf("day 2: cash %s, want 500", h[1].Cash)
	}
	if !h[1].Positions["ABC"].Equal(Q(10)) {
		t.Errorf("day 2: holdings %s, want 10", h[1].Positions["ABC"])
	}
	if !h[1].Value.Equal(M(1000, "SEK")) {
		t.Errorf("day 2: value %s, want 1000", h[1].Value)
	}

	if !h[2].Cash.Equal(M(800, "SEK")) {
		t.Errorf("day 3: cash %s, want 800", h[2].Cash)
	}
	if !h[2].Positions["ABC"].Equal(Q(5)) {
		t.Errorf("day 3: holdings %s, want 5", h[2].Positions["ABC"])
	}
	if !h[2].Value.Equal(M(1050, "SEK")) {
		t.Errorf("day 3: value %s, want 1050", h[2].Value)
	}
}

// Total value always equals cash plus NAV, on every entry.
func TestEngineValueIdentity(t *testing.T) {
	events := append(threeDayEvents(),
		depositOn(day3.Add(1), 200),
		buyOn(day3.Add(2), "DEF", 3, 100, -301.50),
	)
	result, err := NewEngine(Config{}).Process(events)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range result.History {
		if !entry.Value.Equal(entry.Cash.Add(entry.NAV)) {
			t.Errorf("%s: value %s != cash %s + nav %s", entry.Date, entry.Value, entry.Cash, entry.NAV)
		}
	}
}

// All events of one date produce exactly one entry, valued after the whole
// day is applied.
func TestEngineSameDayBatching(t *testing.T) {
	events := []Event{
		depositOn(day1, 1000),
		buyOn(day1, "ABC", 10, 50, -500),
		buyOn(day1, "ABC", -5, 60, 300),
	}
	result, err := NewEngine(Config{}).Process(events)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.History) != 1 {
		t.Fatalf("got %d history entries, want 1", len(result.History))
	}
	entry := result.History[0]
	if !entry.Positions["ABC"].Equal(Q(5)) {
		t.Errorf("holdings %s, want 5", entry.Positions["ABC"])
	}
	if !entry.Value.Equal(M(1100, "SEK")) { // 800 cash + 5*60
		t.Errorf("value %s, want 1100", entry.Value)
	}
}

func TestEngineStats(t *testing.T) {
	result, err := NewEngine(Config{}).Process(threeDayEvents())
	if err != nil {
		t.Fatal(err)
	}
	stats, ok := result.Stats()
	if !ok {
		t.Fatal("expected stats")
	}

	if !stats.Value.Equal(M(1050, "SEK")) {
		t.Errorf("value = %s, want 1050", stats.Value)
	}
	if !stats.SimpleReturn.Equal(5) {
		t.Errorf("simple return = %s, want 5%%", stats.SimpleReturn)
	}
	if !stats.RealizedPnL.Equal(M(50, "SEK")) { // 5 sold, bought at 50, sold at 60
		t.Errorf("realized = %s, want 50", stats.RealizedPnL)
	}
	if !stats.Holdings["ABC"].Equal(Q(5)) {
		t.Errorf("holdings = %s, want 5", stats.Holdings["ABC"])
	}
	if !stats.LastPrices["ABC"].Equal(M(60, "SEK")) {
		t.Errorf("last price = %s, want 60", stats.LastPrices["ABC"])
	}
}

func TestEngineStatsEmpty(t *testing.T) {
	result, err := NewEngine(Config{}).Process(nil)
	if err != nil {
		t.Fatal(err)
	}
	if stats, ok := result.Stats(); ok || stats != nil {
		t.Errorf("got %v %v, want nil false on an empty run", stats, ok)
	}
}

// The fee scenario: a buy whose total exceeds price*quantity by the fee
// shows up as a negative return.
func TestEngineFeeLowersReturn(t *testing.T) {
	events := []Event{
		depositOn(day1, 992.59),
		buyOn(day2, "SAVE", 11, 90.10, -992.59),
	}
	result, err := NewEngine(Config{}).Process(events)
	if err != nil {
		t.Fatal(err)
	}
	stats, _ := result.Stats()

	if !stats.Fees.Equal(M(1.49, "SEK")) {
		t.Errorf("fees = %s, want 1.49", stats.Fees)
	}
	if !stats.SimpleReturn.Equal(-0.1501) {
		// (991.10 - 992.59) / 992.59 * 100
		t.Errorf("simple return = %s, want about -0.15%%", stats.SimpleReturn)
	}
}

func TestEngineRunsAreIndependent(t *testing.T) {
	e := NewEngine(Config{})
	first, err := e.Process(threeDayEvents())
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Process(threeDayEvents())
	if err != nil {
		t.Fatal(err)
	}
	if len(first.History) != len(second.History) {
		t.Fatal("two identical runs diverged")
	}
	for i := range first.History {
		if !first.History[i].Value.Equal(second.History[i].Value) {
			t.Errorf("entry %d differs between identical runs", i)
		}
	}
}
