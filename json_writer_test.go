package depot

import (
	"testing"
	"time"
)

// The export surface promises stable key order, so the writer is asserted
// through the types that actually use it.

func TestJSONKeyOrder(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatal(err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("twr point", func(t *testing.T) {
		p := TWRPoint{Date: NewDate(2025, time.March, 1), TWR: 10}
		got, err := p.MarshalJSON()
		if err != nil {
			t.Fatal(err)
		}
		if want := `{"date":"2025-03-01","twr":10}`; string(got) != want {
			t.Errorf("got %s, want %s", got, want)
		}
	})

	t.Run("history entry sorts positions", func(t *testing.T) {
		entry := HistoryEntry{
			Date:        NewDate(2025, time.March, 2),
			Cash:        M(100, "SEK"),
			NAV:         M(50, "SEK"),
			Value:       M(150, "SEK"),
			CapitalIn:   M(100, "SEK"),
			RealizedPnL: M(0, "SEK"),
			// map order must not leak into the export
			Positions: map[string]Quantity{"VOLV-B": Q(2), "ABC": Q(1)},
		}
		got, err := entry.MarshalJSON()
		if err != nil {
			t.Fatal(err)
		}
		want := `{"date":"2025-03-02",` +
			`"cash":{"currency":"SEK","amount":"100"},` +
			`"nav":{"currency":"SEK","amount":"50"},` +
			`"value":{"currency":"SEK","amount":"150"},` +
			`"capitalIn":{"currency":"SEK","amount":"100"},` +
			`"realizedPnL":{"currency":"SEK","amount":"0"},` +
			`"positions":[{"security":"ABC","quantity":"1"},{"security":"VOLV-B","quantity":"2"}]}`
		if string(got) != want {
			t.Errorf("got %s,\nwant %s", got, want)
		}
	})
}

func TestJSONMoneyOptionalCurrency(t *testing.T) {
	got, err := M(1050, "SEK").MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"currency":"SEK","amount":"1050"}`; string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}

	// a currency-less zero value omits the field instead of exporting ""
	got, err = Money{}.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"amount":"0"}`; string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
