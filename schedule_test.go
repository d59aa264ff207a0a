package depot

import (
	"testing"
	"time"
)

func buyOn(on Date, sec string, qty, price, total float64) Trade {
	return Trade{Date: on, Security: sec, Quantity: Q(qty), UnitPrice: M(price, "SEK"), TotalValue: M(total, "SEK")}
}

func depositOn(on Date, amount float64) Cashflow {
	return Cashflow{Date: on, Action: Deposit, Amount: M(amount, "SEK")}
}

func TestSortEvents(t *testing.T) {
	d1 := NewDate(2025, time.March, 1)
	d2 := NewDate(2025, time.March, 2)

	// reverse chronological with same-day mixtures, like a real export
	events := []Event{
		buyOn(d2, "B", -5, 60, 300), // sell
		buyOn(d2, "A", 10, 50, -500),
		depositOn(d2, 200),
		buyOn(d1, "A", 1, 10, -10),
		depositOn(d1, 1000),
	}
	SortEvents(events)

	wantDates := []Date{d1, d1, d2, d2, d2}
	for i, ev := range events {
		if ev.When() != wantDates[i] {
			t.Fatalf("event %d on %s, want %s", i, ev.When(), wantDates[i])
		}
	}
	// same-day: cashflow first, then buy, then sell
	if events[2].Kind() != KindCashflow {
		t.Errorf("day-2 event 0 is %s, want cashflow", events[2].Kind())
	}
	if tr := events[3].(Trade); !tr.IsBuy() {
		t.Error("day-2 event 1 should be the buy")
	}
	if tr := events[4].(Trade); tr.IsBuy() {
		t.Error("day-2 event 2 should be the sell")
	}
}

func TestDayBuckets(t *testing.T) {
	d1 := NewDate(2025, time.March, 1)
	d2 := NewDate(2025, time.March, 3)

	buckets := DayBuckets([]Event{
		buyOn(d2, "A", 1, 10, -10),
		depositOn(d1, 100),
		buyOn(d1, "A", 1, 10, -10),
	})

	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if buckets[0].Date != d1 || len(buckets[0].Events) != 2 {
		t.Errorf("bucket 0: %s with %d events, want %s with 2", buckets[0].Date, len(buckets[0].Events), d1)
	}
	if buckets[1].Date != d2 || len(buckets[1].Events) != 1 {
		t.Errorf("bucket 1: %s with %d events, want %s with 1", buckets[1].Date, len(buckets[1].Events), d2)
	}
}

func TestDayBucketsEmpty(t *testing.T) {
	if got := DayBuckets(nil); len(got) != 0 {
		t.Errorf("got %d buckets, want 0", len(got))
	}
}
