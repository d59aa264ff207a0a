package depot

import "sort"

// SortEvents orders events ascending by date with a deterministic
// tie-break for same-day events: cashflows before trades, buys before
// sells. The tie-break exists only to make the transaction log stable for
// display; it carries no causal meaning, and the engine itself never
// relies on it (same-day events are applied as one atomic bucket, see
// DayBuckets).
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.When() != b.When() {
			return a.When().Before(b.When())
		}
		if a.Kind() != b.Kind() {
			return a.Kind() == KindCashflow
		}
		at, aok := a.(Trade)
		bt, bok := b.(Trade)
		if aok && bok {
			return at.IsBuy() && !bt.IsBuy()
		}
		return false
	})
}

// DayBucket groups all events sharing one calendar date.
type DayBucket struct {
	Date   Date
	Events []Event
}

// DayBuckets sorts events and groups them into per-date buckets in
// ascending order. The ledger applies a whole bucket before any valuation
// snapshot is taken, so same-day trades are never valued half-applied and
// capital inference cannot depend on intra-day ordering.
func DayBuckets(events []Event) []DayBucket {
	SortEvents(events)

	var buckets []DayBucket
	for _, ev := range events {
		n := len(buckets)
		if n == 0 || buckets[n-1].Date != ev.When() {
			buckets = append(buckets, DayBucket{Date: ev.When()})
			n++
		}
		buckets[n-1].Events = append(buckets[n-1].Events, ev)
	}
	return buckets
}
