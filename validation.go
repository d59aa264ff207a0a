package depot

import (
	"fmt"

	money "github.com/Rhymond/go-money"
)

// ValidateCurrency checks that the reporting currency is a known ISO 4217
// code before any Money values are minted with it.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}

// ValidateEvents runs the cross-event checks that single-row normalization
// cannot see: it reports every sell that would hit an instrument never
// bought before its date. These are warnings about data quality, the engine
// still processes such sells against a zero cost basis.
func ValidateEvents(events []Event) []error {
	var errs []error
	bought := make(map[string]bool)
	for _, ev := range DayBuckets(events) {
		for _, e := range ev.Events {
			t, ok := e.(Trade)
			if !ok {
				continue
			}
			if t.IsBuy() {
				bought[t.Security] = true
			} else if !bought[t.Security] {
				errs = append(errs, fmt.Errorf("%s: sell of %s before any buy", t.Date, t.Security))
			}
		}
	}
	return errs
}
