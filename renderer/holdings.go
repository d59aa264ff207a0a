package renderer

import (
	"sort"

	"github.com/oskarlin/depot"
)

// HoldingsMarkdown renders the current positions with their cost and market
// marks.
func HoldingsMarkdown(s *depot.Stats) string {
	b := newBuilder()

	b.Printf("# Holdings on %s\n\n", s.Date)
	if len(s.Holdings) == 0 {
		b.Printf("No open positions.\n")
		return b.String()
	}

	securities := make([]string, 0, len(s.Holdings))
	for sec := range s.Holdings {
		securities = append(securities, sec)
	}
	sort.Strings(securities)

	b.Printf("| Security | Quantity | Purchase | Last | Value |\n")
	b.Printf("|:---|---:|---:|---:|---:|\n")
	for _, sec := range securities {
		qty := s.Holdings[sec]
		last := s.LastPrices[sec]
		b.Printf("| %s | %s | %s | %s | %s |\n",
			sec, qty, s.PurchasePrices[sec], last, last.Mul(qty))
	}
	b.Printf("\nCash: %s\n", s.Cash)
	return b.String()
}
