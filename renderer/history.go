package renderer

import (
	"github.com/oskarlin/depot"
)

// HistoryMarkdown renders the valuation history, one row per trading date.
// The TWR column is joined in from the result's solver series.
func HistoryMarkdown(r *depot.Result) string {
	b := newBuilder()

	b.Printf("# Valuation History\n\n")
	if len(r.History) == 0 {
		b.Printf("No history.\n")
		return b.String()
	}

	b.Printf("| Date | Cash | NAV | Value | Capital In | TWR |\n")
	b.Printf("|:---|---:|---:|---:|---:|---:|\n")
	for i, entry := range r.History {
		b.Printf("| %s | %s | %s | %s | %s | %s |\n",
			entry.Date, entry.Cash, entry.NAV, entry.Value,
			entry.CapitalIn, r.TWR[i].TWR.SignedString())
	}
	return b.String()
}

// BenchmarkMarkdown renders the simulated buy-and-hold series.
func BenchmarkMarkdown(r *depot.BenchmarkResult, currency string) string {
	b := newBuilder()

	b.Printf("# Benchmark History\n\n")
	if len(r.History) == 0 {
		b.Printf("No benchmark history.\n")
		return b.String()
	}

	b.Printf("| Date | Price | Units | Invested | Value | TWR |\n")
	b.Printf("|:---|---:|---:|---:|---:|---:|\n")
	for i, p := range r.History {
		b.Printf("| %s | %.2f | %.4f | %s | %s | %s |\n",
			p.Date, p.Price, p.Units,
			depot.M(p.Invested, currency), depot.M(p.Value, currency),
			r.TWR[i].TWR.SignedString())
	}
	return b.String()
}
