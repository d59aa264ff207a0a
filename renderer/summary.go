package renderer

import (
	"github.com/oskarlin/depot"
)

// SummaryMarkdown renders the portfolio summary, with an optional benchmark
// comparison section when benchmark stats are available.
func SummaryMarkdown(s *depot.Stats, bench *depot.BenchmarkStats) string {
	b := newBuilder()

	b.Printf("# Portfolio Summary on %s\n\n", s.Date)
	b.Printf("Total Value: %s\n\n", s.Value)

	b.Printf("## Performance\n\n")
	b.Printf("| Metric | Value |\n")
	b.Printf("|:---|---:|\n")
	b.Printf("| Capital In | %s |\n", s.CapitalIn)
	b.Printf("| Cash | %s |\n", s.Cash)
	b.Printf("| Total Return | %s |\n", s.SimpleReturn.SignedString())
	b.Printf("| XIRR | %s |\n", s.XIRR.SignedString())
	b.Printf("| TWR | %s |\n", s.TWR.SignedString())
	b.Printf("| Annualized TWR | %s |\n", s.AnnualizedTWR.SignedString())
	b.Printf("| Realized P&L | %s |\n", s.RealizedPnL.SignedString())
	b.Printf("| Transaction Costs | %s |\n", s.Fees)

	if bench != nil {
		alpha := depot.Alpha(s.AnnualizedTWR, bench.AnnualizedTWR)
		b.Printf("\n## Benchmark\n\n")
		b.Printf("| Metric | Portfolio | Benchmark |\n")
		b.Printf("|:---|---:|---:|\n")
		b.Printf("| Value | %s | %s |\n", s.Value, bench.Value)
		b.Printf("| Annualized TWR | %s | %s |\n", s.AnnualizedTWR.SignedString(), bench.AnnualizedTWR.SignedString())
		b.Printf("| XIRR | %s | %s |\n", s.XIRR.SignedString(), bench.XIRR.SignedString())
		b.Printf("\nAlpha: %s\n", alpha.SignedString())
	}

	return b.String()
}
