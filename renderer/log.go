package renderer

import (
	"github.com/oskarlin/depot"
)

// LogMarkdown renders the chronological transaction log with the fee and
// realized profit each trade produced.
func LogMarkdown(events []depot.Applied) string {
	b := newBuilder()

	b.Printf("# Transaction Log\n\n")
	if len(events) == 0 {
		b.Printf("No transactions.\n")
		return b.String()
	}

	b.Printf("| Date | Action | Security | Quantity | Price | Total | Fee | Realized |\n")
	b.Printf("|:---|:---|:---|---:|---:|---:|---:|---:|\n")
	for _, ap := range events {
		switch ev := ap.Event.(type) {
		case depot.Cashflow:
			b.Printf("| %s | %s | | | | %s | | |\n", ev.Date, ev.Action, ev.Amount.SignedString())
		case depot.Trade:
			action := depot.Sell
			realized := ap.RealizedPnL.SignedString()
			if ev.IsBuy() {
				action = depot.Buy
				realized = ""
			}
			b.Printf("| %s | %s | %s | %s | %s | %s | %s | %s |\n",
				ev.Date, action, ev.Security, ev.Quantity, ev.UnitPrice,
				ev.TotalValue.SignedString(), ap.Fee, realized)
		}
	}
	return b.String()
}

// FlowsMarkdown renders the capital-flow log the solvers work from.
func FlowsMarkdown(flows []depot.CapitalFlow) string {
	b := newBuilder()

	b.Printf("# Capital Flows\n\n")
	if len(flows) == 0 {
		b.Printf("No capital flows.\n")
		return b.String()
	}

	b.Printf("| Date | Amount | Value Before |\n")
	b.Printf("|:---|---:|---:|\n")
	for _, f := range flows {
		b.Printf("| %s | %s | %s |\n", f.Date, f.Amount.SignedString(), f.ValueBefore)
	}
	return b.String()
}
