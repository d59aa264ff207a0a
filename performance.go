package depot

import (
	"errors"
	"math"
)

// ErrNonConvergence reports that the Newton-Raphson solver failed to settle
// on a rate, or settled outside the plausible range. Summaries render it as
// 0% but the figure is unknown, not zero.
var ErrNonConvergence = errors.New("rate solver did not converge")

// SimpleReturn is the naive total return of the portfolio against the
// capital put in, ignoring cashflow timing. Zero without capital.
func SimpleReturn(value, capitalIn Money) Percent {
	in := capitalIn.AsFloat()
	if in <= 0 {
		return 0
	}
	return Percent((value.AsFloat() - in) / in * 100)
}

const (
	xirrMaxIterations = 100
	xirrTolerance     = 0.01
	xirrDerivDelta    = 1e-4
	xirrMinRate       = -0.99
	xirrMaxRate       = 100
)

// XIRR solves the money-weighted annual return over the capital-flow
// schedule, with a synthetic final inflow of the current portfolio value.
// Flow amounts keep the investor's sign convention: negative going in,
// positive coming out. Returns ErrNonConvergence when the solver diverges;
// returns 0 without error when there are no flows to solve over.
func XIRR(flows []CapitalFlow, finalDate Date, finalValue Money) (Percent, error) {
	if len(flows) == 0 {
		return 0, nil
	}

	type datedFlow struct {
		years  float64
		amount float64
	}
	min := flows[0].Date
	for _, f := range flows[1:] {
		if f.Date.Before(min) {
			min = f.Date
		}
	}
	schedule := make([]datedFlow, 0, len(flows)+1)
	totalIn := 0.0
	for _, f := range flows {
		amount := f.Amount.AsFloat()
		schedule = append(schedule, datedFlow{years: min.YearsTo(f.Date), amount: amount})
		if amount < 0 {
			totalIn -= amount
		}
	}
	schedule = append(schedule, datedFlow{years: min.YearsTo(finalDate), amount: finalValue.AsFloat()})
	if totalIn <= 0 {
		return 0, nil
	}

	npv := func(rate float64) float64 {
		sum := 0.0
		for _, f := range schedule {
			sum += f.amount / math.Pow(1+rate, f.years)
		}
		return sum
	}

	// Seed with the annualized simple return; a wild seed falls back to a
	// small constant matching the sign of the overall gain.
	simple := (finalValue.AsFloat() - totalIn) / totalIn
	rate := simple
	if elapsed := min.YearsTo(finalDate); elapsed > 0 && 1+simple > 0 {
		rate = math.Pow(1+simple, 1/elapsed) - 1
	}
	if math.IsNaN(rate) || rate <= -0.9 || rate >= 10 {
		if simple >= 0 {
			rate = 0.1
		} else {
			rate = -0.5
		}
	}

	for range xirrMaxIterations {
		value := npv(rate)
		if math.Abs(value) < xirrTolerance {
			if math.IsNaN(rate) || rate < xirrMinRate || rate > xirrMaxRate {
				return 0, ErrNonConvergence
			}
			return Percent(rate * 100), nil
		}
		derivative := (npv(rate+xirrDerivDelta) - value) / xirrDerivDelta
		if math.Abs(derivative) < 1e-10 || math.IsNaN(derivative) {
			return 0, ErrNonConvergence
		}
		rate -= value / derivative
		if math.IsNaN(rate) || rate <= -1 {
			return 0, ErrNonConvergence
		}
	}
	return 0, ErrNonConvergence
}

// TWRPoint is the cumulative time-weighted return as of one history date.
type TWRPoint struct {
	Date Date
	TWR  Percent
}

func (p TWRPoint) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("date", p.Date).Append("twr", p.TWR)
	return w.MarshalJSON()
}

// TWRSeries chains sub-period returns split at capital-flow dates,
// producing one point per history entry. Periods close on the portfolio
// value captured immediately before an injection, so the injection itself
// never counts as performance. Before the first capital flow the series is
// flat at zero.
func TWRSeries(history []HistoryEntry, flows []CapitalFlow) []TWRPoint {
	type dayFlow struct {
		in          float64 // net external money entering that day
		valueBefore float64 // portfolio value before the day's first flow
	}
	byDate := make(map[Date]dayFlow, len(flows))
	for _, f := range flows {
		df, seen := byDate[f.Date]
		if !seen {
			df.valueBefore = f.ValueBefore.AsFloat()
		}
		df.in -= f.Amount.AsFloat()
		byDate[f.Date] = df
	}

	points := make([]TWRPoint, 0, len(history))
	factor := 1.0
	start := 0.0
	started := false
	for _, entry := range history {
		if df, ok := byDate[entry.Date]; ok {
			if started && start > 0 {
				factor *= 1 + (df.valueBefore-start)/start
			}
			start = df.valueBefore + df.in
			started = true
		} else if started && start > 0 {
			value := entry.Value.AsFloat()
			factor *= 1 + (value-start)/start
			start = value
		}
		twr := Percent(0)
		if started {
			twr = Percent((factor - 1) * 100)
		}
		points = append(points, TWRPoint{Date: entry.Date, TWR: twr})
	}
	return points
}

// AnnualizedTWR scales a cumulative time-weighted return to a yearly rate
// over the elapsed calendar span. Zero when no time has elapsed.
func AnnualizedTWR(twr Percent, first, last Date) Percent {
	days := last.Sub(first)
	if days <= 0 {
		return 0
	}
	return Percent((math.Pow(1+float64(twr)/100, 365.25/float64(days)) - 1) * 100)
}
