package depot

import "sort"

// BenchmarkPoint is one valuation of the shadow buy-and-hold portfolio,
// emitted per index price date once units are held.
type BenchmarkPoint struct {
	Date     Date
	Value    float64
	Invested float64
	Units    float64
	Price    float64
}

func (p BenchmarkPoint) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("date", p.Date).
		Append("value", p.Value).
		Append("invested", p.Invested).
		Append("units", p.Units).
		Append("price", p.Price)
	return w.MarshalJSON()
}

// Benchmark replays a capital-flow log against an external index price
// series as a buy-and-hold strategy: whenever new money entered the real
// portfolio, the same amount buys index units at that day's price. The
// resulting series answers "what if the same money had gone into the index
// instead".
type Benchmark struct {
	prices *History[float64]
}

// NewBenchmark creates a simulator over the given index price series. The
// series may be sparse; valuations fall back to the nearest prior price,
// and before the series starts to its earliest price.
func NewBenchmark(prices *History[float64]) *Benchmark {
	return &Benchmark{prices: prices}
}

func (b *Benchmark) priceOn(day Date) float64 {
	if p, ok := b.prices.ValueAsOf(day); ok {
		return p
	}
	_, p := b.prices.Earliest()
	return p
}

// BenchmarkResult holds the simulated series and the flows it was built
// from.
type BenchmarkResult struct {
	History []BenchmarkPoint
	TWR     []TWRPoint

	flows    []CapitalFlow
	currency string
}

// Simulate runs the buy-and-hold replay over the capital-flow log. Only
// money entering the portfolio buys units; withdrawals are ignored, the
// benchmark never sells.
func (b *Benchmark) Simulate(flows []CapitalFlow) *BenchmarkResult {
	res := &BenchmarkResult{flows: flows}
	if len(flows) == 0 || b.prices.Len() == 0 {
		return res
	}
	res.currency = flows[0].Amount.Currency()

	injected := make(map[Date]float64, len(flows))
	first := flows[0].Date
	for _, f := range flows {
		if f.Amount.IsNegative() {
			injected[f.Date] += -f.Amount.AsFloat()
		}
		if f.Date.Before(first) {
			first = f.Date
		}
	}

	// Walk the union of price dates and injection dates, so capital
	// arriving between two index quotes still buys units at the nearest
	// prior price.
	seen := make(map[Date]bool, b.prices.Len()+len(injected))
	var days []Date
	for day := range b.prices.Values() {
		if !day.Before(first) && !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	for day := range injected {
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	units, invested := 0.0, 0.0
	for _, day := range days {
		price := b.priceOn(day)
		if in := injected[day]; in > 0 {
			units += in / price
			invested += in
		}
		if units > 0 {
			res.History = append(res.History, BenchmarkPoint{
				Date:     day,
				Value:    units * price,
				Invested: invested,
				Units:    units,
				Price:    price,
			})
		}
	}

	res.TWR = res.twrSeries(injected)
	return res
}

// twrSeries chains sub-period returns exactly like the portfolio solver,
// except the pre-injection value is reconstructed from the point value,
// since index units are bought at the same price the point is marked at.
func (r *BenchmarkResult) twrSeries(injected map[Date]float64) []TWRPoint {
	points := make([]TWRPoint, 0, len(r.History))
	factor := 1.0
	start := 0.0
	started := false
	for _, p := range r.History {
		if in := injected[p.Date]; in > 0 {
			if started && start > 0 {
				before := p.Value - in
				factor *= 1 + (before-start)/start
			}
			start = p.Value
			started = true
		} else if started && start > 0 {
			factor *= 1 + (p.Value-start)/start
			start = p.Value
		}
		twr := Percent(0)
		if started {
			twr = Percent((factor - 1) * 100)
		}
		points = append(points, TWRPoint{Date: p.Date, TWR: twr})
	}
	return points
}

// BenchmarkStats summarizes the simulated series as of its last point.
type BenchmarkStats struct {
	Date          Date
	Value         Money
	Invested      Money
	Units         float64
	TWR           Percent
	AnnualizedTWR Percent
	XIRR          Percent
}

func (s *BenchmarkStats) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("date", s.Date).
		Append("value", s.Value).
		Append("invested", s.Invested).
		Append("units", s.Units).
		Append("twr", s.TWR).
		Append("annualizedTWR", s.AnnualizedTWR).
		Append("xirr", s.XIRR)
	return w.MarshalJSON()
}

// Stats reports false when the simulation produced no points.
func (r *BenchmarkResult) Stats() (*BenchmarkStats, bool) {
	if len(r.History) == 0 {
		return nil, false
	}
	last := r.History[len(r.History)-1]

	s := &BenchmarkStats{
		Date:     last.Date,
		Value:    M(last.Value, r.currency),
		Invested: M(last.Invested, r.currency),
		Units:    last.Units,
	}
	if n := len(r.TWR); n > 0 {
		s.TWR = r.TWR[n-1].TWR
		s.AnnualizedTWR = AnnualizedTWR(s.TWR, r.History[0].Date, last.Date)
	}
	// Same money-weighted rate as the portfolio, sourced from the same
	// capital flows, so the two figures compare like for like.
	if xirr, err := XIRR(r.flows, last.Date, s.Value); err == nil {
		s.XIRR = xirr
	}
	return s, true
}

// Alpha is the excess annualized time-weighted return of the portfolio
// over the benchmark.
func Alpha(portfolio, benchmark Percent) Percent { return portfolio - benchmark }
