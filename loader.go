package depot

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Required columns of the two broker export files. Extra columns are
// ignored; missing ones abort the load before any row is normalized.
var (
	tradeColumns    = []string{"Date", "Action", "Stock", "Quantity", "Price", "Total_Value"}
	cashflowColumns = []string{"Date", "Type", "Amount"}
)

// table is a parsed CSV with header-indexed access to its cells.
type table struct {
	index map[string]int
	rows  [][]string
}

func (t *table) cell(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// readTable parses a CSV stream and validates that every required column is
// present in the header.
func readTable(r io.Reader, required []string) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // broker exports pad rows inconsistently

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	t := &table{index: make(map[string]int, len(records[0]))}
	for i, name := range records[0] {
		t.index[name] = i
	}
	for _, col := range required {
		if _, ok := t.index[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}
	t.rows = records[1:]
	return t, nil
}

// ReadTrades parses a trades export into normalized events. Row order does
// not matter; exports are typically reverse chronological and the engine
// re-sorts.
func ReadTrades(r io.Reader, currency string) ([]Event, error) {
	t, err := readTable(r, tradeColumns)
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(t.rows))
	for n, row := range t.rows {
		ev, err := Normalize(RawRecord{
			Date:       t.cell(row, "Date"),
			Action:     t.cell(row, "Action"),
			Stock:      t.cell(row, "Stock"),
			Quantity:   t.cell(row, "Quantity"),
			Price:      t.cell(row, "Price"),
			TotalValue: t.cell(row, "Total_Value"),
		}, currency)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// ReadCashflows parses a deposits/withdrawals export into cashflow events.
func ReadCashflows(r io.Reader, currency string) ([]Event, error) {
	t, err := readTable(r, cashflowColumns)
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(t.rows))
	for n, row := range t.rows {
		ev, err := Normalize(RawRecord{
			Date:       t.cell(row, "Date"),
			Action:     t.cell(row, "Type"),
			TotalValue: t.cell(row, "Amount"),
		}, currency)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		if _, ok := ev.(Cashflow); !ok {
			return nil, fmt.Errorf("row %d: %q is not a cashflow type", n+2, t.cell(row, "Type"))
		}
		events = append(events, ev)
	}
	return events, nil
}

// ReadBenchmark parses an index price series from a JSON object mapping
// dates to closing prices, e.g. {"2025-11-21": 2699.35}.
func ReadBenchmark(r io.Reader) (*History[float64], error) {
	var raw map[string]float64
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("could not parse benchmark prices: %w", err)
	}
	prices := &History[float64]{}
	for day, price := range raw {
		on, err := ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("benchmark price date %q: %w", day, err)
		}
		if price <= 0 {
			return nil, fmt.Errorf("benchmark price on %s must be positive, got %v", on, price)
		}
		prices.Append(on, price)
	}
	return prices, nil
}

// LoadTrades reads a trades export from disk.
func LoadTrades(path, currency string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open trades file: %w", err)
	}
	defer f.Close()
	events, err := ReadTrades(f, currency)
	if err != nil {
		return nil, fmt.Errorf("trades file %q: %w", path, err)
	}
	return events, nil
}

// LoadCashflows reads a cashflow export from disk.
func LoadCashflows(path, currency string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open cashflows file: %w", err)
	}
	defer f.Close()
	events, err := ReadCashflows(f, currency)
	if err != nil {
		return nil, fmt.Errorf("cashflows file %q: %w", path, err)
	}
	return events, nil
}

// LoadBenchmark reads an index price series from disk.
func LoadBenchmark(path string) (*History[float64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open benchmark file: %w", err)
	}
	defer f.Close()
	prices, err := ReadBenchmark(f)
	if err != nil {
		return nil, fmt.Errorf("benchmark file %q: %w", path, err)
	}
	return prices, nil
}
