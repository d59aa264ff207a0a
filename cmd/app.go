// Package cmd implements the CLI application to report on a brokerage
// portfolio.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/oskarlin/depot"
)

// Commands is the list of subcommands a main package registers.
var Commands = []subcommands.Command{
	subcommands.HelpCommand(),
	subcommands.FlagsCommand(),
	subcommands.CommandsCommand(),
	&summaryCmd{},
	&historyCmd{},
	&holdingsCmd{},
	&logCmd{},
	&benchmarkCmd{},
	&exportCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables for the shared data-source flags.

var (
	tradesFile    = flag.String("trades", "trades.csv", "Path to the trades export (CSV)")
	cashflowsFile = flag.String("cashflows", "", "Path to the deposits/withdrawals export (CSV)")
	benchmarkFile = flag.String("benchmark", "", "Path to the benchmark index prices (JSON)")
	benchmarkID   = flag.String("benchmark-id", "", "Instrument id to fetch the benchmark series from, instead of -benchmark")
	benchmarkISIN = flag.String("benchmark-isin", "", "ISIN to top up the fetched benchmark series with today's quote")
	currency      = flag.String("currency", depot.DefaultCurrency, "Reporting currency (ISO 4217)")
	capitalFlag   = flag.String("capital", "", "Capital policy: infer or explicit. Defaults to explicit when -cashflows is set, infer otherwise")
	navFlag       = flag.String("nav", depot.MarkToLastTrade.String(), "Valuation policy: last-trade or purchase")
	feeFlag       = flag.String("fee", depot.FeeExpensed.String(), "Fee policy: expensed or in-cost")
)

// engineConfig builds the engine configuration from the global flags.
func engineConfig() (depot.Config, error) {
	cfg := depot.Config{Currency: *currency}
	if err := depot.ValidateCurrency(cfg.Currency); err != nil {
		return cfg, err
	}

	capital := *capitalFlag
	if capital == "" {
		capital = depot.InferCapital.String()
		if *cashflowsFile != "" {
			capital = depot.ExplicitCashflows.String()
		}
	}
	var err error
	if cfg.Capital, err = depot.ParseCapitalPolicy(capital); err != nil {
		return cfg, err
	}
	if cfg.NAV, err = depot.ParseNAVPolicy(*navFlag); err != nil {
		return cfg, err
	}
	if cfg.Fee, err = depot.ParseFeePolicy(*feeFlag); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadEvents reads the trades export and, when given, the cashflows export.
func loadEvents() ([]depot.Event, error) {
	events, err := depot.LoadTrades(*tradesFile, *currency)
	if err != nil {
		return nil, err
	}
	if *cashflowsFile != "" {
		cashflows, err := depot.LoadCashflows(*cashflowsFile, *currency)
		if err != nil {
			return nil, err
		}
		events = append(events, cashflows...)
	}
	for _, err := range depot.ValidateEvents(events) {
		log.Printf("warning: %v", err)
	}
	return events, nil
}

// loadResult runs the engine over the configured inputs.
func loadResult() (*depot.Result, error) {
	cfg, err := engineConfig()
	if err != nil {
		return nil, err
	}
	events, err := loadEvents()
	if err != nil {
		return nil, err
	}
	return depot.NewEngine(cfg).Process(events)
}

// loadBenchmark returns the index price series from the configured source,
// or nil when no benchmark is configured.
func loadBenchmark() (*depot.History[float64], error) {
	switch {
	case *benchmarkFile != "":
		return depot.LoadBenchmark(*benchmarkFile)
	case *benchmarkID != "":
		prices, err := depot.FetchIndexHistory(*benchmarkID)
		if err != nil {
			return nil, err
		}
		if *benchmarkISIN != "" {
			// The daily series lags one session; top it up with the live quote.
			last, err := depot.FetchIndexLatest(*benchmarkID, *benchmarkISIN)
			if err != nil {
				log.Printf("warning: no intraday quote for %s: %v", *benchmarkISIN, err)
			} else {
				prices.Append(depot.Today(), last)
			}
		}
		return prices, nil
	default:
		return nil, nil
	}
}

// simulateBenchmark runs the buy-and-hold replay when a benchmark source is
// configured.
func simulateBenchmark(result *depot.Result) (*depot.BenchmarkResult, error) {
	prices, err := loadBenchmark()
	if err != nil || prices == nil {
		return nil, err
	}
	return depot.NewBenchmark(prices).Simulate(result.Flows), nil
}

// fail prints an error and returns the matching exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
