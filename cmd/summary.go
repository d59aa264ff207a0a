package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/oskarlin/depot"
	"github.com/oskarlin/depot/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a portfolio performance summary" }
func (*summaryCmd) Usage() string {
	return `dpt summary

  Displays a summary of the portfolio: total value, capital in, simple
  return, XIRR, TWR and transaction costs. When a benchmark is configured
  (-benchmark or -benchmark-id), adds the comparison and alpha.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, err := loadResult()
	if err != nil {
		return fail(err)
	}
	stats, ok := result.Stats()
	if !ok {
		printMarkdown("No transactions to report on.\n")
		return subcommands.ExitSuccess
	}

	var bstats *depot.BenchmarkStats
	bench, err := simulateBenchmark(result)
	if err != nil {
		return fail(err)
	}
	if bench != nil {
		bstats, _ = bench.Stats()
	}

	printMarkdown(renderer.SummaryMarkdown(stats, bstats))
	return subcommands.ExitSuccess
}
