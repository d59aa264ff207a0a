package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/oskarlin/depot/renderer"
)

type benchmarkCmd struct{}

func (*benchmarkCmd) Name() string     { return "benchmark" }
func (*benchmarkCmd) Synopsis() string { return "display the buy-and-hold benchmark history" }
func (*benchmarkCmd) Usage() string {
	return `dpt benchmark -benchmark <file> | -benchmark-id <id>

  Replays the portfolio's capital flows as a buy-and-hold purchase of the
  benchmark index and displays the resulting shadow portfolio day by day.
`
}

func (c *benchmarkCmd) SetFlags(f *flag.FlagSet) {}

func (c *benchmarkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, err := loadResult()
	if err != nil {
		return fail(err)
	}
	bench, err := simulateBenchmark(result)
	if err != nil {
		return fail(err)
	}
	if bench == nil {
		return fail(fmt.Errorf("no benchmark configured, use -benchmark or -benchmark-id"))
	}
	printMarkdown(renderer.BenchmarkMarkdown(bench, *currency))
	return subcommands.ExitSuccess
}
