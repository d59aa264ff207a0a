package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/oskarlin/depot/renderer"
)

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the portfolio valuation history" }
func (*historyCmd) Usage() string {
	return `dpt history

  Displays the portfolio value day by day: cash, net asset value, total
  value, cumulative capital in and the time-weighted return.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, err := loadResult()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.HistoryMarkdown(result))
	return subcommands.ExitSuccess
}
