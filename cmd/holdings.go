package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/oskarlin/depot/renderer"
)

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the current positions" }
func (*holdingsCmd) Usage() string {
	return `dpt holdings

  Displays the currently held securities with their quantity, purchase
  price, last traded price and market value, plus the cash balance.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, err := loadResult()
	if err != nil {
		return fail(err)
	}
	stats, ok := result.Stats()
	if !ok {
		printMarkdown("No transactions to report on.\n")
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.HoldingsMarkdown(stats))
	return subcommands.ExitSuccess
}
