package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/oskarlin/depot/renderer"
)

type logCmd struct {
	flows bool
}

func (*logCmd) Name() string { return "log" }
func (*logCmd) Synopsis() string {
	return "display a chronological log of all transactions and their impact"
}
func (*logCmd) Usage() string {
	return `dpt log [-flows]

  Displays every processed event in chronological order with the fee and
  the realized profit of each trade. With -flows, displays the external
  capital-flow log the performance solvers work from instead.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.flows, "flows", false, "show the capital-flow log instead of the transactions")
}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, err := loadResult()
	if err != nil {
		return fail(err)
	}
	if c.flows {
		printMarkdown(renderer.FlowsMarkdown(result.Flows))
	} else {
		printMarkdown(renderer.LogMarkdown(result.Events))
	}
	return subcommands.ExitSuccess
}
