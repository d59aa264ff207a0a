package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type exportCmd struct {
	outputFile string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export history, TWR series and stats as JSON" }
func (*exportCmd) Usage() string {
	return `dpt export [-o <file>]

  Writes the full computation result as JSON: valuation history, TWR
  series and the summary stats. Intended for dashboards and charting
  frontends.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputFile, "o", "", "output file, stdout by default")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, err := loadResult()
	if err != nil {
		return fail(err)
	}

	out := os.Stdout
	if c.outputFile != "" {
		out, err = os.Create(c.outputFile)
		if err != nil {
			return fail(fmt.Errorf("could not create output file: %w", err))
		}
		defer out.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
