package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/oskarlin/depot/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion runs first; it exits on its own when invoked by the
	// shell's completion machinery.
	completion().Complete("dpt")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	flags := map[string]complete.Predictor{
		"trades":         predict.Files("*.csv"),
		"cashflows":      predict.Files("*.csv"),
		"benchmark":      predict.Files("*.json"),
		"benchmark-id":   predict.Nothing,
		"benchmark-isin": predict.Nothing,
		"currency":       predict.Set{"SEK", "EUR", "USD", "NOK", "DKK"},
		"capital":        predict.Set{"infer", "explicit"},
		"nav":            predict.Set{"last-trade", "purchase"},
		"fee":            predict.Set{"expensed", "in-cost"},
	}
	return &complete.Command{
		Flags: flags,
		Sub: map[string]*complete.Command{
			"summary":   {Flags: flags},
			"history":   {Flags: flags},
			"holdings":  {Flags: flags},
			"log":       {Flags: flags},
			"benchmark": {Flags: flags},
			"export":    {Flags: flags},
			"topic":     {Args: predict.Set{"readme", "dates", "files", "policies", "performance", "benchmark"}},
			"assist":    {},
		},
	}
}
