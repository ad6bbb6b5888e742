package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/subcommands"

	"github.com/etnz/stockwatch/renderer"
)

type showCmd struct {
	configFlags
}

func (*showCmd) Name() string { return "show" }
func (*showCmd) Synopsis() string {
	return "fetch the portfolio once and print the summary"
}
func (*showCmd) Usage() string {
	return `stockwatch show [-config <path>] [-currency <code>]

  Fetches current prices and upcoming dividends for all configured holdings,
  converts them into the display currency, and prints the summary once.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	engine := c.newEngine()
	if err := engine.ValidateCurrency(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	snapshot := engine.RunCycle(ctx, nil)
	if ctx.Err() != nil {
		// Interruption is an expected way to leave, not a failure.
		fmt.Println("interrupted.")
		return subcommands.ExitSuccess
	}

	fmt.Print(renderer.Summary(&snapshot))
	return subcommands.ExitSuccess
}
