// Package cmd implements the CLI application around the stockwatch engine.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/etnz/stockwatch"
	"github.com/etnz/stockwatch/yahoo"
)

// Commands lists the subcommands. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&showCmd{},
	&watchCmd{},
	&versionCmd{},
}

// configFlags are the flags shared by the commands that run the engine.
type configFlags struct {
	config   string
	currency string
}

func (c *configFlags) register(f *flag.FlagSet) {
	f.StringVar(&c.config, "config", "", "Path to the config file. Defaults to $STOCKWATCH_CONFIG, then ~/.stockwatch.yaml.")
	f.StringVar(&c.currency, "currency", "", "Display currency override (3-letter code).")
}

// newEngine loads the configuration and builds an engine over the Yahoo
// Finance provider. Config problems are warnings, never fatal.
func (c *configFlags) newEngine() *stockwatch.Engine {
	cfg, warning := stockwatch.LoadConfig(c.config)
	if warning != "" {
		fmt.Fprintln(os.Stderr, warning)
	}
	currency := cfg.Currency
	if c.currency != "" {
		currency = strings.ToUpper(c.currency)
	}
	return stockwatch.NewEngine(yahoo.New(), cfg.Portfolio(), currency)
}
