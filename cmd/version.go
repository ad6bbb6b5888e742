package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

const version = "0.1.0"

type versionCmd struct{}

func (*versionCmd) Name() string             { return "version" }
func (*versionCmd) Synopsis() string         { return "print the stockwatch version" }
func (*versionCmd) Usage() string            { return "stockwatch version\n" }
func (*versionCmd) SetFlags(f *flag.FlagSet) {}

func (*versionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("stockwatch", version)
	return subcommands.ExitSuccess
}
