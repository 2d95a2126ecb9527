package cli

import (
	"context"

	"github.com/pictdb/pictdb/internal/config"

	flag "github.com/spf13/pflag"
)

// HelpCmd builds the `help` command, a fallback for `pictdb help` when a
// user reaches for the subcommand form instead of the global --help flag.
func HelpCmd() *Command {
	fs := flag.NewFlagSet("help", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "help",
		Short: "Show usage",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			printUsage(o.out, allCommands(config.DefaultConfig()))
			return nil
		},
	}
}
