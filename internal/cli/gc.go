package cli

import (
	"context"

	"github.com/pictdb/pictdb/internal/catalog"
	"github.com/pictdb/pictdb/internal/codec"
	"github.com/pictdb/pictdb/internal/hasher"

	flag "github.com/spf13/pflag"
)

// GCCmd builds the `gc <db> <tmp>` command.
func GCCmd() *Command {
	fs := flag.NewFlagSet("gc", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "gc <db> <tmp>",
		Short: "Compact a database, reclaiming tombstoned payload bytes",
		Long:  "Rebuild <db> at the scratch path <tmp> and atomically swap it into place.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) < 2 {
				return taxonomyErr(catalog.CodeNotEnoughArguments, "usage: gc <db> <tmp>")
			}

			c, err := catalog.Open(args[0], codec.JPEG{}, hasher.SHA256{})
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.GarbageCollect(args[1]); err != nil {
				return err
			}

			o.Println("gc complete:", args[0])
			return nil
		},
	}
}
