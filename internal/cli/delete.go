package cli

import (
	"context"

	"github.com/pictdb/pictdb/internal/catalog"
	"github.com/pictdb/pictdb/internal/codec"
	"github.com/pictdb/pictdb/internal/hasher"

	flag "github.com/spf13/pflag"
)

// DeleteCmd builds the `delete <db> <id>` command.
func DeleteCmd() *Command {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "delete <db> <id>",
		Short: "Tombstone a picture by id",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) < 2 {
				return taxonomyErr(catalog.CodeNotEnoughArguments, "usage: delete <db> <id>")
			}

			c, err := catalog.Open(args[0], codec.JPEG{}, hasher.SHA256{})
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Delete(args[1]); err != nil {
				return err
			}

			o.Println("deleted", args[1])
			return nil
		},
	}
}
