package cli

import (
	"context"
	"os"

	"github.com/pictdb/pictdb/internal/catalog"
	"github.com/pictdb/pictdb/internal/codec"
	"github.com/pictdb/pictdb/internal/hasher"

	flag "github.com/spf13/pflag"
)

// InsertCmd builds the `insert <db> <id> <file>` command.
func InsertCmd() *Command {
	fs := flag.NewFlagSet("insert", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "insert <db> <id> <file>",
		Short: "Insert a JPEG file under a new id",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) < 3 {
				return taxonomyErr(catalog.CodeNotEnoughArguments, "usage: insert <db> <id> <file>")
			}

			buf, err := os.ReadFile(args[2])
			if err != nil {
				return taxonomyErr(catalog.CodeIO, "%v", err)
			}

			c, err := catalog.Open(args[0], codec.JPEG{}, hasher.SHA256{})
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Insert(buf, args[1]); err != nil {
				return err
			}

			o.Println("inserted", args[1])
			return nil
		},
	}
}
