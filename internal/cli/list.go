package cli

import (
	"context"

	"github.com/pictdb/pictdb/internal/catalog"
	"github.com/pictdb/pictdb/internal/codec"
	"github.com/pictdb/pictdb/internal/hasher"

	flag "github.com/spf13/pflag"
)

// ListCmd builds the `list <db>` command.
func ListCmd() *Command {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	jsonMode := fs.Bool("json", false, "emit machine-readable JSON instead of human text")

	return &Command{
		Flags: fs,
		Usage: "list <db> [flags]",
		Short: "Enumerate a database's pictures",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) < 1 {
				return taxonomyErr(catalog.CodeNotEnoughArguments, "usage: list <db>")
			}

			c, err := catalog.Open(args[0], codec.JPEG{}, hasher.SHA256{})
			if err != nil {
				return err
			}
			defer c.Close()

			if *jsonMode {
				out, err := c.ListJSON()
				if err != nil {
					return err
				}
				o.Println(out)
				return nil
			}

			o.Printf("%s", c.ListHuman())
			return nil
		},
	}
}
