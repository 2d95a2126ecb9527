package cli

import (
	"context"
	"os"

	"github.com/pictdb/pictdb/internal/catalog"
	"github.com/pictdb/pictdb/internal/codec"
	"github.com/pictdb/pictdb/internal/hasher"

	flag "github.com/spf13/pflag"
)

// ReadCmd builds the `read <db> <id> [orig|small|thumb]` command. It
// writes the resulting JPEG bytes to an --out file, or to stdout if
// --out is omitted.
func ReadCmd() *Command {
	fs := flag.NewFlagSet("read", flag.ContinueOnError)
	out := fs.String("out", "", "write the picture to this file instead of stdout")

	return &Command{
		Flags: fs,
		Usage: "read <db> <id> [orig|small|thumb] [flags]",
		Short: "Read a picture at a given resolution",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) < 2 {
				return taxonomyErr(catalog.CodeNotEnoughArguments, "usage: read <db> <id> [orig|small|thumb]")
			}

			resName := "orig"
			if len(args) >= 3 {
				resName = args[2]
			}
			res, ok := catalog.ResolutionFromString(resName)
			if !ok {
				return taxonomyErr(catalog.CodeInvalidArgument, "unknown resolution: %s", resName)
			}

			c, err := catalog.Open(args[0], codec.JPEG{}, hasher.SHA256{})
			if err != nil {
				return err
			}
			defer c.Close()

			buf, err := c.Read(args[1], res)
			if err != nil {
				return err
			}

			if *out == "" {
				_, werr := o.out.Write(buf)
				return werr
			}
			return os.WriteFile(*out, buf, 0o644)
		},
	}
}
