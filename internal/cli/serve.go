package cli

import (
	"context"
	"net/http"

	"github.com/pictdb/pictdb/internal/catalog"
	"github.com/pictdb/pictdb/internal/codec"
	"github.com/pictdb/pictdb/internal/hasher"
	"github.com/pictdb/pictdb/internal/httpapi"

	flag "github.com/spf13/pflag"
)

// ServeCmd builds the `serve <db>` command: launches the HTTP
// collaborator (spec §6.4) over one open database until the process is
// killed. The catalog handle is field-injected into httpapi.Server
// rather than held globally (spec §9).
func ServeCmd() *Command {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", ":8080", "address to listen on")

	return &Command{
		Flags: fs,
		Usage: "serve <db> [flags]",
		Short: "Serve a database over HTTP",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) < 1 {
				return taxonomyErr(catalog.CodeNotEnoughArguments, "usage: serve <db>")
			}

			c, err := catalog.Open(args[0], codec.JPEG{}, hasher.SHA256{})
			if err != nil {
				return err
			}
			defer c.Close()

			srv := httpapi.NewServer(c)
			o.Println("listening on", *addr)
			return http.ListenAndServe(*addr, srv.Routes())
		},
	}
}
