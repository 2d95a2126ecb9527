package cli

import (
	"context"
	"fmt"

	"github.com/pictdb/pictdb/internal/catalog"
	"github.com/pictdb/pictdb/internal/codec"
	"github.com/pictdb/pictdb/internal/config"
	"github.com/pictdb/pictdb/internal/hasher"

	flag "github.com/spf13/pflag"
)

// CreateCmd builds the `create <db>` command. Flags left unset fall back
// to the resolved defaults Config (spec §6.3: max_files in (0, 100000],
// thumb_res each in (0,128], small_res each in (0,512]).
func CreateCmd(cfg config.Config) *Command {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)

	maxFiles := fs.Uint32("max_files", cfg.MaxFiles, "maximum number of pictures the database can hold")
	thumbWidth := fs.Uint16("thumb_width", cfg.ThumbWidth, "thumbnail bounding box width")
	thumbHeight := fs.Uint16("thumb_height", cfg.ThumbHeight, "thumbnail bounding box height")
	smallWidth := fs.Uint16("small_width", cfg.SmallWidth, "small bounding box width")
	smallHeight := fs.Uint16("small_height", cfg.SmallHeight, "small bounding box height")

	return &Command{
		Flags: fs,
		Usage: "create <db> [flags]",
		Short: "Create a new, empty database",
		Long:  "Create a new, empty database at <db>, truncating any existing file.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) < 1 {
				return taxonomyErr(catalog.CodeNotEnoughArguments, "usage: create <db>")
			}

			if *maxFiles == 0 || *maxFiles > catalog.MaxMaxFiles {
				return taxonomyErr(catalog.CodeMaxFilesOutOfRange, "max_files must be in (0, %d]", catalog.MaxMaxFiles)
			}
			if *thumbWidth == 0 || *thumbWidth > 128 || *thumbHeight == 0 || *thumbHeight > 128 {
				return taxonomyErr(catalog.CodeResolutionsOutOfRange, "thumb_res must be in (0, 128]")
			}
			if *smallWidth == 0 || *smallWidth > 512 || *smallHeight == 0 || *smallHeight > 512 {
				return taxonomyErr(catalog.CodeResolutionsOutOfRange, "small_res must be in (0, 512]")
			}

			c, err := catalog.Create(args[0], catalog.CreateOptions{
				MaxFiles: *maxFiles,
				ThumbRes: catalog.Box{Width: *thumbWidth, Height: *thumbHeight},
				SmallRes: catalog.Box{Width: *smallWidth, Height: *smallHeight},
			}, codec.JPEG{}, hasher.SHA256{})
			if err != nil {
				return err
			}
			defer c.Close()

			o.Println("created", args[0])
			return nil
		},
	}
}

// taxonomyErr builds an error whose text starts with the fixed
// error-taxonomy message for code (spec §7), as seen by CLI users.
func taxonomyErr(code catalog.Code, format string, a ...any) error {
	return fmt.Errorf("%s: %s", code.Message(), fmt.Sprintf(format, a...))
}
