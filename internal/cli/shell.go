package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pictdb/pictdb/internal/catalog"
	"github.com/pictdb/pictdb/internal/codec"
	"github.com/pictdb/pictdb/internal/hasher"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
)

const shellHelp = `Commands:
  insert <id> <file>   insert a JPEG file under <id>
  read <id> [res]      print a picture's byte size at res (orig|small|thumb)
  delete <id>          tombstone a picture
  list [json]          enumerate the catalog
  gc <tmp>             compact the database via scratch path <tmp>
  help                 show this text
  quit                 leave the shell`

// ShellCmd builds the `shell <db>` command: an interactive REPL over one
// open database, patterned on the teacher pack's slotcache REPL.
func ShellCmd() *Command {
	fs := flag.NewFlagSet("shell", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "shell <db>",
		Short: "Open an interactive shell against a database",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) < 1 {
				return taxonomyErr(catalog.CodeNotEnoughArguments, "usage: shell <db>")
			}

			c, err := catalog.Open(args[0], codec.JPEG{}, hasher.SHA256{})
			if err != nil {
				return err
			}
			defer c.Close()

			return runShell(c, o)
		},
	}
}

func runShell(c *catalog.Catalog, o *IO) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("pictdb> ")
		if err != nil {
			if err == io.EOF || err == liner.ErrPromptAborted {
				return nil
			}
			return err
		}
		line.AppendHistory(input)

		if handled := dispatchShellLine(c, o, strings.TrimSpace(input)); !handled {
			return nil
		}
	}
}

// dispatchShellLine runs one shell command. Returns false when the shell
// should exit.
func dispatchShellLine(c *catalog.Catalog, o *IO, input string) bool {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return true
	}

	switch fields[0] {
	case "quit", "exit":
		return false
	case "help":
		o.Println(shellHelp)
	case "insert":
		shellInsert(c, o, fields[1:])
	case "read":
		shellRead(c, o, fields[1:])
	case "delete":
		shellDelete(c, o, fields[1:])
	case "list":
		shellList(c, o, fields[1:])
	case "gc":
		shellGC(c, o, fields[1:])
	default:
		o.ErrPrintln("unknown command:", fields[0], "(try 'help')")
	}

	return true
}

func shellInsert(c *catalog.Catalog, o *IO, args []string) {
	if len(args) < 2 {
		o.ErrPrintln("usage: insert <id> <file>")
		return
	}
	buf, err := os.ReadFile(args[1])
	if err != nil {
		o.ErrPrintln("error:", err)
		return
	}
	if err := c.Insert(buf, args[0]); err != nil {
		o.ErrPrintln("error:", err)
		return
	}
	o.Println("inserted", args[0])
}

func shellRead(c *catalog.Catalog, o *IO, args []string) {
	if len(args) < 1 {
		o.ErrPrintln("usage: read <id> [res]")
		return
	}
	resName := "orig"
	if len(args) >= 2 {
		resName = args[1]
	}
	res, ok := catalog.ResolutionFromString(resName)
	if !ok {
		o.ErrPrintln("unknown resolution:", resName)
		return
	}
	buf, err := c.Read(args[0], res)
	if err != nil {
		o.ErrPrintln("error:", err)
		return
	}
	o.Println(fmt.Sprintf("%d bytes", len(buf)))
}

func shellDelete(c *catalog.Catalog, o *IO, args []string) {
	if len(args) < 1 {
		o.ErrPrintln("usage: delete <id>")
		return
	}
	if err := c.Delete(args[0]); err != nil {
		o.ErrPrintln("error:", err)
		return
	}
	o.Println("deleted", args[0])
}

func shellList(c *catalog.Catalog, o *IO, args []string) {
	if len(args) >= 1 && args[0] == "json" {
		out, err := c.ListJSON()
		if err != nil {
			o.ErrPrintln("error:", err)
			return
		}
		o.Println(out)
		return
	}
	o.Printf("%s", c.ListHuman())
}

func shellGC(c *catalog.Catalog, o *IO, args []string) {
	if len(args) < 1 {
		o.ErrPrintln("usage: gc <tmp>")
		return
	}
	if err := c.GarbageCollect(args[0]); err != nil {
		o.ErrPrintln("error:", err)
		return
	}
	o.Println("gc complete")
}
