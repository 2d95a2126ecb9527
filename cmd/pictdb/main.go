// Command pictdb is the CLI front-end over the pictDB catalog library
// (spec §6.3): create, list, read, insert, delete and gc a fixed-capacity
// JPEG image database, plus an interactive shell and an HTTP server.
package main

import (
	"os"

	"github.com/pictdb/pictdb/internal/cli"
)

func main() {
	env := envMap(os.Environ())
	code := cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:], env)
	os.Exit(code)
}

func envMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				m[kv[:i]] = kv[i+1:]
				break
			}
		}
	}
	return m
}
