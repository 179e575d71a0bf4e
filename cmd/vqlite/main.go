// Command vqlite is an interactive prompt over a single-table,
// B+ tree-backed row store persisted to one file on disk.
package main

import (
	"fmt"
	"os"

	"vqlite/internal/dbglog"
	"vqlite/internal/repl"
	"vqlite/internal/table"
)

func main() {
	filename := "db"
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}

	tbl, err := table.Open(filename)
	if err != nil {
		dbglog.Fatal("opening database file", err)
	}

	if err := repl.Run(os.Stdin, os.Stdout, tbl); err != nil {
		tbl.Close()
		dbglog.Fatal("running", err)
	}

	if err := tbl.Close(); err != nil {
		dbglog.Fatal("closing database file", err)
	}

	fmt.Fprintln(os.Stdout, "bye")
}
