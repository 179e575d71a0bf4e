// Package meta dispatches REPL meta-commands (leading ":", plus the
// bare "dbg" alias) against a table's pager and tree. These commands
// are read-only inspection, except :q which also requests a clean
// shutdown.
package meta

import (
	"fmt"
	"io"
	"strings"

	"vqlite/internal/table"
)

// Result tells the caller what happened.
type Result int

const (
	// Success means the command ran; the caller should keep reading.
	Success Result = iota
	// Quit means the caller should close the table and exit.
	Quit
	// Unrecognized means line was not a known meta-command.
	Unrecognized
)

// IsMetaCommand reports whether line should be routed to Dispatch
// rather than parsed as a statement.
func IsMetaCommand(line string) bool {
	return strings.HasPrefix(line, ":") || line == "dbg"
}

// Dispatch runs the meta-command in line, writing any output to w.
func Dispatch(w io.Writer, tbl *table.Table, line string) (Result, error) {
	switch line {
	case ":q":
		return Quit, nil

	case ":c":
		table.PrintConstants(w)
		return Success, nil

	case ":tree":
		if err := table.PrintTree(w, tbl.Pager, table.RootPageID); err != nil {
			return Success, err
		}
		return Success, nil

	case ":d", "dbg":
		table.PrintConstants(w)
		fmt.Fprintln(w)
		if err := table.PrintTree(w, tbl.Pager, table.RootPageID); err != nil {
			return Success, err
		}
		return Success, nil

	default:
		return Unrecognized, nil
	}
}
