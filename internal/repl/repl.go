// Package repl drives the read-eval-print loop: prompt, read a line,
// route it to a meta-command or a statement, print the result.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"vqlite/internal/engine"
	"vqlite/internal/meta"
	"vqlite/internal/parse"
	"vqlite/internal/table"
)

// Prompt is printed before each read.
const Prompt = "db > "

// Run reads lines from in until EOF or a ":q" meta-command, writing
// prompts, statement output, and error messages to out. It returns
// nil on a clean EOF or ":q", and a non-nil error only for a fatal
// table/pager failure that the caller should treat as unrecoverable.
func Run(in io.Reader, out io.Writer, tbl *table.Table) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, Prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if meta.IsMetaCommand(line) {
			result, err := meta.Dispatch(out, tbl, line)
			if err != nil {
				return err
			}
			switch result {
			case meta.Quit:
				return nil
			case meta.Unrecognized:
				fmt.Fprintf(out, "Unrecognized command %q.\n", line)
			}
			continue
		}

		stmt, err := parse.Parse(line)
		if err != nil {
			fmt.Fprintln(out, parseErrorMessage(err))
			continue
		}

		if err := engine.Execute(out, tbl, stmt); err != nil {
			if errors.Is(err, table.ErrDuplicateKey) {
				fmt.Fprintln(out, "Error: duplicate key!")
				continue
			}
			return err
		}
	}
}

// parseErrorMessage maps a recoverable parse.Err* sentinel to the
// message the REPL prints, matching the reference implementation's
// wording exactly.
func parseErrorMessage(err error) string {
	switch {
	case errors.Is(err, parse.ErrSyntax):
		return "Syntax error. Could not parse statement."
	case errors.Is(err, parse.ErrStringTooLong):
		return "A string is too long."
	case errors.Is(err, parse.ErrNegativeID):
		return "ID must be positive."
	case errors.Is(err, parse.ErrUnrecognized):
		return "Unrecognized keyword at start of statement."
	default:
		return err.Error()
	}
}
