// Package engine turns parsed statements into table operations:
// insert a row, or scan every row in key order.
package engine

import (
	"fmt"
	"io"

	"vqlite/internal/parse"
	"vqlite/internal/table"
)

// Execute dispatches stmt against tbl, writing select output to w.
func Execute(w io.Writer, tbl *table.Table, stmt parse.Statement) error {
	switch s := stmt.(type) {
	case parse.Insert:
		return ExecuteInsert(tbl, s)
	case parse.SelectAll:
		return ExecuteSelect(w, tbl)
	default:
		return fmt.Errorf("engine: unknown statement type %T", stmt)
	}
}

// ExecuteInsert adds stmt.Row to the table. It returns
// table.ErrDuplicateKey, unchanged, if the row's id is already
// present.
func ExecuteInsert(tbl *table.Table, stmt parse.Insert) error {
	return tbl.Insert(stmt.Row.ID, stmt.Row)
}

// ExecuteSelect writes every row in key order to w, one per line.
func ExecuteSelect(w io.Writer, tbl *table.Table) error {
	c, err := tbl.Start()
	if err != nil {
		return err
	}
	for !c.EndOfTable {
		r, err := c.Row()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "(%d, %s, %s)\n", r.ID, r.Username, r.Email)
		if err := c.Advance(); err != nil {
			return err
		}
	}
	return nil
}
