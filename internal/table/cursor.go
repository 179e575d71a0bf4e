package table

import (
	"github.com/pkg/errors"

	"vqlite/internal/pager"
	"vqlite/internal/row"
)

// Cursor is a logical position (page, cell) produced only by Find or
// Start. It is invalidated by any structural mutation (a split or a
// new root) and must not be reused across an Insert that triggered
// one.
type Cursor struct {
	pager      *pager.Pager
	pageID     uint32
	cellIndex  uint32
	EndOfTable bool
}

// Value returns the row byte-span at the cursor's current cell.
func (c *Cursor) Value() ([]byte, error) {
	page, err := c.pager.GetPage(c.pageID)
	if err != nil {
		return nil, err
	}
	return leafValue(page, c.cellIndex), nil
}

// Row deserializes the row at the cursor's current cell.
func (c *Cursor) Row() (row.Row, error) {
	v, err := c.Value()
	if err != nil {
		return row.Row{}, err
	}
	return row.Deserialize(v)
}

// Key returns the key at the cursor's current cell.
func (c *Cursor) Key() (uint32, error) {
	page, err := c.pager.GetPage(c.pageID)
	if err != nil {
		return 0, err
	}
	return leafKey(page, c.cellIndex), nil
}

// Advance moves the cursor to the next cell in key order, following
// the sibling chain across leaf boundaries. Once it walks past the
// last cell of the last leaf, EndOfTable is set and further calls are
// no-ops.
func (c *Cursor) Advance() error {
	if c.EndOfTable {
		return nil
	}
	page, err := c.pager.GetPage(c.pageID)
	if err != nil {
		return err
	}

	c.cellIndex++
	if c.cellIndex < leafNumCells(page) {
		return nil
	}

	next := leafNextLeaf(page)
	if next == 0 {
		c.EndOfTable = true
		return nil
	}

	nextPage, err := c.pager.GetPage(next)
	if err != nil {
		return err
	}
	if nodeType(nextPage) != Leaf {
		return errors.Errorf("table: next_leaf %d does not point at a leaf", next)
	}

	c.pageID = next
	c.cellIndex = 0
	return nil
}
