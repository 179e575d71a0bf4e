package table

import (
	"github.com/pkg/errors"

	"vqlite/internal/pager"
	"vqlite/internal/row"
)

// RootPageID is the page id of the tree root. It is part of the
// on-disk contract and never changes: when the root overflows, its
// contents are copied aside and the root page is rewritten in place
// as an internal node (see createNewRoot).
const RootPageID = 0

// Table wraps a pager and the root page id, and is the only
// entry point callers outside this package need.
type Table struct {
	Pager *pager.Pager
}

// Open opens filename via the pager and, if the file is brand new,
// initializes page 0 as an empty leaf root.
func Open(filename string) (*Table, error) {
	pgr, err := pager.Open(filename)
	if err != nil {
		return nil, err
	}

	if pgr.NumPages() == 0 {
		root, err := pgr.GetPage(RootPageID)
		if err != nil {
			return nil, err
		}
		initializeLeaf(root)
		setIsRoot(root, true)
	}

	return &Table{Pager: pgr}, nil
}

// Close flushes every occupied page and releases the file handle.
func (t *Table) Close() error {
	return t.Pager.Close()
}

// Find returns a cursor at key, or at the position key would occupy.
func (t *Table) Find(key uint32) (*Cursor, error) {
	return Find(t.Pager, RootPageID, key)
}

// Start returns a cursor at the first row in key order.
func (t *Table) Start() (*Cursor, error) {
	return Start(t.Pager, RootPageID)
}

// ErrDuplicateKey is returned by Insert when key is already present.
var ErrDuplicateKey = errors.New("table: duplicate key")

// Insert adds (key, r) to the tree. It returns ErrDuplicateKey,
// leaving the tree unchanged, if key is already present.
func (t *Table) Insert(key uint32, r row.Row) error {
	c, err := t.Find(key)
	if err != nil {
		return err
	}

	page, err := t.Pager.GetPage(c.pageID)
	if err != nil {
		return err
	}
	if c.cellIndex < leafNumCells(page) && leafKey(page, c.cellIndex) == key {
		return ErrDuplicateKey
	}

	return LeafInsert(t.Pager, c, key, r)
}
