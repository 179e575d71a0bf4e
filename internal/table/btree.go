// Package table implements the B+ tree index: node layout, the pager
// bridge, search/insert/split, and the cursor used to scan it. Leaf
// cells hold (key, row) pairs in sorted order and chain into siblings
// via next_leaf; internal cells hold (child_page, max_key_of_child)
// pairs that route searches. Internal-node splitting is not
// implemented (see DESIGN.md); exceeding InternalMaxCells is fatal.
package table

import (
	"github.com/pkg/errors"

	"vqlite/internal/pager"
	"vqlite/internal/row"
)

// Find descends from pageID, returning a cursor at the cell matching
// key, or at the insertion point key would occupy if absent.
func Find(pgr *pager.Pager, pageID uint32, key uint32) (*Cursor, error) {
	page, err := pgr.GetPage(pageID)
	if err != nil {
		return nil, err
	}

	if nodeType(page) == Leaf {
		return leafFind(pgr, pageID, key)
	}

	childIdx := internalFindChild(page, key)
	childID := internalChild(page, childIdx)
	return Find(pgr, childID, key)
}

func leafFind(pgr *pager.Pager, pageID uint32, key uint32) (*Cursor, error) {
	page, err := pgr.GetPage(pageID)
	if err != nil {
		return nil, err
	}

	numCells := leafNumCells(page)
	lo, hi := uint32(0), numCells
	for lo != hi {
		mid := (lo + hi) / 2
		k := leafKey(page, mid)
		if key == k {
			return &Cursor{pager: pgr, pageID: pageID, cellIndex: mid}, nil
		}
		if key < k {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return &Cursor{pager: pgr, pageID: pageID, cellIndex: lo}, nil
}

// Start returns a cursor at the first row in key order, with
// EndOfTable set if the table is empty.
func Start(pgr *pager.Pager, rootID uint32) (*Cursor, error) {
	c, err := Find(pgr, rootID, 0)
	if err != nil {
		return nil, err
	}
	page, err := pgr.GetPage(c.pageID)
	if err != nil {
		return nil, err
	}
	c.EndOfTable = leafNumCells(page) == 0
	return c, nil
}

// LeafInsert inserts (key, r) at the position cursor c identifies,
// shifting later cells right, or splits the leaf if it is full. c
// must be the cursor Find just produced for key; it is invalid to
// reuse c (or any cursor) after this call.
func LeafInsert(pgr *pager.Pager, c *Cursor, key uint32, r row.Row) error {
	page, err := pgr.GetPage(c.pageID)
	if err != nil {
		return err
	}

	numCells := leafNumCells(page)
	if numCells >= uint32(LeafMaxCells) {
		return leafSplitAndInsert(pgr, c, key, r)
	}

	for i := numCells; i > c.cellIndex; i-- {
		copy(leafCell(page, i), leafCell(page, i-1))
	}
	setLeafKey(page, c.cellIndex, key)
	if err := row.Serialize(r, leafValue(page, c.cellIndex)); err != nil {
		return err
	}
	setLeafNumCells(page, numCells+1)
	return nil
}

// leafSplitAndInsert relieves an overflowing leaf by allocating a
// sibling, redistributing LeafMaxCells+1 cells (the existing ones plus
// the new one) across the two, threading the sibling chain, and
// propagating the split upward — either by creating a new root (if
// the leaf was the root) or by inserting a separator into the parent.
func leafSplitAndInsert(pgr *pager.Pager, c *Cursor, key uint32, r row.Row) error {
	oldPage, err := pgr.GetPage(c.pageID)
	if err != nil {
		return err
	}
	oldMax := nodeMaxKey(oldPage)
	wasRoot := isRoot(oldPage)
	oldParent := parentPage(oldPage)

	newID := pgr.UnusedPageID()
	newPage, err := pgr.GetPage(newID)
	if err != nil {
		return err
	}
	initializeLeaf(newPage)
	setParentPage(newPage, oldParent)
	setLeafNextLeaf(newPage, leafNextLeaf(oldPage))
	setLeafNextLeaf(oldPage, newID)

	left := uint32(LeafLeftSplitCount)
	for i := int(LeafMaxCells); i >= 0; i-- {
		idx := uint32(i)
		dest := oldPage
		if idx >= left {
			dest = newPage
		}
		within := idx % left

		switch {
		case idx == c.cellIndex:
			setLeafKey(dest, within, key)
			if err := row.Serialize(r, leafValue(dest, within)); err != nil {
				return err
			}
		case idx > c.cellIndex:
			copy(leafCell(dest, within), leafCell(oldPage, idx-1))
		default:
			copy(leafCell(dest, within), leafCell(oldPage, idx))
		}
	}
	setLeafNumCells(oldPage, uint32(LeafLeftSplitCount))
	setLeafNumCells(newPage, uint32(LeafRightSplitCount))

	if wasRoot {
		return createNewRoot(pgr, c.pageID, newID)
	}

	newMax := nodeMaxKey(oldPage)
	parentPg, err := pgr.GetPage(oldParent)
	if err != nil {
		return err
	}
	updateInternalKey(parentPg, oldMax, newMax)
	return internalInsert(pgr, oldParent, newID)
}

// createNewRoot is invoked when rootID's page overflows. Its current
// contents are copied into a freshly allocated page that becomes the
// left child; rootID is then rewritten in place as an internal node
// with that left child, rightID as the right child, and one key. The
// root's page id never changes — only its contents do.
func createNewRoot(pgr *pager.Pager, rootID uint32, rightID uint32) error {
	rootPg, err := pgr.GetPage(rootID)
	if err != nil {
		return err
	}
	rightPg, err := pgr.GetPage(rightID)
	if err != nil {
		return err
	}

	leftID := pgr.UnusedPageID()
	leftPg, err := pgr.GetPage(leftID)
	if err != nil {
		return err
	}
	leftPg.Data = rootPg.Data
	setIsRoot(leftPg, false)

	initializeInternal(rootPg)
	setIsRoot(rootPg, true)
	setInternalNumKeys(rootPg, 1)
	setInternalCellChild(rootPg, 0, leftID)
	setInternalCellKey(rootPg, 0, nodeMaxKey(leftPg))
	setInternalRightChild(rootPg, rightID)

	setParentPage(leftPg, rootID)
	setParentPage(rightPg, rootID)
	return nil
}

// internalInsert splices a newly-created child into parentID's cell
// array (or installs it as the new right child), given that childID
// is already fully populated and its max key reflects its final
// contents.
func internalInsert(pgr *pager.Pager, parentID uint32, childID uint32) error {
	parent, err := pgr.GetPage(parentID)
	if err != nil {
		return err
	}
	child, err := pgr.GetPage(childID)
	if err != nil {
		return err
	}

	childMax := nodeMaxKey(child)
	index := internalFindChild(parent, childMax)

	original := internalNumKeys(parent)
	if original >= InternalMaxCells {
		return errors.New("table: internal node split not implemented")
	}
	setInternalNumKeys(parent, original+1)

	rightChildID := internalRightChild(parent)
	rightChild, err := pgr.GetPage(rightChildID)
	if err != nil {
		return err
	}

	if childMax > nodeMaxKey(rightChild) {
		setInternalCellChild(parent, original, rightChildID)
		setInternalCellKey(parent, original, nodeMaxKey(rightChild))
		setInternalRightChild(parent, childID)
	} else {
		for i := original; i > index; i-- {
			setInternalCellChild(parent, i, internalCellChild(parent, i-1))
			setInternalCellKey(parent, i, internalCellKey(parent, i-1))
		}
		setInternalCellChild(parent, index, childID)
		setInternalCellKey(parent, index, childMax)
	}
	setParentPage(child, parentID)
	return nil
}

// updateInternalKey refreshes the separator key for the child whose
// max key used to be oldMax, after a split changed that child's max
// key to newMax.
func updateInternalKey(parent *pager.Page, oldMax, newMax uint32) {
	idx := internalFindChild(parent, oldMax)
	setInternalCellKey(parent, idx, newMax)
}
