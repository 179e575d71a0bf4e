package table

import (
	"vqlite/internal/pager"
	"vqlite/internal/row"
)

// NodeType distinguishes leaf pages (which hold row data) from
// internal pages (which route searches).
type NodeType uint8

const (
	// Internal matches the on-disk constant used by persisted files;
	// it must stay 0 so that a freshly zeroed page never accidentally
	// reads back as a leaf.
	Internal NodeType = 0
	Leaf     NodeType = 1
)

// Common node header: node_type(1) | is_root(1) | parent_page(4).
const (
	nodeTypeOffset   = 0
	isRootOffset     = 1
	parentPageOffset = 2
	commonHeaderSize = 6
)

// Leaf header (continuing): num_cells(4) | next_leaf(4).
const (
	leafNumCellsOffset = commonHeaderSize
	leafNextLeafOffset = leafNumCellsOffset + 4
	leafHeaderSize     = leafNextLeafOffset + 4

	leafKeySize  = 4
	leafKeyShift = 0
)

// Internal header (continuing): num_keys(4) | right_child(4).
const (
	internalNumKeysOffset    = commonHeaderSize
	internalRightChildOffset = internalNumKeysOffset + 4
	internalHeaderSize       = internalRightChildOffset + 4

	internalChildSize = 4
	internalKeySize   = 4
	internalCellSize  = internalChildSize + internalKeySize

	// InternalMaxCells is deliberately tiny: the reference
	// implementation this store is grounded on never implements
	// internal-node splitting, and neither does this one (see
	// DESIGN.md). Exceeding it is a fatal, documented limitation.
	InternalMaxCells = 3
)

// LeafCellSize is the width in bytes of one (key, row) leaf cell.
const LeafCellSize = leafKeySize + row.Size

// LeafMaxCells is the number of (key, row) cells that fit in one page
// after the leaf header, derived once from PageSize and the fixed row
// shape.
var LeafMaxCells = leafSpaceForCells() / LeafCellSize

// LeafRightSplitCount and LeafLeftSplitCount are the sizes the two
// halves of a split leaf end up with.
var (
	LeafRightSplitCount = (LeafMaxCells + 1 + 1) / 2
	LeafLeftSplitCount  = (LeafMaxCells + 1) - LeafRightSplitCount
)

func leafSpaceForCells() int {
	return pager.PageSize - leafHeaderSize
}
