package table

import (
	"fmt"
	"io"
	"strings"

	"vqlite/internal/pager"
	"vqlite/internal/row"
)

// PrintConstants writes the derived layout constants, mirroring the
// reference implementation's print_constants debug command.
func PrintConstants(w io.Writer) {
	fmt.Fprintln(w, "Constants:")
	fmt.Fprintf(w, "ROW_SIZE: %d\n", row.Size)
	fmt.Fprintf(w, "COMMON_NODE_HEADER_SIZE: %d\n", commonHeaderSize)
	fmt.Fprintf(w, "LEAF_NODE_HEADER_SIZE: %d\n", leafHeaderSize)
	fmt.Fprintf(w, "LEAF_NODE_CELL_SIZE: %d\n", LeafCellSize)
	fmt.Fprintf(w, "LEAF_NODE_SPACE_FOR_CELLS: %d\n", leafSpaceForCells())
	fmt.Fprintf(w, "LEAF_NODE_MAX_CELLS: %d\n", LeafMaxCells)
}

// PrintTree writes a recursive, indented dump of the tree rooted at
// rootID. Unlike the reference implementation's original debug
// printer (which only ever handles a leaf root), this recurses through
// internal nodes to arbitrary depth.
func PrintTree(w io.Writer, pgr *pager.Pager, rootID uint32) error {
	fmt.Fprintln(w, "Tree:")
	return printNode(w, pgr, rootID, 0)
}

func printNode(w io.Writer, pgr *pager.Pager, pageID uint32, depth int) error {
	page, err := pgr.GetPage(pageID)
	if err != nil {
		return err
	}
	indent := strings.Repeat("  ", depth)

	if nodeType(page) == Leaf {
		numCells := leafNumCells(page)
		fmt.Fprintf(w, "%sleaf (size %d)\n", indent, numCells)
		for i := uint32(0); i < numCells; i++ {
			fmt.Fprintf(w, "%s  - %d\n", indent, leafKey(page, i))
		}
		return nil
	}

	numKeys := internalNumKeys(page)
	fmt.Fprintf(w, "%sinternal (size %d)\n", indent, numKeys)
	for i := uint32(0); i < numKeys; i++ {
		if err := printNode(w, pgr, internalCellChild(page, i), depth+1); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s  key %d\n", indent, internalCellKey(page, i))
	}
	return printNode(w, pgr, internalRightChild(page), depth+1)
}
