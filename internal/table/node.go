package table

import (
	"encoding/binary"

	"vqlite/internal/pager"
)

// Common header accessors, shared by leaf and internal pages.

func nodeType(p *pager.Page) NodeType {
	return NodeType(p.Data[nodeTypeOffset])
}

func setNodeType(p *pager.Page, t NodeType) {
	p.Data[nodeTypeOffset] = byte(t)
}

func isRoot(p *pager.Page) bool {
	return p.Data[isRootOffset] != 0
}

func setIsRoot(p *pager.Page, v bool) {
	if v {
		p.Data[isRootOffset] = 1
	} else {
		p.Data[isRootOffset] = 0
	}
}

func parentPage(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p.Data[parentPageOffset : parentPageOffset+4])
}

func setParentPage(p *pager.Page, id uint32) {
	binary.LittleEndian.PutUint32(p.Data[parentPageOffset:parentPageOffset+4], id)
}

// Leaf accessors.

func leafNumCells(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p.Data[leafNumCellsOffset : leafNumCellsOffset+4])
}

func setLeafNumCells(p *pager.Page, n uint32) {
	binary.LittleEndian.PutUint32(p.Data[leafNumCellsOffset:leafNumCellsOffset+4], n)
}

func leafNextLeaf(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p.Data[leafNextLeafOffset : leafNextLeafOffset+4])
}

func setLeafNextLeaf(p *pager.Page, id uint32) {
	binary.LittleEndian.PutUint32(p.Data[leafNextLeafOffset:leafNextLeafOffset+4], id)
}

func leafCellOffset(i uint32) int {
	return leafHeaderSize + int(i)*LeafCellSize
}

func leafCell(p *pager.Page, i uint32) []byte {
	off := leafCellOffset(i)
	return p.Data[off : off+LeafCellSize]
}

func leafKey(p *pager.Page, i uint32) uint32 {
	c := leafCell(p, i)
	return binary.LittleEndian.Uint32(c[leafKeyShift : leafKeyShift+leafKeySize])
}

func setLeafKey(p *pager.Page, i uint32, key uint32) {
	c := leafCell(p, i)
	binary.LittleEndian.PutUint32(c[leafKeyShift:leafKeyShift+leafKeySize], key)
}

// leafValue returns the row byte span for cell i, for direct
// serialization into or deserialization out of.
func leafValue(p *pager.Page, i uint32) []byte {
	c := leafCell(p, i)
	return c[leafKeySize:]
}

func initializeLeaf(p *pager.Page) {
	setNodeType(p, Leaf)
	setIsRoot(p, false)
	setLeafNumCells(p, 0)
	setLeafNextLeaf(p, 0)
}

// Internal accessors.

func internalNumKeys(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p.Data[internalNumKeysOffset : internalNumKeysOffset+4])
}

func setInternalNumKeys(p *pager.Page, n uint32) {
	binary.LittleEndian.PutUint32(p.Data[internalNumKeysOffset:internalNumKeysOffset+4], n)
}

func internalRightChild(p *pager.Page) uint32 {
	return binary.LittleEndian.Uint32(p.Data[internalRightChildOffset : internalRightChildOffset+4])
}

func setInternalRightChild(p *pager.Page, id uint32) {
	binary.LittleEndian.PutUint32(p.Data[internalRightChildOffset:internalRightChildOffset+4], id)
}

func internalCellOffset(i uint32) int {
	return internalHeaderSize + int(i)*internalCellSize
}

func internalCellChild(p *pager.Page, i uint32) uint32 {
	off := internalCellOffset(i)
	return binary.LittleEndian.Uint32(p.Data[off : off+internalChildSize])
}

func setInternalCellChild(p *pager.Page, i uint32, id uint32) {
	off := internalCellOffset(i)
	binary.LittleEndian.PutUint32(p.Data[off:off+internalChildSize], id)
}

func internalCellKey(p *pager.Page, i uint32) uint32 {
	off := internalCellOffset(i) + internalChildSize
	return binary.LittleEndian.Uint32(p.Data[off : off+internalKeySize])
}

func setInternalCellKey(p *pager.Page, i uint32, key uint32) {
	off := internalCellOffset(i) + internalChildSize
	binary.LittleEndian.PutUint32(p.Data[off:off+internalKeySize], key)
}

// internalChild returns the child page id at logical index i, where
// i == internalNumKeys(p) addresses the right child.
func internalChild(p *pager.Page, i uint32) uint32 {
	numKeys := internalNumKeys(p)
	if i == numKeys {
		return internalRightChild(p)
	}
	return internalCellChild(p, i)
}

func initializeInternal(p *pager.Page) {
	setNodeType(p, Internal)
	setIsRoot(p, false)
	setInternalNumKeys(p, 0)
}

// nodeMaxKey returns the key of the node's last cell. For a leaf that
// is its largest key; for an internal node it is the max key of its
// last keyed child, and keys under the right child are not considered.
func nodeMaxKey(p *pager.Page) uint32 {
	if nodeType(p) == Leaf {
		return leafKey(p, leafNumCells(p)-1)
	}
	return internalCellKey(p, internalNumKeys(p)-1)
}

// internalFindChild returns the smallest cell index whose key is >=
// key (binary search), or internalNumKeys(p) if none qualifies — in
// which case the caller should descend via the right child.
func internalFindChild(p *pager.Page, key uint32) uint32 {
	numKeys := internalNumKeys(p)
	lo, hi := uint32(0), numKeys
	for lo != hi {
		mid := (lo + hi) / 2
		if internalCellKey(p, mid) >= key {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
