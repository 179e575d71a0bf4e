package table

import (
	"testing"

	"vqlite/internal/pager"
	"vqlite/internal/row"
)

func newTestPage() *pager.Page {
	return &pager.Page{}
}

func TestLeafAccessorsRoundTrip(t *testing.T) {
	p := newTestPage()
	initializeLeaf(p)

	if nodeType(p) != Leaf {
		t.Fatalf("nodeType = %v, want Leaf", nodeType(p))
	}
	if isRoot(p) {
		t.Fatalf("expected isRoot=false after initializeLeaf")
	}
	if leafNumCells(p) != 0 {
		t.Fatalf("leafNumCells = %d, want 0", leafNumCells(p))
	}
	if leafNextLeaf(p) != 0 {
		t.Fatalf("leafNextLeaf = %d, want 0", leafNextLeaf(p))
	}

	setIsRoot(p, true)
	setParentPage(p, 7)
	setLeafNumCells(p, 2)
	setLeafNextLeaf(p, 9)
	setLeafKey(p, 0, 100)
	setLeafKey(p, 1, 200)

	r := row.Row{ID: 200, Username: "bob", Email: "bob@x.com"}
	if err := row.Serialize(r, leafValue(p, 1)); err != nil {
		t.Fatalf("row.Serialize: %v", err)
	}

	if !isRoot(p) {
		t.Errorf("expected isRoot=true")
	}
	if parentPage(p) != 7 {
		t.Errorf("parentPage = %d, want 7", parentPage(p))
	}
	if leafNumCells(p) != 2 {
		t.Errorf("leafNumCells = %d, want 2", leafNumCells(p))
	}
	if leafNextLeaf(p) != 9 {
		t.Errorf("leafNextLeaf = %d, want 9", leafNextLeaf(p))
	}
	if leafKey(p, 0) != 100 || leafKey(p, 1) != 200 {
		t.Errorf("leaf keys = (%d, %d), want (100, 200)", leafKey(p, 0), leafKey(p, 1))
	}
	got, err := row.Deserialize(leafValue(p, 1))
	if err != nil {
		t.Fatalf("row.Deserialize: %v", err)
	}
	if got != r {
		t.Errorf("round-tripped row = %+v, want %+v", got, r)
	}
	if nodeMaxKey(p) != 200 {
		t.Errorf("nodeMaxKey = %d, want 200", nodeMaxKey(p))
	}
}

func TestInternalAccessorsRoundTrip(t *testing.T) {
	p := newTestPage()
	initializeInternal(p)

	if nodeType(p) != Internal {
		t.Fatalf("nodeType = %v, want Internal", nodeType(p))
	}

	setInternalNumKeys(p, 2)
	setInternalCellChild(p, 0, 10)
	setInternalCellKey(p, 0, 50)
	setInternalCellChild(p, 1, 11)
	setInternalCellKey(p, 1, 80)
	setInternalRightChild(p, 12)

	if internalChild(p, 0) != 10 || internalChild(p, 1) != 11 || internalChild(p, 2) != 12 {
		t.Fatalf("internalChild mismatch: %d %d %d", internalChild(p, 0), internalChild(p, 1), internalChild(p, 2))
	}
	if nodeMaxKey(p) != 80 {
		t.Errorf("nodeMaxKey = %d, want 80", nodeMaxKey(p))
	}
}

func TestInternalFindChild(t *testing.T) {
	p := newTestPage()
	initializeInternal(p)
	setInternalNumKeys(p, 3)
	setInternalCellChild(p, 0, 1)
	setInternalCellKey(p, 0, 10)
	setInternalCellChild(p, 1, 2)
	setInternalCellKey(p, 1, 20)
	setInternalCellChild(p, 2, 3)
	setInternalCellKey(p, 2, 30)
	setInternalRightChild(p, 4)

	cases := []struct {
		key  uint32
		want uint32
	}{
		{5, 0}, {10, 0}, {11, 1}, {20, 1}, {25, 2}, {30, 2}, {31, 3},
	}
	for _, c := range cases {
		if got := internalFindChild(p, c.key); got != c.want {
			t.Errorf("internalFindChild(%d) = %d, want %d", c.key, got, c.want)
		}
	}
}
