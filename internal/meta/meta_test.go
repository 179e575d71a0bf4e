package meta

import (
	"bytes"
	"path/filepath"
	"testing"

	"vqlite/internal/row"
	"vqlite/internal/table"
)

func mustOpen(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.Open(filepath.Join(t.TempDir(), "meta.db"))
	if err != nil {
		t.Fatalf("table.Open: %v", err)
	}
	return tbl
}

func TestIsMetaCommand(t *testing.T) {
	cases := map[string]bool{
		":q": true, ":c": true, ":tree": true, ":d": true, "dbg": true,
		"select": false, "insert 1 a a@": false, "": false,
	}
	for line, want := range cases {
		if got := IsMetaCommand(line); got != want {
			t.Errorf("IsMetaCommand(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestDispatchQuit(t *testing.T) {
	tbl := mustOpen(t)
	defer tbl.Close()

	var buf bytes.Buffer
	result, err := Dispatch(&buf, tbl, ":q")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if result != Quit {
		t.Errorf("result = %v, want Quit", result)
	}
}

func TestDispatchUnrecognized(t *testing.T) {
	tbl := mustOpen(t)
	defer tbl.Close()

	var buf bytes.Buffer
	result, err := Dispatch(&buf, tbl, ":bogus")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if result != Unrecognized {
		t.Errorf("result = %v, want Unrecognized", result)
	}
}

func TestDispatchConstantsAndTree(t *testing.T) {
	tbl := mustOpen(t)
	defer tbl.Close()

	if err := tbl.Insert(1, row.Row{ID: 1, Username: "a", Email: "a@x"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	var buf bytes.Buffer
	if _, err := Dispatch(&buf, tbl, ":c"); err != nil {
		t.Fatalf("Dispatch :c: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("ROW_SIZE")) {
		t.Errorf(":c output missing ROW_SIZE: %s", buf.String())
	}

	buf.Reset()
	if _, err := Dispatch(&buf, tbl, ":tree"); err != nil {
		t.Fatalf("Dispatch :tree: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("leaf (size 1)")) {
		t.Errorf(":tree output missing leaf: %s", buf.String())
	}
}
