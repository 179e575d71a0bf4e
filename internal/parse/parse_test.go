package parse

import (
	"strings"
	"testing"

	"vqlite/internal/row"
)

func TestParseInsertSuccess(t *testing.T) {
	stmt, err := Parse("insert 1 alice alice@x")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ins, ok := stmt.(Insert)
	if !ok {
		t.Fatalf("Parse returned %T, want Insert", stmt)
	}
	want := row.Row{ID: 1, Username: "alice", Email: "alice@x"}
	if ins.Row != want {
		t.Errorf("parsed row = %+v, want %+v", ins.Row, want)
	}
}

func TestParseSelect(t *testing.T) {
	stmt, err := Parse("select")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := stmt.(SelectAll); !ok {
		t.Fatalf("Parse returned %T, want SelectAll", stmt)
	}
}

func TestParseUnrecognized(t *testing.T) {
	if _, err := Parse("delete 1"); err != ErrUnrecognized {
		t.Errorf("err = %v, want ErrUnrecognized", err)
	}
}

func TestParseInsertMissingFieldsIsSyntaxError(t *testing.T) {
	if _, err := Parse("insert 1"); err != ErrSyntax {
		t.Errorf("err = %v, want ErrSyntax", err)
	}
}

func TestParseInsertNonPositiveIDRejected(t *testing.T) {
	if _, err := Parse("insert 0 a a@"); err != ErrNegativeID {
		t.Errorf("err = %v, want ErrNegativeID", err)
	}
	if _, err := Parse("insert -5 a a@"); err != ErrNegativeID {
		t.Errorf("err = %v, want ErrNegativeID", err)
	}
	if _, err := Parse("insert notanumber a a@"); err != ErrNegativeID {
		t.Errorf("err = %v, want ErrNegativeID", err)
	}
}

func TestParseInsertOversizedUsernameRejected(t *testing.T) {
	longName := strings.Repeat("a", row.UsernameMaxLen+1)
	if _, err := Parse("insert 1 " + longName + " a@x"); err != ErrStringTooLong {
		t.Errorf("err = %v, want ErrStringTooLong", err)
	}
}

func TestParseInsertOversizedEmailRejected(t *testing.T) {
	longEmail := strings.Repeat("a", row.EmailMaxLen+1)
	if _, err := Parse("insert 1 alice " + longEmail); err != ErrStringTooLong {
		t.Errorf("err = %v, want ErrStringTooLong", err)
	}
}
