// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.reggae.sh/pkg/store/storedefs"
	"src.reggae.sh/pkg/truth"
)

var (
	lines     = []string{"x y &", "x !", "T F =>", "x y |"}
	startSeq  = 1
	endSeq    = startSeq + len(lines)
	prevTests = []struct {
		upto   int
		prefix string
		want   storedefs.Line
		err    error
	}{
		{endSeq, "x", storedefs.Line{Text: "x y |", Seq: 4}, nil},
		{4, "x", storedefs.Line{Text: "x !", Seq: 2}, nil},
		{3, "x y", storedefs.Line{Text: "x y &", Seq: 1}, nil},
		{endSeq, "T", storedefs.Line{Text: "T F =>", Seq: 3}, nil},
		{1, "", storedefs.Line{}, storedefs.ErrNoMatchingLine},
		{endSeq, "y", storedefs.Line{}, storedefs.ErrNoMatchingLine},
	}
)

// TestLines tests the line history functionality of a Store.
func TestLines(t *testing.T, store storedefs.Store) {
	seq, err := store.NextLineSeq()
	if seq != startSeq || err != nil {
		t.Errorf("store.NextLineSeq() -> (%v, %v), want (%v, nil)", seq, err, startSeq)
	}

	for i, line := range lines {
		wantSeq := startSeq + i
		seq, err := store.AddLine(line)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddLine(%v) -> (%v, %v), want (%v, nil)", line, seq, err, wantSeq)
		}
	}

	seq, err = store.NextLineSeq()
	if seq != endSeq || err != nil {
		t.Errorf("store.NextLineSeq() -> (%v, %v), want (%v, nil)", seq, err, endSeq)
	}

	got, err := store.Lines(2, 4)
	want := []storedefs.Line{{Text: "x !", Seq: 2}, {Text: "T F =>", Seq: 3}}
	if err != nil || !cmp.Equal(got, want) {
		t.Errorf("store.Lines(2, 4) -> (%v, %v), want (%v, nil)", got, err, want)
	}

	for _, tt := range prevTests {
		line, err := store.PrevLine(tt.upto, tt.prefix)
		if line != tt.want || err != tt.err {
			t.Errorf("store.PrevLine(%v, %q) -> (%v, %v), want (%v, %v)",
				tt.upto, tt.prefix, line, err, tt.want, tt.err)
		}
	}
}

// TestTables tests the truth table functionality of a Store.
func TestTables(t *testing.T, store storedefs.Store) {
	const expr = "x y &"
	if _, err := store.Table(expr); err != storedefs.ErrNoTable {
		t.Errorf("store.Table(%q) -> %v, want ErrNoTable", expr, err)
	}

	table := storedefs.Table{
		Names: []string{"x", "y"},
		Rows: []truth.Row{
			{Values: []bool{false, false}, Result: false},
			{Values: []bool{false, true}, Result: false},
			{Values: []bool{true, false}, Result: false},
			{Values: []bool{true, true}, Result: true},
		},
	}
	if err := store.PutTable(expr, table); err != nil {
		t.Errorf("store.PutTable(%q) -> %v, want nil", expr, err)
	}
	got, err := store.Table(expr)
	if err != nil || !cmp.Equal(got, table) {
		t.Errorf("store.Table(%q) -> (%v, %v), want (%v, nil)", expr, got, err, table)
	}

	if err := store.DelTable(expr); err != nil {
		t.Errorf("store.DelTable(%q) -> %v, want nil", expr, err)
	}
	if _, err := store.Table(expr); err != storedefs.ErrNoTable {
		t.Errorf("store.Table(%q) after delete -> %v, want ErrNoTable", expr, err)
	}
}
