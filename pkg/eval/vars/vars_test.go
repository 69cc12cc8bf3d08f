package vars

import (
	"errors"
	"testing"

	"src.reggae.sh/pkg/eval/errs"
	"src.reggae.sh/pkg/eval/vals"
)

func TestCell(t *testing.T) {
	c := NewCell("x", vals.Byte(1))
	if c.Name() != "x" {
		t.Errorf("Name -> %q, want x", c.Name())
	}
	if g := c.Get(); g != vals.Byte(1) {
		t.Errorf("Get -> %v, want 1", g)
	}
	if err := c.Set(vals.Byte(2)); err != nil {
		t.Errorf("Set -> error %v", err)
	}
	if g := c.Get(); g != vals.Byte(2) {
		t.Errorf("Get after Set -> %v, want 2", g)
	}
}

func TestBorrow_SharedAliases(t *testing.T) {
	c := NewCell("x", vals.Bool(true))
	r1, err := c.Borrow()
	if err != nil {
		t.Fatalf("first Borrow -> error %v", err)
	}
	r2, err := c.Borrow()
	if err != nil {
		t.Fatalf("second Borrow -> error %v", err)
	}
	if r1.Get() != vals.Bool(true) || r2.Get() != vals.Bool(true) {
		t.Errorf("shared references don't read the cell")
	}
	if !IsReadOnly(r1) {
		t.Errorf("shared reference is not read-only")
	}
	err = r1.Set(vals.Bool(false))
	if err != (errs.SetReadOnlyVar{VarName: "x"}) {
		t.Errorf("Set through shared reference -> %v, want SetReadOnlyVar", err)
	}
}

func TestBorrow_ExclusiveConflicts(t *testing.T) {
	c := NewCell("x", vals.Byte(0))
	r, err := c.BorrowMut()
	if err != nil {
		t.Fatalf("BorrowMut -> error %v", err)
	}

	_, err = c.BorrowMut()
	wantErr := errs.BorrowConflict{
		Name: "x", Want: "exclusive", Held: "an exclusive reference is live"}
	if err != wantErr {
		t.Errorf("second BorrowMut -> %v, want %v", err, wantErr)
	}
	_, err = c.Borrow()
	var conflict errs.BorrowConflict
	if !errors.As(err, &conflict) || conflict.Want != "shared" {
		t.Errorf("Borrow while exclusive -> %v, want shared BorrowConflict", err)
	}
	if err := c.Set(vals.Byte(9)); err == nil {
		t.Errorf("owner Set while exclusively borrowed -> nil error")
	}

	if err := r.Set(vals.Byte(5)); err != nil {
		t.Errorf("Set through exclusive reference -> error %v", err)
	}
	if c.Get() != vals.Byte(5) {
		t.Errorf("write through exclusive reference is not visible in the cell")
	}
	if IsReadOnly(r) {
		t.Errorf("exclusive reference is read-only")
	}

	r.Release()
	r.Release()
	if c.Borrowed() {
		t.Errorf("cell still borrowed after Release")
	}
	if _, err := c.BorrowMut(); err != nil {
		t.Errorf("BorrowMut after Release -> error %v", err)
	}
}

func TestBorrow_SharedBlocksExclusive(t *testing.T) {
	c := NewCell("x", vals.Byte(0))
	r1, _ := c.Borrow()
	r2, _ := c.Borrow()

	_, err := c.BorrowMut()
	wantErr := errs.BorrowConflict{
		Name: "x", Want: "exclusive", Held: "2 shared references are live"}
	if err != wantErr {
		t.Errorf("BorrowMut -> %v, want %v", err, wantErr)
	}

	r1.Release()
	_, err = c.BorrowMut()
	wantErr.Held = "1 shared reference is live"
	if err != wantErr {
		t.Errorf("BorrowMut -> %v, want %v", err, wantErr)
	}

	r2.Release()
	if !r2.Released() {
		t.Errorf("Released -> false after Release")
	}
	if _, err := c.BorrowMut(); err != nil {
		t.Errorf("BorrowMut after all releases -> error %v", err)
	}
}

func TestRef_Value(t *testing.T) {
	c := NewCell("flag", vals.Bool(false))
	r, _ := c.Borrow()
	if r.Kind() != vals.RefKind {
		t.Errorf("Kind -> %v, want ref", r.Kind())
	}
	if r.Repr() != "<ref flag>" {
		t.Errorf("Repr -> %q", r.Repr())
	}
	if r.Cell() != c || r.Mode() != Shared {
		t.Errorf("Cell or Mode wrong")
	}
	r.Release()

	m, _ := c.BorrowMut()
	if m.Repr() != "<ref mut flag>" {
		t.Errorf("Repr -> %q", m.Repr())
	}
	if m.Mode().String() != "exclusive" {
		t.Errorf("Mode.String -> %q", m.Mode())
	}
}

func TestRef_ReleasedRefusesAccess(t *testing.T) {
	c := NewCell("x", vals.Byte(1))
	r, _ := c.BorrowMut()
	if v, err := r.Load(); v != vals.Byte(1) || err != nil {
		t.Errorf("Load -> (%v, %v), want (1, nil)", v, err)
	}
	r.Release()

	wantErr := errs.ReleasedRef{Name: "x"}
	if _, err := r.Load(); err != wantErr {
		t.Errorf("Load after Release -> %v, want %v", err, wantErr)
	}
	if _, err := Load(r); err != wantErr {
		t.Errorf("Load(r) after Release -> %v, want %v", err, wantErr)
	}
	if err := r.Set(vals.Byte(7)); err != wantErr {
		t.Errorf("Set after Release -> %v, want %v", err, wantErr)
	}

	// A second exclusive reference is the only writer
	m, _ := c.BorrowMut()
	m.Set(vals.Byte(2))
	r.Set(vals.Byte(7))
	if g := c.Get(); g != vals.Byte(2) {
		t.Errorf("cell holds %v, want 2", g)
	}
	if v, err := Load(c); v != vals.Byte(2) || err != nil {
		t.Errorf("Load(cell) -> (%v, %v), want (2, nil)", v, err)
	}
}
