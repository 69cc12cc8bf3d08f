package eval

import (
	"errors"
	"testing"

	"src.reggae.sh/pkg/eval/errs"
	"src.reggae.sh/pkg/eval/vals"
	"src.reggae.sh/pkg/eval/vars"
)

func TestEnv_BindAndLookup(t *testing.T) {
	env := NewEnv()
	if err := env.Bind("x", vals.Byte(1)); err != nil {
		t.Fatal(err)
	}
	if err := env.Bind("x", vals.Byte(2)); err != (errs.DuplicateBinding{Name: "x"}) {
		t.Errorf("Bind twice -> %v, want DuplicateBinding", err)
	}

	env.PushScope()
	env.Bind("x", vals.Byte(3))
	if v, _ := env.Lookup("x"); v != vals.Byte(3) {
		t.Errorf("shadowed x = %v, want 3", v)
	}
	if env.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", env.Depth())
	}
	env.PopScope()
	if v, _ := env.Lookup("x"); v != vals.Byte(1) {
		t.Errorf("x after pop = %v, want 1", v)
	}
	if _, err := env.Lookup("y"); err != (errs.UnboundName{Name: "y"}) {
		t.Errorf("Lookup(y) -> %v, want UnboundName", err)
	}
}

func TestEnv_PopScopeReleasesRefs(t *testing.T) {
	env := NewEnv()
	env.Bind("x", vals.Byte(1))
	env.PushScope()
	r, err := env.BorrowExclusive("x")
	if err != nil {
		t.Fatal(err)
	}
	_, err = env.BorrowShared("x")
	var conflict errs.BorrowConflict
	if !errors.As(err, &conflict) {
		t.Errorf("BorrowShared while exclusive -> %v, want BorrowConflict", err)
	}
	env.PopScope()
	if !r.Released() {
		t.Errorf("reference not released by PopScope")
	}
	if _, err := env.BorrowShared("x"); err != nil {
		t.Errorf("BorrowShared after release -> %v", err)
	}
}

func TestEnv_Resolve(t *testing.T) {
	env := NewEnv()
	env.Bind("x", vals.Bool(true))
	r, _ := env.BorrowShared("x")
	env.Bind("r", r)

	if c, ok := env.Resolve("x"); !ok || c.(*vars.Cell).Name() != "x" {
		t.Errorf("Resolve(x) -> %v, %v", c, ok)
	}
	if got, ok := env.Resolve("r"); !ok || got != vars.Reader(r) {
		t.Errorf("Resolve(r) -> %v, %v, want the reference", got, ok)
	}
	if _, ok := env.Resolve("y"); ok {
		t.Errorf("Resolve(y) -> true")
	}
}

func TestEnv_CheckEscape(t *testing.T) {
	env := NewEnv()
	env.Bind("x", vals.Byte(1))
	env.PushScope()
	env.Bind("y", vals.Byte(2))
	rx, _ := env.BorrowShared("x")
	ry, _ := env.BorrowShared("y")

	if err := env.checkEscape(rx); err != nil {
		t.Errorf("reference to outer cell -> %v", err)
	}
	if err := env.checkEscape(ry); err != (errs.EscapingRef{Name: "y"}) {
		t.Errorf("reference to inner cell -> %v, want EscapingRef", err)
	}
	box := vals.NewStructType("box", "v")
	s, _ := box.New(ry)
	if err := env.checkEscape(s); err != (errs.EscapingRef{Name: "y"}) {
		t.Errorf("struct holding reference to inner cell -> %v, want EscapingRef", err)
	}

	kept, _ := env.popScope(rx)
	if len(kept) != 1 || kept[0] != rx {
		t.Errorf("popScope kept %v, want the reference held by the result", kept)
	}
	if rx.Released() || !ry.Released() {
		t.Errorf("got released %v and %v, want false and true", rx.Released(), ry.Released())
	}
}
