package eval

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"src.reggae.sh/pkg/ast"
	"src.reggae.sh/pkg/eval/errs"
	"src.reggae.sh/pkg/eval/vals"
)

var testSite = &ast.Call{Fn: "test"}

func TestThunk_ForceOnce(t *testing.T) {
	ev := NewEvaler(io.Discard)
	env := NewEnv()
	n := 0
	count := NewGoFn("count", func() vals.Byte { n++; return vals.Byte(n) })

	th := ev.Defer(env, count, nil, testSite)
	if th.State() != Pending || th.Repr() != "<thunk count#1 pending>" {
		t.Errorf("new thunk is %s", th.Repr())
	}
	for i := 0; i < 2; i++ {
		v, err := th.Force()
		if v != vals.Byte(1) || err != nil {
			t.Errorf("Force() -> %v, %v, want 1, nil", v, err)
		}
	}
	if err := env.PopScope(); err != nil {
		t.Errorf("PopScope() -> %v", err)
	}
	if n != 1 {
		t.Errorf("call ran %d times, want 1", n)
	}
	if th.Repr() != "<thunk count#1 forced: 1>" {
		t.Errorf("forced thunk is %s", th.Repr())
	}
}

func TestThunk_PopScopeForcesInCreationOrder(t *testing.T) {
	ev := NewEvaler(io.Discard)
	env := NewEnv()
	env.PushScope()
	var order []int
	record := func(i int) Callable {
		return NewGoFn(fmt.Sprint("f", i), func() error {
			order = append(order, i)
			if i == 2 {
				return errs.UnboundName{Name: "two"}
			}
			return nil
		})
	}
	for i := 1; i <= 4; i++ {
		ev.Defer(env, record(i), nil, testSite)
	}
	err := env.PopScope()
	if fmt.Sprint(order) != "[1 2 3 4]" {
		t.Errorf("forced in order %v, want [1 2 3 4]", order)
	}
	if Reason(err) != (errs.UnboundName{Name: "two"}) {
		t.Errorf("PopScope() -> %v, want the first error", err)
	}
}

func TestForceAllPending_Empty(t *testing.T) {
	if err := forceAllPending(newScope()); err != nil {
		t.Errorf("forceAllPending on empty scope -> %v", err)
	}
}

func TestThunk_CyclicForce(t *testing.T) {
	ev := NewEvaler(io.Discard)
	env := NewEnv()
	var th *Thunk
	self := NewGoFn("self", func() (vals.Value, error) { return th.Force() })
	th = ev.Defer(env, self, nil, testSite)

	want := errs.CyclicForce{What: "thunk self#1"}
	for i := 0; i < 2; i++ {
		_, err := th.Force()
		if !errors.Is(err, want) {
			t.Errorf("Force() -> %v, want %v", err, want)
		}
	}
	if th.State() != Failed {
		t.Errorf("state is %v, want failed", th.State())
	}
}

func TestThunk_ForcesThunkArguments(t *testing.T) {
	ev := NewEvaler(io.Discard)
	env := NewEnv()
	inner := ev.Defer(env, NewGoFn("one", func() vals.Byte { return 1 }), nil, testSite)
	outer := ev.Defer(env, NewGoFn("id", func(v vals.Value) vals.Value { return v }),
		[]vals.Value{inner}, testSite)

	v, err := outer.Force()
	if v != vals.Byte(1) || err != nil {
		t.Errorf("Force() -> %v, %v, want 1, nil", v, err)
	}
	if inner.State() != Forced {
		t.Errorf("argument thunk is %v, want forced", inner.State())
	}
}

func TestForce_NonThunk(t *testing.T) {
	if v, err := Force(vals.Bool(true)); v != vals.Bool(true) || err != nil {
		t.Errorf("Force(true) -> %v, %v", v, err)
	}
}

func TestThunkState_String(t *testing.T) {
	for state, want := range map[ThunkState]string{
		Pending: "pending", Forcing: "forcing", Forced: "forced", Failed: "failed", 9: "!!thunk state",
	} {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(state), got, want)
		}
	}
}
