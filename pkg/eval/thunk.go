package eval

import (
	"fmt"

	"src.reggae.sh/pkg/ast"
	"src.reggae.sh/pkg/eval/errs"
	"src.reggae.sh/pkg/eval/vals"
)

// ThunkState is the state of a Thunk.
type ThunkState int

// Possible values of ThunkState. A thunk starts Pending, and ends either
// Forced or Failed; both are terminal.
const (
	Pending ThunkState = iota
	// Forcing is the state of a thunk whose call is running.
	Forcing
	Forced
	Failed
)

func (s ThunkState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Forcing:
		return "forcing"
	case Forced:
		return "forced"
	case Failed:
		return "failed"
	default:
		return "!!thunk state"
	}
}

// Thunk is a deferred call. It holds the callee and the arguments captured
// when the call was deferred. Forcing it runs the call at most once and
// caches the outcome.
type Thunk struct {
	id    int
	ev    *Evaler
	fn    Callable
	args  []vals.Value
	site  *ast.Call
	state ThunkState
	value vals.Value
	err   error
}

var _ vals.Value = (*Thunk)(nil)

func (t *Thunk) Kind() vals.Kind { return vals.ThunkKind }

func (t *Thunk) Repr() string {
	switch t.state {
	case Forced:
		return fmt.Sprintf("<thunk %s forced: %s>", t.name(), t.value.Repr())
	default:
		return fmt.Sprintf("<thunk %s %s>", t.name(), t.state)
	}
}

func (t *Thunk) name() string { return fmt.Sprintf("%s#%d", t.fn.Name(), t.id) }

// State returns the state of the thunk.
func (t *Thunk) State() ThunkState { return t.state }

// Defer creates a pending thunk for calling fn with args, owned by the
// innermost scope of env. The arguments are captured as they are; thunks among
// them are forced when the new thunk is.
func (ev *Evaler) Defer(env *Env, fn Callable, args []vals.Value, site *ast.Call) *Thunk {
	ev.nextThunk++
	t := &Thunk{id: ev.nextThunk, ev: ev, fn: fn, args: args, site: site}
	env.own(t)
	logger.Printf("deferred %s", t.name())
	return t
}

// Force returns the value of a thunk, running its call if it is pending.
// Forcing is depth-first: thunk arguments are forced before the call, and a
// thunk returned by the call is forced before being cached. Forcing a thunk
// whose call is running fails with errs.CyclicForce.
func (t *Thunk) Force() (vals.Value, error) {
	switch t.state {
	case Forced:
		return t.value, nil
	case Failed:
		return nil, t.err
	case Forcing:
		return nil, errs.CyclicForce{What: "thunk " + t.name()}
	}
	t.state = Forcing
	logger.Printf("forcing %s", t.name())
	v, err := t.ev.call(t.fn, t.args, t.site)
	if err == nil {
		v, err = Force(v)
	}
	t.args = nil
	if err != nil {
		t.state, t.err = Failed, err
		return nil, err
	}
	t.state, t.value = Forced, v
	return v, nil
}

// Force forces v if it is a thunk, and returns it unchanged otherwise.
func Force(v vals.Value) (vals.Value, error) {
	if t, ok := v.(*Thunk); ok {
		return t.Force()
	}
	return v, nil
}

// Forces the pending thunks of a scope in creation order. All of them are
// forced even if some fail, and the first error is returned. The list may
// grow while it is being walked.
func forceAllPending(s *scope) error {
	var firstErr error
	for i := 0; i < len(s.pending); i++ {
		t := s.pending[i]
		if t.state != Pending {
			continue
		}
		if _, err := t.Force(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.pending = nil
	return firstErr
}
