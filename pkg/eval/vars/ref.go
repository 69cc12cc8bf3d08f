package vars

import (
	"src.reggae.sh/pkg/eval/errs"
	"src.reggae.sh/pkg/eval/vals"
)

// Ref is a non-owning reference to a Cell. It is itself a value, so it can be
// bound to names and passed to functions.
type Ref struct {
	cell     *Cell
	mode     Mode
	released bool
}

var _ Var = (*Ref)(nil)

func (r *Ref) Kind() vals.Kind { return vals.RefKind }

func (r *Ref) Repr() string {
	if r.mode == Exclusive {
		return "<ref mut " + r.cell.name + ">"
	}
	return "<ref " + r.cell.name + ">"
}

// Mode returns the mode of the reference.
func (r *Ref) Mode() Mode { return r.mode }

// Cell returns the cell the reference points to.
func (r *Ref) Cell() *Cell { return r.cell }

// Get reads the value of the target cell.
func (r *Ref) Get() vals.Value { return r.cell.value }

// Load reads the value of the target cell. It fails with errs.ReleasedRef once
// the reference has been released.
func (r *Ref) Load() (vals.Value, error) {
	if r.released {
		return nil, errs.ReleasedRef{Name: r.cell.name}
	}
	return r.cell.value, nil
}

// Set writes the target cell. Writing through a shared reference fails with
// errs.SetReadOnlyVar, and writing through a released one with
// errs.ReleasedRef.
func (r *Ref) Set(v vals.Value) error {
	if r.released {
		return errs.ReleasedRef{Name: r.cell.name}
	}
	if r.mode != Exclusive {
		return errs.SetReadOnlyVar{VarName: r.cell.name}
	}
	r.cell.value = v
	return nil
}

// Release ends the borrow. Releasing a reference more than once has no
// effect.
func (r *Ref) Release() {
	if r.released {
		return
	}
	r.released = true
	if r.mode == Exclusive {
		r.cell.exclusive = false
	} else {
		r.cell.shared--
	}
}

// Released returns whether Release has been called.
func (r *Ref) Released() bool { return r.released }
