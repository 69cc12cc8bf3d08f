// Package vars contains the storage slots of the runtime: cells that own a
// value, and references that borrow them.
package vars

import "src.reggae.sh/pkg/eval/vals"

// Var represents a readable and writable slot.
type Var interface {
	Set(v vals.Value) error
	Get() vals.Value
}

// Reader is the read half of Var. The expression graph built by the stack
// evaluator reads variable cells through this interface.
type Reader interface {
	Get() vals.Value
}

// Load reads r, failing if r is a released reference.
func Load(r Reader) (vals.Value, error) {
	if ref, ok := r.(*Ref); ok {
		return ref.Load()
	}
	return r.Get(), nil
}

// Mode is the mode of a reference.
type Mode int

// Possible values of Mode.
const (
	// Shared references are read-only and may alias each other.
	Shared Mode = iota
	// Exclusive references are read-write and never alias another reference.
	Exclusive
)

func (m Mode) String() string {
	if m == Exclusive {
		return "exclusive"
	}
	return "shared"
}

// IsReadOnly returns whether v refuses writes.
func IsReadOnly(v Var) bool {
	r, ok := v.(*Ref)
	return ok && r.mode == Shared
}
