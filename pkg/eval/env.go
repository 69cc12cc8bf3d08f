package eval

import (
	"src.reggae.sh/pkg/eval/errs"
	"src.reggae.sh/pkg/eval/vals"
	"src.reggae.sh/pkg/eval/vars"
)

// Env is an ordered stack of scopes. Names are unique within a scope, and a
// binding in an inner scope shadows bindings of the same name in outer
// scopes.
//
// Each scope owns the thunks created while it is the innermost scope and the
// references taken while it is the innermost scope. Popping a scope forces
// its pending thunks, then releases its references.
type Env struct {
	scopes []*scope
}

type scope struct {
	names   map[string]*vars.Cell
	pending []*Thunk
	refs    []*vars.Ref
}

func newScope() *scope { return &scope{names: make(map[string]*vars.Cell)} }

// NewEnv returns an environment with one empty scope.
func NewEnv() *Env {
	return &Env{scopes: []*scope{newScope()}}
}

// Depth returns the number of scopes.
func (e *Env) Depth() int { return len(e.scopes) }

func (e *Env) innermost() *scope { return e.scopes[len(e.scopes)-1] }

// PushScope pushes a new empty scope.
func (e *Env) PushScope() {
	e.scopes = append(e.scopes, newScope())
}

// PopScope pops the innermost scope. All thunks owned by the scope that are
// still pending are forced in creation order before the bindings are dropped
// and the references taken in the scope are released. Every thunk is forced
// even if an earlier one fails; the first error is returned.
func (e *Env) PopScope() error {
	_, err := e.popScope(nil)
	return err
}

// Like PopScope, but the references held by result are not released and are
// returned instead, so that the caller can hand them to the scope receiving
// the result.
func (e *Env) popScope(result vals.Value) ([]*vars.Ref, error) {
	s := e.innermost()
	nThunks := len(s.pending)
	err := forceAllPending(s)
	held := refsHeldBy(result)
	var kept []*vars.Ref
	for _, r := range s.refs {
		if containsRef(held, r) {
			kept = append(kept, r)
		} else {
			r.Release()
		}
	}
	e.scopes = e.scopes[:len(e.scopes)-1]
	logger.Printf("popped scope with %d bindings, %d thunks, %d references",
		len(s.names), nThunks, len(s.refs))
	return kept, err
}

// Makes the innermost scope responsible for releasing refs.
func (e *Env) adopt(refs []*vars.Ref) {
	s := e.innermost()
	s.refs = append(s.refs, refs...)
}

// Bind binds a name in the innermost scope.
func (e *Env) Bind(name string, v vals.Value) error {
	s := e.innermost()
	if _, ok := s.names[name]; ok {
		return errs.DuplicateBinding{Name: name}
	}
	s.names[name] = vars.NewCell(name, v)
	return nil
}

// Cell returns the cell bound to name in the innermost scope that binds it.
func (e *Env) Cell(name string) (*vars.Cell, error) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if c, ok := e.scopes[i].names[name]; ok {
			return c, nil
		}
	}
	return nil, errs.UnboundName{Name: name}
}

// Lookup returns the value bound to name.
func (e *Env) Lookup(name string) (vals.Value, error) {
	c, err := e.Cell(name)
	if err != nil {
		return nil, err
	}
	return c.Get(), nil
}

// BorrowShared takes a shared reference to the cell bound to name. The
// reference is released when the innermost scope is popped.
func (e *Env) BorrowShared(name string) (*vars.Ref, error) {
	return e.borrow(name, (*vars.Cell).Borrow)
}

// BorrowExclusive takes an exclusive reference to the cell bound to name. The
// reference is released when the innermost scope is popped.
func (e *Env) BorrowExclusive(name string) (*vars.Ref, error) {
	return e.borrow(name, (*vars.Cell).BorrowMut)
}

func (e *Env) borrow(name string, f func(*vars.Cell) (*vars.Ref, error)) (*vars.Ref, error) {
	c, err := e.Cell(name)
	if err != nil {
		return nil, err
	}
	r, err := f(c)
	if err != nil {
		return nil, err
	}
	s := e.innermost()
	s.refs = append(s.refs, r)
	return r, nil
}

// Resolve resolves a name for the stack evaluator. A name bound to a
// reference resolves to the reference, so the expression reads through it;
// other names resolve to their cell.
func (e *Env) Resolve(name string) (vars.Reader, bool) {
	c, err := e.Cell(name)
	if err != nil {
		return nil, false
	}
	if r, ok := c.Get().(*vars.Ref); ok {
		return r, true
	}
	return c, true
}

func (e *Env) own(t *Thunk) {
	s := e.innermost()
	s.pending = append(s.pending, t)
}

// Returns an EscapingRef error if v holds a reference to a cell bound in the
// innermost scope.
func (e *Env) checkEscape(v vals.Value) error {
	s := e.innermost()
	for _, c := range cellsReferencedBy(v) {
		if s.names[c.Name()] == c {
			return errs.EscapingRef{Name: c.Name()}
		}
	}
	return nil
}

// Returns an EscapingRef error if storing v into c would leave c holding a
// reference that is released, or whose target is dropped, before c itself.
// Cells and references that do not belong to env count as outermost.
func (e *Env) checkStore(c *vars.Cell, v vals.Value) error {
	depth := e.cellDepth(c)
	for _, target := range cellsReferencedBy(v) {
		if e.cellDepth(target) > depth {
			return errs.EscapingRef{Name: target.Name()}
		}
	}
	for _, r := range refsHeldBy(v) {
		if e.refDepth(r) > depth {
			return errs.EscapingRef{Name: r.Cell().Name()}
		}
	}
	return nil
}

// Returns the index of the scope binding c, or -1.
func (e *Env) cellDepth(c *vars.Cell) int {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if e.scopes[i].names[c.Name()] == c {
			return i
		}
	}
	return -1
}

// Returns the index of the scope that releases r, or -1.
func (e *Env) refDepth(r *vars.Ref) int {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if containsRef(e.scopes[i].refs, r) {
			return i
		}
	}
	return -1
}

func cellsReferencedBy(v vals.Value) []*vars.Cell {
	switch v := v.(type) {
	case *vars.Ref:
		return []*vars.Cell{v.Cell()}
	case *LogicRef:
		return v.cells
	case *vals.Struct:
		var cells []*vars.Cell
		for _, f := range v.Fields {
			cells = append(cells, cellsReferencedBy(f)...)
		}
		return cells
	}
	return nil
}

func refsHeldBy(v vals.Value) []*vars.Ref {
	switch v := v.(type) {
	case *vars.Ref:
		return []*vars.Ref{v}
	case *LogicRef:
		return v.refs
	case *vals.Struct:
		var refs []*vars.Ref
		for _, f := range v.Fields {
			refs = append(refs, refsHeldBy(f)...)
		}
		return refs
	}
	return nil
}

func containsRef(refs []*vars.Ref, r *vars.Ref) bool {
	for _, x := range refs {
		if x == r {
			return true
		}
	}
	return false
}
