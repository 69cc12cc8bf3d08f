// Package eval evaluates program trees.
//
// Calls are eager by default: the arguments are evaluated and forced, and the
// callee runs to completion in a fresh scope. A lazy call instead produces a
// Thunk owned by the innermost scope of the caller. A thunk is forced when a
// Force node or an eager call needs its value, and at the latest when the
// scope owning it is popped.
//
// An Evaler is not safe for concurrent use.
package eval

import (
	"io"

	"src.reggae.sh/pkg/ast"
	"src.reggae.sh/pkg/diag"
	"src.reggae.sh/pkg/eval/errs"
	"src.reggae.sh/pkg/eval/vals"
	"src.reggae.sh/pkg/logutil"
	"src.reggae.sh/pkg/truth"
)

var logger = logutil.GetLogger("[eval] ")

// Evaler holds the declarations of a program and the state of its evaluation.
type Evaler struct {
	// Output of the print builtin and of truth tables.
	Out io.Writer
	// Layout of truth tables.
	Layout truth.Layout

	goFns   map[string]Callable
	fns     map[string]Callable
	structs map[string]*vals.StructType

	frame     *frame
	nextThunk int
}

// A call in progress.
type frame struct {
	name string
	// Range of the call site in the caller.
	site diag.Ranging
	up   *frame
}

// NewEvaler creates a new Evaler writing to out. The Go functions print, inc,
// not and eq are available to extern declarations.
func NewEvaler(out io.Writer) *Evaler {
	ev := &Evaler{
		Out:     out,
		goFns:   make(map[string]Callable),
		fns:     make(map[string]Callable),
		structs: make(map[string]*vals.StructType),
		frame:   &frame{name: "main"},
	}
	for name, impl := range builtinFns {
		ev.AddGoFn(name, impl)
	}
	return ev
}

// AddGoFn makes a Go function available to extern declarations. See NewGoFn
// for the supported signatures.
func (ev *Evaler) AddGoFn(name string, impl any) {
	ev.goFns[name] = NewGoFn(name, impl)
}

// Load adds the declarations of a program: externs are bound to Go functions,
// and struct types and functions are defined. Names must be unique among the
// structs, and among the functions and externs.
func (ev *Evaler) Load(p *ast.Program) error {
	for _, decl := range p.Structs {
		if _, ok := ev.structs[decl.Name]; ok {
			return ev.errorp(decl, errs.DuplicateBinding{Name: decl.Name})
		}
		ev.structs[decl.Name] = vals.NewStructType(decl.Name, decl.Fields...)
	}
	for _, decl := range p.Externs {
		fn, ok := ev.goFns[decl.Name]
		if !ok {
			return ev.errorp(decl, errs.UnboundName{Name: decl.Name})
		}
		if err := ev.define(decl, decl.Name, fn); err != nil {
			return err
		}
	}
	for _, def := range p.Funcs {
		c, err := NewClosure(def)
		if err != nil {
			return ev.errorp(def, err)
		}
		if err := ev.define(def, def.Name, c); err != nil {
			return err
		}
	}
	return nil
}

func (ev *Evaler) define(r diag.Ranger, name string, fn Callable) error {
	if _, ok := ev.fns[name]; ok {
		return ev.errorp(r, errs.DuplicateBinding{Name: name})
	}
	ev.fns[name] = fn
	logger.Printf("defined function %s", name)
	return nil
}

// Run loads a program and evaluates its main expression.
func (ev *Evaler) Run(p *ast.Program) (vals.Value, error) {
	if err := ev.Load(p); err != nil {
		return nil, err
	}
	return ev.Eval(p.Main)
}

// Eval evaluates an expression in a fresh environment. The environment is
// popped before returning, so all thunks created in it have been forced. A
// thunk result is replaced by its value.
func (ev *Evaler) Eval(e ast.Expr) (vals.Value, error) {
	env := NewEnv()
	v, err := ev.eval(env, e)
	if err == nil {
		err = env.checkEscape(v)
	}
	if popErr := env.PopScope(); err == nil {
		err = popErr
	}
	if err != nil {
		return nil, err
	}
	return Force(v)
}

// Calls fn with args on behalf of a call site. Thunk arguments are forced
// first, in order.
func (ev *Evaler) call(fn Callable, args []vals.Value, site *ast.Call) (vals.Value, error) {
	forced := make([]vals.Value, len(args))
	for i, arg := range args {
		v, err := Force(arg)
		if err != nil {
			return nil, err
		}
		forced[i] = v
	}
	ev.frame = &frame{name: fn.Name(), site: site.Range(), up: ev.frame}
	defer func() { ev.frame = ev.frame.up }()
	return fn.Call(ev, forced)
}

// Wraps err in an *Exception with the current stack trace, unless it is nil
// or already an *Exception.
func (ev *Evaler) errorp(r diag.Ranger, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Exception); ok {
		return err
	}
	return &Exception{Reason: err, StackTrace: ev.stackTrace(r)}
}

func (ev *Evaler) stackTrace(r diag.Ranger) *StackTrace {
	st := &StackTrace{Head: diag.NewContext(ev.frame.name, r)}
	tail := st
	for f := ev.frame; f.up != nil; f = f.up {
		tail.Next = &StackTrace{Head: diag.NewContext(f.up.name, f.site)}
		tail = tail.Next
	}
	return st
}
