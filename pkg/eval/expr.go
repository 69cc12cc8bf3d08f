package eval

import (
	"fmt"

	"src.reggae.sh/pkg/ast"
	"src.reggae.sh/pkg/eval/errs"
	"src.reggae.sh/pkg/eval/vals"
	"src.reggae.sh/pkg/eval/vars"
)

// Evaluates an expression in env. Errors are wrapped into exceptions at the
// innermost node that raises them.
func (ev *Evaler) eval(env *Env, e ast.Expr) (vals.Value, error) {
	v, err := ev.evalNode(env, e)
	if err != nil {
		return nil, ev.errorp(e, err)
	}
	return v, nil
}

func (ev *Evaler) evalNode(env *Env, e ast.Expr) (vals.Value, error) {
	switch e := e.(type) {
	case *ast.Unit:
		return vals.TheUnit, nil
	case *ast.BoolLit:
		return vals.Bool(e.Value), nil
	case *ast.ByteLit:
		return vals.Byte(e.Value), nil
	case *ast.Ident:
		return env.Lookup(e.Name)
	case *ast.StructLit:
		return ev.evalStruct(env, e)
	case *ast.Field:
		x, err := ev.eval(env, e.X)
		if err != nil {
			return nil, err
		}
		s, ok := x.(*vals.Struct)
		if !ok {
			return nil, errs.TypeMismatch{What: "operand of ." + e.Name, Valid: "struct", Actual: vals.KindOf(x)}
		}
		return s.Field(e.Name)
	case *ast.Call:
		return ev.evalCall(env, e)
	case *ast.Force:
		x, err := ev.eval(env, e.X)
		if err != nil {
			return nil, err
		}
		return Force(x)
	case *ast.Let:
		// The value is evaluated in the scope of the let, so that references
		// and thunks it creates end with the binding.
		env.PushScope()
		v, err := ev.eval(env, e.Value)
		if err != nil {
			env.PopScope()
			return nil, err
		}
		if err := env.Bind(e.Name, v); err != nil {
			env.PopScope()
			return nil, err
		}
		return ev.evalInScope(env, e.Body)
	case *ast.Seq:
		var v vals.Value = vals.TheUnit
		for _, x := range e.Exprs {
			var err error
			v, err = ev.eval(env, x)
			if err != nil {
				return nil, err
			}
		}
		return v, nil
	case *ast.If:
		c, err := ev.eval(env, e.Cond)
		if err != nil {
			return nil, err
		}
		b, err := toBool("condition of if", c)
		if err != nil {
			return nil, err
		}
		switch {
		case bool(b):
			return ev.eval(env, e.Then)
		case e.Else != nil:
			return ev.eval(env, e.Else)
		default:
			return vals.TheUnit, nil
		}
	case *ast.Match:
		return ev.evalMatch(env, e)
	case *ast.Borrow:
		if e.Mut {
			return env.BorrowExclusive(e.Name)
		}
		return env.BorrowShared(e.Name)
	case *ast.Deref:
		x, err := ev.eval(env, e.X)
		if err != nil {
			return nil, err
		}
		return deref(x)
	case *ast.Assign:
		return ev.evalAssign(env, e)
	case *ast.Logic:
		return evalLogic(env, e.Tokens)
	case *ast.TruthTable:
		return vals.TheUnit, ev.printTruthTable(e.Tokens)
	default:
		panic(fmt.Sprintf("unknown node type %T", e))
	}
}

// Evaluates an expression in the scope just pushed onto env, then pops it.
// References taken in the scope and held by the result are handed to the
// enclosing scope; references to cells of the popped scope cannot escape.
func (ev *Evaler) evalInScope(env *Env, e ast.Expr) (vals.Value, error) {
	v, err := ev.eval(env, e)
	if err == nil {
		err = env.checkEscape(v)
	}
	if err != nil {
		env.PopScope()
		return nil, err
	}
	kept, err := env.popScope(v)
	env.adopt(kept)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (ev *Evaler) evalStruct(env *Env, e *ast.StructLit) (vals.Value, error) {
	st, ok := ev.structs[e.Type]
	if !ok {
		return nil, errs.UnboundName{Name: e.Type}
	}
	fields := make([]vals.Value, len(e.Fields))
	for i, f := range e.Fields {
		v, err := ev.eval(env, f)
		if err != nil {
			return nil, err
		}
		fields[i] = v
	}
	return st.New(fields...)
}

func (ev *Evaler) evalCall(env *Env, e *ast.Call) (vals.Value, error) {
	fn, ok := ev.fns[e.Fn]
	if !ok {
		if v, err := env.Lookup(e.Fn); err == nil {
			return nil, errs.NotCallable{Name: e.Fn, Kind: vals.KindOf(v)}
		}
		return nil, errs.UnboundName{Name: e.Fn}
	}
	args := make([]vals.Value, len(e.Args))
	for i, arg := range e.Args {
		v, err := ev.eval(env, arg)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if e.Lazy {
		return ev.Defer(env, fn, args, e), nil
	}
	return ev.call(fn, args, e)
}

func (ev *Evaler) evalAssign(env *Env, e *ast.Assign) (vals.Value, error) {
	v, err := ev.eval(env, e.Value)
	if err != nil {
		return nil, err
	}
	switch target := e.Target.(type) {
	case *ast.Ident:
		c, err := env.Cell(target.Name)
		if err != nil {
			return nil, err
		}
		if err := env.checkStore(c, v); err != nil {
			return nil, err
		}
		return vals.TheUnit, c.Set(v)
	case *ast.Deref:
		x, err := ev.eval(env, target.X)
		if err != nil {
			return nil, err
		}
		r, ok := x.(*vars.Ref)
		if !ok {
			return nil, errs.TypeMismatch{What: "target of assignment", Valid: "ref", Actual: vals.KindOf(x)}
		}
		if err := env.checkStore(r.Cell(), v); err != nil {
			return nil, err
		}
		return vals.TheUnit, r.Set(v)
	default:
		return nil, errs.TypeMismatch{What: "target of assignment", Valid: "name or dereference", Actual: "expression"}
	}
}

func deref(v vals.Value) (vals.Value, error) {
	switch v := v.(type) {
	case *vars.Ref:
		return v.Load()
	case *LogicRef:
		return v.Root.Eval()
	default:
		return nil, errs.TypeMismatch{What: "operand of deref", Valid: "ref", Actual: vals.KindOf(v)}
	}
}

// Converts a condition to a Bool. References to booleans are read through.
func toBool(what string, v vals.Value) (vals.Bool, error) {
	switch v.(type) {
	case *vars.Ref, *LogicRef:
		x, err := deref(v)
		if err != nil {
			return false, err
		}
		return vals.ToBool(what, x)
	}
	return vals.ToBool(what, v)
}
