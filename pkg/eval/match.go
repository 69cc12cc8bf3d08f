package eval

import (
	"src.reggae.sh/pkg/ast"
	"src.reggae.sh/pkg/eval/errs"
	"src.reggae.sh/pkg/eval/vals"
	"src.reggae.sh/pkg/match"
)

// Evaluates a match. The guard and the body of an arm run in a new scope
// holding the names bound by its pattern.
func (ev *Evaler) evalMatch(env *Env, e *ast.Match) (vals.Value, error) {
	subject, err := ev.eval(env, e.Subject)
	if err != nil {
		return nil, err
	}
	arms := make([]match.Arm[vals.Value, vals.Value], len(e.Arms))
	for i, arm := range e.Arms {
		p, err := ev.pattern(arm.Pattern)
		if err != nil {
			return nil, ev.errorp(arm.Pattern, err)
		}
		arms[i] = match.Arm[vals.Value, vals.Value]{
			Pattern: p,
			Body:    ev.armBody(env, arm.Body),
		}
		if arm.Guard != nil {
			arms[i].Guard = ev.armGuard(env, arm.Guard)
		}
	}
	return match.Dispatch(subject, arms)
}

func bindAll(env *Env, bs match.Bindings[vals.Value]) error {
	for _, b := range bs {
		if err := env.Bind(b.Name, b.Value); err != nil {
			return err
		}
	}
	return nil
}

func (ev *Evaler) armGuard(env *Env, guard ast.Expr) func(match.Bindings[vals.Value]) (bool, error) {
	return func(bs match.Bindings[vals.Value]) (bool, error) {
		env.PushScope()
		if err := bindAll(env, bs); err != nil {
			env.PopScope()
			return false, err
		}
		v, err := ev.eval(env, guard)
		var b vals.Bool
		if err == nil {
			b, err = toBool("guard", v)
		}
		if popErr := env.PopScope(); err == nil {
			err = popErr
		}
		if err != nil {
			return false, ev.errorp(guard, err)
		}
		return bool(b), nil
	}
}

func (ev *Evaler) armBody(env *Env, body ast.Expr) func(match.Bindings[vals.Value]) (vals.Value, error) {
	return func(bs match.Bindings[vals.Value]) (vals.Value, error) {
		env.PushScope()
		if err := bindAll(env, bs); err != nil {
			env.PopScope()
			return nil, err
		}
		return ev.evalInScope(env, body)
	}
}

// Translates a pattern of the program tree.
func (ev *Evaler) pattern(p ast.Pattern) (match.Pattern[vals.Value], error) {
	switch p := p.(type) {
	case *ast.WildcardPattern:
		return match.Wildcard[vals.Value](), nil
	case *ast.BindPattern:
		return match.Bind[vals.Value](p.Name), nil
	case *ast.LitPattern:
		switch p.Value.(type) {
		case *ast.Unit, *ast.BoolLit, *ast.ByteLit:
		default:
			return nil, errs.TypeMismatch{What: "literal pattern", Valid: "unit, bool or byte literal", Actual: "expression"}
		}
		v, err := ev.evalNode(nil, p.Value)
		if err != nil {
			return nil, err
		}
		return match.Literal(v, vals.Equal), nil
	case *ast.StructPattern:
		st, ok := ev.structs[p.Type]
		if !ok {
			return nil, errs.UnboundName{Name: p.Type}
		}
		if len(p.Fields) != len(st.Fields) {
			return nil, errs.ArityMismatch{What: "fields of " + st.Name + " pattern",
				ValidLow: len(st.Fields), ValidHigh: len(st.Fields), Actual: len(p.Fields)}
		}
		sp := structPattern{typ: st}
		for _, f := range p.Fields {
			fp, err := ev.pattern(f)
			if err != nil {
				return nil, err
			}
			sp.fields = append(sp.fields, fp)
		}
		return sp, nil
	default:
		panic("unknown pattern type")
	}
}

// Matches structs of one type whose fields match the field patterns.
type structPattern struct {
	typ    *vals.StructType
	fields []match.Pattern[vals.Value]
}

func (p structPattern) Match(subject vals.Value, bind func(string, vals.Value)) bool {
	s, ok := subject.(*vals.Struct)
	if !ok || s.Type != p.typ {
		return false
	}
	for i, fp := range p.fields {
		if !fp.Match(s.Fields[i], bind) {
			return false
		}
	}
	return true
}
