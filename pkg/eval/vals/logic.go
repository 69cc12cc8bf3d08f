package vals

import "src.reggae.sh/pkg/eval/errs"

// ToBool returns v as a Bool, or a TypeMismatch error describing what if v is
// of another kind. There is no implicit coercion.
func ToBool(what string, v Value) (Bool, error) {
	if b, ok := v.(Bool); ok {
		return b, nil
	}
	return false, errs.TypeMismatch{What: what, Valid: "bool", Actual: KindOf(v)}
}

// Not returns the negation of v.
func Not(v Value) (Bool, error) {
	b, err := ToBool("operand of !", v)
	if err != nil {
		return false, err
	}
	return !b, nil
}

// And returns the conjunction of l and r.
func And(l, r Value) (Bool, error) {
	return binary("&", l, r, func(l, r Bool) Bool { return l && r })
}

// Or returns the disjunction of l and r.
func Or(l, r Value) (Bool, error) {
	return binary("|", l, r, func(l, r Bool) Bool { return l || r })
}

// Xor returns the exclusive disjunction of l and r.
func Xor(l, r Value) (Bool, error) {
	return binary("^", l, r, func(l, r Bool) Bool { return l != r })
}

// Implies returns the material implication l => r, that is !l || r.
func Implies(l, r Value) (Bool, error) {
	return binary("=>", l, r, func(l, r Bool) Bool { return !l || r })
}

func binary(op string, l, r Value, f func(l, r Bool) Bool) (Bool, error) {
	lb, err := ToBool("left operand of "+op, l)
	if err != nil {
		return false, err
	}
	rb, err := ToBool("right operand of "+op, r)
	if err != nil {
		return false, err
	}
	return f(lb, rb), nil
}
