package boolexpr

import (
	"src.reggae.sh/pkg/eval/vals"
	"src.reggae.sh/pkg/match"
)

// Op is a boolean operator.
type Op int

// Possible values of Op.
const (
	Not Op = iota
	And
	Or
	Xor
	Implies
)

var opSymbols = [...]string{
	Not:     "!",
	And:     "&",
	Or:      "|",
	Xor:     "^",
	Implies: "=>",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opSymbols) {
		return "!!op"
	}
	return opSymbols[op]
}

// Arity returns the number of operands the operator takes.
func (op Op) Arity() int {
	if op == Not {
		return 1
	}
	return 2
}

func opArm(op Op) match.Arm[string, Op] {
	return match.Arm[string, Op]{
		Pattern: match.Equal(op.String()),
		Body:    func(match.Bindings[string]) (Op, error) { return op, nil },
	}
}

// One arm per operator.
var opArms = []match.Arm[string, Op]{
	opArm(Not), opArm(And), opArm(Or), opArm(Xor), opArm(Implies),
}

// ParseOp returns the operator denoted by sym. It fails with
// errs.NonExhaustiveMatch if sym is not an operator symbol.
func ParseOp(sym string) (Op, error) {
	return match.Dispatch(sym, opArms)
}

func (op Op) apply(operands ...vals.Value) (vals.Bool, error) {
	switch op {
	case Not:
		return vals.Not(operands[0])
	case And:
		return vals.And(operands[0], operands[1])
	case Or:
		return vals.Or(operands[0], operands[1])
	case Xor:
		return vals.Xor(operands[0], operands[1])
	case Implies:
		return vals.Implies(operands[0], operands[1])
	}
	panic("unreachable")
}
