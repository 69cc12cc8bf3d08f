package boolexpr

import (
	"src.reggae.sh/pkg/eval/vals"
	"src.reggae.sh/pkg/eval/vars"
)

// Expr is a node of a boolean expression graph. Nodes that derive from a
// variable read its cell every time they are evaluated, so changing the cell
// changes the value of the graph without rebuilding it.
type Expr interface {
	Eval() (vals.Bool, error)
	// String returns the expression in postfix notation.
	String() string
}

// Const is a boolean constant owned by the graph.
type Const struct{ Value vals.Bool }

// VarRef reads a variable cell.
type VarRef struct {
	Name string
	Cell vars.Reader
}

// Unary applies a unary operator.
type Unary struct {
	Op Op
	X  Expr
}

// Binary applies a binary operator. Left is the operand pushed first.
type Binary struct {
	Op          Op
	Left, Right Expr
}

func (c Const) Eval() (vals.Bool, error) { return c.Value, nil }

func (c Const) String() string {
	if c.Value {
		return "T"
	}
	return "F"
}

func (v VarRef) Eval() (vals.Bool, error) {
	x, err := vars.Load(v.Cell)
	if err != nil {
		return false, err
	}
	return vals.ToBool("variable "+v.Name, x)
}

func (v VarRef) String() string { return v.Name }

func (u Unary) Eval() (vals.Bool, error) {
	x, err := u.X.Eval()
	if err != nil {
		return false, err
	}
	return u.Op.apply(x)
}

func (u Unary) String() string { return u.X.String() + " " + u.Op.String() }

func (b Binary) Eval() (vals.Bool, error) {
	l, err := b.Left.Eval()
	if err != nil {
		return false, err
	}
	r, err := b.Right.Eval()
	if err != nil {
		return false, err
	}
	return b.Op.apply(l, r)
}

func (b Binary) String() string {
	return b.Left.String() + " " + b.Right.String() + " " + b.Op.String()
}

// IsConst returns whether the expression is an owned constant, as opposed to
// a graph reading through variable cells.
func IsConst(e Expr) bool {
	_, ok := e.(Const)
	return ok
}
