// Package boolexpr evaluates postfix boolean expressions into expression
// graphs.
//
// Tokens are consumed left to right on a stack. Literals and known variables
// are pushed; "!" pops one value and pushes its negation; the binary
// operators "&", "|", "^" and "=>" pop the right operand first, then the
// left one, and push their combination. The token handlers and the operators
// are both selected with the match package.
package boolexpr

import (
	"src.reggae.sh/pkg/eval/errs"
	"src.reggae.sh/pkg/eval/vals"
	"src.reggae.sh/pkg/eval/vars"
	"src.reggae.sh/pkg/match"
)

// Resolver resolves a variable name to the cell holding its value.
type Resolver interface {
	Resolve(name string) (vars.Reader, bool)
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(name string) (vars.Reader, bool)

func (f ResolverFunc) Resolve(name string) (vars.Reader, bool) { return f(name) }

type machine struct {
	resolver Resolver
	stack    []Expr
}

type step func(m *machine, pos int, tok Token) error

func always(s step) func(match.Bindings[Token]) (step, error) {
	return func(match.Bindings[Token]) (step, error) { return s, nil }
}

func hasKind(k TokenKind) func(match.Bindings[Token]) (bool, error) {
	return match.Guard("tok", func(tok Token) bool { return tok.Kind == k })
}

var tokenArms = []match.Arm[Token, step]{
	{Pattern: match.Equal(Lit(true)), Body: always(pushConst(true))},
	{Pattern: match.Equal(Lit(false)), Body: always(pushConst(false))},
	{Pattern: match.Bind[Token]("tok"), Guard: hasKind(VariableToken), Body: always((*machine).pushVar)},
	{Pattern: match.Bind[Token]("tok"), Guard: hasKind(OperatorToken), Body: always((*machine).applyOp)},
	{Pattern: match.Wildcard[Token](), Body: always(unrecognized)},
}

// Eval builds the expression graph of a postfix token sequence. Variables are
// looked up with r, which may be nil when the expression has no variables.
//
// The result is a Const if no variable contributes to it. Otherwise it reads
// through the variable cells.
func Eval(tokens []Token, r Resolver) (Expr, error) {
	m := &machine{resolver: r}
	for pos, tok := range tokens {
		handle, err := match.Dispatch(tok, tokenArms)
		if err != nil {
			return nil, err
		}
		if err := handle(m, pos, tok); err != nil {
			return nil, err
		}
	}
	if len(m.stack) != 1 {
		return nil, errs.MalformedExpression{Pos: -1, Left: len(m.stack)}
	}
	return m.stack[0], nil
}

func pushConst(b bool) step {
	return func(m *machine, _ int, _ Token) error {
		m.push(Const{Value: vals.Bool(b)})
		return nil
	}
}

func (m *machine) pushVar(pos int, tok Token) error {
	if m.resolver == nil {
		return unrecognized(m, pos, tok)
	}
	cell, ok := m.resolver.Resolve(tok.Text)
	if !ok {
		return unrecognized(m, pos, tok)
	}
	m.push(VarRef{Name: tok.Text, Cell: cell})
	return nil
}

func (m *machine) applyOp(pos int, tok Token) error {
	op, err := ParseOp(tok.Text)
	if err != nil {
		return unrecognized(m, pos, tok)
	}
	if len(m.stack) < op.Arity() {
		return errs.MalformedExpression{Pos: pos, Left: len(m.stack)}
	}
	var e Expr
	if op.Arity() == 1 {
		e = Unary{Op: op, X: m.pop()}
	} else {
		right := m.pop()
		left := m.pop()
		e = Binary{Op: op, Left: left, Right: right}
	}
	m.push(fold(e))
	return nil
}

func unrecognized(_ *machine, pos int, tok Token) error {
	return errs.ParseError{Token: tok.Text, Pos: pos}
}

// Collapses an operator node whose operands are all constants.
func fold(e Expr) Expr {
	switch e := e.(type) {
	case Unary:
		if !IsConst(e.X) {
			return e
		}
	case Binary:
		if !IsConst(e.Left) || !IsConst(e.Right) {
			return e
		}
	}
	v, err := e.Eval()
	if err != nil {
		// Constants are always booleans.
		panic(err)
	}
	return Const{Value: v}
}

func (m *machine) push(e Expr) { m.stack = append(m.stack, e) }

func (m *machine) pop() Expr {
	e := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return e
}
