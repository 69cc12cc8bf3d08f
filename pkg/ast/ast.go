// Package ast defines the program tree evaluated by the runtime.
//
// Trees are built by an external parser, by the astyaml package, or by hand
// in tests. Every node embeds diag.Ranging; nodes built by hand may leave it
// zero.
package ast

import (
	"src.reggae.sh/pkg/boolexpr"
	"src.reggae.sh/pkg/diag"
)

// Program is a complete program: declarations and a main expression.
type Program struct {
	Externs []*Extern
	Structs []*StructDecl
	Funcs   []*Func
	Main    Expr
}

// Extern declares a function implemented by the host. The evaluator resolves
// it by name among the Go functions it has been given.
type Extern struct {
	diag.Ranging
	Name string
}

// StructDecl declares a struct type.
type StructDecl struct {
	diag.Ranging
	Name   string
	Fields []string
}

// Func defines a function. Cache is nil for uncached functions.
type Func struct {
	diag.Ranging
	Name   string
	Params []string
	Cache  *Cache
	Body   Expr
}

// Cache is the result cache of a function.
type Cache struct {
	// One of "lru", "mru", "lfu" and "mfu".
	Policy string
	// Maximum number of entries, or -1 for no limit.
	Capacity int
}

// Expr is an expression node.
type Expr interface {
	diag.Ranger
	isExpr()
}

// Unit is the unit literal.
type Unit struct{ diag.Ranging }

// BoolLit is a boolean literal.
type BoolLit struct {
	diag.Ranging
	Value bool
}

// ByteLit is a byte literal.
type ByteLit struct {
	diag.Ranging
	Value uint8
}

// Ident reads a name.
type Ident struct {
	diag.Ranging
	Name string
}

// StructLit constructs a value of a declared struct type. Fields are in
// declaration order.
type StructLit struct {
	diag.Ranging
	Type   string
	Fields []Expr
}

// Field reads a field of a struct.
type Field struct {
	diag.Ranging
	X    Expr
	Name string
}

// Call calls a function. A lazy call defers the call into a thunk.
type Call struct {
	diag.Ranging
	Fn   string
	Args []Expr
	Lazy bool
}

// Force forces a thunk. Other values are returned unchanged.
type Force struct {
	diag.Ranging
	X Expr
}

// Let evaluates Value, binds it to Name in a new scope and evaluates Body in
// that scope.
type Let struct {
	diag.Ranging
	Name  string
	Value Expr
	Body  Expr
}

// Seq evaluates expressions in order and yields the value of the last one, or
// unit if there are none.
type Seq struct {
	diag.Ranging
	Exprs []Expr
}

// If is a conditional. Else may be nil, in which case a false condition
// yields unit.
type If struct {
	diag.Ranging
	Cond, Then, Else Expr
}

// Match dispatches on the value of Subject.
type Match struct {
	diag.Ranging
	Subject Expr
	Arms    []*Arm
}

// Arm is one arm of a Match. Guard may be nil.
type Arm struct {
	diag.Ranging
	Pattern Pattern
	Guard   Expr
	Body    Expr
}

// Borrow takes a reference to the cell bound to Name, exclusive if Mut is
// true.
type Borrow struct {
	diag.Ranging
	Name string
	Mut  bool
}

// Deref reads through a reference.
type Deref struct {
	diag.Ranging
	X Expr
}

// Assign writes a value. Target is either an Ident, writing the cell bound
// to the name, or a Deref, writing through an exclusive reference.
type Assign struct {
	diag.Ranging
	Target Expr
	Value  Expr
}

// Logic evaluates a postfix boolean expression over the names in scope.
type Logic struct {
	diag.Ranging
	Tokens []boolexpr.Token
}

// TruthTable enumerates the truth table of a postfix boolean expression over
// its own variables.
type TruthTable struct {
	diag.Ranging
	Tokens []boolexpr.Token
}

func (*Unit) isExpr()       {}
func (*BoolLit) isExpr()    {}
func (*ByteLit) isExpr()    {}
func (*Ident) isExpr()      {}
func (*StructLit) isExpr()  {}
func (*Field) isExpr()      {}
func (*Call) isExpr()       {}
func (*Force) isExpr()      {}
func (*Let) isExpr()        {}
func (*Seq) isExpr()        {}
func (*If) isExpr()         {}
func (*Match) isExpr()      {}
func (*Borrow) isExpr()     {}
func (*Deref) isExpr()      {}
func (*Assign) isExpr()     {}
func (*Logic) isExpr()      {}
func (*TruthTable) isExpr() {}

// Pattern is a pattern of a match arm.
type Pattern interface {
	diag.Ranger
	isPattern()
}

// LitPattern matches values equal to a literal.
type LitPattern struct {
	diag.Ranging
	// One of *Unit, *BoolLit and *ByteLit.
	Value Expr
}

// WildcardPattern matches anything.
type WildcardPattern struct{ diag.Ranging }

// BindPattern matches anything and binds it to Name.
type BindPattern struct {
	diag.Ranging
	Name string
}

// StructPattern matches structs of a type whose fields match Fields.
type StructPattern struct {
	diag.Ranging
	Type   string
	Fields []Pattern
}

func (*LitPattern) isPattern()      {}
func (*WildcardPattern) isPattern() {}
func (*BindPattern) isPattern()     {}
func (*StructPattern) isPattern()   {}
