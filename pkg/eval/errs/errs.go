// Package errs declares error types used as exception causes by the
// evaluation runtime.
//
// All the types are comparable value types, so tests can compare them with ==
// or reach them through errors.As even after they have been wrapped in an
// exception.
package errs

import (
	"fmt"
	"strconv"
)

// UnboundName is returned when a name is not bound in any scope of the
// environment chain.
type UnboundName struct {
	Name string
}

func (e UnboundName) Error() string {
	return "unbound name: " + e.Name
}

// DuplicateBinding is returned when a name is bound twice in the same scope.
// Binding a name that is already bound in an outer scope shadows it instead.
type DuplicateBinding struct {
	Name string
}

func (e DuplicateBinding) Error() string {
	return "duplicate binding: " + e.Name + " is already bound in this scope"
}

// TypeMismatch is returned when an operation receives a value of the wrong
// kind. There is no implicit coercion between kinds.
type TypeMismatch struct {
	What   string
	Valid  string
	Actual string
}

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: %s must be %s, but is %s", e.What, e.Valid, e.Actual)
}

// ArityMismatch encodes an error where the expected number of values is out of
// the valid range.
type ArityMismatch struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    int
}

func (e ArityMismatch) Error() string {
	switch {
	case e.ValidHigh == e.ValidLow:
		return fmt.Sprintf("arity mismatch: %v must be %v, but is %v",
			e.What, nValues(e.ValidLow), nValues(e.Actual))
	case e.ValidHigh == -1:
		return fmt.Sprintf("arity mismatch: %v must be %v or more values, but is %v",
			e.What, e.ValidLow, nValues(e.Actual))
	default:
		return fmt.Sprintf("arity mismatch: %v must be %v to %v values, but is %v",
			e.What, e.ValidLow, e.ValidHigh, nValues(e.Actual))
	}
}

func nValues(n int) string {
	if n == 1 {
		return "1 value"
	}
	return strconv.Itoa(n) + " values"
}

// OutOfRange encodes an error where a value is out of its valid range.
type OutOfRange struct {
	What      string
	ValidLow  string
	ValidHigh string
	Actual    string
}

func (e OutOfRange) Error() string {
	if e.ValidHigh < e.ValidLow {
		return fmt.Sprintf(
			"out of range: %v has no valid value, but is %v", e.What, e.Actual)
	}
	return fmt.Sprintf(
		"out of range: %s must be from %s to %s, but is %s",
		e.What, e.ValidLow, e.ValidHigh, e.Actual)
}

// NonExhaustiveMatch is returned when no arm of a match accepts the subject.
type NonExhaustiveMatch struct {
	Subject string
}

func (e NonExhaustiveMatch) Error() string {
	return "non-exhaustive match: no arm matches " + e.Subject
}

// ParseError is returned when the stack evaluator meets a token that is
// neither a literal, a known variable nor an operator.
type ParseError struct {
	Token string
	Pos   int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse error: unrecognized token %q at position %d", e.Token, e.Pos)
}

// MalformedExpression is returned when the evaluation stack underflows, or
// when it does not hold exactly one value after the last token.
type MalformedExpression struct {
	// Position of the offending operator, or -1 when the error is detected
	// after all tokens have been consumed.
	Pos int
	// Number of values left on the stack.
	Left int
}

func (e MalformedExpression) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("malformed expression: stack underflow at position %d", e.Pos)
	}
	return fmt.Sprintf("malformed expression: %s left on the stack, want 1 value", nValues(e.Left))
}

// BorrowConflict is returned when a reference to a cell is requested while
// an incompatible reference to the same cell is live.
type BorrowConflict struct {
	Name string
	Want string
	Held string
}

func (e BorrowConflict) Error() string {
	return fmt.Sprintf("borrow conflict: cannot take %s reference to %s while %s", e.Want, e.Name, e.Held)
}

// SetReadOnlyVar is returned when writing through a shared reference.
type SetReadOnlyVar struct {
	// Name of the read-only variable. This field is initially empty, and
	// populated later when context information is available.
	VarName string
}

func (e SetReadOnlyVar) Error() string {
	return fmt.Sprintf("cannot set read-only variable %q", e.VarName)
}

// CyclicForce is returned when a thunk is forced while it is already being
// forced, that is, when its call depends on its own result.
type CyclicForce struct {
	What string
}

func (e CyclicForce) Error() string {
	return "cyclic force: " + e.What + " depends on its own result"
}

// ReleasedRef is returned when reading or writing through a reference after
// the scope that took it has ended.
type ReleasedRef struct {
	Name string
}

func (e ReleasedRef) Error() string {
	return "released reference: reference to " + e.Name + " is no longer live"
}

// NotCallable is returned when the target of a call is not a function.
type NotCallable struct {
	Name string
	Kind string
}

func (e NotCallable) Error() string {
	return fmt.Sprintf("not callable: %s is a %s", e.Name, e.Kind)
}

// EscapingRef is returned when a reference would outlive the cell it refers
// to, for example when a function returns a reference to one of its own
// bindings.
type EscapingRef struct {
	Name string
}

func (e EscapingRef) Error() string {
	return "escaping reference: reference to " + e.Name + " outlives its cell"
}
