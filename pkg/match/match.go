// Package match implements first-match dispatch over a list of arms.
//
// The dispatcher is generic over the subject type. Arms are tried top to
// bottom; the first arm whose pattern matches the subject and whose guard, if
// any, accepts the bindings is selected and its body is run with the
// bindings. When no arm is selected, Dispatch fails with
// errs.NonExhaustiveMatch.
package match

import (
	"fmt"

	"src.reggae.sh/pkg/eval/errs"
)

// Pattern matches a subject, calling bind for every name it binds. The bind
// calls of a pattern that fails to match are discarded.
type Pattern[S any] interface {
	Match(subject S, bind func(name string, v S)) bool
}

// Binding is a name bound by a pattern.
type Binding[S any] struct {
	Name  string
	Value S
}

// Bindings holds the names bound by the pattern of the selected arm, in the
// order they were bound.
type Bindings[S any] []Binding[S]

// Get returns the value bound to the name.
func (bs Bindings[S]) Get(name string) (S, bool) {
	for _, b := range bs {
		if b.Name == name {
			return b.Value, true
		}
	}
	var zero S
	return zero, false
}

// Arm is one arm of a dispatch. Guard may be nil.
type Arm[S, R any] struct {
	Pattern Pattern[S]
	Guard   func(Bindings[S]) (bool, error)
	Body    func(Bindings[S]) (R, error)
}

// Dispatch selects the first matching arm and runs its body. Errors from
// guards and bodies are returned as is.
func Dispatch[S, R any](subject S, arms []Arm[S, R]) (R, error) {
	var zero R
	for _, arm := range arms {
		bs, ok := Try(arm.Pattern, subject)
		if !ok {
			continue
		}
		if arm.Guard != nil {
			accept, err := arm.Guard(bs)
			if err != nil {
				return zero, err
			}
			if !accept {
				continue
			}
		}
		return arm.Body(bs)
	}
	return zero, errs.NonExhaustiveMatch{Subject: describe(subject)}
}

// Try matches a single pattern, returning the bindings it makes.
func Try[S any](p Pattern[S], subject S) (Bindings[S], bool) {
	var bs Bindings[S]
	ok := p.Match(subject, func(name string, v S) {
		bs = append(bs, Binding[S]{name, v})
	})
	if !ok {
		return nil, false
	}
	return bs, true
}

type reprer interface{ Repr() string }

func describe(v any) string {
	switch v := v.(type) {
	case reprer:
		return v.Repr()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
