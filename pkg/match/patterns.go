package match

type wildcard[S any] struct{}

// Wildcard returns a pattern that matches any subject without binding.
func Wildcard[S any]() Pattern[S] { return wildcard[S]{} }

func (wildcard[S]) Match(S, func(string, S)) bool { return true }

type bind[S any] struct{ name string }

// Bind returns a pattern that matches any subject and binds it to name.
func Bind[S any](name string) Pattern[S] { return bind[S]{name} }

func (p bind[S]) Match(subject S, f func(string, S)) bool {
	f(p.name, subject)
	return true
}

type literal[S any] struct {
	value S
	eq    func(a, b S) bool
}

// Literal returns a pattern that matches subjects equal to v according to eq.
func Literal[S any](v S, eq func(a, b S) bool) Pattern[S] {
	return literal[S]{v, eq}
}

// Equal returns a pattern that matches subjects == v.
func Equal[S comparable](v S) Pattern[S] {
	return literal[S]{v, func(a, b S) bool { return a == b }}
}

func (p literal[S]) Match(subject S, _ func(string, S)) bool {
	return p.eq(p.value, subject)
}

// Guard is a convenience for building a guard from a predicate over the
// value bound to name.
func Guard[S any](name string, pred func(S) bool) func(Bindings[S]) (bool, error) {
	return func(bs Bindings[S]) (bool, error) {
		v, ok := bs.Get(name)
		return ok && pred(v), nil
	}
}
