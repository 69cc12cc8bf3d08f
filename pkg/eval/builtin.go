package eval

import (
	"fmt"

	"src.reggae.sh/pkg/eval/errs"
	"src.reggae.sh/pkg/eval/vals"
	"src.reggae.sh/pkg/eval/vars"
)

// Go functions that programs can declare as externs.
var builtinFns = map[string]any{
	"print": printFn,
	"inc":   inc,
	"not":   vals.Not,
	"eq":    eq,
}

// Writes the repr of a value and a newline to the output of the Evaler.
func printFn(ev *Evaler, v vals.Value) error {
	_, err := fmt.Fprintln(ev.Out, v.Repr())
	return err
}

// Increments the byte a reference points to.
func inc(r *vars.Ref) error {
	v, err := r.Load()
	if err != nil {
		return err
	}
	b, ok := v.(vals.Byte)
	if !ok {
		return errs.TypeMismatch{What: "target of inc", Valid: "byte", Actual: vals.KindOf(v)}
	}
	b, err = b.Add(1)
	if err != nil {
		return err
	}
	return r.Set(b)
}

func eq(a, b vals.Value) vals.Bool { return vals.Bool(vals.Equal(a, b)) }
