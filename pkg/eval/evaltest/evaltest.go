// Package evaltest provides a framework for testing programs.
//
// The entry point for the framework is the Test function, which accepts a
// *testing.T and any number of test cases.
//
// Test cases are constructed using the That function, followed by method calls
// that add additional information to it. The lines passed to That form a
// program tree in YAML.
//
// Example:
//
//     Test(t,
//         That("main: {bool: true}").Returns(vals.Bool(true)),
//         That("externs: [print]",
//             "main: {call: {fn: print, args: [{byte: 1}]}}").Prints("1\n"))
//
// If some setup is needed, use the TestWithSetup function instead.
package evaltest

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.reggae.sh/pkg/ast/astyaml"
	"src.reggae.sh/pkg/eval"
	"src.reggae.sh/pkg/eval/vals"
)

// Case is a test case that can be used in Test.
type Case struct {
	code   string
	setup  func(ev *eval.Evaler)
	verify func(t *testing.T)
	want   result
}

type result struct {
	Value    vals.Value
	BytesOut []byte

	Exception error
}

// That returns a new Case with the specified program. Multiple arguments are
// joined with newlines.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that printing a byte writes it reads:
//
//     That("externs: [print]", "main: {call: {fn: print, args: [{byte: 1}]}}").Prints("1\n")
func That(lines ...string) Case {
	return Case{code: strings.Join(lines, "\n"), want: result{Value: vals.TheUnit}}
}

// WithSetup returns a new Case with the given setup function executed on the
// Evaler before the program is run.
func (c Case) WithSetup(f func(*eval.Evaler)) Case {
	c.setup = f
	return c
}

// Passes returns an altered Case that runs an additional verification function.
func (c Case) Passes(f func(t *testing.T)) Case {
	c.verify = f
	return c
}

// Returns returns an altered Case that requires the program to evaluate to
// the given value. Without a call to Returns, the program must evaluate to
// unit, unless it throws.
func (c Case) Returns(v vals.Value) Case {
	c.want.Value = v
	return c
}

// Prints returns an altered Case that requires the program to produce the
// specified output.
func (c Case) Prints(s string) Case {
	c.want.BytesOut = []byte(s)
	return c
}

// Throws returns an altered Case that requires the program to throw an
// exception with the given reason. The reason supports special matcher values
// constructed by functions like ErrorWithMessage.
//
// If at least one stacktrace string is given, the exception must also have a
// stacktrace matching the given contexts, frame by frame (innermost frame
// first). If no stacktrace string is given, the stack trace of the exception
// is not checked.
func (c Case) Throws(reason error, stacks ...string) Case {
	c.want.Exception = exc{reason, stacks}
	c.want.Value = nil
	return c
}

// Test runs test cases. For each test case, a new Evaler is created with
// NewEvaler.
func Test(t *testing.T, tests ...Case) {
	t.Helper()
	TestWithSetup(t, func(*eval.Evaler) {}, tests...)
}

// TestWithSetup runs test cases. For each test case, a new Evaler is created
// with NewEvaler and passed to the setup function.
func TestWithSetup(t *testing.T, setup func(*eval.Evaler), tests ...Case) {
	t.Helper()
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			t.Helper()
			var out bytes.Buffer
			ev := eval.NewEvaler(&out)
			setup(ev)
			if tc.setup != nil {
				tc.setup(ev)
			}

			r := evalAndCollect(t, ev, tc.code)
			r.BytesOut = out.Bytes()

			if tc.verify != nil {
				tc.verify(t)
			}
			if !matchValue(tc.want.Value, r.Value) {
				t.Errorf("got value (-want +got):\n%s",
					cmp.Diff(repr(tc.want.Value), repr(r.Value)))
			}
			if !bytes.Equal(tc.want.BytesOut, r.BytesOut) {
				t.Errorf("got bytes out %q, want %q", r.BytesOut, tc.want.BytesOut)
			}
			if !matchErr(tc.want.Exception, r.Exception) {
				t.Errorf("unexpected exception")
				if exc, ok := r.Exception.(*eval.Exception); ok {
					// For an *eval.Exception report the type of the underlying error.
					t.Logf("got: %T: %v", exc.Reason, exc)
					t.Logf("stack trace: %#v", exc.StackTrace.Texts())
				} else {
					t.Logf("got: %T: %v", r.Exception, r.Exception)
				}
				t.Errorf("want: %v", tc.want.Exception)
			}
		})
	}
}

func evalAndCollect(t *testing.T, ev *eval.Evaler, code string) result {
	p, err := astyaml.Decode("[test]", []byte(code))
	if err != nil {
		t.Fatalf("Decode(%q) error: %s", code, err)
	}
	v, err := ev.Run(p)
	return result{Value: v, Exception: err}
}

func matchValue(want, got vals.Value) bool {
	if want == nil || got == nil {
		return want == nil && got == nil
	}
	return vals.Equal(want, got)
}

func repr(v vals.Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.Repr()
}

func matchErr(want, got error) bool {
	if want == nil {
		return got == nil
	}
	if matcher, ok := want.(errorMatcher); ok {
		return matcher.matchError(got)
	}
	return reflect.DeepEqual(want, got)
}
