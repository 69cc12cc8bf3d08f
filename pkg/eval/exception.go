package eval

import (
	"strings"

	"src.reggae.sh/pkg/diag"
)

// Exception is an error raised while evaluating a program, together with the
// stack of calls active when it was raised.
type Exception struct {
	Reason     error
	StackTrace *StackTrace
}

// StackTrace represents a stack trace as a linked list of diag.Context. The
// head is the innermost frame.
type StackTrace struct {
	Head *diag.Context
	Next *StackTrace
}

// Reason returns the Reason field if err is an *Exception. Otherwise it
// returns err itself.
func Reason(err error) error {
	if exc, ok := err.(*Exception); ok {
		return exc.Reason
	}
	return err
}

// Error returns the message of the cause of the exception.
func (exc *Exception) Error() string { return exc.Reason.Error() }

// Unwrap returns the cause of the exception, so that errors.As can reach the
// types in the errs package.
func (exc *Exception) Unwrap() error { return exc.Reason }

// Show shows the exception.
func (exc *Exception) Show(indent string) string {
	var sb strings.Builder
	sb.WriteString("Exception: ")
	if shower, ok := exc.Reason.(diag.Shower); ok {
		sb.WriteString(shower.Show(indent))
	} else {
		sb.WriteString(exc.Reason.Error())
	}
	if exc.StackTrace != nil {
		sb.WriteString("\n" + indent + "Traceback:")
		for tb := exc.StackTrace; tb != nil; tb = tb.Next {
			sb.WriteString("\n" + indent + "  " + tb.Head.String())
		}
	}
	return sb.String()
}

// Texts returns the contexts of the stack trace, innermost first.
func (st *StackTrace) Texts() []string {
	var texts []string
	for ; st != nil; st = st.Next {
		texts = append(texts, st.Head.String())
	}
	return texts
}
