package truth

import (
	"fmt"
	"io"
	"strings"
)

// Layout selects how boolean values are spelled.
type Layout int

// Possible values of Layout.
const (
	// Words spells values as true and false.
	Words Layout = iota
	// Compact spells values as T and F.
	Compact
)

func (l Layout) spell(b bool) string {
	switch {
	case l == Compact && b:
		return "T"
	case l == Compact:
		return "F"
	case b:
		return "true"
	default:
		return "false"
	}
}

func (l Layout) minWidth() int {
	if l == Compact {
		return 1
	}
	return len("false")
}

// Printer writes truth tables as aligned text: a header naming the variables
// and the expression, one line per row, and a blank separator line.
type Printer struct {
	Layout Layout
	widths []int
}

// Width returns the width of the lines written for the given variables and
// expression.
func (p *Printer) Width(names []string, expr string) int {
	w := 0
	for _, name := range names {
		w += max(len(name), p.Layout.minWidth()) + 1
	}
	return w + len("| ") + len(expr)
}

// Header writes the header line.
func (p *Printer) Header(w io.Writer, names []string, expr string) error {
	p.widths = p.widths[:0]
	var sb strings.Builder
	for _, name := range names {
		width := max(len(name), p.Layout.minWidth())
		p.widths = append(p.widths, width)
		fmt.Fprintf(&sb, "%-*s ", width, name)
	}
	sb.WriteString("| ")
	sb.WriteString(expr)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

// Row writes one row. Header must have been called first.
func (p *Printer) Row(w io.Writer, r Row) error {
	var sb strings.Builder
	for i, v := range r.Values {
		fmt.Fprintf(&sb, "%-*s ", p.widths[i], p.Layout.spell(v))
	}
	sb.WriteString("| ")
	sb.WriteString(p.Layout.spell(r.Result))
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

// End writes the blank separator line.
func (p *Printer) End(w io.Writer) error {
	_, err := fmt.Fprintln(w)
	return err
}

// Print writes a complete table.
func (p *Printer) Print(w io.Writer, names []string, expr string, rows []Row) error {
	if err := p.Header(w, names, expr); err != nil {
		return err
	}
	for _, r := range rows {
		if err := p.Row(w, r); err != nil {
			return err
		}
	}
	return p.End(w)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
