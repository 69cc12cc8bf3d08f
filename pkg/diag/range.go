package diag

import "fmt"

// Ranger wraps the Range method.
type Ranger interface {
	// Range returns the range associated with the value.
	Range() Ranging
}

// Ranging represents a range [From, To) of positions in a source. Program
// tree nodes embed Ranging to satisfy the [Ranger] interface; the external
// parser fills it in, and nodes built by hand may leave it zero.
type Ranging struct {
	From Position
	To   Position
}

// Range returns the Ranging itself.
func (r Ranging) Range() Ranging { return r }

// IsZero reports whether the Ranging carries no position information.
func (r Ranging) IsZero() bool { return r.From == Position{} && r.To == Position{} }

func (r Ranging) String() string {
	if r.From == r.To {
		return r.From.String()
	}
	return r.From.String() + "-" + r.To.String()
}

// Position is a 1-based line and column. The zero value means "unknown".
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// PointRanging returns a zero-width Ranging at the given position.
func PointRanging(line, col int) Ranging {
	p := Position{line, col}
	return Ranging{p, p}
}

// MixedRanging returns a Ranging from the start position of a to the end
// position of b.
func MixedRanging(a, b Ranger) Ranging {
	return Ranging{a.Range().From, b.Range().To}
}
