package vars

import (
	"fmt"

	"src.reggae.sh/pkg/eval/errs"
	"src.reggae.sh/pkg/eval/vals"
)

// Cell is a named slot that owns its value. References to a cell are made
// with Borrow and BorrowMut; at any time a cell has either any number of live
// shared references or exactly one live exclusive reference.
//
// Get and Set are transient accesses by the owner. Set is refused while a
// reference is live, since the holder of the reference may observe or own
// the value.
type Cell struct {
	name      string
	value     vals.Value
	shared    int
	exclusive bool
}

// NewCell creates a new cell holding the initial value.
func NewCell(name string, v vals.Value) *Cell {
	return &Cell{name: name, value: v}
}

// Name returns the name the cell was created with.
func (c *Cell) Name() string { return c.name }

// Get returns the current value of the cell.
func (c *Cell) Get() vals.Value { return c.value }

// Set replaces the value of the cell.
func (c *Cell) Set(v vals.Value) error {
	if c.exclusive || c.shared > 0 {
		return errs.BorrowConflict{Name: c.name, Want: "exclusive", Held: c.held()}
	}
	c.value = v
	return nil
}

// Borrowed returns whether any reference to the cell is live.
func (c *Cell) Borrowed() bool { return c.exclusive || c.shared > 0 }

// Borrow returns a new shared reference to the cell. It fails with
// errs.BorrowConflict while an exclusive reference is live.
func (c *Cell) Borrow() (*Ref, error) {
	if c.exclusive {
		return nil, errs.BorrowConflict{Name: c.name, Want: "shared", Held: c.held()}
	}
	c.shared++
	return &Ref{cell: c, mode: Shared}, nil
}

// BorrowMut returns a new exclusive reference to the cell. It fails with
// errs.BorrowConflict while any other reference is live.
func (c *Cell) BorrowMut() (*Ref, error) {
	if c.exclusive || c.shared > 0 {
		return nil, errs.BorrowConflict{Name: c.name, Want: "exclusive", Held: c.held()}
	}
	c.exclusive = true
	return &Ref{cell: c, mode: Exclusive}, nil
}

func (c *Cell) held() string {
	switch {
	case c.exclusive:
		return "an exclusive reference is live"
	case c.shared == 1:
		return "1 shared reference is live"
	default:
		return fmt.Sprintf("%d shared references are live", c.shared)
	}
}
