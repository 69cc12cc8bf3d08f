package vals

import (
	"strconv"

	"src.reggae.sh/pkg/eval/errs"
)

// Unit is the value of expressions evaluated only for their effects.
type Unit struct{}

// TheUnit is the only value of Unit.
var TheUnit = Unit{}

func (Unit) Kind() Kind { return UnitKind }
func (Unit) Repr() string { return "()" }

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind { return BoolKind }

func (b Bool) Repr() string {
	if b {
		return "true"
	}
	return "false"
}

// Byte is a width-bounded unsigned integer cell.
type Byte uint8

func (Byte) Kind() Kind { return ByteKind }
func (b Byte) Repr() string { return strconv.Itoa(int(b)) }

// Add returns b+n, or an OutOfRange error if the result does not fit in a
// Byte.
func (b Byte) Add(n int) (Byte, error) {
	sum := int(b) + n
	if sum < 0 || sum > 255 {
		return 0, errs.OutOfRange{
			What: "byte", ValidLow: "0", ValidHigh: "255", Actual: strconv.Itoa(sum)}
	}
	return Byte(sum), nil
}
