package vals

// Equaler wraps the Equal method.
type Equaler interface {
	// Equal compares the receiver to another value.
	Equal(other Value) bool
}

// Equal returns whether two values are equal. Primitives compare by value,
// structs compare by type identity and field-wise equality, and values
// implementing Equaler decide for themselves. Other values, including
// references and thunks, compare by identity.
func Equal(x, y Value) bool {
	switch x := x.(type) {
	case nil:
		return y == nil
	case Unit, Bool, Byte:
		return x == y
	case *Struct:
		if y, ok := y.(*Struct); ok {
			return equalStruct(x, y)
		}
		return false
	case Equaler:
		return x.Equal(y)
	default:
		return x == y
	}
}

func equalStruct(x, y *Struct) bool {
	if x == y {
		return true
	}
	if x.Type != y.Type || len(x.Fields) != len(y.Fields) {
		return false
	}
	for i := range x.Fields {
		if !Equal(x.Fields[i], y.Fields[i]) {
			return false
		}
	}
	return true
}

// EqualAll returns whether two slices of values are element-wise equal.
func EqualAll(xs, ys []Value) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !Equal(xs[i], ys[i]) {
			return false
		}
	}
	return true
}
