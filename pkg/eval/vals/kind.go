// Package vals contains the runtime value model: the Value interface, the
// Kind enumeration, and the primitive and struct values.
package vals

// Kind enumerates the kinds of runtime values. The set is closed; Ref and
// Thunk values are implemented by the vars and eval packages.
type Kind int

// Possible values of Kind.
const (
	UnitKind Kind = iota
	BoolKind
	ByteKind
	StructKind
	RefKind
	ThunkKind
)

var kindNames = [...]string{
	UnitKind:   "unit",
	BoolKind:   "bool",
	ByteKind:   "byte",
	StructKind: "struct",
	RefKind:    "ref",
	ThunkKind:  "thunk",
}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "!!kind"
}

// Value is a runtime value.
type Value interface {
	// Kind returns the kind of the value.
	Kind() Kind
	// Repr returns a string that represents the value. For primitives and
	// structs it is a literal; for references and thunks it is enclosed in
	// "<>".
	Repr() string
}

// KindOf returns the name of the kind of v, or "nil" if v is nil.
func KindOf(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Kind().String()
}
