package vals

import (
	"strings"

	"src.reggae.sh/pkg/eval/errs"
)

// StructType declares the name and the ordered field names of a struct.
type StructType struct {
	Name   string
	Fields []string
}

// NewStructType creates a new StructType.
func NewStructType(name string, fields ...string) *StructType {
	return &StructType{name, fields}
}

// New constructs a struct of this type. The number of values must be exactly
// the number of declared fields.
func (st *StructType) New(values ...Value) (*Struct, error) {
	if len(values) != len(st.Fields) {
		return nil, errs.ArityMismatch{What: "fields of " + st.Name,
			ValidLow: len(st.Fields), ValidHigh: len(st.Fields), Actual: len(values)}
	}
	fields := make([]Value, len(values))
	copy(fields, values)
	return &Struct{st, fields}, nil
}

// FieldIndex returns the index of the named field, or -1 if there is no such
// field.
func (st *StructType) FieldIndex(name string) int {
	for i, field := range st.Fields {
		if field == name {
			return i
		}
	}
	return -1
}

// Struct is a struct value. It owns its field values.
type Struct struct {
	Type   *StructType
	Fields []Value
}

func (*Struct) Kind() Kind { return StructKind }

// Repr returns a representation like "point{x: 1, y: 2}".
func (s *Struct) Repr() string {
	var sb strings.Builder
	sb.WriteString(s.Type.Name)
	sb.WriteByte('{')
	for i, name := range s.Type.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(s.Fields[i].Repr())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Field returns the value of the named field.
func (s *Struct) Field(name string) (Value, error) {
	i := s.Type.FieldIndex(name)
	if i == -1 {
		return nil, errs.UnboundName{Name: s.Type.Name + "." + name}
	}
	return s.Fields[i], nil
}
