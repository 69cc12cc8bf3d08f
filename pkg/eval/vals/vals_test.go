package vals

import (
	"testing"

	"src.reggae.sh/pkg/eval/errs"
	"src.reggae.sh/pkg/tt"
)

var point = NewStructType("point", "x", "y")

func TestKindOf(t *testing.T) {
	tt.Test(t, tt.Fn("KindOf", KindOf), tt.Table{
		tt.Args(nil).Rets("nil"),
		tt.Args(TheUnit).Rets("unit"),
		tt.Args(Bool(true)).Rets("bool"),
		tt.Args(Byte(3)).Rets("byte"),
		tt.Args(mustStruct(Byte(1), Byte(2))).Rets("struct"),
	})
	if s := Kind(42).String(); s != "!!kind" {
		t.Errorf("Kind(42).String() = %q, want !!kind", s)
	}
}

func TestRepr(t *testing.T) {
	tt.Test(t, tt.Fn("Repr", Value.Repr), tt.Table{
		tt.Args(TheUnit).Rets("()"),
		tt.Args(Bool(false)).Rets("false"),
		tt.Args(Byte(200)).Rets("200"),
		tt.Args(mustStruct(Byte(1), Bool(true))).Rets("point{x: 1, y: true}"),
	})
}

func TestLogic(t *testing.T) {
	tt.Test(t, tt.Fn("Not", Not), tt.Table{
		tt.Args(Bool(true)).Rets(Bool(false), nil),
		tt.Args(Bool(false)).Rets(Bool(true), nil),
		tt.Args(Byte(1)).Rets(Bool(false),
			errs.TypeMismatch{What: "operand of !", Valid: "bool", Actual: "byte"}),
	})
	tt.Test(t, tt.Fn("And", And), tt.Table{
		tt.Args(Bool(true), Bool(false)).Rets(Bool(false), nil),
		tt.Args(Bool(true), Bool(true)).Rets(Bool(true), nil),
		tt.Args(TheUnit, Bool(true)).Rets(Bool(false),
			errs.TypeMismatch{What: "left operand of &", Valid: "bool", Actual: "unit"}),
	})
	tt.Test(t, tt.Fn("Or", Or), tt.Table{
		tt.Args(Bool(true), Bool(false)).Rets(Bool(true), nil),
		tt.Args(Bool(false), Bool(false)).Rets(Bool(false), nil),
		tt.Args(Bool(false), Byte(0)).Rets(Bool(false),
			errs.TypeMismatch{What: "right operand of |", Valid: "bool", Actual: "byte"}),
	})
	tt.Test(t, tt.Fn("Xor", Xor), tt.Table{
		tt.Args(Bool(true), Bool(false)).Rets(Bool(true), nil),
		tt.Args(Bool(true), Bool(true)).Rets(Bool(false), nil),
	})
	tt.Test(t, tt.Fn("Implies", Implies), tt.Table{
		tt.Args(Bool(false), Bool(true)).Rets(Bool(true), nil),
		tt.Args(Bool(false), Bool(false)).Rets(Bool(true), nil),
		tt.Args(Bool(true), Bool(false)).Rets(Bool(false), nil),
		tt.Args(Bool(true), Bool(true)).Rets(Bool(true), nil),
	})
}

func TestByteAdd(t *testing.T) {
	tt.Test(t, tt.Fn("Byte.Add", Byte.Add), tt.Table{
		tt.Args(Byte(1), 1).Rets(Byte(2), nil),
		tt.Args(Byte(255), 1).Rets(Byte(0),
			errs.OutOfRange{What: "byte", ValidLow: "0", ValidHigh: "255", Actual: "256"}),
		tt.Args(Byte(0), -1).Rets(Byte(0),
			errs.OutOfRange{What: "byte", ValidLow: "0", ValidHigh: "255", Actual: "-1"}),
	})
}

func TestStructType_New(t *testing.T) {
	_, err := point.New(Byte(1))
	want := errs.ArityMismatch{What: "fields of point", ValidLow: 2, ValidHigh: 2, Actual: 1}
	if err != want {
		t.Errorf("New with 1 field: got err %v, want %v", err, want)
	}
	_, err = point.New(Byte(1), Byte(2), Byte(3))
	if _, ok := err.(errs.ArityMismatch); !ok {
		t.Errorf("New with 3 fields: got err %v, want ArityMismatch", err)
	}

	s := mustStruct(Byte(1), Byte(2))
	if v, err := s.Field("y"); err != nil || v != Byte(2) {
		t.Errorf("Field(y) -> %v, %v; want 2, nil", v, err)
	}
	if _, err := s.Field("z"); err != (errs.UnboundName{Name: "point.z"}) {
		t.Errorf("Field(z) -> err %v, want UnboundName", err)
	}
}

func TestEqual(t *testing.T) {
	other := NewStructType("point", "x", "y")
	tt.Test(t, tt.Fn("Equal", Equal), tt.Table{
		tt.Args(nil, nil).Rets(true),
		tt.Args(TheUnit, TheUnit).Rets(true),
		tt.Args(Bool(true), Bool(true)).Rets(true),
		tt.Args(Bool(true), Byte(1)).Rets(false),
		tt.Args(Byte(7), Byte(7)).Rets(true),
		tt.Args(mustStruct(Byte(1), Byte(2)), mustStruct(Byte(1), Byte(2))).Rets(true),
		tt.Args(mustStruct(Byte(1), Byte(2)), mustStruct(Byte(1), Byte(3))).Rets(false),
		// Same shape but a different declaration.
		tt.Args(mustStruct(Byte(1), Byte(2)), &Struct{other, []Value{Byte(1), Byte(2)}}).Rets(false),
	})
	if !EqualAll([]Value{Byte(1), Bool(true)}, []Value{Byte(1), Bool(true)}) {
		t.Errorf("EqualAll of equal slices -> false")
	}
	if EqualAll([]Value{Byte(1)}, []Value{Byte(1), Bool(true)}) {
		t.Errorf("EqualAll of slices of different lengths -> true")
	}
}

func mustStruct(vs ...Value) *Struct {
	s, err := point.New(vs...)
	if err != nil {
		panic(err)
	}
	return s
}
