package types

import "testing"

func TestCastable(t *testing.T) {
	cases := []struct {
		src, dest Type
		want      bool
	}{
		{PrimU8, PrimU16, true},
		{PrimU8, PrimU64, true},
		{PrimU16, PrimU8, false},
		{PrimI8, PrimI64, true},
		{PrimI32, PrimI16, false},
		{PrimU8, PrimI16, false},
		{PrimF32, PrimF64, true},
		{PrimF64, PrimF32, false},
		{PrimBool, PrimI32, true},
		{PrimBool, PrimU8, true},
		{PrimBool, PrimF32, false},
		{PrimChar, PrimI32, true},
		{PrimChar, PrimI16, false},
		{PrimI32, PrimI32, false},
		{&StrType{Len: 2}, PrimI32, false},
	}

	for _, c := range cases {
		if got := Castable(c.src, c.dest); got != c.want {
			t.Errorf("Castable(%s, %s) = %v, want %v", c.src.Repr(), c.dest.Repr(), got, c.want)
		}
	}
}

func TestCoerce(t *testing.T) {
	if got := Coerce(PrimU8, PrimU16); !Equals(got, PrimU16) {
		t.Errorf("Coerce(u8, u16) = %v, want u16", got)
	}

	if got := Coerce(PrimI64, PrimI8); !Equals(got, PrimI64) {
		t.Errorf("Coerce(i64, i8) = %v, want i64", got)
	}

	if got := Coerce(PrimU8, PrimI8); got != nil {
		t.Errorf("Coerce(u8, i8) = %v, want nil", got)
	}
}

func TestSizeAndRepr(t *testing.T) {
	arr := &ArrayType{Len: 4, ElemType: PrimI32}
	if arr.Size() != 16 {
		t.Errorf("array size = %d, want 16", arr.Size())
	}

	if arr.Repr() != "array [i32]" {
		t.Errorf("array repr = %q", arr.Repr())
	}

	nested := &ArrayType{Len: 2, ElemType: arr}
	if nested.Size() != 32 {
		t.Errorf("nested array size = %d, want 32", nested.Size())
	}

	if (&StrType{Len: 5}).Size() != 5 {
		t.Error("str(5) should have size 5")
	}

	if PrimVoid.Size() != 0 || PrimBool.Repr() != "bool" {
		t.Error("bad primitive size or repr")
	}
}

func TestEquals(t *testing.T) {
	if !Equals(&StrType{Len: 1}, &StrType{Len: -1}) {
		t.Error("str types should be equal regardless of length")
	}

	if Equals(&ArrayType{Len: 2, ElemType: PrimI8}, &ArrayType{Len: 3, ElemType: PrimI8}) {
		t.Error("arrays of different lengths should differ")
	}

	if Equals(PrimI8, nil) || !Equals(nil, nil) {
		t.Error("nil handling is wrong")
	}
}
