package types

import "fmt"

// Type represents an ark data type.
type Type interface {
	// Returns whether this type is equal to the other type.  It should only be
	// called through Equals.
	equals(other Type) bool

	// Returns the size of this type in bytes.
	Size() int

	// Returns the representative string for this type.
	Repr() string
}

// Equals returns whether two types are equal.  Two `str` types are always
// equal regardless of their lengths.
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.equals(b)
}

// -----------------------------------------------------------------------------

// PrimitiveType represents a primitive type.  This must be one of the enumerated
// primitive type values below.
type PrimitiveType int

// Enumeration of the different primitive types.
const (
	PrimVoid PrimitiveType = iota
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimF32
	PrimF64
	PrimChar
	PrimBool
)

func (pt PrimitiveType) equals(other Type) bool {
	if opt, ok := other.(PrimitiveType); ok {
		return pt == opt
	}

	return false
}

func (pt PrimitiveType) Size() int {
	switch pt {
	case PrimVoid:
		return 0
	case PrimBool, PrimI8, PrimU8:
		return 1
	case PrimI16, PrimU16:
		return 2
	case PrimI32, PrimU32, PrimF32, PrimChar:
		return 4
	default:
		return 8
	}
}

func (pt PrimitiveType) Repr() string {
	switch pt {
	case PrimVoid:
		return "void"
	case PrimI8:
		return "i8"
	case PrimI16:
		return "i16"
	case PrimI32:
		return "i32"
	case PrimI64:
		return "i64"
	case PrimU8:
		return "u8"
	case PrimU16:
		return "u16"
	case PrimU32:
		return "u32"
	case PrimU64:
		return "u64"
	case PrimF32:
		return "f32"
	case PrimF64:
		return "f64"
	case PrimChar:
		return "char"
	default:
		return "bool"
	}
}

// IsSignedInt returns whether the type is a signed integer.
func (pt PrimitiveType) IsSignedInt() bool {
	return PrimI8 <= pt && pt <= PrimI64
}

// IsUnsignedInt returns whether the type is an unsigned integer.
func (pt PrimitiveType) IsUnsignedInt() bool {
	return PrimU8 <= pt && pt <= PrimU64
}

// IsInt returns whether the type is an integer of any signedness.
func (pt PrimitiveType) IsInt() bool {
	return pt.IsSignedInt() || pt.IsUnsignedInt()
}

// IsFloat returns whether the type is a floating point type.
func (pt PrimitiveType) IsFloat() bool {
	return pt == PrimF32 || pt == PrimF64
}

// -----------------------------------------------------------------------------

// StrType represents a string.  Its length is known for literals and unknown
// (-1) for declared variables.
type StrType struct {
	Len int
}

func (st *StrType) equals(other Type) bool {
	_, ok := other.(*StrType)
	return ok
}

func (st *StrType) Size() int {
	if st.Len < 0 {
		return 0
	}

	return st.Len
}

func (st *StrType) Repr() string {
	return "str"
}

// -----------------------------------------------------------------------------

// ArrayType represents a fixed length array.
type ArrayType struct {
	Len      int
	ElemType Type
}

func (at *ArrayType) equals(other Type) bool {
	if oat, ok := other.(*ArrayType); ok {
		return at.Len == oat.Len && Equals(at.ElemType, oat.ElemType)
	}

	return false
}

func (at *ArrayType) Size() int {
	return at.Len * at.ElemType.Size()
}

func (at *ArrayType) Repr() string {
	return fmt.Sprintf("array [%s]", at.ElemType.Repr())
}

// -----------------------------------------------------------------------------

// IsPrim returns whether typ is the given primitive type.
func IsPrim(typ Type, prim PrimitiveType) bool {
	pt, ok := typ.(PrimitiveType)
	return ok && pt == prim
}

// IsIntegral returns whether typ is an integer type.
func IsIntegral(typ Type) bool {
	pt, ok := typ.(PrimitiveType)
	return ok && pt.IsInt()
}

// IsArray returns whether typ is an array type.
func IsArray(typ Type) bool {
	_, ok := typ.(*ArrayType)
	return ok
}

// IsStr returns whether typ is a string type.
func IsStr(typ Type) bool {
	_, ok := typ.(*StrType)
	return ok
}
