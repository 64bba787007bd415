package types

// castTable maps each primitive type to the types it can be implicitly widened
// into.
var castTable = map[PrimitiveType][]PrimitiveType{
	PrimChar: {PrimI32, PrimI64},
	PrimBool: {PrimU8, PrimU16, PrimU32, PrimU64, PrimI8, PrimI16, PrimI32, PrimI64},
	PrimU8:   {PrimU16, PrimU32, PrimU64},
	PrimU16:  {PrimU32, PrimU64},
	PrimU32:  {PrimU64},
	PrimI8:   {PrimI16, PrimI32, PrimI64},
	PrimI16:  {PrimI32, PrimI64},
	PrimI32:  {PrimI64},
	PrimF32:  {PrimF64},
}

// Castable returns whether src can be implicitly widened into dest.  A type is
// not considered castable to itself.
func Castable(src, dest Type) bool {
	spt, ok := src.(PrimitiveType)
	if !ok {
		return false
	}

	dpt, ok := dest.(PrimitiveType)
	if !ok {
		return false
	}

	for _, target := range castTable[spt] {
		if target == dpt {
			return true
		}
	}

	return false
}

// Coerce attempts to find a common type for a and b by widening one into the
// other.  If a is castable to b, b is returned; if b is castable to a, a is
// returned.  Otherwise, nil is returned.
func Coerce(a, b Type) Type {
	if Castable(a, b) {
		return b
	} else if Castable(b, a) {
		return a
	}

	return nil
}
