package generate

import (
	"ark/report"
	"ark/types"

	lltypes "github.com/llir/llvm/ir/types"
)

// convType converts an ark type into its LLVM representation.
func (g *Generator) convType(typ types.Type) lltypes.Type {
	switch v := typ.(type) {
	case types.PrimitiveType:
		return convPrimType(v)
	case *types.StrType:
		return lltypes.I8Ptr
	case *types.ArrayType:
		return lltypes.NewArray(uint64(v.Len), g.convType(v.ElemType))
	}

	report.ReportICE("no LLVM type for `%T`", typ)
	return nil
}

func convPrimType(pt types.PrimitiveType) lltypes.Type {
	switch pt {
	case types.PrimI8, types.PrimU8:
		return lltypes.I8
	case types.PrimI16, types.PrimU16:
		return lltypes.I16
	case types.PrimI32, types.PrimU32, types.PrimChar:
		return lltypes.I32
	case types.PrimI64, types.PrimU64:
		return lltypes.I64
	case types.PrimF32:
		return lltypes.Float
	case types.PrimF64:
		return lltypes.Double
	case types.PrimBool:
		return lltypes.I1
	case types.PrimVoid:
		return lltypes.Void
	}

	report.ReportICE("no LLVM type for primitive `%s`", pt.Repr())
	return nil
}
