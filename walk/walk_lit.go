package walk

import (
	"ark/ast"
	"ark/types"
	"math"
	"strconv"
)

// walkLiteral walks a literal value.  Integer literals take the smallest signed
// integer type that holds them and float literals the smallest float type.
func (w *Walker) walkLiteral(lit *ast.Literal) types.Type {
	switch lit.LitKind {
	case ast.LitInt:
		n, err := strconv.ParseInt(lit.Value, 10, 64)
		if err != nil {
			w.error(lit.Span(), "value is too large")
			return nil
		}

		return smallestIntType(n)
	case ast.LitFloat:
		f, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			w.error(lit.Span(), "value is too large")
			return nil
		}

		if math.Abs(f) <= math.MaxFloat32 {
			return types.PrimF32
		}

		return types.PrimF64
	case ast.LitStr:
		return &types.StrType{Len: strLitLen(lit.Value)}
	case ast.LitChar:
		return types.PrimChar
	default:
		return types.PrimBool
	}
}

// smallestIntType returns the smallest signed integer type which can hold n.
func smallestIntType(n int64) types.PrimitiveType {
	switch {
	case math.MinInt8 <= n && n <= math.MaxInt8:
		return types.PrimI8
	case math.MinInt16 <= n && n <= math.MaxInt16:
		return types.PrimI16
	case math.MinInt32 <= n && n <= math.MaxInt32:
		return types.PrimI32
	default:
		return types.PrimI64
	}
}

// strLitLen returns the length in bytes of the string a string literal
// denotes.  Escape sequences count as the byte they produce.
func strLitLen(raw string) int {
	if s, err := strconv.Unquote("\"" + raw + "\""); err == nil {
		return len(s)
	}

	return len(raw)
}

// -----------------------------------------------------------------------------

// isIntLit returns whether expr is an integer literal.
func isIntLit(expr ast.Node) bool {
	lit, ok := expr.(*ast.Literal)
	return ok && lit.LitKind == ast.LitInt
}

// intFits returns whether the integer literal text value can be represented by
// the integer type typ.
func intFits(value string, typ types.Type) bool {
	pt, ok := typ.(types.PrimitiveType)
	if !ok || !pt.IsInt() {
		return false
	}

	bits := pt.Size() * 8

	if pt.IsUnsignedInt() {
		_, err := strconv.ParseUint(value, 10, bits)
		return err == nil
	}

	_, err := strconv.ParseInt(value, 10, bits)
	return err == nil
}
