package generate

import (
	"ark/ast"
	"ark/depm"
	"ark/report"
	"ark/syntax"
	"ark/types"
	"fmt"
	"strconv"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genExpr generates an expression and returns its value.
func (g *Generator) genExpr(expr ast.Node) value.Value {
	switch v := expr.(type) {
	case *ast.Variable:
		ident := g.lookupVar(v)
		return g.block.NewLoad(ident.Typ, ident.Slot)
	case *ast.Literal:
		return g.genLiteral(v, g.file.TypeOf(v))
	case *ast.Assignment:
		return g.genAssignment(v)
	case *ast.BinaryExpression:
		return g.genBinaryExpr(v)
	case *ast.BooleanNot:
		return g.block.NewXor(g.genExpr(v.Operand), constant.NewBool(true))
	case *ast.FunctionCall:
		return g.genFuncCall(v)
	case *ast.MethodCall:
		g.unsupported(v, "method calls")
	}

	report.ReportICE("%T reached generation outside of a for loop header", expr)
	return nil
}

// genExprAs generates an expression and converts its value to typ.  Integer
// literals are generated directly at the destination type.
func (g *Generator) genExprAs(expr ast.Node, typ types.Type) value.Value {
	if lit, ok := expr.(*ast.Literal); ok && lit.LitKind == ast.LitInt && types.IsIntegral(typ) {
		return g.genLiteral(lit, typ)
	}

	return g.genCast(g.genExpr(expr), g.file.TypeOf(expr), typ)
}

// genAssignment generates an assignment and returns the value stored.
func (g *Generator) genAssignment(asn *ast.Assignment) value.Value {
	var ident LLVMIdent
	var destType types.Type
	switch lhs := asn.Lhs.(type) {
	case *ast.DeclareVar:
		ident = g.defineVar(lhs.Name, lhs.Type)
		destType = lhs.Type
	case *ast.Variable:
		ident = g.lookupVar(lhs)
		destType = g.file.TypeOf(lhs)
	default:
		report.ReportICE("assignment to %T reached generation", asn.Lhs)
	}

	val := g.genExprAs(asn.Rhs, destType)
	g.block.NewStore(val, ident.Slot)
	return val
}

// lookupVar finds the slot of a variable reference.  Analysis rejects import
// aliases used as values, so every reference reaching here has a type.
func (g *Generator) lookupVar(v *ast.Variable) LLVMIdent {
	if g.file.TypeOf(v) == nil {
		report.ReportICE("variable `%s` at %s has no type", v.Name, v.Span().Pos)
	}

	return g.lookup(v.Name)
}

// genFuncCall generates a call to a declared function.
func (g *Generator) genFuncCall(call *ast.FunctionCall) value.Value {
	fn, ok := g.funcs[call.Name]
	if !ok {
		report.ReportICE("function `%s` called before generation", call.Name)
	}

	var params []depm.FuncParam
	if attr, _ := g.file.Global.LookupFunc(call.Name); attr != nil {
		params = attr.Params
	}

	args := make([]value.Value, len(call.Args))
	for i, arg := range call.Args {
		if i < len(params) {
			args[i] = g.genExprAs(arg, params[i].Type)
		} else {
			args[i] = g.genExpr(arg)
		}
	}

	return g.block.NewCall(fn, args...)
}

// -----------------------------------------------------------------------------

// genBinaryExpr generates a binary expression.  Both operands are converted to
// the common type found during analysis before the operator is applied.
func (g *Generator) genBinaryExpr(expr *ast.BinaryExpression) value.Value {
	operandType, ok := g.file.OperandTypes[expr]
	if !ok {
		// an operand of unknown type: generating it reports why
		g.genExpr(expr.Lhs)
		g.genExpr(expr.Rhs)
		report.ReportICE("binary expression at %s was not analyzed", expr.Span().Pos)
	}

	if types.IsStr(operandType) {
		g.unsupported(expr, "string operations")
	}

	lhs := g.genExprAs(expr.Lhs, operandType)
	rhs := g.genExprAs(expr.Rhs, operandType)

	pt := operandType.(types.PrimitiveType)
	switch expr.Op.Kind {
	case syntax.TOK_PLUS:
		if pt.IsFloat() {
			return g.block.NewFAdd(lhs, rhs)
		}

		return g.block.NewAdd(lhs, rhs)
	case syntax.TOK_MINUS:
		if pt.IsFloat() {
			return g.block.NewFSub(lhs, rhs)
		}

		return g.block.NewSub(lhs, rhs)
	case syntax.TOK_STAR:
		if pt.IsFloat() {
			return g.block.NewFMul(lhs, rhs)
		}

		return g.block.NewMul(lhs, rhs)
	case syntax.TOK_DIV:
		switch {
		case pt.IsFloat():
			return g.block.NewFDiv(lhs, rhs)
		case pt.IsUnsignedInt():
			return g.block.NewUDiv(lhs, rhs)
		default:
			return g.block.NewSDiv(lhs, rhs)
		}
	case syntax.TOK_MOD:
		switch {
		case pt.IsFloat():
			return g.block.NewFRem(lhs, rhs)
		case pt.IsUnsignedInt():
			return g.block.NewURem(lhs, rhs)
		default:
			return g.block.NewSRem(lhs, rhs)
		}
	case syntax.TOK_EQ, syntax.TOK_LT, syntax.TOK_LTEQ, syntax.TOK_GT, syntax.TOK_GTEQ:
		return g.genComparison(expr.Op.Kind, pt, lhs, rhs)
	case syntax.TOK_LAND:
		return g.block.NewAnd(lhs, rhs)
	case syntax.TOK_LOR:
		return g.block.NewOr(lhs, rhs)
	}

	report.ReportICE("unknown operator `%s` reached generation", expr.Op.Name)
	return nil
}

var (
	fPreds = map[int]enum.FPred{
		syntax.TOK_EQ:   enum.FPredOEQ,
		syntax.TOK_LT:   enum.FPredOLT,
		syntax.TOK_LTEQ: enum.FPredOLE,
		syntax.TOK_GT:   enum.FPredOGT,
		syntax.TOK_GTEQ: enum.FPredOGE,
	}

	sPreds = map[int]enum.IPred{
		syntax.TOK_EQ:   enum.IPredEQ,
		syntax.TOK_LT:   enum.IPredSLT,
		syntax.TOK_LTEQ: enum.IPredSLE,
		syntax.TOK_GT:   enum.IPredSGT,
		syntax.TOK_GTEQ: enum.IPredSGE,
	}

	uPreds = map[int]enum.IPred{
		syntax.TOK_EQ:   enum.IPredEQ,
		syntax.TOK_LT:   enum.IPredULT,
		syntax.TOK_LTEQ: enum.IPredULE,
		syntax.TOK_GT:   enum.IPredUGT,
		syntax.TOK_GTEQ: enum.IPredUGE,
	}
)

// genComparison generates a comparison of two operands of type pt.
func (g *Generator) genComparison(op int, pt types.PrimitiveType, lhs, rhs value.Value) value.Value {
	switch {
	case pt.IsFloat():
		return g.block.NewFCmp(fPreds[op], lhs, rhs)
	case pt.IsSignedInt():
		return g.block.NewICmp(sPreds[op], lhs, rhs)
	default:
		return g.block.NewICmp(uPreds[op], lhs, rhs)
	}
}

// -----------------------------------------------------------------------------

// genCast converts a value of type src to type dst.  Only the widenings
// accepted by analysis are possible.
func (g *Generator) genCast(val value.Value, src, dst types.Type) value.Value {
	if types.Equals(src, dst) || (types.IsStr(src) && types.IsStr(dst)) {
		return val
	}

	spt, sok := src.(types.PrimitiveType)
	dpt, dok := dst.(types.PrimitiveType)
	if !sok || !dok {
		report.ReportICE("no conversion from `%s` to `%s`", src.Repr(), dst.Repr())
	}

	dstType := convPrimType(dpt)
	if dpt.IsFloat() {
		if spt == types.PrimF32 {
			return g.block.NewFPExt(val, dstType)
		}

		report.ReportICE("no conversion from `%s` to `%s`", src.Repr(), dst.Repr())
	}

	if val.Type().Equal(dstType) {
		return val
	}

	if spt.IsSignedInt() {
		return g.block.NewSExt(val, dstType)
	}

	return g.block.NewZExt(val, dstType)
}

// genLiteral generates a literal as a constant of type typ.
func (g *Generator) genLiteral(lit *ast.Literal, typ types.Type) value.Value {
	switch lit.LitKind {
	case ast.LitInt:
		intType := convPrimType(typ.(types.PrimitiveType)).(*lltypes.IntType)
		c, err := constant.NewIntFromString(intType, lit.Value)
		if err != nil {
			report.ReportICE("bad integer literal `%s`: %s", lit.Value, err)
		}

		return c
	case ast.LitFloat:
		f, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			report.ReportICE("bad float literal `%s`: %s", lit.Value, err)
		}

		if types.IsPrim(typ, types.PrimF32) {
			return constant.NewFloat(lltypes.Float, float64(float32(f)))
		}

		return constant.NewFloat(lltypes.Double, f)
	case ast.LitBool:
		return constant.NewBool(lit.Value == "true")
	case ast.LitChar:
		r, _, _, err := strconv.UnquoteChar(lit.Value, '\'')
		if err != nil {
			r = []rune(lit.Value)[0]
		}

		return constant.NewInt(lltypes.I32, int64(r))
	case ast.LitStr:
		return g.genStrLit(lit)
	}

	report.ReportICE("unknown literal kind reached generation")
	return nil
}

// genStrLit interns a string literal as a private, null-terminated global and
// returns a pointer to its first character.
func (g *Generator) genStrLit(lit *ast.Literal) value.Value {
	s, err := strconv.Unquote("\"" + lit.Value + "\"")
	if err != nil {
		s = lit.Value
	}

	arr := constant.NewCharArrayFromString(s + "\x00")
	glob := g.mod.NewGlobalDef(g.globalName(fmt.Sprintf("ark.str.%d", g.globalCounter)), arr)
	glob.Linkage = enum.LinkagePrivate
	glob.Immutable = true
	g.globalCounter++

	zero := constant.NewInt(lltypes.I64, 0)
	return constant.NewGetElementPtr(arr.Typ, glob, zero, zero)
}
