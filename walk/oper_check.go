package walk

import (
	"ark/ast"
	"ark/syntax"
	"ark/types"
)

// walkBinaryExpr walks a binary expression.  The operands are first brought to
// a common type and then checked against the operator.
func (w *Walker) walkBinaryExpr(expr *ast.BinaryExpression) types.Type {
	lhsType := w.walkExpr(expr.Lhs)
	rhsType := w.walkExpr(expr.Rhs)

	if lhsType == nil || rhsType == nil {
		return nil
	}

	operandType := w.unifyOperands(expr, lhsType, rhsType)
	if operandType == nil {
		w.error(
			expr.Op.Span,
			"operands have mismatched type '%s' and '%s'",
			lhsType.Repr(),
			rhsType.Repr(),
		)
		return nil
	}

	w.file.OperandTypes[expr] = operandType

	switch expr.Op.Kind {
	case syntax.TOK_PLUS:
		if !w.checkOperands(expr.Op, lhsType, rhsType, operandType, rejectArray, rejectBool, rejectChar) {
			return nil
		}

		return operandType
	case syntax.TOK_MINUS, syntax.TOK_STAR, syntax.TOK_DIV, syntax.TOK_MOD:
		if !w.checkOperands(expr.Op, lhsType, rhsType, operandType, rejectArray, rejectBool, rejectChar, rejectStr) {
			return nil
		}

		return operandType
	case syntax.TOK_EQ:
		if !w.checkOperands(expr.Op, lhsType, rhsType, operandType, rejectArray) {
			return nil
		}

		return types.PrimBool
	case syntax.TOK_LT, syntax.TOK_LTEQ, syntax.TOK_GT, syntax.TOK_GTEQ:
		if !w.checkOperands(expr.Op, lhsType, rhsType, operandType, rejectArray, rejectBool, rejectChar, rejectStr) {
			return nil
		}

		return types.PrimBool
	case syntax.TOK_LAND, syntax.TOK_LOR:
		if !types.IsPrim(lhsType, types.PrimBool) || !types.IsPrim(rhsType, types.PrimBool) {
			w.error(expr.Op.Span, "operator '%s' can only be used on boolean expression", expr.Op.Name)
			return nil
		}

		return types.PrimBool
	}

	w.error(expr.Op.Span, "unknown operator '%s'", expr.Op.Name)
	return nil
}

// unifyOperands finds the common type of the operands of a binary expression.
// Two strings unify to a string of their combined length.  An integer literal
// operand takes the type of the other operand if its value fits in it.
// Otherwise, one operand must widen into the other.  It returns nil if there is
// no common type.
func (w *Walker) unifyOperands(expr *ast.BinaryExpression, lhsType, rhsType types.Type) types.Type {
	if lst, ok := lhsType.(*types.StrType); ok {
		if rst, ok := rhsType.(*types.StrType); ok {
			if lst.Len < 0 || rst.Len < 0 {
				return &types.StrType{Len: -1}
			}

			return &types.StrType{Len: lst.Len + rst.Len}
		}
	}

	if types.Equals(lhsType, rhsType) {
		return lhsType
	}

	if isIntLit(expr.Rhs) && intFits(expr.Rhs.(*ast.Literal).Value, lhsType) {
		return lhsType
	}

	if isIntLit(expr.Lhs) && intFits(expr.Lhs.(*ast.Literal).Value, rhsType) {
		return rhsType
	}

	return types.Coerce(lhsType, rhsType)
}

// -----------------------------------------------------------------------------

// operandRule rejects a kind of operand type.  It returns the description of
// the rejected type for use in the error message or an empty string if the
// type is accepted.
type operandRule func(typ types.Type) string

func rejectArray(typ types.Type) string {
	if types.IsArray(typ) {
		return "Array"
	}

	return ""
}

func rejectBool(typ types.Type) string {
	if types.IsPrim(typ, types.PrimBool) {
		return "bool type"
	}

	return ""
}

func rejectChar(typ types.Type) string {
	if types.IsPrim(typ, types.PrimChar) {
		return "char type"
	}

	return ""
}

func rejectStr(typ types.Type) string {
	if types.IsStr(typ) {
		return "str type"
	}

	return ""
}

// checkOperands applies operator rules to both operands and their common type.
// The operands are checked before coercion so that eg. a `bool` operand widened
// to an integer is still rejected by arithmetic operators.
func (w *Walker) checkOperands(op ast.Oper, lhsType, rhsType, operandType types.Type, rules ...operandRule) bool {
	for _, typ := range []types.Type{lhsType, rhsType, operandType} {
		for _, rule := range rules {
			if desc := rule(typ); desc != "" {
				msg := "operator '%s' cannot be used on %s"
				if op.Kind == syntax.TOK_PLUS && types.IsPrim(typ, types.PrimChar) {
					msg += ", consider making it a str type"
				}

				w.error(op.Span, msg, op.Name, desc)
				return false
			}
		}
	}

	return true
}
