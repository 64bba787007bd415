package lower

import (
	"ark/ast"
	"ark/report"
	"ark/syntax"
	"strings"
)

// opMnemonics maps binary operators to their instruction mnemonics.
var opMnemonics = map[int]string{
	syntax.TOK_PLUS:  "add",
	syntax.TOK_MINUS: "sub",
	syntax.TOK_STAR:  "mul",
	syntax.TOK_DIV:   "div",
	syntax.TOK_MOD:   "mod",
	syntax.TOK_EQ:    "equ",
	syntax.TOK_LT:    "l",
	syntax.TOK_LTEQ:  "le",
	syntax.TOK_GT:    "m",
	syntax.TOK_GTEQ:  "me",
	syntax.TOK_LAND:  "and",
	syntax.TOK_LOR:   "or",
}

// lowerExpr lowers an expression.  Instructions computing the expression are
// written to b and the operand holding its value is returned: a variable
// version, a literal, or a temporary.
func (l *Lowerer) lowerExpr(b *strings.Builder, expr ast.Node) string {
	switch v := expr.(type) {
	case *ast.Variable:
		return l.readVar(l.file.VarOf(v))
	case *ast.Literal:
		return lowerLiteral(v)
	case *ast.Assignment:
		rhs := l.lowerExpr(b, v.Rhs)

		var dest string
		switch lhs := v.Lhs.(type) {
		case *ast.DeclareVar:
			attr := l.file.VarOf(lhs)
			l.declareVar(attr)
			dest = l.writeVar(attr)
		case *ast.Variable:
			dest = l.writeVar(l.file.VarOf(lhs))
		default:
			report.ReportICE("assignment to %T reached lowering", v.Lhs)
		}

		emit(b, "%s = %s", dest, rhs)
		return dest
	case *ast.BinaryExpression:
		lhs := l.lowerExpr(b, v.Lhs)
		rhs := l.lowerExpr(b, v.Rhs)

		temp := l.getTempName()
		emit(b, "%s = %s %s, %s", temp, opMnemonics[v.Op.Kind], lhs, rhs)
		return temp
	case *ast.BooleanNot:
		operand := l.lowerExpr(b, v.Operand)

		temp := l.getTempName()
		emit(b, "%s = not %s", temp, operand)
		return temp
	case *ast.FunctionCall:
		return l.lowerCall(b, v.Name, v.Args)
	case *ast.MethodCall:
		return l.lowerCall(b, l.lowerCaller(b, v.Caller)+"."+v.Method, v.Args)
	}

	report.ReportICE("%T reached lowering outside of a for loop header", expr)
	return ""
}

// lowerCall lowers a call to the named callee.
func (l *Lowerer) lowerCall(b *strings.Builder, callee string, args []ast.Node) string {
	operands := make([]string, len(args))
	for i, arg := range args {
		operands[i] = l.lowerExpr(b, arg)
	}

	temp := l.getTempName()
	if len(operands) == 0 {
		emit(b, "%s = call %s", temp, callee)
	} else {
		emit(b, "%s = call %s %s", temp, callee, strings.Join(operands, ", "))
	}

	return temp
}

// lowerCaller lowers the receiver of a method call.  Import aliases are named
// directly since they have no value to version.
func (l *Lowerer) lowerCaller(b *strings.Builder, caller ast.Node) string {
	if v, ok := caller.(*ast.Variable); ok && l.file.VarOf(v).Alias {
		return v.Name
	}

	return l.lowerExpr(b, caller)
}

// lowerLiteral returns the operand text of a literal.
func lowerLiteral(lit *ast.Literal) string {
	switch lit.LitKind {
	case ast.LitStr:
		return "\"" + lit.Value + "\""
	case ast.LitChar:
		return "'" + lit.Value + "'"
	default:
		return lit.Value
	}
}
