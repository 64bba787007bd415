package lower

import (
	"ark/ast"
	"strings"
)

// lowerStmts lowers a sequence of statements.
func (l *Lowerer) lowerStmts(b *strings.Builder, stmts []ast.Node) {
	for _, stmt := range stmts {
		l.lowerStmt(b, stmt)
	}
}

// lowerStmt lowers a single statement.
func (l *Lowerer) lowerStmt(b *strings.Builder, stmt ast.Node) {
	switch v := stmt.(type) {
	case *ast.Body:
		l.lowerBody(b, v)
	case *ast.DeclareVar:
		l.declareVar(l.file.VarOf(v))
	case *ast.ParserError:
		// nothing to emit
	case *ast.Function:
		l.lowerFuncDecl(b, v)
	case *ast.Import:
		if v.Alias == "" {
			emit(b, "@import \"%s\"", v.Path)
		} else {
			emit(b, "@import \"%s\" as %s", v.Path, v.Alias)
		}
	case *ast.Return:
		if v.Value == nil {
			emit(b, "ret $void")
		} else {
			emit(b, "ret %s", l.lowerExpr(b, v.Value))
		}
	case *ast.Conditional:
		l.lowerIfStmt(b, v)
	case *ast.While:
		l.lowerWhileLoop(b, v)
	case *ast.For:
		l.lowerForLoop(b, v)
	default:
		l.lowerExpr(b, stmt)
	}
}

// lowerFuncDecl lowers a function declaration.  The body is lowered in the
// function's own scope and indented under the function header.
func (l *Lowerer) lowerFuncDecl(b *strings.Builder, fn *ast.Function) {
	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = param.Type.Repr() + " " + l.varName(l.file.ParamVars[param])
	}

	emit(b, "@defined %s %s(%s):", fn.ReturnType.Repr(), fn.Name, strings.Join(params, ", "))

	prevLabelCounter := l.labelCounter
	l.labelCounter = 0

	body := &strings.Builder{}
	l.lowerBody(body, fn.Body)

	l.labelCounter = prevLabelCounter

	for _, line := range strings.SplitAfter(body.String(), "\n") {
		if line != "" {
			b.WriteString("    ")
			b.WriteString(line)
		}
	}
}
