package walk

import (
	"ark/ast"
	"ark/depm"
	"ark/types"
)

// walkExpr walks an expression and returns its type.  The returned type is nil
// if the type could not be determined: an error has already been reported.
func (w *Walker) walkExpr(expr ast.Node) types.Type {
	switch v := expr.(type) {
	case *ast.Variable:
		return w.setType(v, w.walkVariable(v))
	case *ast.Assignment:
		return w.setType(v, w.walkAssignment(v))
	case *ast.Literal:
		return w.setType(v, w.walkLiteral(v))
	case *ast.BinaryExpression:
		return w.setType(v, w.walkBinaryExpr(v))
	case *ast.FunctionCall:
		return w.setType(v, w.walkFuncCall(v))
	case *ast.MethodCall:
		// methods are not modeled: the receiver and arguments are checked but
		// the result type is unknown.
		w.walkCaller(v.Caller)
		for _, arg := range v.Args {
			w.walkExpr(arg)
		}

		return nil
	case *ast.BooleanNot:
		typ := w.walkExpr(v.Operand)
		if typ == nil {
			return nil
		}

		if !types.IsPrim(typ, types.PrimBool) {
			w.error(v.Span(), "cannot apply ! to '%s'", typ.Repr())
			return nil
		}

		return w.setType(v, types.PrimBool)
	case *ast.Tuple:
		w.error(v.Span(), "tuples can only be used as a for loop target")
		return nil
	case *ast.Range:
		w.error(v.Span(), "ranges can only be used in a for loop")
		return nil
	case *ast.ParserError:
		return nil
	}

	w.error(expr.Span(), "expected expression")
	return nil
}

// walkVariable walks a variable reference used as a value.
func (w *Walker) walkVariable(v *ast.Variable) types.Type {
	attr := w.resolveVar(v)
	if attr == nil {
		return nil
	}

	if attr.Alias {
		w.error(v.Span(), "import alias '%s' is not a value", v.Name)
		return nil
	}

	return attr.Type
}

// walkCaller walks the receiver of a method call.  Unlike other expressions,
// the receiver may name an import alias.
func (w *Walker) walkCaller(caller ast.Node) {
	if v, ok := caller.(*ast.Variable); ok {
		if attr := w.resolveVar(v); attr != nil && !attr.Alias {
			w.setType(v, attr.Type)
		}

		return
	}

	w.walkExpr(caller)
}

// resolveVar resolves a variable reference and records what it resolved to.
// A variable must be declared on or before the line it is used on.  It
// returns nil if the variable is not visible.
func (w *Walker) resolveVar(v *ast.Variable) *depm.VarAttribute {
	attr, _ := w.scope.LookupVar(v.Name)
	if attr == nil {
		w.error(v.Span(), "use of undeclared variable '%s'", v.Name)
		return nil
	}

	line := v.Span().Pos.Line
	w.scope.PushLineRef(v.Name, line)

	if line < attr.LineDeclare {
		w.error(v.Span(), "use of undeclared variable '%s'", v.Name)
		return nil
	}

	w.file.Refs[v] = attr
	return attr
}

// walkAssignment walks an assignment or an initialized declaration.
func (w *Walker) walkAssignment(asn *ast.Assignment) types.Type {
	var lhsType types.Type
	lhsOk := true

	switch v := asn.Lhs.(type) {
	case *ast.DeclareVar:
		lhsType = w.declareVar(v).Type
	case *ast.Variable:
		if attr, _ := w.scope.LookupVar(v.Name); attr != nil && attr.Constant {
			w.error(v.Span(), "cannot assign to constant '%s'", v.Name)
			lhsOk = false
		} else {
			lhsType = w.walkExpr(v)
		}
	default:
		w.error(asn.Span(), "left operand can't assign to")
		lhsOk = false
	}

	rhsType := w.walkExpr(asn.Rhs)
	if !lhsOk || lhsType == nil || rhsType == nil {
		return nil
	}

	if !w.assignable(lhsType, rhsType, asn.Rhs) {
		w.error(asn.Span(), "expected '%s' found '%s'", lhsType.Repr(), rhsType.Repr())
		return nil
	}

	return lhsType
}

// walkFuncCall walks a function call.  Arguments are checked on their own:
// they are not matched against the function's parameters.
func (w *Walker) walkFuncCall(call *ast.FunctionCall) types.Type {
	for _, arg := range call.Args {
		w.walkExpr(arg)
	}

	attr, _ := w.scope.LookupFunc(call.Name)
	if attr == nil {
		w.error(call.Span(), "use of undeclared function '%s'", call.Name)
		return nil
	}

	attr.LineUsed = append(attr.LineUsed, call.Span().Pos.Line)
	return attr.ReturnType
}
