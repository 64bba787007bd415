package walk

import (
	"ark/ast"
	"ark/depm"
	"ark/types"
)

// walkStmt walks a single statement.
func (w *Walker) walkStmt(stmt ast.Node) {
	switch v := stmt.(type) {
	case *ast.Body:
		w.walkBlock(v)
	case *ast.DeclareVar:
		w.declareVar(v)
	case *ast.Function:
		w.walkFuncDecl(v)
	case *ast.Import:
		w.walkImport(v)
	case *ast.Return:
		w.walkReturn(v)
	case *ast.Conditional:
		w.walkIfStmt(v)
	case *ast.While:
		w.walkWhileLoop(v)
	case *ast.For:
		w.walkForLoop(v)
	case *ast.ParserError:
		// already reported
	default:
		w.walkExpr(stmt)
	}
}

// declareVar declares a variable in the current scope.
func (w *Walker) declareVar(decl *ast.DeclareVar) *depm.VarAttribute {
	attr := w.scope.DeclareVar(decl.Name, decl.Type, decl.NameSpan.Pos.Line)
	attr.Constant = decl.Constant
	w.file.Refs[decl] = attr
	return attr
}

// walkFuncDecl walks a function declaration.  The function is inserted before
// its body is walked so that it may call itself.
func (w *Walker) walkFuncDecl(fn *ast.Function) {
	attr := w.scope.InsertFunc(fn.Name)
	w.scope.UpdateFunc(fn.Name, fn.ReturnType, fn.NameSpan.Pos.Line)

	// parameters are visible from the first line of the function.
	for _, param := range fn.Params {
		w.scope.AddParam(fn.Name, param.Name, param.Type)
		w.file.ParamVars[param] = attr.Table.DeclareVar(param.Name, param.Type, 1)
	}

	w.walkBodyIn(fn.Body, attr.Table)
}

// walkImport walks an import statement.  Imports are only checked for their
// placement: the imported module is not resolved.
func (w *Walker) walkImport(imp *ast.Import) {
	if w.scope.Kind != depm.ScopeGlobal {
		w.error(imp.Span(), "only top-level import is allowed")
		return
	}

	if imp.Alias == "" {
		return
	}

	if attr, _ := w.scope.LookupVar(imp.Alias); attr != nil {
		w.error(imp.AliasSpan, "import alias '%s' overrides existing identifier", imp.Alias)
		return
	}

	w.scope.DeclareVar(imp.Alias, nil, imp.AliasSpan.Pos.Line).Alias = true
}

// walkReturn walks a return statement.
func (w *Walker) walkReturn(ret *ast.Return) {
	fn := w.scope.CurrentFunc()
	if fn == nil {
		w.error(ret.Span(), "top-level return is not allowed")

		if ret.Value != nil {
			w.walkExpr(ret.Value)
		}

		return
	}

	var typ types.Type = types.PrimVoid
	if ret.Value != nil {
		typ = w.walkExpr(ret.Value)
		if typ == nil {
			return
		}
	}

	if !w.assignable(fn.ReturnType, typ, ret.Value) {
		w.error(
			ret.Span(),
			"function '%s' expect return type '%s' found '%s'",
			fn.Name,
			fn.ReturnType.Repr(),
			typ.Repr(),
		)
	}
}

// -----------------------------------------------------------------------------

// assignable returns whether a value of type src produced by expr can be
// stored in a location of type dest: the types are equal, src widens to dest,
// or expr is an integer literal whose value fits in dest.
func (w *Walker) assignable(dest, src types.Type, expr ast.Node) bool {
	if types.Equals(dest, src) || types.Castable(src, dest) {
		return true
	}

	if lit, ok := expr.(*ast.Literal); ok && lit.LitKind == ast.LitInt {
		return intFits(lit.Value, dest)
	}

	return false
}
