package walk

import (
	"ark/ast"
	"ark/types"
)

// walkIfStmt walks an if statement.  Every branch body gets its own scope.
func (w *Walker) walkIfStmt(cond *ast.Conditional) {
	for _, branch := range cond.Branches {
		if typ := w.walkExpr(branch.Cond); typ != nil && !types.IsPrim(typ, types.PrimBool) {
			w.error(branch.Cond.Span(), "expected boolean expression in if statement found '%s'", typ.Repr())
		}

		w.walkBlock(branch.Body)
	}

	if cond.Else != nil {
		w.walkBlock(cond.Else)
	}
}

// walkWhileLoop walks a while loop.
func (w *Walker) walkWhileLoop(loop *ast.While) {
	if typ := w.walkExpr(loop.Cond); typ != nil && !types.IsPrim(typ, types.PrimBool) {
		w.error(loop.Cond.Span(), "while loop expected boolean expression found '%s'", typ.Repr())
	}

	w.walkBlock(loop.Body)
}

// walkForLoop walks a for loop.  The loop variable is declared in the scope
// of the loop body with the type of the range bounds.
func (w *Walker) walkForLoop(loop *ast.For) {
	iterType := w.walkRange(loop.Iter.(*ast.Range))

	scope := w.scope.InsertBlockScope()
	line := loop.Target.Span().Pos.Line

	switch v := loop.Target.(type) {
	case *ast.Variable:
		w.file.Refs[v] = scope.DeclareVar(v.Name, iterType, line)
		w.setType(v, iterType)
	case *ast.Tuple:
		w.error(v.Span(), "cannot unpack a range into %d loop variables", len(v.Elems))

		// the variables are still declared so their uses are not reported.
		for _, elem := range v.Elems {
			scope.DeclareVar(elem.(*ast.Variable).Name, nil, line)
		}
	}

	w.walkBodyIn(loop.Body, scope)
}

// walkRange walks the range of a for loop and returns the type of its
// elements.  Both bounds must be integers.
func (w *Walker) walkRange(rng *ast.Range) types.Type {
	startType := w.walkExpr(rng.Start)
	endType := w.walkExpr(rng.End)

	if startType == nil || endType == nil {
		return nil
	}

	var typ types.Type
	switch {
	case types.Equals(startType, endType):
		typ = startType
	case isIntLit(rng.Start) && intFits(rng.Start.(*ast.Literal).Value, endType):
		typ = endType
	case isIntLit(rng.End) && intFits(rng.End.(*ast.Literal).Value, startType):
		typ = startType
	default:
		typ = types.Coerce(startType, endType)
	}

	if typ == nil {
		w.error(rng.Span(), "range bounds have mismatched type '%s' and '%s'", startType.Repr(), endType.Repr())
		return nil
	}

	if !types.IsIntegral(typ) {
		w.error(rng.Span(), "range bounds must be integers, found '%s'", typ.Repr())
		return nil
	}

	return w.setType(rng, typ)
}
