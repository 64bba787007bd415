package walk

import (
	"ark/ast"
	"ark/depm"
	"ark/report"
	"ark/types"
)

// Walker is responsible for walking a source file and performing semantic
// analysis on it.  The walk is a single pre-order pass which both populates
// and queries the file's scope tree.  Errors are reported and never stop the
// walk: an expression whose type cannot be determined is given a nil type and
// checks depending on it are skipped.
type Walker struct {
	// The source file being walked.
	file *depm.ArkFile

	// The reporter diagnostics are recorded in.
	rep *report.Reporter

	// The scope the walker is currently in.
	scope *depm.SymbolTable
}

// WalkFile semantically analyzes the given source file.
func WalkFile(rep *report.Reporter, file *depm.ArkFile) {
	w := &Walker{file: file, rep: rep, scope: file.Global}
	w.walkStmts(file.Body.Stmts)
}

// -----------------------------------------------------------------------------

// walkStmts walks a sequence of statements in the current scope.
func (w *Walker) walkStmts(stmts []ast.Node) {
	for i, stmt := range stmts {
		w.walkStmt(stmt)

		if stmt.Kind() == ast.KindReturn && i < len(stmts)-1 {
			w.warn(stmts[i+1].Span(), "unreachable code")
			w.walkStmts(stmts[i+1:])
			return
		}
	}
}

// walkBodyIn walks a body in the given scope and records the scope.
func (w *Walker) walkBodyIn(body *ast.Body, scope *depm.SymbolTable) {
	w.file.Scopes[body] = scope

	prev := w.scope
	w.scope = scope
	w.walkStmts(body.Stmts)
	w.scope = prev
}

// walkBlock walks a body in a fresh block scope.
func (w *Walker) walkBlock(body *ast.Body) {
	w.walkBodyIn(body, w.scope.InsertBlockScope())
}

// -----------------------------------------------------------------------------

// setType records the type of an expression and returns it.
func (w *Walker) setType(expr ast.Node, typ types.Type) types.Type {
	if typ != nil {
		w.file.Types[expr] = typ
	}

	return typ
}

// error reports a semantic error on the given span.
func (w *Walker) error(span *report.TextSpan, msg string, args ...interface{}) {
	w.rep.Report(report.DiagSemantic, span, msg, args...)
}

// warn reports a semantic warning on the given span.
func (w *Walker) warn(span *report.TextSpan, msg string, args ...interface{}) {
	w.rep.ReportWarning(report.DiagSemantic, span, msg, args...)
}
