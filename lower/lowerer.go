package lower

import (
	"ark/ast"
	"ark/depm"
	"ark/report"
	"fmt"
	"strings"
)

// Lowerer is the construct responsible for converting an analyzed AST into
// three-address code.  It performs no validation of its own: it relies on the
// variables resolved during analysis for versions and on the scopes created
// during analysis to count temporaries.
type Lowerer struct {
	// The analyzed source file being lowered.
	file *depm.ArkFile

	// The scope of the body currently being lowered.
	scope *depm.SymbolTable

	// labelCounter is a counter for label names.  It is reset for each
	// function.
	labelCounter int

	// names maps each lowered variable to its name in the IR.  The first
	// variable lowered with a given name keeps it and every later variable of
	// the same name gets one more `'` appended.
	names map[*depm.VarAttribute]string

	// shadows counts the variables lowered so far for each source name.
	shadows map[string]int

	// writes logs every version minted or declaration lowered in order.  It
	// is used to join versions where control flow merges.
	writes []versionWrite
}

// versionWrite is an entry in the write log.
type versionWrite struct {
	attr *depm.VarAttribute

	// prev is the version visible before the write.
	prev int

	// decl indicates the entry is the declaration of attr.
	decl bool
}

// NewLowerer creates a new lowerer for an analyzed source file.
func NewLowerer(file *depm.ArkFile) *Lowerer {
	return &Lowerer{
		file:    file,
		scope:   file.Global,
		names:   make(map[*depm.VarAttribute]string),
		shadows: make(map[string]int),
	}
}

// Lower converts the file into three-address code.  Every instruction is
// emitted on its own line.
func (l *Lowerer) Lower() string {
	b := &strings.Builder{}
	l.lowerStmts(b, l.file.Body.Stmts)
	return b.String()
}

// -----------------------------------------------------------------------------

// lowerBody lowers a body in the scope analysis created for it.
func (l *Lowerer) lowerBody(b *strings.Builder, body *ast.Body) {
	scope, ok := l.file.Scopes[body]
	if !ok {
		report.ReportICE("body at %s was not analyzed", body.Span().Pos)
	}

	prev := l.scope
	l.scope = scope
	l.lowerStmts(b, body.Stmts)
	l.scope = prev
}

// emit writes a single instruction.
func emit(b *strings.Builder, format string, args ...interface{}) {
	fmt.Fprintf(b, format, args...)
	b.WriteByte('\n')
}

// getTempName allocates a new temporary.
func (l *Lowerer) getTempName() string {
	return fmt.Sprintf("tac_temp%d", l.scope.NewTemp())
}

// getLabelName allocates a new label.
func (l *Lowerer) getLabelName() string {
	l.labelCounter++
	return fmt.Sprintf("L%d", l.labelCounter-1)
}

// varName returns the IR name of a variable.
func (l *Lowerer) varName(attr *depm.VarAttribute) string {
	if name, ok := l.names[attr]; ok {
		return name
	}

	name := attr.Name + strings.Repeat("'", l.shadows[attr.Name])
	l.shadows[attr.Name]++
	l.names[attr] = name
	return name
}

// versionOperand returns the operand naming a version of a variable.
func (l *Lowerer) versionOperand(attr *depm.VarAttribute, version int) string {
	return fmt.Sprintf("%s%d", l.varName(attr), version)
}

// readVar returns the operand for reading a variable.
func (l *Lowerer) readVar(attr *depm.VarAttribute) string {
	return l.versionOperand(attr, attr.Version())
}

// writeVar returns the operand for writing a new version of a variable.
func (l *Lowerer) writeVar(attr *depm.VarAttribute) string {
	prev := attr.Version()
	l.writes = append(l.writes, versionWrite{attr: attr, prev: prev})
	return l.versionOperand(attr, attr.ConsumeVersion())
}

// declareVar logs the declaration of a variable.  Nothing is emitted.
func (l *Lowerer) declareVar(attr *depm.VarAttribute) {
	l.varName(attr)
	l.writes = append(l.writes, versionWrite{attr: attr, decl: true})
}

// joinVersions is called at the end of a path that continues at a point other
// paths also reach: the end of an if branch or of a loop body.  Every variable
// written on the path since mark is copied back into the version it had at
// mark, and that version is made visible again.  All paths reaching the merge
// point thus hold each variable in the same version.  Variables declared on
// the path are not visible past it and are skipped.
func (l *Lowerer) joinVersions(b *strings.Builder, mark int) {
	seen := make(map[*depm.VarAttribute]bool)
	for _, w := range l.writes[mark:] {
		if seen[w.attr] {
			continue
		}

		seen[w.attr] = true
		if w.decl || w.attr.Version() == w.prev {
			continue
		}

		emit(b, "%s = %s", l.versionOperand(w.attr, w.prev), l.readVar(w.attr))
		w.attr.ResetVersion(w.prev)
	}

	l.writes = l.writes[:mark]
}
