package depm

import (
	"ark/ast"
	"ark/report"
	"ark/types"
)

// ArkFile represents an ark source file as it moves through the compiler.
type ArkFile struct {
	// Context is the compilation context of the file.
	Context *report.CompilationContext

	// Body is the parsed AST of the file.
	Body *ast.Body

	// Global is the global scope of the file.  It lives for the whole
	// pipeline: later passes reuse the scopes created during analysis.
	Global *SymbolTable

	// Scopes maps each body analysis entered (function bodies, blocks,
	// conditional branches and loop bodies) to the scope created for it.  The
	// scope of a for loop's body also holds the loop variable.
	Scopes map[*ast.Body]*SymbolTable

	// Types maps each analyzed expression to its inferred type.  Expressions
	// whose type could not be determined are absent.
	Types map[ast.Node]types.Type

	// OperandTypes maps each analyzed binary expression to the common type its
	// operands were brought to.
	OperandTypes map[*ast.BinaryExpression]types.Type

	// Refs maps each variable reference, declaration and loop variable to the
	// variable it resolved to when it was analyzed.  Later passes must use it
	// instead of looking names up again: a name may be shadowed or redeclared
	// after the point it was used.
	Refs map[ast.Node]*VarAttribute

	// ParamVars maps each function parameter to the variable declared for it.
	ParamVars map[*ast.Param]*VarAttribute
}

// NewArkFile creates a new source file over a parsed body.
func NewArkFile(ctx *report.CompilationContext, body *ast.Body) *ArkFile {
	return &ArkFile{
		Context: ctx,
		Body:    body,
		Global:  NewSymbolTable(),
		Scopes:  make(map[*ast.Body]*SymbolTable),
		Types:   make(map[ast.Node]types.Type),

		OperandTypes: make(map[*ast.BinaryExpression]types.Type),
		Refs:         make(map[ast.Node]*VarAttribute),
		ParamVars:    make(map[*ast.Param]*VarAttribute),
	}
}

// TypeOf returns the inferred type of an expression or nil if it is unknown.
func (af *ArkFile) TypeOf(expr ast.Node) types.Type {
	return af.Types[expr]
}

// VarOf returns the variable a reference or declaration resolved to.  It is
// an internal error to ask for a node analysis did not resolve.
func (af *ArkFile) VarOf(node ast.Node) *VarAttribute {
	attr, ok := af.Refs[node]
	if !ok {
		report.ReportICE("variable at %s was not resolved", node.Span().Pos)
	}

	return attr
}
