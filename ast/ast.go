package ast

import "ark/report"

// Node represents a positioned node in the AST.
type Node interface {
	// Span returns the span of source text the node covers.
	Span() *report.TextSpan

	// Kind returns the kind of the node.  This is one of the enumerated
	// node kinds.
	Kind() NodeKind
}

// NodeKind identifies the concrete kind of an AST node.
type NodeKind int

// Enumeration of node kinds.
const (
	KindBody NodeKind = iota
	KindVariable
	KindDeclareVar
	KindAssignment
	KindLiteral
	KindBinaryExpression
	KindFunction
	KindFunctionCall
	KindMethodCall
	KindImport
	KindReturn
	KindConditional
	KindFor
	KindWhile
	KindBooleanNot
	KindTuple
	KindRange
	KindParserError
)

// ASTBase is the base struct for all AST nodes.
type ASTBase struct {
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base on a given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab *ASTBase) Span() *report.TextSpan {
	return ab.span
}

// -----------------------------------------------------------------------------

// Body is an ordered sequence of statements: a whole file or a block.
type Body struct {
	ASTBase

	// The statements of the body.
	Stmts []Node
}

func (*Body) Kind() NodeKind { return KindBody }

// Contains returns whether any statement in the body, including statements
// nested inside other bodies, is of the given kind.
func (b *Body) Contains(kind NodeKind) bool {
	for _, stmt := range b.Stmts {
		if containsKind(stmt, kind) {
			return true
		}
	}

	return false
}

// containsKind tests a single statement and the bodies nested in it.
func containsKind(node Node, kind NodeKind) bool {
	if node.Kind() == kind {
		return true
	}

	switch v := node.(type) {
	case *Body:
		return v.Contains(kind)
	case *Conditional:
		for _, branch := range v.Branches {
			if branch.Body.Contains(kind) {
				return true
			}
		}

		return v.Else != nil && v.Else.Contains(kind)
	case *While:
		return v.Body.Contains(kind)
	case *For:
		return v.Body.Contains(kind)
	case *Function:
		return v.Body.Contains(kind)
	}

	return false
}

// ParserError is a placeholder for source text that failed to parse.  Later
// passes skip it.
type ParserError struct {
	ASTBase

	// The message of the syntax error that produced this node.
	Message string
}

func (*ParserError) Kind() NodeKind { return KindParserError }
