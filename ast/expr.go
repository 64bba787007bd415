package ast

import "ark/report"

// Variable is a reference to a named variable.
type Variable struct {
	ASTBase

	Name string
}

func (*Variable) Kind() NodeKind { return KindVariable }

// LitKind is the kind of a literal.
type LitKind int

// Enumeration of literal kinds.
const (
	LitInt LitKind = iota
	LitFloat
	LitStr
	LitChar
	LitBool
)

// Literal is a literal value.
type Literal struct {
	ASTBase

	// The kind of the literal.
	LitKind LitKind

	// The text of the literal.  String and character literals have their
	// quotes trimmed; negative numeric literals include the leading `-`.
	Value string
}

func (*Literal) Kind() NodeKind { return KindLiteral }

// Oper is an operator applied in an expression.
type Oper struct {
	// The token kind of the operator.
	Kind int

	// The operator's textual name: eg. `+`.
	Name string

	// The span of the operator token.
	Span *report.TextSpan
}

// BinaryExpression is the application of a binary operator.
type BinaryExpression struct {
	ASTBase

	Op       Oper
	Lhs, Rhs Node
}

func (*BinaryExpression) Kind() NodeKind { return KindBinaryExpression }

// FunctionCall is a call to a named function.
type FunctionCall struct {
	ASTBase

	// The name of the called function.
	Name string

	// The call arguments.
	Args []Node
}

func (*FunctionCall) Kind() NodeKind { return KindFunctionCall }

// MethodCall is a call to a method on a receiver: eg. `x.m(a)`.
type MethodCall struct {
	ASTBase

	// The receiver of the call.
	Caller Node

	// The name of the method.
	Method string

	// The call arguments.
	Args []Node
}

func (*MethodCall) Kind() NodeKind { return KindMethodCall }

// BooleanNot is the application of the `!` operator.
type BooleanNot struct {
	ASTBase

	Operand Node
}

func (*BooleanNot) Kind() NodeKind { return KindBooleanNot }

// Tuple is a parenthesized list of two or more expressions.
type Tuple struct {
	ASTBase

	Elems []Node
}

func (*Tuple) Kind() NodeKind { return KindTuple }

// Range is a half-open range expression: `start..end`.
type Range struct {
	ASTBase

	Start, End Node
}

func (*Range) Kind() NodeKind { return KindRange }
