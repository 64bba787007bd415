package ast

import (
	"ark/report"
	"ark/types"
)

// DeclareVar is a variable declaration.
type DeclareVar struct {
	ASTBase

	// The name of the declared variable.
	Name string

	// The span of the variable's name.
	NameSpan *report.TextSpan

	// The declared type of the variable.
	Type types.Type

	// Whether the variable was declared with `const`.
	Constant bool
}

func (*DeclareVar) Kind() NodeKind { return KindDeclareVar }

// Assignment assigns a value to a variable.  The left hand side is either a
// DeclareVar (a declaration with an initializer) or a Variable.
type Assignment struct {
	ASTBase

	Lhs, Rhs Node
}

func (*Assignment) Kind() NodeKind { return KindAssignment }

// Param is a function parameter.
type Param struct {
	Name string
	Type types.Type
	Span *report.TextSpan
}

// Function is a function definition.
type Function struct {
	ASTBase

	// The name of the function.
	Name string

	// The span of the function's name.
	NameSpan *report.TextSpan

	// The parameters of the function.
	Params []*Param

	// The return type of the function.  This is void if no return type was
	// specified.
	ReturnType types.Type

	// The span of the return type label.  This may be nil if no return type
	// was specified.
	ReturnSpan *report.TextSpan

	// The function's body.
	Body *Body
}

func (*Function) Kind() NodeKind { return KindFunction }

// Import is an import statement.
type Import struct {
	ASTBase

	// The imported path (without quotes).
	Path string

	// The import alias.  This is empty if there is no alias.
	Alias string

	// The span of the alias.
	AliasSpan *report.TextSpan
}

func (*Import) Kind() NodeKind { return KindImport }

// Return is a return statement.
type Return struct {
	ASTBase

	// The returned value.  This is nil for a bare return.
	Value Node
}

func (*Return) Kind() NodeKind { return KindReturn }

// CondBranch is a single conditional branch of an if statement.
type CondBranch struct {
	// The branch condition.
	Cond Node

	// The body executed if the condition is true.
	Body *Body
}

// Conditional is an if statement with any number of `else if` branches and an
// optional `else` branch.
type Conditional struct {
	ASTBase

	// The `if` branch followed by the `else if` branches in order.
	Branches []*CondBranch

	// The else branch.  This may be nil.
	Else *Body
}

func (*Conditional) Kind() NodeKind { return KindConditional }

// For is a for loop over a range.
type For struct {
	ASTBase

	// The loop target: a Variable or a Tuple of Variables.
	Target Node

	// The iterated expression.  This is always a Range for a well-formed loop.
	Iter Node

	// The loop body.
	Body *Body
}

func (*For) Kind() NodeKind { return KindFor }

// While is a while loop.
type While struct {
	ASTBase

	Cond Node
	Body *Body
}

func (*While) Kind() NodeKind { return KindWhile }
