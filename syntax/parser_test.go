package syntax

import (
	"ark/ast"
	"ark/report"
	"ark/types"
	"bufio"
	"fmt"
	"strings"
	"testing"

	"github.com/go-test/deep"
)

// parse parses src and returns its body along with the reporter.
func parse(src string) (*ast.Body, *report.Reporter) {
	rep := report.NewReporter(report.LogLevelSilent)
	body := NewParser(rep, bufio.NewReader(strings.NewReader(src))).Parse()
	return body, rep
}

func messages(diags []*report.Diagnostic) []string {
	msgs := make([]string, len(diags))
	for i, diag := range diags {
		msgs[i] = diag.Message
	}

	return msgs
}

// sexpr renders an expression in prefix notation.
func sexpr(node ast.Node) string {
	switch v := node.(type) {
	case *ast.Variable:
		return v.Name
	case *ast.Literal:
		return v.Value
	case *ast.BinaryExpression:
		return fmt.Sprintf("(%s %s %s)", v.Op.Name, sexpr(v.Lhs), sexpr(v.Rhs))
	case *ast.Range:
		return fmt.Sprintf("(.. %s %s)", sexpr(v.Start), sexpr(v.End))
	case *ast.BooleanNot:
		return fmt.Sprintf("(! %s)", sexpr(v.Operand))
	case *ast.FunctionCall:
		return fmt.Sprintf("(call %s%s)", v.Name, sexprArgs(v.Args))
	case *ast.MethodCall:
		return fmt.Sprintf("(method %s %s%s)", sexpr(v.Caller), v.Method, sexprArgs(v.Args))
	case *ast.Tuple:
		return fmt.Sprintf("(tuple%s)", sexprArgs(v.Elems))
	case *ast.Assignment:
		return fmt.Sprintf("(= %s %s)", sexpr(v.Lhs), sexpr(v.Rhs))
	case *ast.DeclareVar:
		return fmt.Sprintf("(let %s %s)", v.Type.Repr(), v.Name)
	case *ast.ParserError:
		return "<error>"
	}

	return fmt.Sprintf("<%T>", node)
}

func sexprArgs(args []ast.Node) string {
	s := ""
	for _, arg := range args {
		s += " " + sexpr(arg)
	}

	return s
}

// expectExpr parses a single expression statement and compares its rendering.
func expectExpr(t *testing.T, src, expected string) {
	t.Helper()

	body, rep := parse(src)
	if rep.AnyErrors() {
		t.Fatalf("%q: unexpected errors: %v", src, messages(rep.Diagnostics()))
	}

	if len(body.Stmts) != 1 {
		t.Fatalf("%q: expected one statement, got %d", src, len(body.Stmts))
	}

	if got := sexpr(body.Stmts[0]); got != expected {
		t.Errorf("%q: expected %s, got %s", src, expected, got)
	}
}

// expectErrors parses src and compares the reported error messages.
func expectErrors(t *testing.T, src string, expected ...string) *ast.Body {
	t.Helper()

	body, rep := parse(src)
	if diff := deep.Equal(messages(rep.Diagnostics()), expected); diff != nil {
		t.Errorf("%q: %v", src, diff)
	}

	return body
}

// -----------------------------------------------------------------------------

func TestPrecedence(t *testing.T) {
	expectExpr(t, "a + b * c;", "(+ a (* b c))")
	expectExpr(t, "a - b - c;", "(- (- a b) c)")
	expectExpr(t, "a / b % c;", "(% (/ a b) c)")
	expectExpr(t, "(a + b) * c;", "(* (+ a b) c)")
	expectExpr(t, "a || b && c == d + 1;", "(|| a (&& b (== c (+ d 1))))")
	expectExpr(t, "a < b && c >= d;", "(&& (< a b) (>= c d))")
	expectExpr(t, "!a && b;", "(&& (! a) b)")
}

func TestAtoms(t *testing.T) {
	expectExpr(t, "f(1, x + 2);", "(call f 1 (+ x 2))")
	expectExpr(t, "f();", "(call f)")
	expectExpr(t, "x.m(1).n();", "(method (method x m 1) n)")
	expectExpr(t, "io.print(\"hi\");", "(method io print hi)")
	expectExpr(t, "(a, b);", "(tuple a b)")
	expectExpr(t, "x = -5;", "(= x -5)")
	expectExpr(t, "x = 3 - -2.5;", "(= x (- 3 -2.5))")
	expectExpr(t, "let i32 a = 1;", "(= (let i32 a) 1)")
}

func TestNegativeLiteralSpan(t *testing.T) {
	body, _ := parse("x = -5;")
	lit := body.Stmts[0].(*ast.Assignment).Rhs

	expected := &report.TextSpan{Pos: report.Position{Line: 1, Col: 5, Offset: 4}, Length: 2}
	if diff := deep.Equal(lit.Span(), expected); diff != nil {
		t.Error(diff)
	}

	expectErrors(t, "x = -y;", "unary `-` can only be applied to a numeric literal")
}

func TestStatementSpans(t *testing.T) {
	body, _ := parse("let i32 a = 1;\nwhile a < 2 {\n}")

	expected := []*report.TextSpan{
		{Pos: report.Position{Line: 1, Col: 1, Offset: 0}, Length: 13},
		{Pos: report.Position{Line: 2, Col: 1, Offset: 15}, Length: 15},
	}

	spans := []*report.TextSpan{body.Stmts[0].Span(), body.Stmts[1].Span()}
	if diff := deep.Equal(spans, expected); diff != nil {
		t.Error(diff)
	}
}

func TestVarDecls(t *testing.T) {
	body := expectErrors(t, "let i32[4][2] m;\nconst str s = \"x\";")

	decl := body.Stmts[0].(*ast.DeclareVar)
	expectedType := &types.ArrayType{Len: 2, ElemType: &types.ArrayType{Len: 4, ElemType: types.PrimI32}}
	if diff := deep.Equal(decl.Type, types.Type(expectedType)); diff != nil {
		t.Error(diff)
	}

	constDecl := body.Stmts[1].(*ast.Assignment).Lhs.(*ast.DeclareVar)
	if !constDecl.Constant || !types.IsStr(constDecl.Type) {
		t.Errorf("unexpected declaration: %+v", constDecl)
	}

	_, rep := parse("const i32 c;")
	if diff := deep.Equal(messages(rep.Warnings()), []string{"constant `c` declared without a value"}); diff != nil {
		t.Error(diff)
	}

	expectErrors(t, "let i32[0] z;", "array length must be a positive integer")
	expectErrors(t, "let x = 1;", "expected type label, found `x`")
}

func TestFuncDecls(t *testing.T) {
	body := expectErrors(t, "func add(i32 a, i32 b): i32 {\n return a + b;\n}\nfunc f() { }")

	add := body.Stmts[0].(*ast.Function)
	if add.Name != "add" || len(add.Params) != 2 || !types.IsPrim(add.ReturnType, types.PrimI32) {
		t.Errorf("unexpected function: %+v", add)
	}

	if diff := deep.Equal([]string{add.Params[0].Name, add.Params[1].Name}, []string{"a", "b"}); diff != nil {
		t.Error(diff)
	}

	f := body.Stmts[1].(*ast.Function)
	if !types.IsPrim(f.ReturnType, types.PrimVoid) {
		t.Errorf("expected a void function, got %s", f.ReturnType.Repr())
	}

	expectErrors(t, "func f(): i32 { }", "missing return statement")
	expectErrors(t, "func f(): i32 { if true { return 1; } }")
}

func TestControlFlow(t *testing.T) {
	body := expectErrors(t, "if a { } else if b { } else if c { } else { }")

	cond := body.Stmts[0].(*ast.Conditional)
	if len(cond.Branches) != 3 || cond.Else == nil {
		t.Errorf("unexpected conditional: %d branches, else %v", len(cond.Branches), cond.Else != nil)
	}

	body = expectErrors(t, "for i in 0..10 { }\nfor (a, b) in x..y { }")

	loop := body.Stmts[0].(*ast.For)
	if got := sexpr(loop.Iter); got != "(.. 0 10)" {
		t.Errorf("unexpected range: %s", got)
	}

	if got := sexpr(body.Stmts[1].(*ast.For).Target); got != "(tuple a b)" {
		t.Errorf("unexpected loop target: %s", got)
	}

	expectErrors(t, "for i in x { }", "expected range")
	expectErrors(t, "for 1 in 0..1 { }", "expected loop variable, found `1`")
}

func TestImports(t *testing.T) {
	body := expectErrors(t, "import \"std/io\" as io;\nimport \"math\";")

	imp := body.Stmts[0].(*ast.Import)
	if imp.Path != "std/io" || imp.Alias != "io" {
		t.Errorf("unexpected import: %+v", imp)
	}

	if body.Stmts[1].(*ast.Import).Alias != "" {
		t.Error("expected no alias")
	}

	expectErrors(t, "import io;", "expected import path")
}

// -----------------------------------------------------------------------------

func TestRecoverFromBadParams(t *testing.T) {
	body := expectErrors(t,
		"func f(i32 a i32 b): i32 {\n return a;\n}\nfunc g(): void {}",
		"expected `,` or `)` in parameter list",
	)

	if len(body.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(body.Stmts))
	}

	if _, ok := body.Stmts[0].(*ast.ParserError); !ok {
		t.Errorf("expected a parser error, got %T", body.Stmts[0])
	}

	if fn, ok := body.Stmts[1].(*ast.Function); !ok || fn.Name != "g" {
		t.Errorf("expected function g, got %s", sexpr(body.Stmts[1]))
	}
}

func TestRecoverFromBadStatements(t *testing.T) {
	body := expectErrors(t,
		"let i32 = 5;\nlet i32 b = 2;",
		"expected variable name",
	)

	if len(body.Stmts) != 2 || sexpr(body.Stmts[1]) != "(= (let i32 b) 2)" {
		t.Errorf("unexpected statements: %v", body.Stmts)
	}

	expectErrors(t, "let i32 a = 1 let i32 b = 2;", "expected `;` at end of statement")
	expectErrors(t, "x = ;\ny = 1;", "expected expression, found `;`")
}

func TestMisplacedKeywords(t *testing.T) {
	expectErrors(t, "{\n func g() { }\n}", "only top-level function declaration is allowed")
	expectErrors(t, "else { }", "`else` without a preceding `if`")
	expectErrors(t, "in { }", "`in` without a preceding `for`")
	expectErrors(t, "}\nlet i32 a = 1;", "unexpected `}`")
	expectErrors(t, "else if x < 1 { }\nlet i32 a = 1;", "`else` without a preceding `if`")
}

func TestMisplacedKeywordsKeepLaterCode(t *testing.T) {
	body := expectErrors(t,
		"func f() {\nelse;\nlet i32 x = 1;\n}\nfunc g() {\n}",
		"`else` without a preceding `if`",
	)

	if len(body.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(body.Stmts))
	}

	if f, ok := body.Stmts[0].(*ast.Function); !ok || len(f.Body.Stmts) != 2 || sexpr(f.Body.Stmts[1]) != "(= (let i32 x) 1)" {
		t.Errorf("expected f to keep its declaration, got %s", sexpr(body.Stmts[0]))
	}

	if g, ok := body.Stmts[1].(*ast.Function); !ok || g.Name != "g" {
		t.Errorf("expected function g, got %s", sexpr(body.Stmts[1]))
	}

	body = expectErrors(t,
		"let i32 x = 1;\nin;\nlet i32 y = 2;\nfunc g() {\n}",
		"`in` without a preceding `for`",
	)

	var rendered []string
	for _, stmt := range body.Stmts {
		rendered = append(rendered, sexpr(stmt))
	}

	expected := []string{"(= (let i32 x) 1)", "<error>", "(= (let i32 y) 2)", "<*ast.Function>"}
	if diff := deep.Equal(rendered, expected); diff != nil {
		t.Error(diff)
	}

	body = expectErrors(t,
		"{\n func h() { }\n}\nfunc g() {\n}",
		"only top-level function declaration is allowed",
	)

	if len(body.Stmts) != 2 {
		t.Errorf("expected 2 statements, got %d", len(body.Stmts))
	}
}

func TestLexicalErrorsAreReported(t *testing.T) {
	body, rep := parse("let i32 a = 1 @ ;")

	diags := rep.Diagnostics()
	if len(diags) != 1 || diags[0].Kind != report.DiagLexical || diags[0].Message != "unidentified token" {
		t.Errorf("unexpected diagnostics: %v", messages(diags))
	}

	if len(body.Stmts) != 1 {
		t.Errorf("expected the statement to parse, got %d statements", len(body.Stmts))
	}
}
