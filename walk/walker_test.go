package walk

import (
	"ark/ast"
	"ark/depm"
	"ark/report"
	"ark/syntax"
	"ark/types"
	"bufio"
	"strings"
	"testing"

	"github.com/go-test/deep"
)

// analyze parses and walks src.
func analyze(src string) (*report.Reporter, *depm.ArkFile) {
	rep := report.NewReporter(report.LogLevelSilent)
	body := syntax.NewParser(rep, bufio.NewReader(strings.NewReader(src))).Parse()

	file := depm.NewArkFile(report.NewCompilationContext("test.ark", "test.ark", []byte(src)), body)
	WalkFile(rep, file)

	return rep, file
}

// messages returns the messages of all reported errors.
func messages(rep *report.Reporter) []string {
	var msgs []string
	for _, diag := range rep.Diagnostics() {
		msgs = append(msgs, diag.Message)
	}

	return msgs
}

// stmtType returns the inferred type of the nth top-level statement.
func stmtType(file *depm.ArkFile, n int) types.Type {
	return file.TypeOf(file.Body.Stmts[n])
}

func expectMessages(t *testing.T, src string, expected ...string) {
	t.Helper()

	rep, _ := analyze(src)
	if diff := deep.Equal(messages(rep), expected); diff != nil {
		t.Errorf("%q: %v", src, diff)
	}
}

// -----------------------------------------------------------------------------

func TestIntLiteralTyping(t *testing.T) {
	cases := []struct {
		src      string
		expected types.Type
	}{
		{"5;", types.PrimI8},
		{"-128;", types.PrimI8},
		{"200;", types.PrimI16},
		{"40000;", types.PrimI32},
		{"3000000000;", types.PrimI64},
		{"1.5;", types.PrimF32},
		{"10000000000000000000000000000000000000000.0;", types.PrimF64},
		{"'c';", types.PrimChar},
		{"true;", types.PrimBool},
		{`"a\n";`, &types.StrType{Len: 2}},
	}

	for _, c := range cases {
		_, file := analyze(c.src)
		if diff := deep.Equal(stmtType(file, 0), c.expected); diff != nil {
			t.Errorf("%q: %v", c.src, diff)
		}
	}
}

func TestIntLiteralTooLarge(t *testing.T) {
	expectMessages(t, "99999999999999999999;", "value is too large")
}

func TestCoercionWidens(t *testing.T) {
	rep, file := analyze("let u8 a = 1;\nlet u16 b = 2;\na + b;")

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", messages(rep))
	}

	if diff := deep.Equal(stmtType(file, 2), types.Type(types.PrimU16)); diff != nil {
		t.Error(diff)
	}
}

func TestBoolArithmeticRejected(t *testing.T) {
	rep, _ := analyze("let bool x = true;\nx + 1;")

	msgs := messages(rep)
	if len(msgs) != 1 || !strings.Contains(msgs[0], "'+'") || !strings.Contains(msgs[0], "bool") {
		t.Errorf("expected one error naming `+` and `bool`, got %v", msgs)
	}
}

func TestOperatorChecks(t *testing.T) {
	expectMessages(t, `"a" + 1;`, "operands have mismatched type 'str' and 'i8'")
	expectMessages(t, "'a' + 'b';", "operator '+' cannot be used on char type, consider making it a str type")
	expectMessages(t, `"a" - "b";`, "operator '-' cannot be used on str type")
	expectMessages(t, "true < false;", "operator '<' cannot be used on bool type")
	expectMessages(t, "1 && true;", "operator '&&' can only be used on boolean expression")
	expectMessages(t, "let i32[2] a;\nlet i32[2] b;\na == b;", "operator '==' cannot be used on Array")
	expectMessages(t, "true == false;\n1 < 2;\n1.5 * 2.5;")
}

func TestComparisonsYieldBool(t *testing.T) {
	_, file := analyze("let i64 a = 3;\na >= 2;")

	if !types.IsPrim(stmtType(file, 1), types.PrimBool) {
		t.Errorf("expected bool, got %v", stmtType(file, 1))
	}
}

func TestStrConcatLength(t *testing.T) {
	_, file := analyze(`"ab" + "cde";`)

	if diff := deep.Equal(stmtType(file, 0), types.Type(&types.StrType{Len: 5})); diff != nil {
		t.Error(diff)
	}
}

func TestDeclareBeforeUse(t *testing.T) {
	expectMessages(t, "x;\nlet i32 x = 1;\nx;", "use of undeclared variable 'x'")
	expectMessages(t, "let i32 x = 1; x;")
	expectMessages(t, "let i32 x = 1; let i32 y = x + 1;")
}

func TestDeclareBeforeUseByLine(t *testing.T) {
	src := "x;\n\nlet i32 x = 1;\nx;"

	rep := report.NewReporter(report.LogLevelSilent)
	body := syntax.NewParser(rep, bufio.NewReader(strings.NewReader(src))).Parse()
	file := depm.NewArkFile(report.NewCompilationContext("test.ark", "test.ark", []byte(src)), body)

	// `x` is already in scope when its first use is walked.
	file.Global.DeclareVar("x", types.PrimI32, 3)
	WalkFile(rep, file)

	diags := rep.Diagnostics()
	if diff := deep.Equal(messages(rep), []string{"use of undeclared variable 'x'"}); diff != nil {
		t.Fatal(diff)
	}

	if line := diags[0].Span.Pos.Line; line != 1 {
		t.Errorf("expected the error on line 1, got line %d", line)
	}
}

func TestReferencesResolveAtUse(t *testing.T) {
	rep, file := analyze("let i32 a = 1;\n{\nlet i32 b = a;\nlet i32 a = 3;\nb = a;\n}")

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", messages(rep))
	}

	block := file.Body.Stmts[1].(*ast.Body)
	first := block.Stmts[0].(*ast.Assignment).Rhs
	last := block.Stmts[2].(*ast.Assignment).Rhs

	if file.Refs[first] != file.Global.Vars["a"] {
		t.Error("expected the first read of `a` to resolve to the outer variable")
	}

	if file.Refs[last] != file.Global.Children[0].Vars["a"] {
		t.Error("expected the last read of `a` to resolve to the shadowing variable")
	}
}

func TestScopeVisibility(t *testing.T) {
	expectMessages(t, "{\n let i32 y = 1;\n y;\n}\ny;", "use of undeclared variable 'y'")
}

func TestShadowing(t *testing.T) {
	rep, file := analyze("let i32 x = 1;\n{ let bool x = true; !x; }\nx + 1;")

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", messages(rep))
	}

	if !types.IsPrim(stmtType(file, 2), types.PrimI32) {
		t.Errorf("outer `x` should be i32 after the block, got %v", stmtType(file, 2))
	}

	block := file.Global.Children[0]
	if attr := block.Vars["x"]; attr == nil || !types.IsPrim(attr.Type, types.PrimBool) {
		t.Error("expected shadowing bool `x` in the block scope")
	}
}

func TestAssignmentChecks(t *testing.T) {
	expectMessages(t, "let i32 x = true;\nlet i8 y = 300;", "expected 'i8' found 'i16'")
	expectMessages(t, `let i32 x = "s";`, "expected 'i32' found 'str'")
	expectMessages(t, "let u64 x = 7;\nlet f64 y = 1.5;")
	expectMessages(t, "1 = 2;", "left operand can't assign to")
	expectMessages(t, "const i32 x = 1;\nx = 2;", "cannot assign to constant 'x'")
	expectMessages(t, "z = 2;", "use of undeclared variable 'z'")
}

func TestFunctions(t *testing.T) {
	expectMessages(t, "func f(i32 n): i32 {\n return f(n - 1);\n}\nlet i32 r = f(3);")
	expectMessages(t, "g();", "use of undeclared function 'g'")
	expectMessages(t, "func f(): i32 {\n return \"s\";\n}", "function 'f' expect return type 'i32' found 'str'")
	expectMessages(t, "func f() {\n return;\n}")
	expectMessages(t, "return 1;", "top-level return is not allowed")
}

func TestFunctionAttributes(t *testing.T) {
	_, file := analyze("func add(i64 a, i64 b): i64 {\n return a + b;\n}\n\nadd(1, 2);\nadd(3, 4);")

	attr := file.Global.Funcs["add"]
	if attr == nil {
		t.Fatal("expected `add` in global scope")
	}

	if diff := deep.Equal(attr.LineUsed, []int{5, 6}); diff != nil {
		t.Error(diff)
	}

	if param := attr.Table.Vars["a"]; param == nil || param.LineDeclare != 1 {
		t.Error("expected parameter `a` declared from line 1 in the function scope")
	}

	if diff := deep.Equal(attr.Table.Vars["b"].LineRefs, []int{2}); diff != nil {
		t.Error(diff)
	}
}

func TestControlFlow(t *testing.T) {
	expectMessages(t, "if 1 { }", "expected boolean expression in if statement found 'i8'")
	expectMessages(t, "if true { } else if 2 { } else { }", "expected boolean expression in if statement found 'i8'")
	expectMessages(t, "while 1.5 { }", "while loop expected boolean expression found 'f32'")
	expectMessages(t, "!5;", "cannot apply ! to 'i8'")
	expectMessages(t, "let i32 n = 10;\nfor i in 0..n {\n let i32 j = i;\n}")
	expectMessages(t, "for (a, b) in 0..3 { a; }", "cannot unpack a range into 2 loop variables")
	expectMessages(t, "for i in 1.5..2.5 { }", "range bounds must be integers, found 'f32'")
	expectMessages(t, "for i in 0..1.5 { }", "range bounds have mismatched type 'i8' and 'f32'")
	expectMessages(t, "(1, 2);", "tuples can only be used as a for loop target")
}

func TestForLoopVariableScope(t *testing.T) {
	rep, file := analyze("for i in 0..10 {\n i;\n}\ni;")

	if diff := deep.Equal(messages(rep), []string{"use of undeclared variable 'i'"}); diff != nil {
		t.Error(diff)
	}

	loop := file.Global.Children[0]
	if attr := loop.Vars["i"]; attr == nil || !types.IsPrim(attr.Type, types.PrimI8) {
		t.Error("expected loop variable `i` of type i8 in the loop scope")
	}
}

func TestImports(t *testing.T) {
	expectMessages(t, `import "io" as io;`)
	expectMessages(t, "{\n import \"io\";\n}", "only top-level import is allowed")
	expectMessages(t, "let i32 io = 1;\nimport \"io\" as io;", "import alias 'io' overrides existing identifier")
}

func TestImportAliasIsNotAValue(t *testing.T) {
	expectMessages(t, "import \"m\" as m;\nlet i32 y = m;", "import alias 'm' is not a value")
	expectMessages(t, "import \"m\" as m;\nm + 1;", "import alias 'm' is not a value")
	expectMessages(t, "import \"m\" as m;\nm = 1;", "import alias 'm' is not a value")
	expectMessages(t, "import \"m\" as m;\nm.f(1);")
}

func TestUnreachableWarning(t *testing.T) {
	rep, _ := analyze("func f(): i32 {\n return 1;\n f();\n}")

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", messages(rep))
	}

	if warnings := rep.Warnings(); len(warnings) != 1 || warnings[0].Message != "unreachable code" {
		t.Errorf("expected one unreachable code warning, got %v", warnings)
	}
}

func TestBlockScopesRetained(t *testing.T) {
	_, file := analyze("if true { } else { }\nwhile false { }\n{ }")

	if n := len(file.Global.Children); n != 4 {
		t.Errorf("expected 4 block scopes, got %d", n)
	}

	if n := len(file.Scopes); n != 4 {
		t.Errorf("expected 4 recorded body scopes, got %d", n)
	}
}
