package lower

import (
	"ark/depm"
	"ark/report"
	"ark/syntax"
	"ark/walk"
	"bufio"
	"strings"
	"testing"

	"github.com/go-test/deep"
)

// lowerSource runs the front end over src and returns the emitted IR lines.
func lowerSource(t *testing.T, src string) []string {
	t.Helper()

	rep := report.NewReporter(report.LogLevelSilent)
	body := syntax.NewParser(rep, bufio.NewReader(strings.NewReader(src))).Parse()

	file := depm.NewArkFile(report.NewCompilationContext("test.ark", "test.ark", []byte(src)), body)
	walk.WalkFile(rep, file)

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}

	return strings.Split(strings.TrimSuffix(NewLowerer(file).Lower(), "\n"), "\n")
}

func expectIR(t *testing.T, src string, expected ...string) {
	t.Helper()

	if diff := deep.Equal(lowerSource(t, src), expected); diff != nil {
		t.Errorf("%q: %v", src, diff)
	}
}

// -----------------------------------------------------------------------------

func TestVersionNumbering(t *testing.T) {
	expectIR(t,
		"let i32 a = 1;\na = a + 2;",
		"a0 = 1",
		"tac_temp0 = add a0, 2",
		"a1 = tac_temp0",
	)
}

func TestNestedTemporaries(t *testing.T) {
	expectIR(t,
		"let i32 a = 1;\nlet i32 b = (a + 2) * (a - 3) / 4 % 5;",
		"a0 = 1",
		"tac_temp0 = add a0, 2",
		"tac_temp1 = sub a0, 3",
		"tac_temp2 = mul tac_temp0, tac_temp1",
		"tac_temp3 = div tac_temp2, 4",
		"tac_temp4 = mod tac_temp3, 5",
		"b0 = tac_temp4",
	)
}

func TestComparisonMnemonics(t *testing.T) {
	expectIR(t,
		"let i32 a = 1;\nlet bool b = a == 1 || a < 2 && a <= 3;\nb = a > 4;\nb = a >= 5;",
		"a0 = 1",
		"tac_temp0 = equ a0, 1",
		"tac_temp1 = l a0, 2",
		"tac_temp2 = le a0, 3",
		"tac_temp3 = and tac_temp1, tac_temp2",
		"tac_temp4 = or tac_temp0, tac_temp3",
		"b0 = tac_temp4",
		"tac_temp5 = m a0, 4",
		"b1 = tac_temp5",
		"tac_temp6 = me a0, 5",
		"b2 = tac_temp6",
	)
}

func TestFunctions(t *testing.T) {
	expectIR(t,
		"func add(i32 x, i32 y): i32 {\n let i32 s = x + y;\n return s;\n}\nlet i32 r = add(1, 2);",
		"@defined i32 add(i32 x, i32 y):",
		"    tac_temp0 = add x0, y0",
		"    s0 = tac_temp0",
		"    ret s0",
		"tac_temp0 = call add 1, 2",
		"r0 = tac_temp0",
	)

	expectIR(t,
		"func f() {\n return;\n}\nf();",
		"@defined void f():",
		"    ret $void",
		"tac_temp0 = call f",
	)
}

func TestIfStmt(t *testing.T) {
	expectIR(t,
		"let i32 x = 0;\nif x < 1 {\n x = 1;\n} else if x < 2 {\n x = 2;\n} else {\n x = 3;\n}\nlet i32 y = x;",
		"x0 = 0",
		"tac_temp0 = l x0, 1",
		"if_false tac_temp0 goto L1",
		"x1 = 1",
		"x0 = x1",
		"goto L0",
		"L1:",
		"tac_temp1 = l x0, 2",
		"if_false tac_temp1 goto L2",
		"x2 = 2",
		"x0 = x2",
		"goto L0",
		"L2:",
		"x3 = 3",
		"x0 = x3",
		"L0:",
		"y0 = x0",
	)

	expectIR(t,
		"let bool c = true;\nif c {\n c = false;\n}",
		"c0 = true",
		"if_false c0 goto L0",
		"c1 = false",
		"c0 = c1",
		"L0:",
	)
}

func TestBranchLocalsAreNotJoined(t *testing.T) {
	expectIR(t,
		"let bool c = true;\nif c {\n let i32 t = 1;\n t = 2;\n}",
		"c0 = true",
		"if_false c0 goto L0",
		"t0 = 1",
		"t1 = 2",
		"L0:",
	)
}

func TestWhileLoop(t *testing.T) {
	expectIR(t,
		"let i32 n = 0;\nwhile n < 3 {\n n = n + 1;\n}\nlet i32 m = n;",
		"n0 = 0",
		"L0:",
		"tac_temp0 = l n0, 3",
		"if_false tac_temp0 goto L1",
		"tac_temp1 = add n0, 1",
		"n1 = tac_temp1",
		"n0 = n1",
		"goto L0",
		"L1:",
		"m0 = n0",
	)
}

func TestForLoop(t *testing.T) {
	expectIR(t,
		"let i32 s = 0;\nfor i in 0..3 {\n s = s + i;\n}",
		"s0 = 0",
		"i0 = 0",
		"L0:",
		"tac_temp0 = l i0, 3",
		"if_false tac_temp0 goto L1",
		"tac_temp1 = add s0, i0",
		"s1 = tac_temp1",
		"tac_temp2 = add i0, 1",
		"i1 = tac_temp2",
		"s0 = s1",
		"i0 = i1",
		"goto L0",
		"L1:",
	)

	expectIR(t,
		"for i in 0..3 { }",
		"i0 = 0",
		"L0:",
		"tac_temp0 = l i0, 3",
		"if_false tac_temp0 goto L1",
		"tac_temp1 = add i0, 1",
		"i1 = tac_temp1",
		"i0 = i1",
		"goto L0",
		"L1:",
	)
}

func TestNestedLoopJoins(t *testing.T) {
	expectIR(t,
		"let i32 n = 0;\nwhile n < 9 {\n if n < 5 {\n  n = n + 2;\n }\n n = n + 1;\n}",
		"n0 = 0",
		"L0:",
		"tac_temp0 = l n0, 9",
		"if_false tac_temp0 goto L1",
		"tac_temp1 = l n0, 5",
		"if_false tac_temp1 goto L2",
		"tac_temp2 = add n0, 2",
		"n1 = tac_temp2",
		"n0 = n1",
		"L2:",
		"tac_temp3 = add n0, 1",
		"n2 = tac_temp3",
		"n0 = n2",
		"goto L0",
		"L1:",
	)
}

func TestLabelsResetPerFunction(t *testing.T) {
	expectIR(t,
		"while false { }\nfunc f() {\n while true { }\n}",
		"L0:",
		"if_false false goto L1",
		"goto L0",
		"L1:",
		"@defined void f():",
		"    L0:",
		"    if_false true goto L1",
		"    goto L0",
		"    L1:",
	)
}

func TestImportsAndMethods(t *testing.T) {
	expectIR(t,
		"import \"std/io\" as io;\nimport \"std/math\";\nlet bool b = !true;\nio.print(b, \"hi\");",
		"@import \"std/io\" as io",
		"@import \"std/math\"",
		"tac_temp0 = not true",
		"b0 = tac_temp0",
		"tac_temp1 = call io.print b0, \"hi\"",
	)
}

func TestBlocksShareVersions(t *testing.T) {
	expectIR(t,
		"let i32 x = 1;\n{\n x = 2;\n let i32 y = x;\n}\nx = 3;",
		"x0 = 1",
		"x1 = 2",
		"y0 = x1",
		"x2 = 3",
	)
}

func TestShadowedReads(t *testing.T) {
	expectIR(t,
		"let i32 a = 1;\na = 2;\n{\nlet i32 b = a;\nlet i32 a = 3;\nb = a;\n}\na = 4;",
		"a0 = 1",
		"a1 = 2",
		"b0 = a1",
		"a'0 = 3",
		"b1 = a'0",
		"a2 = 4",
	)
}

func TestRedeclarationGetsNewName(t *testing.T) {
	expectIR(t,
		"let i32 x = 1;\nlet i32 y = x;\nlet i64 x = 2;\nx = x + 1;",
		"x0 = 1",
		"y0 = x0",
		"x'0 = 2",
		"tac_temp0 = add x'0, 1",
		"x'1 = tac_temp0",
	)
}

func TestShadowedParams(t *testing.T) {
	expectIR(t,
		"let i32 n = 1;\nfunc f(i32 n): i32 {\n return n;\n}",
		"n0 = 1",
		"@defined i32 f(i32 n'):",
		"    ret n'0",
	)
}
