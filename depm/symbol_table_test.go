package depm

import (
	"ark/report"
	"ark/types"
	"testing"

	"github.com/go-test/deep"
)

func TestLookupWalksToGlobal(t *testing.T) {
	global := NewSymbolTable()
	global.DeclareVar("x", types.PrimI32, 1)

	fn := global.InsertFunc("f")
	block := fn.Table.InsertBlockScope()
	inner := block.InsertBlockScope()

	attr, scope := inner.LookupVar("x")
	if attr == nil {
		t.Fatal("expected `x` to be visible from nested block")
	}

	if scope != global {
		t.Errorf("expected `x` to be found in global scope, found in %s", scope)
	}

	if attr, _ := global.LookupVar("y"); attr != nil {
		t.Error("expected `y` to be unresolved")
	}
}

func TestBlockVariableInvisibleOutside(t *testing.T) {
	global := NewSymbolTable()
	block := global.InsertBlockScope()
	block.DeclareVar("y", types.PrimBool, 2)

	if attr, _ := global.LookupVar("y"); attr != nil {
		t.Error("block variable visible in enclosing scope")
	}

	if attr, _ := block.LookupVar("y"); attr == nil {
		t.Error("block variable not visible in its own scope")
	}
}

func TestShadowing(t *testing.T) {
	global := NewSymbolTable()
	outer := global.DeclareVar("x", types.PrimI32, 1)

	block := global.InsertBlockScope()
	shadow := block.DeclareVar("x", types.PrimF64, 3)

	if attr, _ := block.LookupVar("x"); attr != shadow {
		t.Error("inner declaration does not shadow outer declaration")
	}

	if attr, _ := global.LookupVar("x"); attr != outer {
		t.Error("outer declaration replaced by inner declaration")
	}
}

func TestBlockScopeIndices(t *testing.T) {
	global := NewSymbolTable()

	for i := 0; i < 3; i++ {
		if scope := global.InsertBlockScope(); scope.Index != i {
			t.Errorf("expected block index %d, got %d", i, scope.Index)
		}
	}

	if len(global.Children) != 3 {
		t.Errorf("expected 3 retained children, got %d", len(global.Children))
	}
}

func TestFunctionScopeOwnership(t *testing.T) {
	global := NewSymbolTable()
	fn := global.InsertFunc("add")
	global.UpdateFunc("add", types.PrimI64, 4)
	global.AddParam("add", "a", types.PrimI64)
	global.AddParam("add", "b", types.PrimI64)

	if fn.Table.Kind != ScopeFunction || fn.Table.Name != "add" {
		t.Errorf("unexpected function scope %s", fn.Table)
	}

	if fn.Table.Parent() != global {
		t.Error("function scope is not linked to its declaring scope")
	}

	if len(global.Children) != 0 {
		t.Error("function scope should not be a block child of its parent")
	}

	expected := []FuncParam{{"a", types.PrimI64}, {"b", types.PrimI64}}
	if diff := deep.Equal(fn.Params, expected); diff != nil {
		t.Error(diff)
	}

	if fn.LineDeclare != 4 || !types.Equals(fn.ReturnType, types.PrimI64) {
		t.Errorf("function not updated: line %d, return %s", fn.LineDeclare, fn.ReturnType.Repr())
	}
}

func TestCurrentFunc(t *testing.T) {
	global := NewSymbolTable()
	fn := global.InsertFunc("main")
	nested := fn.Table.InsertBlockScope().InsertBlockScope()

	if got := nested.CurrentFunc(); got != fn {
		t.Errorf("expected current function `main`, got %v", got)
	}

	if got := global.InsertBlockScope().CurrentFunc(); got != nil {
		t.Errorf("expected no current function at top level, got `%s`", got.Name)
	}
}

func TestVarDimensionAndSize(t *testing.T) {
	global := NewSymbolTable()
	typ := &types.ArrayType{Len: 3, ElemType: &types.ArrayType{Len: 2, ElemType: types.PrimI32}}
	attr := global.DeclareVar("grid", typ, 1)

	if attr.Dimension != 2 {
		t.Errorf("expected dimension 2, got %d", attr.Dimension)
	}

	if attr.Size != 24 {
		t.Errorf("expected size 24, got %d", attr.Size)
	}
}

func TestVersions(t *testing.T) {
	global := NewSymbolTable()
	global.DeclareVar("a", types.PrimI32, 1)
	block := global.InsertBlockScope()

	if v := block.VarVersion("a"); v != 0 {
		t.Errorf("expected unwritten version 0, got %d", v)
	}

	if v := global.ConsumeVarVersion("a"); v != 0 {
		t.Errorf("expected first write version 0, got %d", v)
	}

	if v := block.ConsumeVarVersion("a"); v != 1 {
		t.Errorf("expected second write version 1, got %d", v)
	}

	if v := global.VarVersion("a"); v != 1 {
		t.Errorf("expected read version 1, got %d", v)
	}
}

func TestResetVersion(t *testing.T) {
	global := NewSymbolTable()
	attr := global.DeclareVar("n", types.PrimI32, 1)

	if attr.Name != "n" {
		t.Errorf("expected name `n`, got %q", attr.Name)
	}

	attr.ConsumeVersion()
	attr.ConsumeVersion()
	attr.ResetVersion(0)

	if v := global.VarVersion("n"); v != 0 {
		t.Errorf("expected reset version 0, got %d", v)
	}

	if v := global.ConsumeVarVersion("n"); v != 2 {
		t.Errorf("expected a fresh version 2 after the reset, got %d", v)
	}
}

func TestTempsCountedPerFunction(t *testing.T) {
	global := NewSymbolTable()
	fn := global.InsertFunc("f")
	block := fn.Table.InsertBlockScope()

	got := []int{global.NewTemp(), block.NewTemp(), fn.Table.NewTemp(), global.InsertBlockScope().NewTemp()}
	if diff := deep.Equal(got, []int{0, 0, 1, 1}); diff != nil {
		t.Error(diff)
	}
}

func TestUpdateUninsertedIsInternalError(t *testing.T) {
	defer func() {
		x := recover()
		if _, ok := x.(*report.InternalError); !ok {
			t.Errorf("expected internal error panic, got %v", x)
		}
	}()

	NewSymbolTable().UpdateVar("missing", types.PrimI8, 1, 0, 1)
}

func TestUpdateUninsertedFuncIsInternalError(t *testing.T) {
	defer func() {
		if _, ok := recover().(*report.InternalError); !ok {
			t.Error("expected internal error panic")
		}
	}()

	NewSymbolTable().UpdateFunc("missing", types.PrimVoid, 1)
}
