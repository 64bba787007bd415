package generate

import (
	"ark/ast"
	"ark/depm"
	"ark/report"
	"ark/types"
	"fmt"

	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// TopLevelFuncName is the name of the LLVM function holding the top-level
// statements of a file.
const TopLevelFuncName = "ark.toplevel"

// LLVMIdent is a variable slot: the pointer the variable is stored through
// along with the type of the value stored.
type LLVMIdent struct {
	Slot value.Value
	Typ  lltypes.Type
}

// Generator is responsible for converting an analyzed ark file into LLVM IR.
// Each file is converted into a single LLVM module.
type Generator struct {
	// The analyzed file being converted.
	file *depm.ArkFile

	// mod is the LLVM module being generated.
	mod *ir.Module

	// funcs maps the names of declared functions to their LLVM functions.
	funcs map[string]*ir.Func

	// globalCounter is a counter used to generate anonymous globals such as
	// those for string literals.
	globalCounter int

	// globalNames is the set of global symbol names already in use.
	globalNames map[string]bool

	// enclosingFunc is function enclosing the block being compiled.
	enclosingFunc *ir.Func

	// entryBlock is the entry block of the enclosing function.  It only holds
	// the allocas of the function's variables.
	entryBlock *ir.Block

	// returnType is the ark return type of the enclosing function.
	returnType types.Type

	// globalScope is the scope containing all global variables.
	globalScope map[string]LLVMIdent

	// localScopes is the stack of local scopes used during generation.
	localScopes []map[string]LLVMIdent

	// block stores the current block begin generated.
	block *ir.Block
}

// Generate converts an analyzed file into an LLVM module.  Constructs the LLVM
// backend cannot express are returned as a compile error.
func Generate(file *depm.ArkFile) (mod *ir.Module, err *report.LocalCompileError) {
	g := &Generator{
		file:        file,
		mod:         ir.NewModule(),
		funcs:       make(map[string]*ir.Func),
		globalScope: make(map[string]LLVMIdent),
		globalNames: map[string]bool{TopLevelFuncName: true},
	}

	defer func() {
		if x := recover(); x != nil {
			if lce, ok := x.(*report.LocalCompileError); ok {
				mod, err = nil, lce
				return
			}

			panic(x)
		}
	}()

	g.mod.SourceFilename = file.Context.ReprPath

	toplevel := g.mod.NewFunc(TopLevelFuncName, lltypes.Void)
	g.genFuncBody(toplevel, types.PrimVoid, func() {
		g.genStmts(file.Body.Stmts)
	})

	return g.mod, nil
}

// unsupported aborts generation because a construct has no LLVM lowering.
func (g *Generator) unsupported(node ast.Node, what string) {
	panic(report.Raise(node.Span(), "%s are not supported by the LLVM backend", what))
}

// -----------------------------------------------------------------------------

// genFuncBody generates the body of an LLVM function.  The entry block holds
// the function's allocas and branches to the first block of code.  A block
// left without a terminator returns void or is marked unreachable.
func (g *Generator) genFuncBody(fn *ir.Func, retType types.Type, genBody func()) {
	prevFunc, prevEntry, prevBlock, prevRet := g.enclosingFunc, g.entryBlock, g.block, g.returnType
	prevScopes := g.localScopes

	g.enclosingFunc = fn
	g.returnType = retType
	g.localScopes = nil
	g.entryBlock = fn.NewBlock("entry")
	g.block = g.appendBlock()
	g.entryBlock.NewBr(g.block)

	genBody()

	if g.block.Term == nil {
		if isVoid(retType) {
			g.block.NewRet(nil)
		} else {
			g.block.NewUnreachable()
		}
	}

	g.enclosingFunc, g.entryBlock, g.block, g.returnType = prevFunc, prevEntry, prevBlock, prevRet
	g.localScopes = prevScopes
}

// appendBlock adds a new block to the enclosing function.
func (g *Generator) appendBlock() *ir.Block {
	return g.enclosingFunc.NewBlock(fmt.Sprintf("bb%d", len(g.enclosingFunc.Blocks)))
}

// atTopLevel returns whether variables declared now are file globals.
func (g *Generator) atTopLevel() bool {
	return g.enclosingFunc.Name() == TopLevelFuncName && len(g.localScopes) == 0
}

// -----------------------------------------------------------------------------

// pushScope pushes a new local scope.
func (g *Generator) pushScope() {
	g.localScopes = append(g.localScopes, make(map[string]LLVMIdent))
}

// popScope pops the innermost local scope.
func (g *Generator) popScope() {
	g.localScopes = g.localScopes[:len(g.localScopes)-1]
}

// defineVar creates the storage of a new variable.  Top-level variables become
// private globals; all others are allocas in the entry block.
func (g *Generator) defineVar(name string, typ types.Type) LLVMIdent {
	llType := g.convType(typ)

	if g.atTopLevel() {
		glob := g.mod.NewGlobalDef(g.globalName(name), zeroValue(llType))
		ident := LLVMIdent{Slot: glob, Typ: llType}
		g.globalScope[name] = ident
		return ident
	}

	ident := LLVMIdent{Slot: g.entryBlock.NewAlloca(llType), Typ: llType}
	g.localScopes[len(g.localScopes)-1][name] = ident
	return ident
}

// globalName reserves a global symbol name based on name.  Redeclared
// variables and variables sharing a name with a function get a numeric suffix.
func (g *Generator) globalName(name string) string {
	unique := name
	for i := 1; g.globalNames[unique]; i++ {
		unique = fmt.Sprintf("%s.%d", name, i)
	}

	g.globalNames[unique] = true
	return unique
}

// lookup finds the slot of a variable by name.
func (g *Generator) lookup(name string) LLVMIdent {
	for i := len(g.localScopes) - 1; i >= 0; i-- {
		if ident, ok := g.localScopes[i][name]; ok {
			return ident
		}
	}

	if ident, ok := g.globalScope[name]; ok {
		return ident
	}

	report.ReportICE("variable `%s` has no storage", name)
	return LLVMIdent{}
}
