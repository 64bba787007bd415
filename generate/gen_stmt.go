package generate

import (
	"ark/ast"
	"ark/types"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
)

// genStmts generates a sequence of statements.
func (g *Generator) genStmts(stmts []ast.Node) {
	for _, stmt := range stmts {
		g.genStmt(stmt)
	}
}

// genStmt generates a single statement.
func (g *Generator) genStmt(stmt ast.Node) {
	switch v := stmt.(type) {
	case *ast.Body:
		g.genBlock(v)
	case *ast.DeclareVar:
		g.defineVar(v.Name, v.Type)
	case *ast.Function:
		g.genFuncDecl(v)
	case *ast.Import, *ast.ParserError:
		// nothing to generate
	case *ast.Return:
		g.genReturn(v)
	case *ast.Conditional:
		g.genIfStmt(v)
	case *ast.While:
		g.genWhileLoop(v)
	case *ast.For:
		g.genForLoop(v)
	default:
		g.genExpr(stmt)
	}
}

// genBlock generates a body in a new local scope.
func (g *Generator) genBlock(body *ast.Body) {
	g.pushScope()
	g.genStmts(body.Stmts)
	g.popScope()
}

// genFuncDecl generates a function declaration.  Parameters are copied into
// allocas so they can be assigned like any other variable.
func (g *Generator) genFuncDecl(fn *ast.Function) {
	params := make([]*ir.Param, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = ir.NewParam(param.Name, g.convType(param.Type))
	}

	llFunc := g.mod.NewFunc(g.globalName(fn.Name), g.convType(fn.ReturnType), params...)
	g.funcs[fn.Name] = llFunc

	g.genFuncBody(llFunc, fn.ReturnType, func() {
		g.pushScope()

		for i, param := range fn.Params {
			ident := g.defineVar(param.Name, param.Type)
			g.block.NewStore(params[i], ident.Slot)
		}

		g.genStmts(fn.Body.Stmts)
		g.popScope()
	})
}

// genReturn generates a return statement.  Code following the return is
// generated into a fresh block no branch reaches.
func (g *Generator) genReturn(ret *ast.Return) {
	if ret.Value == nil {
		g.block.NewRet(nil)
	} else {
		g.block.NewRet(g.genExprAs(ret.Value, g.returnType))
	}

	g.block = g.appendBlock()
}

// -----------------------------------------------------------------------------

// zeroValue returns the zero value of an LLVM type.
func zeroValue(typ lltypes.Type) constant.Constant {
	switch v := typ.(type) {
	case *lltypes.IntType:
		return constant.NewInt(v, 0)
	case *lltypes.FloatType:
		return constant.NewFloat(v, 0)
	case *lltypes.PointerType:
		return constant.NewNull(v)
	}

	return constant.NewZeroInitializer(typ)
}

// isVoid returns whether typ is the ark void type.
func isVoid(typ types.Type) bool {
	return types.IsPrim(typ, types.PrimVoid)
}
