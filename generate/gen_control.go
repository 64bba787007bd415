package generate

import (
	"ark/ast"
	"ark/syntax"
	"ark/types"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
)

// genIfStmt generates an if statement.  Each branch falls through to the block
// testing the next branch when its condition is false.
func (g *Generator) genIfStmt(cond *ast.Conditional) {
	// endBlock is the block that all the branches will jump to to end the block
	endBlock := g.appendBlock()

	for i, branch := range cond.Branches {
		ifBlock := g.appendBlock()

		// if there is no else, then the final "else" block is the ending block.
		var elseBlock *ir.Block
		if i == len(cond.Branches)-1 && cond.Else == nil {
			elseBlock = endBlock
		} else {
			elseBlock = g.appendBlock()
		}

		g.block.NewCondBr(g.genExpr(branch.Cond), ifBlock, elseBlock)

		g.block = ifBlock
		g.genBlock(branch.Body)
		g.branchTo(endBlock)

		g.block = elseBlock
	}

	if cond.Else != nil {
		g.genBlock(cond.Else)
		g.branchTo(endBlock)
		g.block = endBlock
	}
}

// genWhileLoop generates a while loop.  The condition is tested in its own
// block at the top of every iteration.
func (g *Generator) genWhileLoop(loop *ast.While) {
	headerBlock := g.appendBlock()
	g.block.NewBr(headerBlock)

	bodyBlock := g.appendBlock()
	endBlock := g.appendBlock()

	g.block = headerBlock
	g.block.NewCondBr(g.genExpr(loop.Cond), bodyBlock, endBlock)

	g.block = bodyBlock
	g.genBlock(loop.Body)
	g.branchTo(headerBlock)

	g.block = endBlock
}

// genForLoop generates a for loop over a range.  The loop variable counts from
// the start of the range up to, but not including, the end.
func (g *Generator) genForLoop(loop *ast.For) {
	rng := loop.Iter.(*ast.Range)
	target := loop.Target.(*ast.Variable)
	iterType := g.file.TypeOf(target)

	start := g.genExprAs(rng.Start, iterType)
	end := g.genExprAs(rng.End, iterType)

	g.pushScope()
	iter := g.defineVar(target.Name, iterType)
	g.block.NewStore(start, iter.Slot)

	headerBlock := g.appendBlock()
	g.block.NewBr(headerBlock)

	bodyBlock := g.appendBlock()
	endBlock := g.appendBlock()

	g.block = headerBlock
	current := g.block.NewLoad(iter.Typ, iter.Slot)
	g.block.NewCondBr(
		g.genComparison(syntax.TOK_LT, iterType.(types.PrimitiveType), current, end),
		bodyBlock,
		endBlock,
	)

	g.block = bodyBlock
	g.genBlock(loop.Body)

	if g.block.Term == nil {
		next := g.block.NewAdd(
			g.block.NewLoad(iter.Typ, iter.Slot),
			constant.NewInt(iter.Typ.(*lltypes.IntType), 1),
		)
		g.block.NewStore(next, iter.Slot)
		g.block.NewBr(headerBlock)
	}

	g.popScope()
	g.block = endBlock
}

// branchTo terminates the current block with a branch unless it has already
// been terminated.
func (g *Generator) branchTo(target *ir.Block) {
	if g.block.Term == nil {
		g.block.NewBr(target)
	}
}
