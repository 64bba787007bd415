package lower

import (
	"ark/ast"
	"strings"
)

// lowerIfStmt lowers an if statement.  Each branch jumps past itself when its
// condition is false and to the end of the statement when its body finishes.
// Variables written in a branch are copied back into the versions visible
// before the statement so that code after it reads the same versions
// whichever branch ran.
func (l *Lowerer) lowerIfStmt(b *strings.Builder, cond *ast.Conditional) {
	var endLabel string
	if len(cond.Branches) > 1 || cond.Else != nil {
		endLabel = l.getLabelName()
	}

	for i, branch := range cond.Branches {
		condOperand := l.lowerExpr(b, branch.Cond)
		nextLabel := l.getLabelName()
		emit(b, "if_false %s goto %s", condOperand, nextLabel)

		mark := len(l.writes)
		l.lowerBody(b, branch.Body)
		l.joinVersions(b, mark)

		if i < len(cond.Branches)-1 || cond.Else != nil {
			emit(b, "goto %s", endLabel)
		}

		emit(b, "%s:", nextLabel)
	}

	if cond.Else != nil {
		mark := len(l.writes)
		l.lowerBody(b, cond.Else)
		l.joinVersions(b, mark)
	}

	if endLabel != "" {
		emit(b, "%s:", endLabel)
	}
}

// lowerWhileLoop lowers a while loop.  The condition is re-evaluated at the
// top of every iteration against the versions visible on entry to the loop:
// the body copies the variables it writes back into them before jumping back.
func (l *Lowerer) lowerWhileLoop(b *strings.Builder, loop *ast.While) {
	startLabel := l.getLabelName()
	endLabel := l.getLabelName()

	emit(b, "%s:", startLabel)
	condOperand := l.lowerExpr(b, loop.Cond)
	emit(b, "if_false %s goto %s", condOperand, endLabel)

	mark := len(l.writes)
	l.lowerBody(b, loop.Body)
	l.joinVersions(b, mark)

	emit(b, "goto %s", startLabel)
	emit(b, "%s:", endLabel)
}

// lowerForLoop lowers a for loop over a range.  The loop variable is
// initialized to the start of the range and incremented after the body until
// it reaches the end of the range.
func (l *Lowerer) lowerForLoop(b *strings.Builder, loop *ast.For) {
	rng := loop.Iter.(*ast.Range)
	start := l.lowerExpr(b, rng.Start)
	end := l.lowerExpr(b, rng.End)

	bodyScope := l.file.Scopes[loop.Body]
	prev := l.scope
	l.scope = bodyScope

	// tuple targets are rejected by analysis: a single variable remains.
	iter := l.file.VarOf(loop.Target)
	l.declareVar(iter)
	emit(b, "%s = %s", l.writeVar(iter), start)

	startLabel := l.getLabelName()
	endLabel := l.getLabelName()

	emit(b, "%s:", startLabel)
	condTemp := l.getTempName()
	emit(b, "%s = l %s, %s", condTemp, l.readVar(iter), end)
	emit(b, "if_false %s goto %s", condTemp, endLabel)

	mark := len(l.writes)

	l.scope = prev
	l.lowerBody(b, loop.Body)
	l.scope = bodyScope

	stepTemp := l.getTempName()
	emit(b, "%s = add %s, 1", stepTemp, l.readVar(iter))
	emit(b, "%s = %s", l.writeVar(iter), stepTemp)

	l.joinVersions(b, mark)
	emit(b, "goto %s", startLabel)
	emit(b, "%s:", endLabel)

	l.scope = prev
}
