package syntax

import (
	"ark/ast"
	"ark/report"
)

// if_stmt := 'if' expr block {'else' 'if' expr block} ['else' block] ;
func (p *Parser) parseIfStmt() ast.Node {
	startSpan := p.want(TOK_IF, "").Span

	cond := p.parseExpr()
	body := p.parseBlock()

	ifStmt := &ast.Conditional{
		Branches: []*ast.CondBranch{{Cond: cond, Body: body}},
	}

	for p.has(TOK_ELSE) {
		p.next()

		if p.has(TOK_IF) {
			p.next()

			cond := p.parseExpr()
			body := p.parseBlock()
			ifStmt.Branches = append(ifStmt.Branches, &ast.CondBranch{Cond: cond, Body: body})
		} else {
			ifStmt.Else = p.parseBlock()
			break
		}
	}

	ifStmt.ASTBase = ast.NewASTBaseOver(startSpan, p.lookbehind.Span)
	return ifStmt
}

// while_loop := 'while' expr block ;
func (p *Parser) parseWhileLoop() ast.Node {
	startSpan := p.want(TOK_WHILE, "").Span

	cond := p.parseExpr()
	body := p.parseBlock()

	return &ast.While{
		ASTBase: ast.NewASTBaseOver(startSpan, body.Span()),
		Cond:    cond,
		Body:    body,
	}
}

// for_loop := 'for' loop_target 'in' range block ;
// loop_target := 'IDENTIFIER' | '(' 'IDENTIFIER' {',' 'IDENTIFIER'} ')' ;
// range := expr '..' expr ;
func (p *Parser) parseForLoop() ast.Node {
	startSpan := p.want(TOK_FOR, "").Span

	var target ast.Node
	switch p.tok.Kind {
	case TOK_IDENT:
		target = p.parseLoopVar()
	case TOK_LPAREN:
		tupleStart := p.tok.Span
		p.next()

		elems := []ast.Node{p.parseLoopVar()}
		for p.has(TOK_COMMA) {
			p.next()
			elems = append(elems, p.parseLoopVar())
		}

		tupleEnd := p.want(TOK_RPAREN, "expected `,` or `)` in loop target").Span
		target = &ast.Tuple{
			ASTBase: ast.NewASTBaseOver(tupleStart, tupleEnd),
			Elems:   elems,
		}
	default:
		p.reject("expected loop variable, found %s", p.describeTok())
	}

	p.want(TOK_IN, "expected `in` after loop variable")

	iter := p.parseExpr()
	body := p.parseBlock()
	span := report.NewSpanOver(startSpan, body.Span())

	if _, ok := iter.(*ast.Range); !ok {
		p.rep.Report(report.DiagSyntax, iter.Span(), "expected range")

		return &ast.ParserError{
			ASTBase: ast.NewASTBaseOn(span),
			Message: "expected range",
		}
	}

	return &ast.For{
		ASTBase: ast.NewASTBaseOn(span),
		Target:  target,
		Iter:    iter,
		Body:    body,
	}
}

// parseLoopVar parses a single loop variable.
func (p *Parser) parseLoopVar() ast.Node {
	tok := p.want(TOK_IDENT, "expected loop variable")

	return &ast.Variable{
		ASTBase: ast.NewASTBaseOn(tok.Span),
		Name:    tok.Value,
	}
}
