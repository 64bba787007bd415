package syntax

import (
	"ark/ast"
	"ark/report"
)

// expr_list := expr {',' expr} ;
func (p *Parser) parseExprList() []ast.Node {
	exprs := []ast.Node{p.parseExpr()}

	for p.has(TOK_COMMA) {
		p.next()
		exprs = append(exprs, p.parseExpr())
	}

	return exprs
}

// expr := or_expr ;
// or_expr := and_expr {'||' and_expr} ;
// and_expr := comp_expr {'&&' comp_expr} ;
// comp_expr := arith_expr {('==' | '<' | '<=' | '>' | '>=') arith_expr} ;
// arith_expr := term {('+' | '-' | '..') term} ;
// term := unary_expr {('*' | '/' | '%') unary_expr} ;
func (p *Parser) parseExpr() ast.Node {
	lhs := p.parseUnaryExpr()
	return p.precedenceParse(lhs, len(precTable))
}

// precTable is the operator precedence table for binary operators. The table is
// ordered highest to lowest precedence.
var precTable = [][]int{
	{TOK_STAR, TOK_DIV, TOK_MOD},
	{TOK_PLUS, TOK_MINUS, TOK_RANGETO},
	{TOK_EQ, TOK_LT, TOK_LTEQ, TOK_GT, TOK_GTEQ},
	{TOK_LAND},
	{TOK_LOR},
}

// precedenceParse is a helper function used to perform operator precedence
// parsing for binary operators.  All operators are left associative.
func (p *Parser) precedenceParse(lhs ast.Node, maxPrec int) ast.Node {
	for {
		// check to see if the lookahead matches any of the operators at or
		// above our precedence level.
		var op *Token
		var opPrec int
		for prec, precLevel := range precTable[:maxPrec] {
			if p.hasOneOf(precLevel...) {
				op = p.tok
				opPrec = prec
				break
			}
		}

		// no matching operator
		if op == nil {
			break
		}

		p.next()

		rhs := p.parseUnaryExpr()

	nextOpLoop:
		for {
			for _, precLevel := range precTable[:opPrec] {
				if p.hasOneOf(precLevel...) {
					rhs = p.precedenceParse(rhs, opPrec)
					continue nextOpLoop
				}
			}

			break nextOpLoop
		}

		if op.Kind == TOK_RANGETO {
			lhs = &ast.Range{
				ASTBase: ast.NewASTBaseOver(lhs.Span(), rhs.Span()),
				Start:   lhs,
				End:     rhs,
			}
		} else {
			lhs = &ast.BinaryExpression{
				ASTBase: ast.NewASTBaseOver(lhs.Span(), rhs.Span()),
				Op: ast.Oper{
					Kind: op.Kind,
					Name: op.Value,
					Span: op.Span,
				},
				Lhs: lhs,
				Rhs: rhs,
			}
		}
	}

	return lhs
}

// -----------------------------------------------------------------------------

// unary_expr := '!' unary_expr | '-' ('INT_LIT' | 'FLOAT_LIT') | atom_expr ;
func (p *Parser) parseUnaryExpr() ast.Node {
	switch p.tok.Kind {
	case TOK_NOT:
		startSpan := p.tok.Span
		p.next()

		operand := p.parseUnaryExpr()
		return &ast.BooleanNot{
			ASTBase: ast.NewASTBaseOver(startSpan, operand.Span()),
			Operand: operand,
		}
	case TOK_MINUS:
		startSpan := p.tok.Span
		p.next()

		if p.hasOneOf(TOK_INTLIT, TOK_FLOATLIT) {
			lit := p.parseLiteral()
			lit.ASTBase = ast.NewASTBaseOver(startSpan, lit.Span())
			lit.Value = "-" + lit.Value
			return lit
		}

		operand := p.parseUnaryExpr()
		return p.errorOn(
			report.NewSpanOver(startSpan, operand.Span()),
			"unary `-` can only be applied to a numeric literal",
		)
	}

	return p.parseAtomExpr()
}

// atom_expr := atom {'.' 'IDENTIFIER' '(' [expr_list] ')'} ;
func (p *Parser) parseAtomExpr() ast.Node {
	expr := p.parseAtom()

	for p.has(TOK_DOT) {
		p.next()

		methodTok := p.want(TOK_IDENT, "expected method name")
		args, endSpan := p.parseCallArgs()

		expr = &ast.MethodCall{
			ASTBase: ast.NewASTBaseOver(expr.Span(), endSpan),
			Caller:  expr,
			Method:  methodTok.Value,
			Args:    args,
		}
	}

	return expr
}

// atom := literal | 'IDENTIFIER' ['(' [expr_list] ')'] | '(' expr_list ')' ;
func (p *Parser) parseAtom() ast.Node {
	switch p.tok.Kind {
	case TOK_INTLIT, TOK_FLOATLIT, TOK_STRINGLIT, TOK_CHARLIT, TOK_BOOLLIT:
		return p.parseLiteral()
	case TOK_IDENT:
		identTok := p.tok
		p.next()

		if p.has(TOK_LPAREN) {
			args, endSpan := p.parseCallArgs()

			return &ast.FunctionCall{
				ASTBase: ast.NewASTBaseOver(identTok.Span, endSpan),
				Name:    identTok.Value,
				Args:    args,
			}
		}

		return &ast.Variable{
			ASTBase: ast.NewASTBaseOn(identTok.Span),
			Name:    identTok.Value,
		}
	case TOK_LPAREN:
		startSpan := p.tok.Span
		p.next()

		exprs := p.parseExprList()
		endSpan := p.want(TOK_RPAREN, "expected `)`").Span

		if len(exprs) == 1 {
			return exprs[0]
		}

		return &ast.Tuple{
			ASTBase: ast.NewASTBaseOver(startSpan, endSpan),
			Elems:   exprs,
		}
	}

	p.reject("expected expression, found %s", p.describeTok())
	return nil
}

// literal := 'INT_LIT' | 'FLOAT_LIT' | 'STRING_LIT' | 'CHAR_LIT' | 'BOOL_LIT' ;
func (p *Parser) parseLiteral() *ast.Literal {
	tok := p.tok
	p.next()

	var kind ast.LitKind
	switch tok.Kind {
	case TOK_INTLIT:
		kind = ast.LitInt
	case TOK_FLOATLIT:
		kind = ast.LitFloat
	case TOK_STRINGLIT:
		kind = ast.LitStr
	case TOK_CHARLIT:
		kind = ast.LitChar
	default:
		kind = ast.LitBool
	}

	return &ast.Literal{
		ASTBase: ast.NewASTBaseOn(tok.Span),
		LitKind: kind,
		Value:   tok.Value,
	}
}

// call_args := '(' [expr_list] ')' ;
func (p *Parser) parseCallArgs() ([]ast.Node, *report.TextSpan) {
	p.want(TOK_LPAREN, "")

	var args []ast.Node
	if !p.has(TOK_RPAREN) {
		args = p.parseExprList()
	}

	endSpan := p.want(TOK_RPAREN, "expected `,` or `)` in argument list").Span
	return args, endSpan
}
