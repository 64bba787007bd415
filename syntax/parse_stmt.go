package syntax

import (
	"ark/ast"
	"ark/report"
)

// stmt := func_decl | import_stmt | block_stmt | block
//		| (var_decl | return_stmt | expr_assign_stmt) ';' ;
// block_stmt := if_stmt | while_loop | for_loop ;
func (p *Parser) parseStmt() (stmt ast.Node) {
	defer p.catch(&stmt, p.recoverStatement)

	switch p.tok.Kind {
	case TOK_FUNC:
		if p.blockDepth > 0 {
			perr := p.errorHere("only top-level function declaration is allowed")
			p.recoverDecl()
			return perr
		}

		return p.parseFuncDecl()
	case TOK_IMPORT:
		return p.parseImport()
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_WHILE:
		return p.parseWhileLoop()
	case TOK_FOR:
		return p.parseForLoop()
	case TOK_LBRACE:
		return p.parseBlock()
	case TOK_ELSE:
		perr := p.errorHere("`else` without a preceding `if`")
		p.recoverElse()
		return perr
	case TOK_IN:
		perr := p.errorHere("`in` without a preceding `for`")
		p.recoverStatement()
		return perr
	case TOK_LET, TOK_CONST:
		stmt = p.parseVarDecl()
	case TOK_RETURN:
		stmt = p.parseReturnStmt()
	default:
		stmt = p.parseExprAssignStmt()
	}

	p.want(TOK_SEMI, "expected `;` at end of statement")
	return stmt
}

// var_decl := ('let' | 'const') type_label 'IDENTIFIER' [initializer] ;
// initializer := '=' expr ;
func (p *Parser) parseVarDecl() ast.Node {
	startSpan := p.tok.Span
	constant := p.has(TOK_CONST)
	p.next()

	typ, _ := p.parseTypeLabel()
	nameTok := p.want(TOK_IDENT, "expected variable name")

	decl := &ast.DeclareVar{
		ASTBase:  ast.NewASTBaseOver(startSpan, nameTok.Span),
		Name:     nameTok.Value,
		NameSpan: nameTok.Span,
		Type:     typ,
		Constant: constant,
	}

	if !p.has(TOK_ASSIGN) {
		if constant {
			p.rep.ReportWarning(report.DiagSyntax, nameTok.Span, "constant `%s` declared without a value", nameTok.Value)
		}

		return decl
	}

	p.next()
	init := p.parseExpr()

	return &ast.Assignment{
		ASTBase: ast.NewASTBaseOver(startSpan, init.Span()),
		Lhs:     decl,
		Rhs:     init,
	}
}

// return_stmt := 'return' [expr] ;
func (p *Parser) parseReturnStmt() ast.Node {
	startSpan := p.tok.Span
	p.next()

	ret := &ast.Return{}
	if !p.has(TOK_SEMI) {
		ret.Value = p.parseExpr()
	}

	ret.ASTBase = ast.NewASTBaseOver(startSpan, p.lookbehind.Span)
	return ret
}

// expr_assign_stmt := expr ['=' expr] ;
func (p *Parser) parseExprAssignStmt() ast.Node {
	lhs := p.parseExpr()

	if !p.has(TOK_ASSIGN) {
		return lhs
	}

	p.next()
	rhs := p.parseExpr()

	return &ast.Assignment{
		ASTBase: ast.NewASTBaseOver(lhs.Span(), rhs.Span()),
		Lhs:     lhs,
		Rhs:     rhs,
	}
}
