package syntax

import (
	"ark/ast"
	"ark/report"
	"ark/types"
)

// file := {stmt} EOF ;
func (p *Parser) parseFile() *ast.Body {
	startSpan := p.tok.Span
	stmts := p.parseStmts(TOK_EOF)

	return &ast.Body{
		ASTBase: ast.NewASTBaseOver(startSpan, p.tok.Span),
		Stmts:   stmts,
	}
}

// parseStmts parses statements until the given stop token is reached.  The
// stop token is not consumed.
func (p *Parser) parseStmts(stop int) []ast.Node {
	var stmts []ast.Node

	for !p.has(stop) && !p.has(TOK_EOF) {
		// stray closing braces can only be skipped at the top level: inside a
		// block they end the block.
		if p.has(TOK_RBRACE) {
			p.errorHere("unexpected `}`")
			p.next()
			continue
		}

		stmts = append(stmts, p.parseStmt())
	}

	return stmts
}

// block := '{' {stmt} '}' ;
func (p *Parser) parseBlock() *ast.Body {
	startSpan := p.want(TOK_LBRACE, "").Span

	p.blockDepth++
	stmts := p.parseStmts(TOK_RBRACE)
	p.blockDepth--

	endSpan := p.want(TOK_RBRACE, "").Span

	return &ast.Body{
		ASTBase: ast.NewASTBaseOver(startSpan, endSpan),
		Stmts:   stmts,
	}
}

// -----------------------------------------------------------------------------

// func_decl := 'func' 'IDENTIFIER' '(' [param {',' param}] ')' [':' type_label] block ;
// param := type_label 'IDENTIFIER' ;
// If the return type is not void, the body must contain a return statement.
func (p *Parser) parseFuncDecl() (node ast.Node) {
	defer p.catch(&node, p.recoverDecl)

	startSpan := p.want(TOK_FUNC, "").Span
	nameTok := p.want(TOK_IDENT, "expected function name")
	p.want(TOK_LPAREN, "")

	var params []*ast.Param
	if !p.has(TOK_RPAREN) {
		for {
			typ, typSpan := p.parseTypeLabel()
			paramTok := p.want(TOK_IDENT, "expected parameter name")

			params = append(params, &ast.Param{
				Name: paramTok.Value,
				Type: typ,
				Span: report.NewSpanOver(typSpan, paramTok.Span),
			})

			if p.has(TOK_COMMA) {
				p.next()
				continue
			}

			break
		}
	}

	p.want(TOK_RPAREN, "expected `,` or `)` in parameter list")

	fn := &ast.Function{
		Name:       nameTok.Value,
		NameSpan:   nameTok.Span,
		Params:     params,
		ReturnType: types.PrimVoid,
	}

	if p.has(TOK_COLON) {
		p.next()
		fn.ReturnType, fn.ReturnSpan = p.parseTypeLabel()
	}

	fn.Body = p.parseBlock()
	fn.ASTBase = ast.NewASTBaseOver(startSpan, fn.Body.Span())

	if !types.IsPrim(fn.ReturnType, types.PrimVoid) && !fn.Body.Contains(ast.KindReturn) {
		p.rep.Report(report.DiagSemantic, fn.ReturnSpan, "missing return statement")
	}

	return fn
}

// import_stmt := 'import' 'STRING_LIT' ['as' 'IDENTIFIER'] ';' ;
func (p *Parser) parseImport() ast.Node {
	startSpan := p.want(TOK_IMPORT, "").Span
	pathTok := p.want(TOK_STRINGLIT, "expected import path")

	imp := &ast.Import{Path: pathTok.Value}
	if p.has(TOK_AS) {
		p.next()

		aliasTok := p.want(TOK_IDENT, "expected import alias")
		imp.Alias = aliasTok.Value
		imp.AliasSpan = aliasTok.Span
	}

	imp.ASTBase = ast.NewASTBaseOver(startSpan, p.lookbehind.Span)
	p.want(TOK_SEMI, "expected `;` after import")

	return imp
}
