package syntax

import (
	"ark/ast"
	"ark/report"
	"bufio"
	"fmt"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse as well as any
// semantic actions they perform during parsing.

// Parser is the parser for an ark source file.  It is a recursive descent
// parser with a single token of lookahead.  All parsing functions assume that
// they begin with the parser centered on the first token of their production
// and must consume all tokens (including the last) of their production,
// leaving the parser on the next token.
//
// Syntax errors never abort the parse: the offending construct is replaced by
// an ast.ParserError node and the parser resynchronizes at the nearest
// statement or declaration boundary.
type Parser struct {
	// rep is the reporter diagnostics are recorded in.
	rep *report.Reporter

	// lexer is the Lexer this parser is using to lex the source file.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token

	// lookbehind is the token immediately before the current token.
	lookbehind *Token

	// blockDepth is the number of blocks enclosing the current statement.
	blockDepth int
}

// NewParser creates a new parser for the given source reader.
func NewParser(rep *report.Reporter, r *bufio.Reader) *Parser {
	return &Parser{
		rep:   rep,
		lexer: NewLexer(r),
	}
}

// Parse parses the whole file and returns its body.  The returned AST may
// contain ParserError nodes: the reporter records whether any errors occurred.
func (p *Parser) Parse() *ast.Body {
	p.next()
	return p.parseFile()
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.  Lexical errors are reported and
// skipped so that the parser is always positioned on a valid token.
func (p *Parser) next() {
	p.lookbehind = p.tok

	for {
		tok, err := p.lexer.NextToken()
		if err == nil {
			p.tok = tok
			return
		}

		if lerr, ok := err.(*report.LocalCompileError); ok {
			p.rep.Report(report.DiagLexical, lerr.Span, "%s", lerr.Message)
			continue
		}

		// I/O errors end the token stream.
		var span *report.TextSpan
		if p.tok != nil {
			span = p.tok.Span
		}

		p.rep.Report(report.DiagLexical, span, "failed to read source: %s", err)
		p.tok = &Token{Kind: TOK_EOF, Span: span}
		return
	}
}

// has returns true if the parser is on a token of a given kind.
func (p *Parser) has(kind int) bool {
	return p.tok.Kind == kind
}

// hasOneOf returns if the parser's current token kind is one of given kinds.
func (p *Parser) hasOneOf(kinds ...int) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// eat consumes the current token if it is of the given kind and returns it.
// Otherwise, it reports a syntax error with the given message (or a default
// message if msg is empty) and returns a ParserError positioned on the current
// token WITHOUT advancing the parser.
func (p *Parser) eat(kind int, msg string) (*Token, *ast.ParserError) {
	if p.has(kind) {
		tok := p.tok
		p.next()
		return tok, nil
	}

	if msg == "" {
		msg = fmt.Sprintf("expected %s, found %s", quoteTokenName(kind), p.describeTok())
	}

	return nil, p.errorHere(msg)
}

// want is eat for productions which cannot continue after a mismatch: the
// ParserError is thrown to the nearest recovery point.
func (p *Parser) want(kind int, msg string) *Token {
	tok, perr := p.eat(kind, msg)
	if perr != nil {
		panic(perr)
	}

	return tok
}

// reject reports an unexpected token error on the current token and throws it
// to the nearest recovery point.
func (p *Parser) reject(msg string, a ...interface{}) {
	if msg == "" {
		panic(p.errorHere(fmt.Sprintf("unexpected %s", p.describeTok())))
	}

	panic(p.errorHere(fmt.Sprintf(msg, a...)))
}

// errorHere reports a syntax error on the current token and returns the
// corresponding ParserError node.
func (p *Parser) errorHere(msg string) *ast.ParserError {
	return p.errorOn(p.tok.Span, msg)
}

// errorOn reports a syntax error over a span and returns the corresponding
// ParserError node.
func (p *Parser) errorOn(span *report.TextSpan, msg string) *ast.ParserError {
	p.rep.Report(report.DiagSyntax, span, "%s", msg)

	return &ast.ParserError{
		ASTBase: ast.NewASTBaseOn(span),
		Message: msg,
	}
}

// describeTok returns a user facing description of the current token.
func (p *Parser) describeTok() string {
	switch p.tok.Kind {
	case TOK_EOF:
		return "end of file"
	case TOK_STRINGLIT:
		return fmt.Sprintf("`\"%s\"`", p.tok.Value)
	case TOK_CHARLIT:
		return fmt.Sprintf("`'%s'`", p.tok.Value)
	default:
		return fmt.Sprintf("`%s`", p.tok.Value)
	}
}

// quoteTokenName returns the user facing name of a token kind.
func quoteTokenName(kind int) string {
	name, ok := tokenNames[kind]
	if !ok {
		return "type label"
	}

	if kind >= TOK_IDENT {
		return name
	}

	return "`" + name + "`"
}

// -----------------------------------------------------------------------------

// catch is deferred by every production that acts as a recovery point.  If a
// ParserError was thrown, it runs the recovery function and replaces the
// production's result with the error node.
func (p *Parser) catch(result *ast.Node, recoverFn func()) {
	if x := recover(); x != nil {
		perr, ok := x.(*ast.ParserError)
		if !ok {
			panic(x)
		}

		recoverFn()
		*result = perr
	}
}

// recoverStatement skips tokens until the end of the current statement: the
// parser is left after a `;`, on a `}`, after a balanced block, or on EOF.
func (p *Parser) recoverStatement() {
	for {
		switch p.tok.Kind {
		case TOK_EOF, TOK_RBRACE:
			return
		case TOK_SEMI:
			p.next()
			return
		case TOK_LBRACE:
			p.skipBlock()
			return
		default:
			p.next()
		}
	}
}

// recoverDecl scans forward to the next `{` and skips the balanced block it
// opens.  This is used to skip over the whole of a malformed declaration.  The
// scan stops without consuming on a `}` closing an enclosing block.
func (p *Parser) recoverDecl() {
	for !p.hasOneOf(TOK_LBRACE, TOK_RBRACE, TOK_EOF) {
		p.next()
	}

	p.skipBlock()
}

// recoverElse skips a stray `else` along with the `if` condition and block
// following it.  Anything else after the `else` is skipped as a statement.
func (p *Parser) recoverElse() {
	p.next()

	if p.has(TOK_IF) {
		for !p.hasOneOf(TOK_LBRACE, TOK_RBRACE, TOK_SEMI, TOK_EOF) {
			p.next()
		}
	}

	if p.has(TOK_LBRACE) {
		p.skipBlock()
		return
	}

	p.recoverStatement()
}

// skipBlock skips a balanced brace block beginning at the current token.  If
// the parser is not on a `{`, it does nothing.
func (p *Parser) skipBlock() {
	if !p.has(TOK_LBRACE) {
		return
	}

	depth := 0
	for !p.has(TOK_EOF) {
		switch p.tok.Kind {
		case TOK_LBRACE:
			depth++
		case TOK_RBRACE:
			depth--
		}

		p.next()

		if depth == 0 {
			return
		}
	}
}
