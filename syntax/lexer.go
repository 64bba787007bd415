package syntax

import (
	"ark/report"
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer is responsible for tokenizing a source file.  Lexical errors are
// returned as *report.LocalCompileError; when one is returned, the offending
// text has already been consumed so that lexing may continue.
type Lexer struct {
	file    *bufio.Reader
	tokBuff *strings.Builder

	line, col, offset                int
	startLine, startCol, startOffset int
}

// NewLexer creates a new lexer for the given source file.
func NewLexer(file *bufio.Reader) *Lexer {
	return &Lexer{
		file:    file,
		tokBuff: &strings.Builder{},
		line:    1,
		col:     1,
	}
}

// NextToken retrieves the next token from the input file. If the file has
// ended, this will be an EOF token.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '/':
			if tok, err := l.lexCommentOrDiv(); tok != nil || err != nil {
				return tok, err
			}
		case '\'':
			return l.lexCharLit()
		case '"':
			return l.lexStringLit()
		default:
			if isDecimalDigit(c) {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	l.mark()
	return l.makeToken(TOK_EOF), nil
}

// -----------------------------------------------------------------------------

// symbolPatterns maps symbol strings (patterns) to their punctuation/operator
// token kind.
var symbolPatterns = map[string]int{
	"+": TOK_PLUS,
	"-": TOK_MINUS,
	"*": TOK_STAR,
	// Division operator is handled with comment logic.
	"%": TOK_MOD,

	"==": TOK_EQ,
	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,

	"&&": TOK_LAND,
	"||": TOK_LOR,
	"!":  TOK_NOT,

	"=": TOK_ASSIGN,

	"(":  TOK_LPAREN,
	")":  TOK_RPAREN,
	"{":  TOK_LBRACE,
	"}":  TOK_RBRACE,
	"[":  TOK_LBRACKET,
	"]":  TOK_RBRACKET,
	",":  TOK_COMMA,
	".":  TOK_DOT,
	"..": TOK_RANGETO,
	";":  TOK_SEMI,
	":":  TOK_COLON,
}

// symbolPrefixes are the symbols which are not tokens on their own but begin
// a longer symbol.
var symbolPrefixes = map[string]struct{}{
	"&": {},
	"|": {},
}

// lexPunctOrOper lexes a punctuation or operator symbol.
func (l *Lexer) lexPunctOrOper() (*Token, error) {
	l.mark()
	if _, err := l.eat(); err != nil {
		return nil, err
	}

	kind, ok := symbolPatterns[l.tokBuff.String()]
	_, isPrefix := symbolPrefixes[l.tokBuff.String()]
	if !ok && !isPrefix {
		l.tokBuff.Reset()
		return nil, report.Raise(l.getSpan(), "unidentified token")
	}

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if c == -1 {
			break
		}

		if _kind, ok := symbolPatterns[l.tokBuff.String()+string(c)]; ok {
			l.eat()
			kind = _kind
			isPrefix = false
		} else {
			break
		}
	}

	if isPrefix {
		l.tokBuff.Reset()
		return nil, report.Raise(l.getSpan(), "unidentified token")
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// keywordPatterns maps keyword strings (patterns) to their keyword token kind.
var keywordPatterns = map[string]int{
	"func":   TOK_FUNC,
	"import": TOK_IMPORT,
	"as":     TOK_AS,

	"let":   TOK_LET,
	"const": TOK_CONST,

	"if":     TOK_IF,
	"else":   TOK_ELSE,
	"while":  TOK_WHILE,
	"for":    TOK_FOR,
	"in":     TOK_IN,
	"return": TOK_RETURN,

	"true":  TOK_BOOLLIT,
	"false": TOK_BOOLLIT,

	"i8":   TOK_I8,
	"i16":  TOK_I16,
	"i32":  TOK_I32,
	"i64":  TOK_I64,
	"u8":   TOK_U8,
	"u16":  TOK_U16,
	"u32":  TOK_U32,
	"u64":  TOK_U64,
	"f32":  TOK_F32,
	"f64":  TOK_F64,
	"void": TOK_VOID,
	"char": TOK_CHAR,
	"str":  TOK_STR,
	"bool": TOK_BOOL,
}

// lexIdentOrKeyword lexes an identifier or a keyword.
func (l *Lexer) lexIdentOrKeyword() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if !isFirstIdentChar(c) && !isDecimalDigit(c) {
			break
		}

		l.eat()
	}

	var kind int
	if _kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		kind = _kind
	} else {
		kind = TOK_IDENT
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// lexNumericLit lexes an integer or float literal.  A `.` only continues the
// literal if it is not the start of a `..` range operator.
func (l *Lexer) lexNumericLit() (*Token, error) {
	l.mark()
	l.eat()

	isFloat := false
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if isDecimalDigit(c) {
			l.eat()
		} else if c == '.' && !isFloat {
			next, err := l.peekSecond()
			if err != nil {
				return nil, err
			}

			if next == '.' {
				break
			}

			l.eat()
			isFloat = true
		} else {
			break
		}
	}

	if isFloat {
		return l.makeToken(TOK_FLOATLIT), nil
	}

	return l.makeToken(TOK_INTLIT), nil
}

// -----------------------------------------------------------------------------

// lexStringLit lexes a string literal.
func (l *Lexer) lexStringLit() (*Token, error) {
	l.mark()
	l.skip()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		switch c {
		case -1, '\n':
			l.tokBuff.Reset()
			return nil, report.Raise(l.getSpan(), "unclosed double quote")
		case '"':
			l.skip()
			return l.makeToken(TOK_STRINGLIT), nil
		case '\\':
			l.eat()
			if c, err = l.peek(); err != nil {
				return nil, err
			} else if c != -1 && c != '\n' {
				l.eat()
			}
		default:
			l.eat()
		}
	}
}

// lexCharLit lexes a char literal.
func (l *Lexer) lexCharLit() (*Token, error) {
	l.mark()
	l.skip()

	chars := 0
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		switch c {
		case -1, '\n':
			l.tokBuff.Reset()
			return nil, report.Raise(l.getSpan(), "unclosed single quote")
		case '\'':
			l.skip()

			if chars != 1 {
				l.tokBuff.Reset()

				if chars == 0 {
					return nil, report.Raise(l.getSpan(), "empty char literal")
				}

				return nil, report.Raise(l.getSpan(), "char literal contains multiple characters, consider using str instead")
			}

			return l.makeToken(TOK_CHARLIT), nil
		case '\\':
			l.eat()
			if c, err = l.peek(); err != nil {
				return nil, err
			} else if c != -1 && c != '\n' {
				l.eat()
			}

			chars++
		default:
			l.eat()
			chars++
		}
	}
}

// -----------------------------------------------------------------------------

// lexCommentOrDiv lexes a comment or a division token.
func (l *Lexer) lexCommentOrDiv() (*Token, error) {
	l.mark()
	l.skip()

	c, err := l.peek()
	if err != nil {
		return nil, err
	}

	switch c {
	case '/':
		for ; err == nil && c != '\n' && c != -1; c, err = l.skip() {
		}
	case '*':
		l.skip()
		for {
			c, err = l.skip()
			if err != nil || c == -1 {
				break
			}

			if c == '*' {
				if c, err = l.peek(); err != nil || c == '/' {
					l.skip()
					break
				}
			}
		}
	default:
		tok := l.makeToken(TOK_DIV)
		tok.Value = "/"
		return tok, nil
	}

	return nil, err
}

// -----------------------------------------------------------------------------

// mark sets the lexer's stored start position to its current position.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
	l.startOffset = l.offset
}

// makeToken produces a new token of the given kind from the lexer's state and
// resets the lexer to begin building the next token.
func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return &Token{
		Kind:  kind,
		Value: value,
		Span:  l.getSpan(),
	}
}

// getSpan calculates a text span based on the lexer's current state.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		Pos: report.Position{
			Line:   l.startLine,
			Col:    l.startCol,
			Offset: l.startOffset,
		},
		Length: l.offset - l.startOffset,
	}
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one rune and writes the rune to the token buffer.
// If the lexer encounters an EOF, -1 is returned as the rune value.
func (l *Lexer) eat() (rune, error) {
	c, err := l.skip()
	if err == nil && c != -1 {
		l.tokBuff.WriteRune(c)
	}

	return c, err
}

// skip moves the lexer forward one rune but does not write the rune to the
// token buffer.  If the lexer encounters an EOF, -1 is returned as the rune
// value.
func (l *Lexer) skip() (rune, error) {
	c, size, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.offset += size
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return c, nil
}

// peek returns the next rune in the file without moving the lexer forward or
// writing the rune to the token buffer.  If the lexer encounters an EOF, -1 is
// returned as rune value.
func (l *Lexer) peek() (rune, error) {
	buff, err := l.file.Peek(utf8.UTFMax)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return 0, err
	}

	if len(buff) == 0 {
		return -1, nil
	}

	c, _ := utf8.DecodeRune(buff)
	return c, nil
}

// peekSecond returns the rune after the next rune without moving the lexer
// forward.  If there is no such rune, -1 is returned.
func (l *Lexer) peekSecond() (rune, error) {
	buff, err := l.file.Peek(2 * utf8.UTFMax)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return 0, err
	}

	if len(buff) == 0 {
		return -1, nil
	}

	_, size := utf8.DecodeRune(buff)
	if len(buff) <= size {
		return -1, nil
	}

	c, _ := utf8.DecodeRune(buff[size:])
	return c, nil
}

// -----------------------------------------------------------------------------

// isDecimalDigit returns whether c is a decimal digit.
func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isFirstIdentChar returns whether c could be the first rune of an identifier.
func isFirstIdentChar(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}
