package syntax

import "ark/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.
	Value string

	// The text span over which the token exists.  This may not directly
	// correspond to its value: eg. the value of a string token has the leading
	// quotes trimmed off for convenience.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_FUNC = iota
	TOK_IMPORT
	TOK_AS
	TOK_CONST
	TOK_LET
	TOK_FOR
	TOK_IN
	TOK_WHILE
	TOK_IF
	TOK_ELSE
	TOK_RETURN

	TOK_I8
	TOK_I16
	TOK_I32
	TOK_I64
	TOK_U8
	TOK_U16
	TOK_U32
	TOK_U64
	TOK_F32
	TOK_F64
	TOK_VOID
	TOK_CHAR
	TOK_STR
	TOK_BOOL

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD

	TOK_EQ
	TOK_LT
	TOK_GT
	TOK_LTEQ
	TOK_GTEQ

	TOK_NOT
	TOK_LAND
	TOK_LOR

	TOK_ASSIGN

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_COMMA
	TOK_DOT
	TOK_RANGETO
	TOK_SEMI
	TOK_COLON

	TOK_IDENT
	TOK_INTLIT
	TOK_FLOATLIT
	TOK_BOOLLIT
	TOK_CHARLIT
	TOK_STRINGLIT

	TOK_EOF
)

// tokenNames is used to name expected tokens in diagnostics.
var tokenNames = map[int]string{
	TOK_FUNC:   "func",
	TOK_IMPORT: "import",
	TOK_AS:     "as",
	TOK_CONST:  "const",
	TOK_LET:    "let",
	TOK_FOR:    "for",
	TOK_IN:     "in",
	TOK_WHILE:  "while",
	TOK_IF:     "if",
	TOK_ELSE:   "else",
	TOK_RETURN: "return",

	TOK_PLUS:  "+",
	TOK_MINUS: "-",
	TOK_STAR:  "*",
	TOK_DIV:   "/",
	TOK_MOD:   "%",
	TOK_EQ:    "==",
	TOK_LT:    "<",
	TOK_GT:    ">",
	TOK_LTEQ:  "<=",
	TOK_GTEQ:  ">=",
	TOK_NOT:   "!",
	TOK_LAND:  "&&",
	TOK_LOR:   "||",

	TOK_ASSIGN:   "=",
	TOK_LPAREN:   "(",
	TOK_RPAREN:   ")",
	TOK_LBRACE:   "{",
	TOK_RBRACE:   "}",
	TOK_LBRACKET: "[",
	TOK_RBRACKET: "]",
	TOK_COMMA:    ",",
	TOK_DOT:      ".",
	TOK_RANGETO:  "..",
	TOK_SEMI:     ";",
	TOK_COLON:    ":",

	TOK_IDENT:     "identifier",
	TOK_INTLIT:    "integer literal",
	TOK_FLOATLIT:  "float literal",
	TOK_BOOLLIT:   "bool literal",
	TOK_CHARLIT:   "char literal",
	TOK_STRINGLIT: "string literal",
	TOK_EOF:       "end of file",
}

// isTypeLabel returns whether kind is a data type keyword.
func isTypeLabel(kind int) bool {
	return TOK_I8 <= kind && kind <= TOK_BOOL
}
