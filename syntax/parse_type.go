package syntax

import (
	"ark/report"
	"ark/types"
	"strconv"
)

// primTypes maps type keywords to their primitive types.
var primTypes = map[int]types.PrimitiveType{
	TOK_I8:   types.PrimI8,
	TOK_I16:  types.PrimI16,
	TOK_I32:  types.PrimI32,
	TOK_I64:  types.PrimI64,
	TOK_U8:   types.PrimU8,
	TOK_U16:  types.PrimU16,
	TOK_U32:  types.PrimU32,
	TOK_U64:  types.PrimU64,
	TOK_F32:  types.PrimF32,
	TOK_F64:  types.PrimF64,
	TOK_VOID: types.PrimVoid,
	TOK_CHAR: types.PrimChar,
	TOK_BOOL: types.PrimBool,
}

// type_label := prim_type {'[' 'INT_LIT' ']'} ;
// prim_type := 'i8' | 'i16' | 'i32' | 'i64' | 'u8' | 'u16' | 'u32' | 'u64'
//			 | 'f32' | 'f64' | 'void' | 'char' | 'str' | 'bool' ;
func (p *Parser) parseTypeLabel() (types.Type, *report.TextSpan) {
	if !isTypeLabel(p.tok.Kind) {
		p.reject("expected type label, found %s", p.describeTok())
	}

	startSpan := p.tok.Span

	var typ types.Type
	if p.has(TOK_STR) {
		typ = &types.StrType{Len: -1}
	} else {
		typ = primTypes[p.tok.Kind]
	}

	p.next()

	// dimensions are applied innermost first: `i32[2][3]` is an array of
	// three arrays of two i32s.
	for p.has(TOK_LBRACKET) {
		p.next()

		lenTok := p.want(TOK_INTLIT, "expected array length")
		length, err := strconv.Atoi(lenTok.Value)
		if err != nil || length <= 0 {
			p.errorOn(lenTok.Span, "array length must be a positive integer")
			length = 1
		}

		p.want(TOK_RBRACKET, "")
		typ = &types.ArrayType{Len: length, ElemType: typ}
	}

	return typ, report.NewSpanOver(startSpan, p.lookbehind.Span)
}
