package lexer

import (
	"vellum/internal/diag"
	"vellum/internal/token"
)

// scanOperatorOrPunct scans single-byte punctuation. Anything that is not
// part of the language is reported as LexUnknownChar and becomes an Invalid
// token so the parser can resynchronise.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	var kind token.Kind
	switch b {
	case '=':
		kind = token.Assign
	case '-':
		kind = token.Minus
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	default:
		sp := lx.cursor.SpanFrom(start)
		text := string(lx.unit.Content[sp.Start:sp.End])
		lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteByte(b))
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.unit.Content[sp.Start:sp.End])}
}

func quoteByte(b byte) string {
	if b >= 0x20 && b < 0x7F {
		return "'" + string(rune(b)) + "'"
	}
	const hex = "0123456789abcdef"
	return "0x" + string(hex[b>>4]) + string(hex[b&0x0F])
}
