package lexer

import (
	"vellum/internal/diag"
	"vellum/internal/token"
)

// scanString scans "..." and '...' literals. Escapes \\ \" \' \n \t \r \0
// and \u... are accepted; unknown escapes are reported but the literal is
// still completed. A raw newline or EOF inside the literal is an error.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.unit.Content[sp.Start:sp.End])}
		}
		if b == '\\' {
			escStart := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			esc := lx.cursor.Bump()
			if !isKnownEscape(esc) {
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "unknown escape sequence")
			}
			continue
		}
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.unit.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
	}
	// EOF before the closing quote
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.unit.Content[sp.Start:sp.End])}
}

func isKnownEscape(b byte) bool {
	switch b {
	case '\\', '"', '\'', 'n', 't', 'r', '0', 'u':
		return true
	default:
		return false
	}
}
