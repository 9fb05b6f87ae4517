package lexer

import (
	"vellum/internal/diag"
	"vellum/internal/token"
)

// Supported forms: 0, 123, 0b..., 0o..., 0x..., 1.5, .5, 1e-3, 1.0e+10.
// Numeric separators '_' are allowed between digits and kept in Token.Text;
// the renderer reproduces the lexeme verbatim, so no value parsing happens
// here. Malformed forms are reported and yield an Invalid token.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	// Leading dot means the ".digits" form.
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after '.'")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.unit.Content[sp.Start:sp.End])}
		}
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
		return lx.scanExponent(start)
	}

	// Leading 0 with a base prefix?
	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'b', 'B':
			lx.cursor.Bump()
			n := 0
			for {
				b := lx.cursor.Peek()
				if b == '0' || b == '1' || b == '_' {
					lx.cursor.Bump()
					n++
				} else {
					break
				}
			}
			return lx.emitBased(start, n, "expected binary digit after '0b'")
		case 'o', 'O':
			lx.cursor.Bump()
			n := 0
			for {
				b := lx.cursor.Peek()
				if (b >= '0' && b <= '7') || b == '_' {
					lx.cursor.Bump()
					n++
				} else {
					break
				}
			}
			return lx.emitBased(start, n, "expected octal digit after '0o'")
		case 'x', 'X':
			lx.cursor.Bump()
			n := 0
			for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
				n++
			}
			return lx.emitBased(start, n, "expected hex digit after '0x'")
		default:
			// plain "0", possibly followed by a fraction
		}
	}

	// decimal integer part
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	// fraction
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	return lx.scanExponent(start)
}

// scanExponent finishes a decimal literal with an optional exponent part.
func (lx *Lexer) scanExponent(start Mark) token.Token {
	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		lx.cursor.Bump()
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.unit.Content[sp.Start:sp.End])}
		}
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: string(lx.unit.Content[sp.Start:sp.End])}
}

// emitBased emits a 0b/0o/0x literal, requiring at least one digit.
func (lx *Lexer) emitBased(start Mark, digits int, errMsg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.unit.Content[sp.Start:sp.End])
	if digits == 0 {
		lx.errLex(diag.LexBadNumber, sp, errMsg)
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.NumberLit, Span: sp, Text: text}
}
