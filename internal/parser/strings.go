package parser

import (
	"strconv"
	"strings"
)

// unquoteStringLexeme decodes a string literal lexeme as produced by the
// lexer: the surrounding quotes are stripped and escape sequences are
// resolved. Escapes the lexer flagged as unknown decode to the escaped
// character itself, so the parse can still finish; the diagnostic was
// already reported at lex time.
func unquoteStringLexeme(raw string) string {
	if len(raw) > 0 && (raw[0] == '"' || raw[0] == '\'') {
		quote := raw[0]
		if len(raw) >= 2 && raw[len(raw)-1] == quote {
			raw = raw[1 : len(raw)-1]
		} else {
			// Unterminated literal: the closing quote never arrived.
			raw = raw[1:]
		}
	}
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}

	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			sb.WriteByte(c)
			i++
			continue
		}
		esc := raw[i+1]
		i += 2
		switch esc {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case 'u':
			r, n := decodeUnicodeEscape(raw[i:])
			if n == 0 {
				sb.WriteByte('u')
			} else {
				sb.WriteRune(r)
				i += n
			}
		default:
			// Covers \\ \" \' and any unknown escape.
			sb.WriteByte(esc)
		}
	}
	return sb.String()
}

// decodeUnicodeEscape reads the XXXX digits of a \uXXXX escape and
// returns the rune plus the number of bytes consumed. A malformed
// escape returns (0, 0) and the caller keeps the text literally.
func decodeUnicodeEscape(s string) (rune, int) {
	if len(s) < 4 {
		return 0, 0
	}
	v, err := strconv.ParseUint(s[:4], 16, 32)
	if err != nil {
		return 0, 0
	}
	return rune(v), 4
}
