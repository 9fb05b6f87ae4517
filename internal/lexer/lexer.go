package lexer

import (
	"unicode/utf8"

	"vellum/internal/diag"
	"vellum/internal/source"
	"vellum/internal/token"
)

type Lexer struct {
	unit   *source.Unit
	cursor Cursor
	opts   Options
	look   *token.Token // one-element lookahead buffer
}

func New(unit *source.Unit, opts Options) *Lexer {
	return &Lexer{
		unit:   unit,
		cursor: NewCursor(unit),
		opts:   opts,
		look:   nil,
	}
}

// Next returns the next significant token. Whitespace and comments are
// skipped; malformed trivia is reported through Options.Reporter.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
			Text: "",
		}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch) || ch >= utf8.RuneSelf:
		return lx.scanIdentOrKeyword()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()

	case ch == '"' || ch == '\'':
		return lx.scanString()

	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// skipTrivia consumes whitespace and comments before a significant token.
// Block comments nest; an unterminated one is reported and cut at EOF.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			lx.cursor.Bump()
			continue
		}

		if b == '/' {
			if lx.skipComment() {
				continue
			}
		}

		break
	}
}

func (lx *Lexer) skipComment() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	switch lx.cursor.Peek() {
	case '/': // line comment up to \n
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return true

	case '*': // block comment, with nesting
		lx.cursor.Bump()
		depth := 1
		for !lx.cursor.EOF() && depth > 0 {
			if b0, b1, ok := lx.cursor.Peek2(); ok {
				if b0 == '/' && b1 == '*' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth++
					continue
				}
				if b0 == '*' && b1 == '/' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth--
					continue
				}
			}
			lx.cursor.Bump()
		}
		if depth > 0 {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		return true

	default:
		// not a comment; rewind so '/' scans as an operator
		lx.cursor.Reset(start)
		return false
	}
}

// Unit returns the source unit this lexer reads from.
func (lx *Lexer) Unit() *source.Unit { return lx.unit }

// EmptySpan is a zero-width span at the current cursor offset.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{Unit: lx.unit.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
