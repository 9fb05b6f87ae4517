// Package token defines lexical token kinds for vellum source units.
// Invariants:
//   - Token.Span always addresses the original source bytes (Start..End).
//   - Token.Text equals those bytes for every kind except identifiers:
//     an identifier containing non-ASCII runes carries its NFC form,
//     which can be shorter than the span it was read from.
//   - Whitespace and comments never appear in the token stream; the lexer
//     skips them and only reports malformed trivia (unterminated block
//     comments) as diagnostics.
//   - Built-in type names (number, string, boolean) are identifiers. They
//     are recognized by the lowering layer, not the lexer.
package token
