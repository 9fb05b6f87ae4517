package lexer_test

import (
	"testing"

	"vellum/internal/diag"
	"vellum/internal/lexer"
	"vellum/internal/source"
	"vellum/internal/token"
)

// testReporter collects every diagnostic emitted by the lexer.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

func (r *testReporter) CodesSeen() []diag.Code {
	codes := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		codes = append(codes, d.Code)
	}
	return codes
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	us := source.NewUnitSet()
	id := us.AddVirtual("test.vl", []byte(input))
	unit := us.Get(id)

	reporter := &testReporter{diagnostics: make([]diag.Diagnostic, 0)}
	opts := lexer.Options{Reporter: reporter}
	lx := lexer.New(unit, opts)

	return lx, reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)

	if len(tokens) != len(expected) {
		t.Fatalf("token count mismatch for %q: got %d, want %d\ntokens: %+v",
			input, len(tokens), len(expected), tokens)
	}
	for i, want := range expected {
		if tokens[i].Kind != want {
			t.Fatalf("token %d of %q: got %v, want %v", i, input, tokens[i].Kind, want)
		}
	}
	if reporter.HasErrors() {
		t.Fatalf("unexpected lex errors for %q: %+v", input, reporter.diagnostics)
	}
}

func TestExportConstDeclaration(t *testing.T) {
	expectTokens(t, "export const x = 1;", []token.Kind{
		token.KwExport, token.KwConst, token.Ident, token.Assign, token.NumberLit,
		token.Semicolon, token.EOF,
	})
}

func TestImportStatement(t *testing.T) {
	expectTokens(t, `import { retries, label } from "./base";`, []token.Kind{
		token.KwImport, token.LBrace, token.Ident, token.Comma, token.Ident,
		token.RBrace, token.KwFrom, token.StringLit, token.Semicolon, token.EOF,
	})
}

func TestAnnotatedConst(t *testing.T) {
	expectTokens(t, "const limit: number = 50;", []token.Kind{
		token.KwConst, token.Ident, token.Colon, token.Ident, token.Assign,
		token.NumberLit, token.Semicolon, token.EOF,
	})
}

func TestLiterals(t *testing.T) {
	expectTokens(t, `const v = [1, 2.5, .5, 1e-3, 0xFF, 0b1010, 0o17, 1_000];`, []token.Kind{
		token.KwConst, token.Ident, token.Assign, token.LBracket,
		token.NumberLit, token.Comma, token.NumberLit, token.Comma,
		token.NumberLit, token.Comma, token.NumberLit, token.Comma,
		token.NumberLit, token.Comma, token.NumberLit, token.Comma,
		token.NumberLit, token.Comma, token.NumberLit,
		token.RBracket, token.Semicolon, token.EOF,
	})
}

func TestBoolAndNullKeywords(t *testing.T) {
	expectTokens(t, "const flags = { on: true, off: false, gap: null };", []token.Kind{
		token.KwConst, token.Ident, token.Assign, token.LBrace,
		token.Ident, token.Colon, token.KwTrue, token.Comma,
		token.Ident, token.Colon, token.KwFalse, token.Comma,
		token.Ident, token.Colon, token.KwNull,
		token.RBrace, token.Semicolon, token.EOF,
	})
}

func TestNegativeNumberLexesAsMinusThenNumber(t *testing.T) {
	expectTokens(t, "const low = -12;", []token.Kind{
		token.KwConst, token.Ident, token.Assign, token.Minus, token.NumberLit,
		token.Semicolon, token.EOF,
	})
}

func TestCommentsAreSkipped(t *testing.T) {
	input := "// heading\nconst a = 1; /* mid /* nested */ comment */ const b = 2;"
	expectTokens(t, input, []token.Kind{
		token.KwConst, token.Ident, token.Assign, token.NumberLit, token.Semicolon,
		token.KwConst, token.Ident, token.Assign, token.NumberLit, token.Semicolon,
		token.EOF,
	})
}

func TestSingleQuotedString(t *testing.T) {
	expectTokens(t, `const s = 'hi';`, []token.Kind{
		token.KwConst, token.Ident, token.Assign, token.StringLit,
		token.Semicolon, token.EOF,
	})
}

func TestDollarAndUnderscoreIdents(t *testing.T) {
	expectTokens(t, "const $a = _b;", []token.Kind{
		token.KwConst, token.Ident, token.Assign, token.Ident,
		token.Semicolon, token.EOF,
	})
}

func TestUnterminatedStringReported(t *testing.T) {
	lx, reporter := makeTestLexer(`const s = "oops`)
	collectAllTokens(lx)

	if !reporter.HasErrors() {
		t.Fatal("expected an error for unterminated string")
	}
	found := false
	for _, code := range reporter.CodesSeen() {
		if code == diag.LexUnterminatedString {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LexUnterminatedString, got %v", reporter.CodesSeen())
	}
}

func TestNewlineInStringReported(t *testing.T) {
	lx, reporter := makeTestLexer("const s = \"a\nb\";")
	collectAllTokens(lx)

	if !reporter.HasErrors() {
		t.Fatal("expected an error for newline inside string")
	}
}

func TestUnterminatedBlockCommentReported(t *testing.T) {
	lx, reporter := makeTestLexer("const a = 1; /* open")
	collectAllTokens(lx)

	found := false
	for _, code := range reporter.CodesSeen() {
		if code == diag.LexUnterminatedBlockComment {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LexUnterminatedBlockComment, got %v", reporter.CodesSeen())
	}
}

func TestUnknownCharacterReported(t *testing.T) {
	lx, reporter := makeTestLexer("const a = 1 # 2;")
	tokens := collectAllTokens(lx)

	hasInvalid := false
	for _, tok := range tokens {
		if tok.Kind == token.Invalid {
			hasInvalid = true
		}
	}
	if !hasInvalid {
		t.Fatal("expected an Invalid token for '#'")
	}
	found := false
	for _, code := range reporter.CodesSeen() {
		if code == diag.LexUnknownChar {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LexUnknownChar, got %v", reporter.CodesSeen())
	}
}

func TestBadNumberReported(t *testing.T) {
	lx, reporter := makeTestLexer("const n = 1e;")
	collectAllTokens(lx)

	found := false
	for _, code := range reporter.CodesSeen() {
		if code == diag.LexBadNumber {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LexBadNumber, got %v", reporter.CodesSeen())
	}
}

func TestBadEscapeReportedButStringCompletes(t *testing.T) {
	lx, reporter := makeTestLexer(`const s = "a\qb";`)
	tokens := collectAllTokens(lx)

	hasString := false
	for _, tok := range tokens {
		if tok.Kind == token.StringLit {
			hasString = true
		}
	}
	if !hasString {
		t.Fatal("string literal should still be produced after a bad escape")
	}
	found := false
	for _, code := range reporter.CodesSeen() {
		if code == diag.LexBadEscape {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LexBadEscape, got %v", reporter.CodesSeen())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("const a = 1;")

	peeked := lx.Peek()
	next := lx.Next()
	if peeked.Kind != next.Kind || peeked.Text != next.Text {
		t.Fatalf("Peek/Next mismatch: %+v vs %+v", peeked, next)
	}
	if next.Kind != token.KwConst {
		t.Fatalf("expected KwConst first, got %v", next.Kind)
	}
}

func TestTokenTextAndSpansMatchSource(t *testing.T) {
	input := "const answer = 42;"
	lx, _ := makeTestLexer(input)

	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		if got := input[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Fatalf("span %v does not match text %q (source slice %q)", tok.Span, tok.Text, got)
		}
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("")
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("call %d: expected EOF, got %v", i, tok.Kind)
		}
	}
}

func TestMixedScriptIdentifierLexesAsOneToken(t *testing.T) {
	lx, reporter := makeTestLexer("const naïve = 1;")
	tokens := collectAllTokens(lx)

	if reporter.HasErrors() {
		t.Fatalf("unexpected lex errors: %+v", reporter.diagnostics)
	}
	if tokens[1].Kind != token.Ident {
		t.Fatalf("token 1: got %v, want Ident", tokens[1].Kind)
	}
	if tokens[1].Text != "naïve" {
		t.Fatalf("ident text = %q, want %q", tokens[1].Text, "naïve")
	}
	if tokens[2].Kind != token.Assign {
		t.Fatalf("token 2: got %v, want Assign", tokens[2].Kind)
	}
}

func TestIdentifierTextIsNFC(t *testing.T) {
	composed := "café"    // é as a single codepoint
	decomposed := "café" // e followed by combining acute

	for _, name := range []string{composed, decomposed} {
		src := "export const " + name + ": number = 1;"
		lx, reporter := makeTestLexer(src)
		tokens := collectAllTokens(lx)

		if reporter.HasErrors() {
			t.Fatalf("unexpected lex errors for %q: %+v", name, reporter.diagnostics)
		}
		ident := tokens[2]
		if ident.Kind != token.Ident {
			t.Fatalf("token 2 for %q: got %v, want Ident", name, ident.Kind)
		}
		if ident.Text != composed {
			t.Fatalf("ident text for %q = %q, want NFC form %q", name, ident.Text, composed)
		}
		// The span still addresses the original bytes even when Text
		// carries the composed form.
		if got := src[ident.Span.Start:ident.Span.End]; got != name {
			t.Fatalf("span slice for %q = %q, want source spelling", name, got)
		}
	}
}
