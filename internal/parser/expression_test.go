package parser

// Coverage:
//   - Scalar literals: numbers (all bases, negated), strings (decoded),
//     booleans, null, references
//   - Arrays and objects, nested, empty, with trailing-comma warnings
//   - Object keys: identifiers, keywords, string literals
//   - Error cases for every bracket and separator

import (
	"testing"

	"vellum/internal/ast"
	"vellum/internal/diag"
)

// parseExprString parses a single expression.
func parseExprString(t *testing.T, input string) (ast.ExprID, *Parser, *diag.Bag) {
	t.Helper()

	p, bag := makeTestParser(input)
	id, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, p, bag
	}
	return id, p, bag
}

func TestParseExpr_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, p *Parser, e *ast.Expr)
	}{
		{
			name:  "integer",
			input: "42",
			check: func(t *testing.T, _ *Parser, e *ast.Expr) {
				if e.Kind != ast.ExprNumber || e.Raw != "42" {
					t.Errorf("got kind=%v raw=%q", e.Kind, e.Raw)
				}
			},
		},
		{
			name:  "negative integer",
			input: "-7",
			check: func(t *testing.T, _ *Parser, e *ast.Expr) {
				if e.Kind != ast.ExprNumber || e.Raw != "-7" {
					t.Errorf("got kind=%v raw=%q", e.Kind, e.Raw)
				}
			},
		},
		{
			name:  "negative with space",
			input: "- 7",
			check: func(t *testing.T, _ *Parser, e *ast.Expr) {
				if e.Raw != "-7" {
					t.Errorf("minus should fold into the lexeme, got %q", e.Raw)
				}
			},
		},
		{
			name:  "hex",
			input: "0xFF",
			check: func(t *testing.T, _ *Parser, e *ast.Expr) {
				if e.Kind != ast.ExprNumber || e.Raw != "0xFF" {
					t.Errorf("got kind=%v raw=%q", e.Kind, e.Raw)
				}
			},
		},
		{
			name:  "decimal with separators and exponent",
			input: "1_000.5e-3",
			check: func(t *testing.T, _ *Parser, e *ast.Expr) {
				if e.Raw != "1_000.5e-3" {
					t.Errorf("lexeme not preserved: %q", e.Raw)
				}
			},
		},
		{
			name:  "double quoted string",
			input: `"hi"`,
			check: func(t *testing.T, _ *Parser, e *ast.Expr) {
				if e.Kind != ast.ExprString || e.Str != "hi" {
					t.Errorf("got kind=%v str=%q", e.Kind, e.Str)
				}
			},
		},
		{
			name:  "single quoted string",
			input: `'hi'`,
			check: func(t *testing.T, _ *Parser, e *ast.Expr) {
				if e.Str != "hi" {
					t.Errorf("got %q", e.Str)
				}
			},
		},
		{
			name:  "string with escapes",
			input: `"a\nb\t\"c\""`,
			check: func(t *testing.T, _ *Parser, e *ast.Expr) {
				if e.Str != "a\nb\t\"c\"" {
					t.Errorf("escapes not decoded: %q", e.Str)
				}
			},
		},
		{
			name:  "unicode escape",
			input: `"A"`,
			check: func(t *testing.T, _ *Parser, e *ast.Expr) {
				if e.Str != "A" {
					t.Errorf("got %q, want %q", e.Str, "A")
				}
			},
		},
		{
			name:  "true",
			input: "true",
			check: func(t *testing.T, _ *Parser, e *ast.Expr) {
				if e.Kind != ast.ExprBool || !e.Bool {
					t.Errorf("got kind=%v bool=%v", e.Kind, e.Bool)
				}
			},
		},
		{
			name:  "false",
			input: "false",
			check: func(t *testing.T, _ *Parser, e *ast.Expr) {
				if e.Kind != ast.ExprBool || e.Bool {
					t.Errorf("got kind=%v bool=%v", e.Kind, e.Bool)
				}
			},
		},
		{
			name:  "null",
			input: "null",
			check: func(t *testing.T, _ *Parser, e *ast.Expr) {
				if e.Kind != ast.ExprNull {
					t.Errorf("got kind=%v", e.Kind)
				}
			},
		},
		{
			name:  "reference",
			input: "basePort",
			check: func(t *testing.T, p *Parser, e *ast.Expr) {
				if e.Kind != ast.ExprRef {
					t.Fatalf("got kind=%v", e.Kind)
				}
				if got := p.interner.MustLookup(e.Name); got != "basePort" {
					t.Errorf("ref name: got %q", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, p, bag := parseExprString(t, tt.input)

			if bag.HasErrors() {
				t.Fatalf("unexpected errors: %s", diagnosticsSummary(bag))
			}
			e := p.module.Exprs.Get(id)
			if e == nil {
				t.Fatal("expression is nil")
			}
			tt.check(t, p, e)
		})
	}
}

func TestParseExpr_Arrays(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		id, p, bag := parseExprString(t, "[]")
		if bag.HasErrors() {
			t.Fatalf("unexpected errors: %s", diagnosticsSummary(bag))
		}
		e := p.module.Exprs.Get(id)
		if e == nil || e.Kind != ast.ExprArray {
			t.Fatalf("expected array, got %+v", e)
		}
		if len(e.Elems) != 0 {
			t.Errorf("expected no elements, got %d", len(e.Elems))
		}
	})

	t.Run("flat", func(t *testing.T) {
		id, p, bag := parseExprString(t, "[1, 2, 3]")
		if bag.HasErrors() {
			t.Fatalf("unexpected errors: %s", diagnosticsSummary(bag))
		}
		e := p.module.Exprs.Get(id)
		if e == nil || len(e.Elems) != 3 {
			t.Fatalf("expected 3 elements, got %+v", e)
		}
		for i, want := range []string{"1", "2", "3"} {
			elem := p.module.Exprs.Get(e.Elems[i])
			if elem == nil || elem.Raw != want {
				t.Errorf("elem[%d]: got %+v, want raw %q", i, elem, want)
			}
		}
	})

	t.Run("nested", func(t *testing.T) {
		id, p, bag := parseExprString(t, `[[1], [], ["x"]]`)
		if bag.HasErrors() {
			t.Fatalf("unexpected errors: %s", diagnosticsSummary(bag))
		}
		e := p.module.Exprs.Get(id)
		if e == nil || len(e.Elems) != 3 {
			t.Fatalf("expected 3 elements, got %+v", e)
		}
		inner := p.module.Exprs.Get(e.Elems[1])
		if inner == nil || inner.Kind != ast.ExprArray || len(inner.Elems) != 0 {
			t.Errorf("elem[1]: expected empty array, got %+v", inner)
		}
	})

	t.Run("trailing comma warns", func(t *testing.T) {
		id, p, bag := parseExprString(t, "[1, 2,]")
		if bag.HasErrors() {
			t.Fatalf("unexpected errors: %s", diagnosticsSummary(bag))
		}
		if !hasCode(bag, diag.SynTrailingComma) {
			t.Errorf("expected trailing-comma warning, got: %s", diagnosticsSummary(bag))
		}
		e := p.module.Exprs.Get(id)
		if e == nil || len(e.Elems) != 2 {
			t.Fatalf("expected 2 elements, got %+v", e)
		}
	})
}

func TestParseExpr_Objects(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		id, p, bag := parseExprString(t, "{}")
		if bag.HasErrors() {
			t.Fatalf("unexpected errors: %s", diagnosticsSummary(bag))
		}
		e := p.module.Exprs.Get(id)
		if e == nil || e.Kind != ast.ExprObject {
			t.Fatalf("expected object, got %+v", e)
		}
		if len(e.Fields) != 0 {
			t.Errorf("expected no fields, got %d", len(e.Fields))
		}
	})

	t.Run("flat", func(t *testing.T) {
		id, p, bag := parseExprString(t, `{ name: "db", port: 5432 }`)
		if bag.HasErrors() {
			t.Fatalf("unexpected errors: %s", diagnosticsSummary(bag))
		}
		e := p.module.Exprs.Get(id)
		if e == nil || len(e.Fields) != 2 {
			t.Fatalf("expected 2 fields, got %+v", e)
		}
		if got := p.interner.MustLookup(e.Fields[0].Name); got != "name" {
			t.Errorf("field[0] key: got %q", got)
		}
		port := p.module.Exprs.Get(e.Fields[1].Value)
		if port == nil || port.Raw != "5432" {
			t.Errorf("field[1] value: got %+v", port)
		}
	})

	t.Run("string and keyword keys", func(t *testing.T) {
		id, p, bag := parseExprString(t, `{ "a-b": 1, from: 2, null: 3 }`)
		if bag.HasErrors() {
			t.Fatalf("unexpected errors: %s", diagnosticsSummary(bag))
		}
		e := p.module.Exprs.Get(id)
		if e == nil || len(e.Fields) != 3 {
			t.Fatalf("expected 3 fields, got %+v", e)
		}
		for i, want := range []string{"a-b", "from", "null"} {
			if got := p.interner.MustLookup(e.Fields[i].Name); got != want {
				t.Errorf("field[%d] key: got %q, want %q", i, got, want)
			}
		}
	})

	t.Run("nested", func(t *testing.T) {
		id, p, bag := parseExprString(t, `{ servers: [{ host: "a" }] }`)
		if bag.HasErrors() {
			t.Fatalf("unexpected errors: %s", diagnosticsSummary(bag))
		}
		outer := p.module.Exprs.Get(id)
		if outer == nil || len(outer.Fields) != 1 {
			t.Fatalf("expected 1 field, got %+v", outer)
		}
		arr := p.module.Exprs.Get(outer.Fields[0].Value)
		if arr == nil || arr.Kind != ast.ExprArray || len(arr.Elems) != 1 {
			t.Fatalf("expected 1-element array, got %+v", arr)
		}
		obj := p.module.Exprs.Get(arr.Elems[0])
		if obj == nil || obj.Kind != ast.ExprObject || len(obj.Fields) != 1 {
			t.Fatalf("expected 1-field object, got %+v", obj)
		}
		host := p.module.Exprs.Get(obj.Fields[0].Value)
		if host == nil || host.Str != "a" {
			t.Errorf("host: got %+v", host)
		}
	})

	t.Run("trailing comma warns", func(t *testing.T) {
		id, p, bag := parseExprString(t, `{ a: 1, }`)
		if bag.HasErrors() {
			t.Fatalf("unexpected errors: %s", diagnosticsSummary(bag))
		}
		if !hasCode(bag, diag.SynTrailingComma) {
			t.Errorf("expected trailing-comma warning, got: %s", diagnosticsSummary(bag))
		}
		e := p.module.Exprs.Get(id)
		if e == nil || len(e.Fields) != 1 {
			t.Fatalf("expected 1 field, got %+v", e)
		}
	})
}

func TestParseExpr_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode diag.Code
	}{
		{
			name:     "minus without number",
			input:    "-x",
			wantCode: diag.SynExpectExpression,
		},
		{
			name:     "unclosed array",
			input:    "[1, 2;",
			wantCode: diag.SynUnclosedBracket,
		},
		{
			name:     "double comma in array",
			input:    "[1,,2]",
			wantCode: diag.SynExpectExpression,
		},
		{
			name:     "missing colon in object",
			input:    "{ a 1 }",
			wantCode: diag.SynExpectColon,
		},
		{
			name:     "bad object key",
			input:    "{ [1]: 2 }",
			wantCode: diag.SynExpectIdentifier,
		},
		{
			name:     "unclosed object",
			input:    "{ a: 1",
			wantCode: diag.SynUnclosedBrace,
		},
		{
			name:     "missing field value",
			input:    "{ a: }",
			wantCode: diag.SynExpectExpression,
		},
		{
			name:     "no expression at all",
			input:    ";",
			wantCode: diag.SynExpectExpression,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, bag := parseExprString(t, tt.input)

			if !bag.HasErrors() {
				t.Fatal("expected errors, got none")
			}
			if !hasCode(bag, tt.wantCode) {
				t.Errorf("expected %s, got: %s", tt.wantCode.ID(), diagnosticsSummary(bag))
			}
		})
	}
}
