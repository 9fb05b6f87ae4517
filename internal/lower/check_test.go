package lower

import (
	"testing"

	"vellum/internal/diag"
)

func TestCheckDuplicateConst(t *testing.T) {
	_, bag := lowerSnippet(t, `
const a = 1;
const a = 2;
`)
	if !bagContainsCode(bag, diag.SemaDuplicateConst) {
		t.Fatalf("expected duplicate const diagnostic, got %s", diagnosticsSummary(bag))
	}
	for _, d := range bag.Items() {
		if d.Code == diag.SemaDuplicateConst {
			if len(d.Notes) == 0 || d.Notes[0].Msg != "previous declaration here" {
				t.Fatalf("expected a note pointing at the first declaration, got %+v", d.Notes)
			}
		}
	}
}

func TestCheckConstCollidesWithImport(t *testing.T) {
	_, bag := lowerSnippet(t, `
import { limit } from "./config";
const limit = 10;
`)
	if !bagContainsCode(bag, diag.SemaDuplicateConst) {
		t.Fatalf("expected collision diagnostic, got %s", diagnosticsSummary(bag))
	}
}

func TestCheckDuplicateConstKeepsFirstType(t *testing.T) {
	_, bag := lowerSnippet(t, `
const a = 1;
const a = "oops";
const b: number = a;
`)
	if !bagContainsCode(bag, diag.SemaDuplicateConst) {
		t.Fatalf("expected duplicate const diagnostic, got %s", diagnosticsSummary(bag))
	}
	if bagContainsCode(bag, diag.SemaTypeMismatch) {
		t.Fatalf("later references must see the first declaration's type, got %s", diagnosticsSummary(bag))
	}
}

func TestCheckDuplicateImport(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"across declarations", `
import { a } from "./m";
import { a } from "./n";
const keep = a;
`},
		{"alias shadows binding", `
import { a, b as a } from "./m";
const keep = a;
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, bag := lowerSnippet(t, tc.src)
			if !bagContainsCode(bag, diag.SemaDuplicateImport) {
				t.Fatalf("expected duplicate import diagnostic, got %s", diagnosticsSummary(bag))
			}
		})
	}
}

func TestCheckUnresolvedRef(t *testing.T) {
	_, bag := lowerSnippet(t, `const x = ghost;`)
	if !bagContainsCode(bag, diag.SemaUnresolvedRef) {
		t.Fatalf("expected unresolved reference, got %s", diagnosticsSummary(bag))
	}
}

func TestCheckUseBeforeDecl(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"forward reference", `
const a = b;
const b = 1;
`},
		{"self reference", `const a = a;`},
		{"nested in array", `
const a = [1, b];
const b = 2;
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, bag := lowerSnippet(t, tc.src)
			if !bagContainsCode(bag, diag.SemaUseBeforeDecl) {
				t.Fatalf("expected use-before-declaration, got %s", diagnosticsSummary(bag))
			}
		})
	}
}

func TestCheckDuplicateObjectKey(t *testing.T) {
	_, bag := lowerSnippet(t, `const o = { a: 1, a: 2 };`)
	if !bagContainsCode(bag, diag.SemaDuplicateObjectKey) {
		t.Fatalf("expected duplicate key diagnostic, got %s", diagnosticsSummary(bag))
	}
}

func TestCheckDuplicateObjectKeyQuotedForm(t *testing.T) {
	// A quoted key collides with the plain spelling of the same name.
	_, bag := lowerSnippet(t, `const o = { a: 1, "a": 2 };`)
	if !bagContainsCode(bag, diag.SemaDuplicateObjectKey) {
		t.Fatalf("expected duplicate key diagnostic, got %s", diagnosticsSummary(bag))
	}
}

func TestCheckObjectKeysScopedPerObject(t *testing.T) {
	_, bag := lowerSnippet(t, `const o = { a: { b: 1 }, c: { b: 2 } };`)
	if bag.HasErrors() {
		t.Fatalf("sibling objects may reuse keys, got %s", diagnosticsSummary(bag))
	}
}

func TestCheckUnusedImportWarns(t *testing.T) {
	_, bag := lowerSnippet(t, `
import { a } from "./m";
const x = 1;
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", diagnosticsSummary(bag))
	}
	if !bagContainsCode(bag, diag.SemaUnusedImport) {
		t.Fatalf("expected unused import warning, got %s", diagnosticsSummary(bag))
	}
}

func TestCheckAliasedUseCountsAsUse(t *testing.T) {
	_, bag := lowerSnippet(t, `
import { a as b } from "./m";
const x = b;
`)
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %s", diagnosticsSummary(bag))
	}
}

func TestCheckAnnotations(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want diag.Code // zero: expect a clean run
	}{
		{"number ok", `const a: number = 1;`, 0},
		{"string ok", `const a: string = "x";`, 0},
		{"boolean ok", `const a: boolean = true;`, 0},
		{"negated number ok", `const a: number = -3;`, 0},
		{"scalar mismatch", `const a: number = "x";`, diag.SemaTypeMismatch},
		{"null never matches", `const a: string = null;`, diag.SemaTypeMismatch},
		{"array ok", `const a: number[] = [1, 2];`, 0},
		{"empty array ok", `const a: number[] = [];`, 0},
		{"array element mismatch", `const a: number[] = [1, "x"];`, diag.SemaTypeMismatch},
		{"scalar against array annotation", `const a: number[] = 1;`, diag.SemaTypeMismatch},
		{"array against scalar annotation", `const a: number = [1];`, diag.SemaTypeMismatch},
		{"nested ok", `const a: number[][] = [[1], [2, 3]];`, 0},
		{"nested mismatch", `const a: number[][] = [[1], 2];`, diag.SemaTypeMismatch},
		{"object never matches", `const a: number = { x: 1 };`, diag.SemaTypeMismatch},
		{"unknown type", `const a: point = 1;`, diag.SemaUnknownType},
		{"ref matches", "const a = 1;\nconst b: number = a;", 0},
		{"ref mismatch", "const a = \"s\";\nconst b: number = a;", diag.SemaTypeMismatch},
		{"annotated ref carries annotation", "const a: string[] = [];\nconst b: string[] = a;", 0},
		{"import ref is opaque", "import { x } from \"./m\";\nconst b: number = x;", 0},
		{"mixed array is opaque", "const a = [1, \"x\"];\nconst b: number[] = a;", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, bag := lowerSnippet(t, tc.src)
			if tc.want == 0 {
				if bag.HasErrors() {
					t.Fatalf("expected a clean run, got %s", diagnosticsSummary(bag))
				}
				return
			}
			if !bagContainsCode(bag, tc.want) {
				t.Fatalf("expected %s, got %s", tc.want.ID(), diagnosticsSummary(bag))
			}
		})
	}
}

func TestCheckMismatchMessage(t *testing.T) {
	_, bag := lowerSnippet(t, `const a: number = "oops";`)
	for _, d := range bag.Items() {
		if d.Code == diag.SemaTypeMismatch {
			if d.Message != "type mismatch: expected number, got string" {
				t.Fatalf("unexpected message: %q", d.Message)
			}
			return
		}
	}
	t.Fatalf("expected a type mismatch, got %s", diagnosticsSummary(bag))
}

func TestCheckUnknownTypeNote(t *testing.T) {
	_, bag := lowerSnippet(t, `const a: vector = 1;`)
	for _, d := range bag.Items() {
		if d.Code == diag.SemaUnknownType {
			if len(d.Notes) == 0 || d.Notes[0].Msg != "known types are number, string and boolean" {
				t.Fatalf("expected the known-types note, got %+v", d.Notes)
			}
			return
		}
	}
	t.Fatalf("expected unknown type diagnostic, got %s", diagnosticsSummary(bag))
}
