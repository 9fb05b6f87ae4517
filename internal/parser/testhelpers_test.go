package parser

import (
	"fmt"
	"strings"

	"vellum/internal/ast"
	"vellum/internal/diag"
	"vellum/internal/lexer"
	"vellum/internal/source"
)

// makeTestParser builds a parser over a single virtual unit. Lexer and
// parser share one bag so tests see diagnostics from both.
func makeTestParser(input string) (*Parser, *diag.Bag) {
	us := source.NewUnitSet()
	unitID := us.AddVirtual("test.vl", []byte(input))
	unit := us.Get(unitID)

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(unit, lexer.Options{Reporter: reporter})

	p := &Parser{
		lx:       lx,
		module:   ast.NewModule(unitID),
		interner: source.NewInterner(),
		opts: Options{
			MaxErrors: 100,
			Reporter:  reporter,
		},
		lastSpan: lx.EmptySpan(),
	}
	return p, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
