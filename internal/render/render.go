// Package render turns IR modules into canonical JavaScript text.
//
// The renderer is pure: output depends only on the module passed in,
// so any number of goroutines may share one Renderer. Numbers are
// reproduced from their source lexemes verbatim; strings are
// re-encoded as double-quoted literals.
package render

import (
	"errors"

	"vellum/internal/ir"
)

// Renderer produces the canonical JavaScript form of lowered modules.
type Renderer struct{}

func New() *Renderer { return &Renderer{} }

// Render emits one module. Imports come first, in declaration order,
// separated from the constants by a blank line when both sections are
// present. Every declaration ends its line; an empty module renders to
// no bytes at all.
func (r *Renderer) Render(mod *ir.Module) ([]byte, error) {
	if mod == nil {
		return nil, errors.New("render: nil module")
	}
	w := writer{buf: make([]byte, 0, 256)}
	w.printModule(mod)
	return w.buf, nil
}

type writer struct {
	buf []byte
}

func (w *writer) str(s string) {
	w.buf = append(w.buf, s...)
}

func (w *writer) printModule(mod *ir.Module) {
	for i := range mod.Imports {
		w.printImport(&mod.Imports[i])
		w.str("\n")
	}
	if len(mod.Imports) > 0 && len(mod.Consts) > 0 {
		w.str("\n")
	}
	for i := range mod.Consts {
		w.printConst(&mod.Consts[i])
		w.str("\n")
	}
}

func (w *writer) printImport(imp *ir.Import) {
	if len(imp.Pairs) == 0 {
		w.str("import {} from ")
	} else {
		w.str("import { ")
		for i, pair := range imp.Pairs {
			if i > 0 {
				w.str(", ")
			}
			w.str(pair.Name)
			if pair.Alias != "" {
				w.str(" as ")
				w.str(pair.Alias)
			}
		}
		w.str(" } from ")
	}
	w.str(encodeString(imp.From))
	w.str(";")
}

func (w *writer) printConst(c *ir.Const) {
	if c.Exported {
		w.str("export ")
	}
	w.str("const ")
	w.str(c.Name)
	w.str(" = ")
	w.printValue(&c.Value)
	w.str(";")
}
