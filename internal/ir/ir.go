// Package ir holds the validated, renderable form of one module.
//
// An ir.Module is what lowering produces and what the renderer
// consumes: imports and constants in declaration order, names resolved
// to plain strings, type annotations checked and dropped. The tree is
// self-contained, with no arena, no interner, and no references back
// into the source unit, so a renderer can walk it from any goroutine.
package ir

// Module is one lowered unit.
type Module struct {
	Imports []Import
	Consts  []Const
}

// Import is one import declaration: bindings pulled from a module
// specifier. Specifier and names are decoded (no quotes).
type Import struct {
	From  string
	Pairs []ImportPair
}

// ImportPair is a single imported binding, with an optional alias.
type ImportPair struct {
	Name  string
	Alias string // "" when not aliased
}

// Local returns the name the binding is visible under.
func (p ImportPair) Local() string {
	if p.Alias != "" {
		return p.Alias
	}
	return p.Name
}

// Const is one constant declaration.
type Const struct {
	Name     string
	Exported bool
	Value    Value
}
