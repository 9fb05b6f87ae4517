package ast

import "vellum/internal/source"

// Module is the parse result of a single source unit: an ordered list of
// import declarations followed by constant declarations. Declaration order
// is preserved; lowering relies on it for use-before-declaration checks.
type Module struct {
	Unit    source.UnitID
	Span    source.Span
	Imports []ImportDecl
	Consts  []ConstDecl
	Exprs   *Exprs
}

func NewModule(unit source.UnitID) *Module {
	return &Module{
		Unit:    unit,
		Imports: make([]ImportDecl, 0),
		Consts:  make([]ConstDecl, 0),
		Exprs:   NewExprs(16),
	}
}
