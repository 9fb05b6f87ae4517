package ast

import "vellum/internal/source"

// ImportDecl represents one 'import { a, b as c } from "spec";' declaration.
type ImportDecl struct {
	Span     source.Span
	From     string // module specifier, decoded (quotes stripped)
	FromSpan source.Span
	Pairs    []ImportPair
}

// ImportPair is one binding of the import list, with an optional alias.
type ImportPair struct {
	Name      source.StringID
	NameSpan  source.Span
	Alias     source.StringID // NoStringID when the binding is not aliased
	AliasSpan source.Span
}

// Local returns the name the binding is visible under inside the module.
func (p ImportPair) Local() source.StringID {
	if p.Alias != source.NoStringID {
		return p.Alias
	}
	return p.Name
}

// LocalSpan returns the span of the visible name.
func (p ImportPair) LocalSpan() source.Span {
	if p.Alias != source.NoStringID {
		return p.AliasSpan
	}
	return p.NameSpan
}
