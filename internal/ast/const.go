package ast

import "vellum/internal/source"

// TypeRef is an optional type annotation on a constant.
// Base names are resolved by the lowering layer, not the parser.
type TypeRef struct {
	Name      source.StringID
	ArrayDims int // number of trailing '[]' suffixes
	Span      source.Span
}

// ConstDecl represents one '[export] const name[: type] = expr;' declaration.
type ConstDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Exported bool
	Type     *TypeRef // nil when the declaration has no annotation
	Value    ExprID
	Span     source.Span
}
