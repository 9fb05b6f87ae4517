package ast

import "vellum/internal/source"

// ExprKind tags the payload carried by an Expr.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	// ExprNumber is a numeric literal; Raw keeps the source lexeme.
	ExprNumber
	// ExprString is a string literal; Str keeps the decoded value.
	ExprString
	// ExprBool is 'true' or 'false'.
	ExprBool
	// ExprNull is the 'null' literal.
	ExprNull
	// ExprRef is a bare identifier referring to an import binding or an
	// earlier constant.
	ExprRef
	// ExprArray is '[e, e, ...]'.
	ExprArray
	// ExprObject is '{ key: e, ... }'.
	ExprObject
)

// Expr is a single expression node. The fields used depend on Kind.
type Expr struct {
	Kind ExprKind
	Span source.Span

	Raw    string          // ExprNumber: source lexeme, with a leading '-' when negated
	Str    string          // ExprString: decoded value, without quotes
	Bool   bool            // ExprBool
	Name   source.StringID // ExprRef
	Elems  []ExprID        // ExprArray
	Fields []ObjectField   // ExprObject
}

// ObjectField is one 'key: value' entry of an object literal.
type ObjectField struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
}

// Exprs owns every expression of one module.
type Exprs struct {
	Arena *Arena[Expr]
}

func NewExprs(capHint uint) *Exprs {
	return &Exprs{
		Arena: NewArena[Expr](capHint),
	}
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewNumber(sp source.Span, raw string) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprNumber, Span: sp, Raw: raw}))
}

func (e *Exprs) NewString(sp source.Span, value string) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprString, Span: sp, Str: value}))
}

func (e *Exprs) NewBool(sp source.Span, value bool) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprBool, Span: sp, Bool: value}))
}

func (e *Exprs) NewNull(sp source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprNull, Span: sp}))
}

func (e *Exprs) NewRef(sp source.Span, name source.StringID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprRef, Span: sp, Name: name}))
}

func (e *Exprs) NewArray(sp source.Span, elems []ExprID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprArray, Span: sp, Elems: elems}))
}

func (e *Exprs) NewObject(sp source.Span, fields []ObjectField) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprObject, Span: sp, Fields: fields}))
}
