package lower

import (
	"strings"

	"vellum/internal/ast"
	"vellum/internal/diag"
	"vellum/internal/source"
)

const (
	typeNumber  = "number"
	typeString  = "string"
	typeBoolean = "boolean"
)

func isBuiltinType(name string) bool {
	switch name {
	case typeNumber, typeString, typeBoolean:
		return true
	}
	return false
}

// inferredType is the shape a constant's value settled on: a builtin base
// name plus array depth. known is false when no useful shape exists (null,
// objects, mixed or empty arrays, imported values); unknown never triggers
// a mismatch on its own.
type inferredType struct {
	name  string
	dims  int
	known bool
}

func (t inferredType) String() string {
	if !t.known {
		return "unknown"
	}
	return t.name + strings.Repeat("[]", t.dims)
}

// checkAnnotation validates an annotated declaration against its value and
// returns the type later references are checked with. Unannotated
// declarations get their type inferred from the value; a valid annotation
// is authoritative even when the value mismatched.
func (c *checker) checkAnnotation(decl *ast.ConstDecl) inferredType {
	if decl.Type == nil {
		return c.inferExpr(decl.Value)
	}
	base := c.lookup(decl.Type.Name)
	if !isBuiltinType(base) {
		diag.ReportError(c.reporter, diag.SemaUnknownType, decl.Type.Span,
			"unknown type '"+base+"'").
			WithNote(decl.Type.Span, "known types are number, string and boolean").
			Emit()
		return inferredType{}
	}
	c.checkValueMatches(decl.Value, base, decl.Type.ArrayDims)
	return inferredType{name: base, dims: decl.Type.ArrayDims, known: true}
}

func (c *checker) inferExpr(id ast.ExprID) inferredType {
	e := c.module.Exprs.Get(id)
	if e == nil {
		return inferredType{}
	}
	switch e.Kind {
	case ast.ExprNumber:
		return inferredType{name: typeNumber, known: true}
	case ast.ExprString:
		return inferredType{name: typeString, known: true}
	case ast.ExprBool:
		return inferredType{name: typeBoolean, known: true}
	case ast.ExprRef:
		return c.refType(e)
	case ast.ExprArray:
		var elem inferredType
		for i, el := range e.Elems {
			t := c.inferExpr(el)
			if !t.known {
				return inferredType{}
			}
			if i == 0 {
				elem = t
				continue
			}
			if t != elem {
				return inferredType{}
			}
		}
		if !elem.known {
			// An empty array carries no element evidence.
			return inferredType{}
		}
		return inferredType{name: elem.name, dims: elem.dims + 1, known: true}
	default:
		return inferredType{}
	}
}

// refType resolves the recorded type of a reference. Imports are opaque,
// and forward or unresolved names have no record yet; both come back
// unknown.
func (c *checker) refType(e *ast.Expr) inferredType {
	if _, ok := c.imports[e.Name]; ok {
		return inferredType{}
	}
	if t, ok := c.inferred[e.Name]; ok {
		return t
	}
	return inferredType{}
}

// checkValueMatches verifies one value against an annotation's base type
// and array depth. Array values recurse per element so mismatches point
// at the offending element, not the whole literal.
func (c *checker) checkValueMatches(id ast.ExprID, want string, dims int) {
	e := c.module.Exprs.Get(id)
	if e == nil {
		return
	}
	if dims > 0 {
		switch e.Kind {
		case ast.ExprArray:
			for _, elem := range e.Elems {
				c.checkValueMatches(elem, want, dims-1)
			}
		case ast.ExprRef:
			c.checkRefMatches(e, want, dims)
		default:
			c.reportMismatch(e.Span, want, dims, c.describe(id))
		}
		return
	}
	switch e.Kind {
	case ast.ExprNumber:
		if want != typeNumber {
			c.reportMismatch(e.Span, want, 0, typeNumber)
		}
	case ast.ExprString:
		if want != typeString {
			c.reportMismatch(e.Span, want, 0, typeString)
		}
	case ast.ExprBool:
		if want != typeBoolean {
			c.reportMismatch(e.Span, want, 0, typeBoolean)
		}
	case ast.ExprNull:
		c.reportMismatch(e.Span, want, 0, "null")
	case ast.ExprRef:
		c.checkRefMatches(e, want, 0)
	case ast.ExprArray, ast.ExprObject:
		c.reportMismatch(e.Span, want, 0, c.describe(id))
	}
}

func (c *checker) checkRefMatches(e *ast.Expr, want string, dims int) {
	t := c.refType(e)
	if !t.known {
		return
	}
	if t.name != want || t.dims != dims {
		c.reportMismatch(e.Span, want, dims, t.String())
	}
}

func (c *checker) reportMismatch(sp source.Span, want string, dims int, got string) {
	expected := want + strings.Repeat("[]", dims)
	diag.ReportError(c.reporter, diag.SemaTypeMismatch, sp,
		"type mismatch: expected "+expected+", got "+got).Emit()
}

// describe names a value's shape for mismatch messages: the inferred type
// when one exists, otherwise the literal's syntactic kind.
func (c *checker) describe(id ast.ExprID) string {
	if t := c.inferExpr(id); t.known {
		return t.String()
	}
	e := c.module.Exprs.Get(id)
	if e == nil {
		return "unknown"
	}
	switch e.Kind {
	case ast.ExprNull:
		return "null"
	case ast.ExprArray:
		return "array"
	case ast.ExprObject:
		return "object"
	default:
		return "unknown"
	}
}
