package parser

import (
	"vellum/internal/ast"
	"vellum/internal/diag"
	"vellum/internal/token"
)

// parseTypeRef recognizes a type annotation: a type name with zero or
// more '[]' suffixes, e.g. number, string[], number[][]. Whether the
// name denotes a known type is checked during lowering, not here.
func (p *Parser) parseTypeRef() (ast.TypeRef, bool) {
	nameTok, ok := p.expect(token.Ident, diag.SynExpectType, "expected type name after ':'")
	if !ok {
		return ast.TypeRef{}, false
	}

	tr := ast.TypeRef{
		Name: p.interner.Intern(nameTok.Text),
		Span: nameTok.Span,
	}
	for p.at(token.LBracket) {
		p.advance()
		closeTok, closeOK := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' in array type")
		if !closeOK {
			return ast.TypeRef{}, false
		}
		tr.ArrayDims++
		tr.Span = tr.Span.Cover(closeTok.Span)
	}
	return tr, true
}
