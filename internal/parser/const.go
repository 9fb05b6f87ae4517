package parser

import (
	"vellum/internal/ast"
	"vellum/internal/diag"
	"vellum/internal/token"
)

// parseConstDecl recognizes:
//
//	const name = expr;
//	const name: type = expr;
//	export const name = expr;
//	export const name: type = expr;
func (p *Parser) parseConstDecl() bool {
	startTok := p.lx.Peek()
	exported := false
	if p.at(token.KwExport) {
		p.advance()
		exported = true
	}

	if _, ok := p.expect(token.KwConst, diag.SynExpectConst, "expected 'const' after 'export'"); !ok {
		return false
	}

	name, ok := p.parseIdent()
	if !ok {
		return false
	}
	nameSpan := p.lastSpan

	var typeRef *ast.TypeRef
	if p.at(token.Colon) {
		p.advance()
		tr, typeOK := p.parseTypeRef()
		if !typeOK {
			return false
		}
		typeRef = &tr
	}

	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in const declaration"); !ok {
		return false
	}

	value, ok := p.parseExpr()
	if !ok {
		return false
	}

	if !p.at(token.Semicolon) {
		insertPos := p.lastSpan.ZeroideToEnd()
		p.emitDiagnostic(
			diag.SynExpectSemicolon,
			diag.SevError,
			insertPos,
			"expected semicolon after const declaration",
			[]diag.Note{{Span: insertPos, Msg: "insert missing semicolon"}},
		)
		return false
	}
	semi := p.advance()

	p.module.Consts = append(p.module.Consts, ast.ConstDecl{
		Name:     name,
		NameSpan: nameSpan,
		Exported: exported,
		Type:     typeRef,
		Value:    value,
		Span:     startTok.Span.Cover(semi.Span),
	})
	return true
}
