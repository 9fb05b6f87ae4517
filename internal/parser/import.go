package parser

import (
	"vellum/internal/ast"
	"vellum/internal/diag"
	"vellum/internal/source"
	"vellum/internal/token"
)

// parseImportDecl recognizes:
//
//	import { Name } from "./spec";
//	import { Name as Alias } from "./spec";
//	import { A, B as C, D } from "./spec";
//
// The binding list may be empty; that parses with a warning. A trailing
// comma in the list is tolerated and also warned about, since the
// emitted form never carries one.
func (p *Parser) parseImportDecl() bool {
	importTok := p.advance() // KwImport; the dispatcher already checked it

	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after 'import'"); !ok {
		return false
	}

	pairs := make([]ast.ImportPair, 0, 2)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		name, ok := p.parseIdent()
		if !ok {
			break
		}
		nameSpan := p.lastSpan

		alias := source.NoStringID
		var aliasSpan source.Span
		if p.at(token.KwAs) {
			p.advance()
			alias, ok = p.parseIdent()
			if !ok {
				break
			}
			aliasSpan = p.lastSpan
		}

		pairs = append(pairs, ast.ImportPair{
			Name:      name,
			NameSpan:  nameSpan,
			Alias:     alias,
			AliasSpan: aliasSpan,
		})

		if p.at(token.Comma) {
			commaTok := p.advance()
			if p.at(token.RBrace) {
				p.report(diag.SynTrailingComma, diag.SevWarning, commaTok.Span,
					"trailing comma in import list")
			}
			continue
		}
		break
	}

	if len(pairs) == 0 && p.at(token.RBrace) {
		p.warn(diag.SynEmptyImportGroup, "import list is empty")
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close import list"); !ok {
		return false
	}

	if _, ok := p.expect(token.KwFrom, diag.SynExpectFrom, "expected 'from' after import list"); !ok {
		return false
	}

	specTok, ok := p.expect(token.StringLit, diag.SynExpectStringLit, "expected module specifier string after 'from'")
	if !ok {
		return false
	}

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected semicolon after import declaration")
	if !ok {
		return false
	}

	p.module.Imports = append(p.module.Imports, ast.ImportDecl{
		Span:     importTok.Span.Cover(semi.Span),
		From:     unquoteStringLexeme(specTok.Text),
		FromSpan: specTok.Span,
		Pairs:    pairs,
	})
	return true
}
