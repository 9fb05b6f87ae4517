package parser

import (
	"vellum/internal/ast"
	"vellum/internal/diag"
	"vellum/internal/source"
	"vellum/internal/token"
)

// parseExpr parses one value expression into the module's expression
// arena. Expressions are pure literals: numbers (optionally negated),
// strings, booleans, null, references to other constants, arrays, and
// objects.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.NumberLit:
		p.advance()
		return p.module.Exprs.NewNumber(tok.Span, tok.Text), true
	case token.Minus:
		return p.parseNegatedNumber()
	case token.StringLit:
		p.advance()
		return p.module.Exprs.NewString(tok.Span, unquoteStringLexeme(tok.Text)), true
	case token.KwTrue:
		p.advance()
		return p.module.Exprs.NewBool(tok.Span, true), true
	case token.KwFalse:
		p.advance()
		return p.module.Exprs.NewBool(tok.Span, false), true
	case token.KwNull:
		p.advance()
		return p.module.Exprs.NewNull(tok.Span), true
	case token.Ident:
		p.advance()
		return p.module.Exprs.NewRef(tok.Span, p.interner.Intern(tok.Text)), true
	case token.LBracket:
		return p.parseArrayExpr()
	case token.LBrace:
		return p.parseObjectExpr()
	default:
		p.err(diag.SynExpectExpression, "expected expression, got '"+tok.Text+"'")
		return ast.NoExprID, false
	}
}

// parseNegatedNumber handles a '-' prefix. The minus folds into the
// number's lexeme, so "-1" and "- 1" both carry Raw "-1".
func (p *Parser) parseNegatedNumber() (ast.ExprID, bool) {
	minusTok := p.advance()
	numTok, ok := p.expect(token.NumberLit, diag.SynExpectExpression, "expected number after '-'")
	if !ok {
		return ast.NoExprID, false
	}
	span := minusTok.Span.Cover(numTok.Span)
	return p.module.Exprs.NewNumber(span, "-"+numTok.Text), true
}

func (p *Parser) parseArrayExpr() (ast.ExprID, bool) {
	openTok := p.advance() // '['

	if p.at(token.RBracket) {
		closeTok := p.advance()
		return p.module.Exprs.NewArray(openTok.Span.Cover(closeTok.Span), nil), true
	}

	elems := make([]ast.ExprID, 0, 4)
	for {
		elem, ok := p.parseExpr()
		if !ok {
			p.resyncUntil(token.RBracket, token.Semicolon)
			return ast.NoExprID, false
		}
		elems = append(elems, elem)

		if p.at(token.Comma) {
			commaTok := p.advance()
			if p.at(token.RBracket) {
				p.report(diag.SynTrailingComma, diag.SevWarning, commaTok.Span,
					"trailing comma in array literal")
				break
			}
			continue
		}
		break
	}

	closeTok, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array literal")
	if !ok {
		return ast.NoExprID, false
	}
	return p.module.Exprs.NewArray(openTok.Span.Cover(closeTok.Span), elems), true
}

func (p *Parser) parseObjectExpr() (ast.ExprID, bool) {
	openTok := p.advance() // '{'

	if p.at(token.RBrace) {
		closeTok := p.advance()
		return p.module.Exprs.NewObject(openTok.Span.Cover(closeTok.Span), nil), true
	}

	fields := make([]ast.ObjectField, 0, 4)
	for {
		field, ok := p.parseObjectField()
		if !ok {
			p.resyncUntil(token.RBrace, token.Semicolon)
			return ast.NoExprID, false
		}
		fields = append(fields, field)

		if p.at(token.Comma) {
			commaTok := p.advance()
			if p.at(token.RBrace) {
				p.report(diag.SynTrailingComma, diag.SevWarning, commaTok.Span,
					"trailing comma in object literal")
				break
			}
			continue
		}
		break
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close object literal")
	if !ok {
		return ast.NoExprID, false
	}
	return p.module.Exprs.NewObject(openTok.Span.Cover(closeTok.Span), fields), true
}

// parseObjectField parses one `key: value` entry. Keys may be plain
// identifiers, keywords (legal as keys, as in JS), or string literals.
func (p *Parser) parseObjectField() (ast.ObjectField, bool) {
	var name source.StringID
	var nameSpan source.Span

	keyTok := p.lx.Peek()
	switch {
	case keyTok.Kind == token.Ident || keyTok.IsKeyword():
		p.advance()
		name = p.interner.Intern(keyTok.Text)
		nameSpan = keyTok.Span
	case keyTok.Kind == token.StringLit:
		p.advance()
		name = p.interner.Intern(unquoteStringLexeme(keyTok.Text))
		nameSpan = keyTok.Span
	default:
		p.err(diag.SynExpectIdentifier, "expected object key, got '"+keyTok.Text+"'")
		return ast.ObjectField{}, false
	}

	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after object key"); !ok {
		return ast.ObjectField{}, false
	}

	value, ok := p.parseExpr()
	if !ok {
		return ast.ObjectField{}, false
	}

	return ast.ObjectField{Name: name, NameSpan: nameSpan, Value: value}, true
}
