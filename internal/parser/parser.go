package parser

import (
	"slices"

	"vellum/internal/ast"
	"vellum/internal/diag"
	"vellum/internal/lexer"
	"vellum/internal/source"
	"vellum/internal/token"
)

type Options struct {
	// MaxErrors caps the number of errors reported for a single unit.
	// Zero means unlimited.
	MaxErrors     uint
	CurrentErrors uint
	// Reporter receives every diagnostic the parser emits.
	Reporter diag.Reporter
}

// Enough reports whether the error budget for this unit is spent.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Module *ast.Module
	Bag    *diag.Bag
}

// Parser is the state for parsing one unit.
type Parser struct {
	lx       *lexer.Lexer
	module   *ast.Module
	interner *source.Interner
	opts     Options
	lastSpan source.Span // span of the last consumed token, for diagnostics at EOF
}

// ParseUnit is the entry point for parsing one unit. It requires an
// already constructed lexer. Identifiers and object keys are interned
// into interner, which the caller shares across units; the interner is
// not synchronized, so units must be parsed one at a time.
func ParseUnit(
	lx *lexer.Lexer,
	interner *source.Interner,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		module:   ast.NewModule(lx.Unit().ID),
		interner: interner,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()
	var bag *diag.Bag
	switch br := opts.Reporter.(type) {
	case diag.BagReporter:
		bag = br.Bag
	case *diag.BagReporter:
		bag = br.Bag
	}
	return Result{
		Module: p.module,
		Bag:    bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseItems is the top-level loop: parse declarations until EOF.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		if !p.parseItem() {
			p.resyncTop()
		}
	}
	p.module.Span = startSpan.Cover(p.lx.Peek().Span)
}

// parseItem dispatches on the first token of a top-level declaration.
// Stray semicolons are empty statements and are skipped.
func (p *Parser) parseItem() bool {
	switch p.lx.Peek().Kind {
	case token.KwImport:
		return p.parseImportDecl()
	case token.KwExport, token.KwConst:
		return p.parseConstDecl()
	case token.Semicolon:
		p.advance()
		return true
	default:
		p.report(diag.SynUnexpectedTopLevel, diag.SevError, p.lx.Peek().Span,
			"expected 'import', 'export' or 'const', got '"+p.lx.Peek().Text+"'")
		return false
	}
}

// resyncTop recovers after a top-level error: skip forward to ';' or to
// the start of the next declaration or EOF. A found ';' is consumed so
// parsing resumes after the broken declaration.
func (p *Parser) resyncTop() {
	for !p.at(token.EOF) && !p.at(token.Semicolon) && !isTopLevelStarter(p.lx.Peek().Kind) {
		p.advance()
	}
	if p.at(token.Semicolon) {
		p.advance()
	}
}

// resyncUntil skips tokens until one of kinds or EOF is at the front.
func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(kinds...) {
		p.advance()
	}
}

// isTopLevelStarter reports whether k begins a top-level declaration.
func isTopLevelStarter(k token.Kind) bool {
	switch k {
	case token.KwImport, token.KwExport, token.KwConst:
		return true
	default:
		return false
	}
}

// parseIdent expects an Ident and interns its text.
// On error it reports SynExpectIdentifier.
func (p *Parser) parseIdent() (source.StringID, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		id := p.interner.Intern(tok.Text)
		return id, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.lx.Peek().Text+"\"")
	return source.NoStringID, false
}
