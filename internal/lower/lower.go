// Package lower turns parsed source units into renderable IR modules.
//
// It is the built-in transformer of the emit pipeline: lex, parse,
// check names and types, build the annotation-free ir.Module. All
// diagnostics flow through the per-call diag.Reporter; the returned
// error is reserved for collaborator faults and cancellation.
package lower

import (
	"context"
	"errors"

	"vellum/internal/diag"
	"vellum/internal/ir"
	"vellum/internal/lexer"
	"vellum/internal/parser"
	"vellum/internal/source"
)

// Options configure a Transformer.
type Options struct {
	// MaxErrors caps parser errors per unit. Zero means unlimited.
	MaxErrors uint
}

// Transformer lowers units to IR. It shares one unsynchronized string
// interner across every unit it processes, so a Transformer must only
// be used from one goroutine at a time.
type Transformer struct {
	interner  *source.Interner
	maxErrors uint
}

func New(opts Options) *Transformer {
	return &Transformer{
		interner:  source.NewInterner(),
		maxErrors: opts.MaxErrors,
	}
}

// Transform lowers one unit. Problems in the unit surface as
// diagnostics through reporter; the IR is returned regardless so
// callers decide on severity. The error return carries only
// cancellation and hard faults.
func (t *Transformer) Transform(ctx context.Context, unit *source.Unit, reporter diag.Reporter) (*ir.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, errors.New("lower: nil unit")
	}

	// Parser recovery and the shape checks can land on one span twice;
	// identical findings collapse to a single report.
	reporter = diag.NewDedupReporter(reporter)

	lx := lexer.New(unit, lexer.Options{Reporter: reporter})
	res := parser.ParseUnit(lx, t.interner, parser.Options{
		MaxErrors: t.maxErrors,
		Reporter:  reporter,
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ck := newChecker(res.Module, t.interner, reporter)
	ck.run()

	return build(res.Module, t.interner), nil
}
