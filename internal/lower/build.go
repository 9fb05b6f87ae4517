package lower

import (
	"vellum/internal/ast"
	"vellum/internal/ir"
	"vellum/internal/source"
)

// build flattens a checked module into its renderable form. Interned
// names become plain strings so the result carries no reference back
// into the interner or the arena.
func build(mod *ast.Module, interner *source.Interner) *ir.Module {
	out := &ir.Module{
		Imports: make([]ir.Import, 0, len(mod.Imports)),
		Consts:  make([]ir.Const, 0, len(mod.Consts)),
	}
	for i := range mod.Imports {
		imp := &mod.Imports[i]
		pairs := make([]ir.ImportPair, 0, len(imp.Pairs))
		for _, pair := range imp.Pairs {
			p := ir.ImportPair{Name: interner.MustLookup(pair.Name)}
			if pair.Alias != source.NoStringID {
				p.Alias = interner.MustLookup(pair.Alias)
			}
			pairs = append(pairs, p)
		}
		out.Imports = append(out.Imports, ir.Import{From: imp.From, Pairs: pairs})
	}
	for i := range mod.Consts {
		decl := &mod.Consts[i]
		out.Consts = append(out.Consts, ir.Const{
			Name:     interner.MustLookup(decl.Name),
			Exported: decl.Exported,
			Value:    buildValue(mod, interner, decl.Value),
		})
	}
	return out
}

func buildValue(mod *ast.Module, interner *source.Interner, id ast.ExprID) ir.Value {
	e := mod.Exprs.Get(id)
	if e == nil {
		return ir.Null()
	}
	switch e.Kind {
	case ast.ExprNumber:
		return ir.Number(e.Raw)
	case ast.ExprString:
		return ir.String(e.Str)
	case ast.ExprBool:
		return ir.Bool(e.Bool)
	case ast.ExprNull:
		return ir.Null()
	case ast.ExprRef:
		return ir.Ref(interner.MustLookup(e.Name))
	case ast.ExprArray:
		elems := make([]ir.Value, 0, len(e.Elems))
		for _, el := range e.Elems {
			elems = append(elems, buildValue(mod, interner, el))
		}
		return ir.Value{Kind: ir.ValueArray, Elems: elems}
	case ast.ExprObject:
		fields := make([]ir.Field, 0, len(e.Fields))
		for _, f := range e.Fields {
			fields = append(fields, ir.Field{
				Name:  interner.MustLookup(f.Name),
				Value: buildValue(mod, interner, f.Value),
			})
		}
		return ir.Value{Kind: ir.ValueObject, Fields: fields}
	default:
		return ir.Null()
	}
}
