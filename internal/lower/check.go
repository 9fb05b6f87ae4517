package lower

import (
	"vellum/internal/ast"
	"vellum/internal/diag"
	"vellum/internal/source"
)

// importBinding tracks one imported local name for duplicate and
// unused-import detection.
type importBinding struct {
	span source.Span
	used bool
}

// constInfo records where a constant was declared, for duplicate and
// use-before-declaration checks.
type constInfo struct {
	index int
	span  source.Span
}

// checker runs the semantic pass over one parsed module. It reports
// duplicate names, unresolved and premature references, annotation
// mismatches, duplicate object keys, and unused imports.
type checker struct {
	module   *ast.Module
	interner *source.Interner
	reporter diag.Reporter

	imports  map[source.StringID]*importBinding // by local name
	consts   map[source.StringID]*constInfo     // by name, first declaration wins
	inferred map[source.StringID]inferredType
}

func newChecker(mod *ast.Module, interner *source.Interner, reporter diag.Reporter) *checker {
	return &checker{
		module:   mod,
		interner: interner,
		reporter: reporter,
		imports:  make(map[source.StringID]*importBinding),
		consts:   make(map[source.StringID]*constInfo),
		inferred: make(map[source.StringID]inferredType),
	}
}

func (c *checker) run() {
	if c.module == nil {
		return
	}
	c.collectImports()
	c.collectConsts()
	c.checkConstValues()
	c.flagUnusedImports()
}

func (c *checker) lookup(id source.StringID) string {
	return c.interner.MustLookup(id)
}

// collectImports registers every imported local name. A second binding
// under the same local name is an error; the first one stays
// authoritative for usage tracking.
func (c *checker) collectImports() {
	for i := range c.module.Imports {
		imp := &c.module.Imports[i]
		for j := range imp.Pairs {
			pair := &imp.Pairs[j]
			local := pair.Local()
			if prev, ok := c.imports[local]; ok {
				diag.ReportError(c.reporter, diag.SemaDuplicateImport, pair.LocalSpan(),
					"duplicate import binding '"+c.lookup(local)+"'").
					WithNote(prev.span, "first introduced here").
					Emit()
				continue
			}
			c.imports[local] = &importBinding{span: pair.LocalSpan()}
		}
	}
}

// collectConsts registers every constant name in declaration order and
// reports collisions, both const/const and const/import.
func (c *checker) collectConsts() {
	for i := range c.module.Consts {
		decl := &c.module.Consts[i]
		if imp, ok := c.imports[decl.Name]; ok {
			diag.ReportError(c.reporter, diag.SemaDuplicateConst, decl.NameSpan,
				"'"+c.lookup(decl.Name)+"' collides with an import binding").
				WithNote(imp.span, "imported here").
				Emit()
			continue
		}
		if prev, ok := c.consts[decl.Name]; ok {
			diag.ReportError(c.reporter, diag.SemaDuplicateConst, decl.NameSpan,
				"duplicate declaration of '"+c.lookup(decl.Name)+"'").
				WithNote(prev.span, "previous declaration here").
				Emit()
			continue
		}
		c.consts[decl.Name] = &constInfo{index: i, span: decl.NameSpan}
	}
}

// checkConstValues walks every constant's value in declaration order:
// references must resolve to imports or earlier constants, object keys
// must be unique, and annotated declarations must match their value
// shape. Each constant's type is recorded as it completes so later
// references can be checked against it.
func (c *checker) checkConstValues() {
	for i := range c.module.Consts {
		decl := &c.module.Consts[i]
		c.checkValueExpr(decl.Value, i)

		typ := c.checkAnnotation(decl)
		if _, exists := c.inferred[decl.Name]; !exists {
			c.inferred[decl.Name] = typ
		}
	}
}

func (c *checker) checkValueExpr(id ast.ExprID, declIndex int) {
	e := c.module.Exprs.Get(id)
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprRef:
		c.resolveRef(e, declIndex)
	case ast.ExprArray:
		for _, elem := range e.Elems {
			c.checkValueExpr(elem, declIndex)
		}
	case ast.ExprObject:
		seen := make(map[source.StringID]source.Span, len(e.Fields))
		for _, f := range e.Fields {
			if prev, dup := seen[f.Name]; dup {
				diag.ReportError(c.reporter, diag.SemaDuplicateObjectKey, f.NameSpan,
					"duplicate object key '"+c.lookup(f.Name)+"'").
					WithNote(prev, "first used here").
					Emit()
			} else {
				seen[f.Name] = f.NameSpan
			}
			c.checkValueExpr(f.Value, declIndex)
		}
	}
}

func (c *checker) resolveRef(e *ast.Expr, declIndex int) {
	if b, ok := c.imports[e.Name]; ok {
		b.used = true
		return
	}
	if info, ok := c.consts[e.Name]; ok {
		if info.index >= declIndex {
			diag.ReportError(c.reporter, diag.SemaUseBeforeDecl, e.Span,
				"'"+c.lookup(e.Name)+"' is used before its declaration").
				WithNote(info.span, "declared here").
				Emit()
		}
		return
	}
	diag.ReportError(c.reporter, diag.SemaUnresolvedRef, e.Span,
		"unresolved reference '"+c.lookup(e.Name)+"'").Emit()
}

// flagUnusedImports warns about bindings no constant ever referenced.
// Order follows the import declarations, not the map.
func (c *checker) flagUnusedImports() {
	for i := range c.module.Imports {
		imp := &c.module.Imports[i]
		for j := range imp.Pairs {
			pair := &imp.Pairs[j]
			local := pair.Local()
			b, ok := c.imports[local]
			if !ok || b.span != pair.LocalSpan() {
				// A duplicate binding; only the first occurrence is tracked.
				continue
			}
			if !b.used {
				diag.ReportWarning(c.reporter, diag.SemaUnusedImport, pair.LocalSpan(),
					"import '"+c.lookup(local)+"' is unused").Emit()
			}
		}
	}
}
