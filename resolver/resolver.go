// Package resolver turns a parse tree into a resolved declaration set.
//
// Resolution runs two passes. Collect scans the whole file for `using` and
// `prefix` directives and builds a Context; Resolve then rewrites every name
// in every declaration against that Context. Directive placement inside the
// file does not matter. Every name that cannot be resolved is reported, not
// only the first one.
package resolver

import (
	"github.com/c360/lore/ast"
	"github.com/c360/lore/parser"
)

// Resolve returns the declarations of tree with every name absolute, or an
// *UnresolvedNamesError listing each name that no directive covers.
func Resolve(tree *parser.ParseTree) (*ast.Structure, error) {
	return ResolveWith(Collect(tree), tree)
}

// ResolveWith runs the name pass against an already collected Context.
func ResolveWith(ctx *Context, tree *parser.ParseTree) (*ast.Structure, error) {
	r := &walker{ctx: ctx}
	out := &ast.Structure{}

	for _, item := range tree.Items {
		switch it := item.(type) {
		case parser.KindItem:
			out.Kinds = append(out.Kinds, ast.Kind{
				Name:   r.name(it.Name),
				Fields: r.fields(it.Fields),
			})
		case parser.AttributeItem:
			out.Attributes = append(out.Attributes, ast.Attribute{
				Name:   r.name(it.Name),
				Fields: r.fields(it.Fields),
			})
		case parser.RelationItem:
			out.Relations = append(out.Relations, ast.Relation{
				Subject:   r.name(it.Subject),
				Predicate: r.name(it.Predicate),
				Object:    r.name(it.Object),
				Fields:    r.fields(it.Fields),
			})
		}
	}

	if len(r.unresolved) > 0 {
		return nil, &UnresolvedNamesError{Filename: tree.Filename, Names: r.unresolved}
	}
	return out, nil
}

type walker struct {
	ctx        *Context
	unresolved []ast.Name
}

func (w *walker) name(n ast.Name) ast.Name {
	resolved, ok := w.ctx.ResolveName(n)
	if !ok {
		w.unresolved = append(w.unresolved, n)
	}
	return resolved
}

func (w *walker) fields(fields []ast.Field) []ast.Field {
	if fields == nil {
		return nil
	}
	out := make([]ast.Field, len(fields))
	for i, f := range fields {
		out[i].Name = w.name(f.Name)
		out[i].Value = f.Value
		if f.Value.Kind == ast.LiteralName {
			out[i].Value = ast.NameLiteral(w.name(f.Value.Name))
		}
	}
	return out
}
