package parser

import "github.com/c360/lore/ast"

// Item is one top-level entry of a parse tree: NamespaceItem, PrefixItem,
// CommentItem, KindItem, AttributeItem or RelationItem.
type Item interface {
	item()
}

// NamespaceItem is a `using <uri>` directive.
type NamespaceItem struct {
	URI ast.URI
}

// PrefixItem is a `prefix <uri> as @alias` directive.
type PrefixItem struct {
	URI   ast.URI
	Alias string
}

// CommentItem is a top-level comment.
type CommentItem struct {
	Text string
}

// KindItem declares a Kind.
type KindItem struct {
	Name   ast.Name
	Fields []ast.Field
}

// AttributeItem declares an Attribute.
type AttributeItem struct {
	Name   ast.Name
	Fields []ast.Field
}

// RelationItem declares a Relation.
type RelationItem struct {
	Subject   ast.Name
	Predicate ast.Name
	Object    ast.Name
	Fields    []ast.Field
}

func (NamespaceItem) item() {}
func (PrefixItem) item()    {}
func (CommentItem) item()   {}
func (KindItem) item()      {}
func (AttributeItem) item() {}
func (RelationItem) item()  {}

// ParseTree is the ordered list of items parsed from one file. Filename is
// only used for diagnostics.
type ParseTree struct {
	Filename string
	Items    []Item
}

// TreeOf lifts a resolved Structure back into a parse tree without
// directives. Every name in it is already absolute.
func TreeOf(filename string, s *ast.Structure) *ParseTree {
	tree := &ParseTree{Filename: filename}
	for _, k := range s.Kinds {
		tree.Items = append(tree.Items, KindItem{Name: k.Name, Fields: k.Fields})
	}
	for _, a := range s.Attributes {
		tree.Items = append(tree.Items, AttributeItem{Name: a.Name, Fields: a.Fields})
	}
	for _, r := range s.Relations {
		tree.Items = append(tree.Items, RelationItem{
			Subject:   r.Subject,
			Predicate: r.Predicate,
			Object:    r.Object,
			Fields:    r.Fields,
		})
	}
	return tree
}
