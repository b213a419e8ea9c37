// Package ast defines the resolved representation of a Lore file: Kinds,
// Attributes and Relations whose names are absolute URIs.
package ast

import (
	"sort"
	"strconv"
)

// LiteralKind tags the value held by a Literal.
type LiteralKind int

const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralName
)

// Literal is the value of a Field.
type Literal struct {
	Kind   LiteralKind
	Number uint64
	Text   string
	Name   Name
}

// NumberLiteral returns a numeric Literal.
func NumberLiteral(n uint64) Literal {
	return Literal{Kind: LiteralNumber, Number: n}
}

// StringLiteral returns a string Literal.
func StringLiteral(s string) Literal {
	return Literal{Kind: LiteralString, Text: s}
}

// NameLiteral returns a Literal referencing another declaration.
func NameLiteral(n Name) Literal {
	return Literal{Kind: LiteralName, Name: n}
}

func (l Literal) String() string {
	switch l.Kind {
	case LiteralNumber:
		return strconv.FormatUint(l.Number, 10)
	case LiteralString:
		return strconv.Quote(l.Text)
	default:
		return l.Name.String()
	}
}

// Field is a metadata entry attached to a declaration.
type Field struct {
	Name  Name
	Value Literal
}

// Kind is a declared class.
type Kind struct {
	Name   Name
	Fields []Field
}

// Attribute is a declared property.
type Attribute struct {
	Name   Name
	Fields []Field
}

// Relation is a subject-predicate-object statement template.
type Relation struct {
	Subject   Name
	Predicate Name
	Object    Name
	Fields    []Field
}

// Structure is the resolved declaration set of one file.
type Structure struct {
	Kinds      []Kind
	Attributes []Attribute
	Relations  []Relation
}

// Len returns the number of declarations.
func (s *Structure) Len() int {
	return len(s.Kinds) + len(s.Attributes) + len(s.Relations)
}

// SortKinds orders kinds by URI.
func SortKinds(kinds []Kind) {
	sort.SliceStable(kinds, func(i, j int) bool {
		return kinds[i].Name.URI() < kinds[j].Name.URI()
	})
}

// SortAttributes orders attributes by URI.
func SortAttributes(attrs []Attribute) {
	sort.SliceStable(attrs, func(i, j int) bool {
		return attrs[i].Name.URI() < attrs[j].Name.URI()
	})
}

// SortRelations orders relations by subject, predicate, then object.
func SortRelations(rels []Relation) {
	sort.SliceStable(rels, func(i, j int) bool {
		a, b := rels[i], rels[j]
		if a.Subject.URI() != b.Subject.URI() {
			return a.Subject.URI() < b.Subject.URI()
		}
		if a.Predicate.URI() != b.Predicate.URI() {
			return a.Predicate.URI() < b.Predicate.URI()
		}
		return a.Object.URI() < b.Object.URI()
	})
}
