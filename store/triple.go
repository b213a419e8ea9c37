package store

import (
	"strconv"
	"time"

	"github.com/c360/lore/ast"
	"github.com/c360/lore/vocabulary"
)

// Triple is one subject-predicate-object statement derived from a Lore
// declaration.
//
// Subject and Predicate are always IRIs. Object is an IRI when Datatype is
// empty and a literal lexical form otherwise:
//   - (dota:Hero, rdf:type, owl:Class)
//   - (dota:Hero, dota:weight, "3"^^xsd:integer)
type Triple struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`

	// Datatype is xsd:string or xsd:integer for literal objects, empty for IRIs.
	Datatype string `json:"datatype,omitempty"`

	// Source is the file the declaration came from.
	Source string `json:"source,omitempty"`

	// Context is the id of the AddTree batch that produced the triple.
	Context string `json:"context,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// IsLiteral reports whether Object is a literal rather than an IRI.
func (t Triple) IsLiteral() bool {
	return t.Datatype != ""
}

// ObjectTerm returns the object as a query Term.
func (t Triple) ObjectTerm() Term {
	return Term{Value: t.Object, Datatype: t.Datatype}
}

// tripleKey identifies a statement independent of provenance. The store
// holds each statement once.
type tripleKey struct {
	s, p, o, dt string
}

func (t Triple) key() tripleKey {
	return tripleKey{t.Subject, t.Predicate, t.Object, t.Datatype}
}

func iri(s, p, o string) Triple {
	return Triple{Subject: s, Predicate: p, Object: o}
}

// KindTriples maps a kind onto (k rdf:type owl:Class) and (k lore:type lore:Kind)
// plus its fields.
func KindTriples(k ast.Kind) []Triple {
	this := k.Name.URI().String()
	out := []Triple{
		iri(this, vocabulary.RdfType, vocabulary.OwlClass),
		iri(this, vocabulary.LoreType, vocabulary.LoreKind),
	}
	return append(out, FieldTriples(this, k.Fields)...)
}

// AttributeTriples maps an attribute onto (a rdf:type owl:ObjectProperty) and
// (a lore:type lore:Attribute) plus its fields.
func AttributeTriples(a ast.Attribute) []Triple {
	this := a.Name.URI().String()
	out := []Triple{
		iri(this, vocabulary.RdfType, vocabulary.OwlObjectProperty),
		iri(this, vocabulary.LoreType, vocabulary.LoreAttribute),
	}
	return append(out, FieldTriples(this, a.Fields)...)
}

// RelationTriples maps a relation onto (p rdfs:domain s), (p rdfs:range o)
// and (p lore:type lore:Relation).
// Relation fields describe the predicate.
func RelationTriples(r ast.Relation) []Triple {
	this := r.Predicate.URI().String()
	out := []Triple{
		iri(this, vocabulary.RdfsDomain, r.Subject.URI().String()),
		iri(this, vocabulary.RdfsRange, r.Object.URI().String()),
		iri(this, vocabulary.LoreType, vocabulary.LoreRelation),
	}
	return append(out, FieldTriples(this, r.Fields)...)
}

// FieldTriples maps each field onto (subject key value).
func FieldTriples(subject string, fields []ast.Field) []Triple {
	out := make([]Triple, 0, len(fields))
	for _, f := range fields {
		t := Triple{Subject: subject, Predicate: f.Name.URI().String()}
		switch f.Value.Kind {
		case ast.LiteralNumber:
			t.Object = strconv.FormatUint(f.Value.Number, 10)
			t.Datatype = vocabulary.XsdInteger
		case ast.LiteralString:
			t.Object = f.Value.Text
			t.Datatype = vocabulary.XsdString
		default:
			t.Object = f.Value.Name.URI().String()
		}
		out = append(out, t)
	}
	return out
}
