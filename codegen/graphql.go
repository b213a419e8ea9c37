package codegen

import (
	"bytes"
	"fmt"
	"strings"

	gqlast "github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/c360/lore/ast"
	"github.com/c360/lore/store"
)

// TargetGraphQL selects the GraphQL SDL emitter.
const TargetGraphQL = "graphql"

// GraphQLSchemaFile is the file the GraphQL emitter writes.
const GraphQLSchemaFile = "schema.graphql"

const inputSuffix = "__Input"

// GraphQLEmitter emits an object type and an input type per kind.
// Relations whose subject is a kind become fields of that kind's types.
type GraphQLEmitter struct{}

// NewGraphQLEmitter returns a GraphQL emitter.
func NewGraphQLEmitter() *GraphQLEmitter {
	return &GraphQLEmitter{}
}

func (e *GraphQLEmitter) Target() string { return TargetGraphQL }

// Emit renders schema.graphql.
func (e *GraphQLEmitter) Emit(st *store.Store) (*SourceSet, error) {
	doc := e.Document(st)

	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(doc)

	set := &SourceSet{}
	set.Add(GraphQLSchemaFile, buf.Bytes())
	return set, nil
}

// Document builds the schema document without rendering it.
// Kinds whose URIs map to the same type name get numbered suffixes in URI
// order.
func (e *GraphQLEmitter) Document(st *store.Store) *gqlast.SchemaDocument {
	doc := &gqlast.SchemaDocument{}
	kinds := st.Kinds()
	names := typeNames(kinds)
	for _, kind := range kinds {
		typeName := names[kind.Name.URI()]
		object := &gqlast.Definition{
			Kind:        gqlast.Object,
			Name:        typeName,
			Description: description(kind.Fields),
			Fields: gqlast.FieldList{
				{Name: "id", Type: gqlast.NonNullNamedType("ID", nil)},
			},
		}
		input := &gqlast.Definition{
			Kind: gqlast.InputObject,
			Name: typeName + inputSuffix,
			Fields: gqlast.FieldList{
				{Name: "id", Type: gqlast.NamedType("ID", nil)},
			},
		}

		used := map[string]int{"id": 1}
		for _, rel := range st.RelationsOf(kind.Name.URI()) {
			name := uniqueName(used, FieldName(rel.Predicate.URI()))
			objectType, inputType := "String", "String"
			if target, ok := names[rel.Object.URI()]; ok {
				objectType = target
				inputType = target + inputSuffix
			}
			object.Fields = append(object.Fields, &gqlast.FieldDefinition{
				Name:        name,
				Description: description(rel.Fields),
				Type:        gqlast.NamedType(objectType, nil),
			})
			input.Fields = append(input.Fields, &gqlast.FieldDefinition{
				Name: name,
				Type: gqlast.NamedType(inputType, nil),
			})
		}

		doc.Definitions = append(doc.Definitions, object, input)
	}
	return doc
}

// typeNames assigns each kind a type name whose object and input forms are
// unused by any other kind.
func typeNames(kinds []ast.Kind) map[ast.URI]string {
	taken := make(map[string]bool, 2*len(kinds))
	out := make(map[ast.URI]string, len(kinds))
	for _, kind := range kinds {
		base := TypeName(kind.Name.URI())
		name := base
		for n := 2; taken[name] || taken[name+inputSuffix]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		taken[name] = true
		taken[name+inputSuffix] = true
		out[kind.Name.URI()] = name
	}
	return out
}

// TypeName derives a GraphQL type name from a URI: '/' becomes "__" and
// every other character outside [_0-9A-Za-z] becomes '_'.
func TypeName(uri ast.URI) string {
	var b strings.Builder
	for _, r := range uri.String() {
		switch {
		case r == '/':
			b.WriteString("__")
		case isNameRune(r):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return leadingLetter(b.String())
}

// FieldName derives a field name from the last segment of a predicate URI.
func FieldName(uri ast.URI) string {
	var b strings.Builder
	for _, r := range uri.LastSegment() {
		if isNameRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return leadingLetter(b.String())
}

func isNameRune(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// GraphQL names may not start with a digit or be empty.
func leadingLetter(s string) string {
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return "_" + s
	}
	return s
}

func uniqueName(used map[string]int, name string) string {
	used[name]++
	if n := used[name]; n > 1 {
		return fmt.Sprintf("%s_%d", name, n)
	}
	return name
}

// description picks the first string field keyed description or comment.
func description(fields []ast.Field) string {
	for _, f := range fields {
		if f.Value.Kind != ast.LiteralString {
			continue
		}
		switch f.Name.URI().LastSegment() {
		case "description", "comment":
			return f.Value.Text
		}
	}
	return ""
}
