package codegen

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/c360/lore/ast"
	"github.com/c360/lore/errors"
	"github.com/c360/lore/store"
	"github.com/c360/lore/vocabulary"
)

// TargetYAML selects the YAML manifest emitter.
const TargetYAML = "yaml"

// ManifestFile is the file the YAML emitter writes.
const ManifestFile = "ontology.yaml"

// Manifest is the document written to ontology.yaml.
type Manifest struct {
	Prefixes   []vocabulary.PrefixInfo `yaml:"prefixes,omitempty"`
	Kinds      []ManifestDecl          `yaml:"kinds"`
	Attributes []ManifestDecl          `yaml:"attributes"`
	Relations  []ManifestRelation      `yaml:"relations"`
}

// ManifestDecl is a kind or attribute entry.
type ManifestDecl struct {
	URI    string          `yaml:"uri"`
	Fields []ManifestField `yaml:"fields,omitempty"`
}

// ManifestRelation is a relation entry.
type ManifestRelation struct {
	Subject   string          `yaml:"subject"`
	Predicate string          `yaml:"predicate"`
	Object    string          `yaml:"object"`
	Fields    []ManifestField `yaml:"fields,omitempty"`
}

// ManifestField is one field; Value holds a number, a string or a URI
// according to Type.
type ManifestField struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Value any    `yaml:"value"`
}

// YAMLEmitter writes the whole store as a YAML manifest.
type YAMLEmitter struct{}

// NewYAMLEmitter returns a YAML emitter.
func NewYAMLEmitter() *YAMLEmitter {
	return &YAMLEmitter{}
}

func (e *YAMLEmitter) Target() string { return TargetYAML }

// Emit renders ontology.yaml.
func (e *YAMLEmitter) Emit(st *store.Store) (*SourceSet, error) {
	data, err := MarshalManifest(BuildManifest(st))
	if err != nil {
		return nil, errors.WrapFatal(fmt.Errorf("%w: %w", errors.ErrEmitFailed, err),
			"YAMLEmitter", "Emit", "encode manifest")
	}

	set := &SourceSet{}
	set.Add(ManifestFile, data)
	return set, nil
}

// MarshalManifest encodes m as YAML with two-space indentation.
func MarshalManifest(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildManifest collects the store contents in URI order.
func BuildManifest(st *store.Store) *Manifest {
	m := declarations(st.Kinds(), st.Attributes(), st.Relations())
	m.Prefixes = vocabulary.ListPrefixes()
	return m
}

// StructureManifest describes one resolved file, in declaration order and
// without prefixes.
func StructureManifest(s *ast.Structure) *Manifest {
	return declarations(s.Kinds, s.Attributes, s.Relations)
}

func declarations(kinds []ast.Kind, attrs []ast.Attribute, rels []ast.Relation) *Manifest {
	m := &Manifest{
		Kinds:      []ManifestDecl{},
		Attributes: []ManifestDecl{},
		Relations:  []ManifestRelation{},
	}
	for _, k := range kinds {
		m.Kinds = append(m.Kinds, ManifestDecl{URI: k.Name.URI().String(), Fields: manifestFields(k.Fields)})
	}
	for _, a := range attrs {
		m.Attributes = append(m.Attributes, ManifestDecl{URI: a.Name.URI().String(), Fields: manifestFields(a.Fields)})
	}
	for _, r := range rels {
		m.Relations = append(m.Relations, ManifestRelation{
			Subject:   r.Subject.URI().String(),
			Predicate: r.Predicate.URI().String(),
			Object:    r.Object.URI().String(),
			Fields:    manifestFields(r.Fields),
		})
	}
	return m
}

func manifestFields(fields []ast.Field) []ManifestField {
	if len(fields) == 0 {
		return nil
	}
	out := make([]ManifestField, len(fields))
	for i, f := range fields {
		out[i].Name = f.Name.URI().String()
		switch f.Value.Kind {
		case ast.LiteralNumber:
			out[i].Type = "number"
			out[i].Value = f.Value.Number
		case ast.LiteralString:
			out[i].Type = "string"
			out[i].Value = f.Value.Text
		default:
			out[i].Type = "uri"
			out[i].Value = f.Value.Name.URI().String()
		}
	}
	return out
}
