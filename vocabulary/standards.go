package vocabulary

// Standard Vocabulary IRIs
//
// References:
// - RDF: https://www.w3.org/TR/rdf11-concepts/
// - RDFS: https://www.w3.org/TR/rdf-schema/
// - OWL: https://www.w3.org/TR/owl2-overview/
// - XSD: https://www.w3.org/TR/xmlschema11-2/
// - SKOS: https://www.w3.org/TR/skos-reference/
// - Dublin Core: https://www.dublincore.org/specifications/dublin-core/dcmi-terms/

// Namespaces of the standard vocabularies
const (
	RdfNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RdfsNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OwlNamespace  = "http://www.w3.org/2002/07/owl#"
	XsdNamespace  = "http://www.w3.org/2001/XMLSchema#"
	SkosNamespace = "http://www.w3.org/2004/02/skos/core#"
	DcNamespace   = "http://purl.org/dc/terms/"
)

// RDF Standard IRIs
const (
	// RdfType states that a resource is an instance of a class.
	// Query shorthand: "a"
	RdfType = RdfNamespace + "type"
)

// RDF Schema Standard IRIs
const (
	// RdfsDomain states the class of the subjects of a property.
	// Used for: relation subjects
	RdfsDomain = RdfsNamespace + "domain"

	// RdfsRange states the class of the objects of a property.
	// Used for: relation objects
	RdfsRange = RdfsNamespace + "range"

	// RdfsLabel provides a human-readable name for a resource.
	RdfsLabel = RdfsNamespace + "label"

	// RdfsComment provides a human-readable description
	RdfsComment = RdfsNamespace + "comment"

	// RdfsSeeAlso indicates a resource that provides additional information
	RdfsSeeAlso = RdfsNamespace + "seeAlso"
)

// OWL (Web Ontology Language) Standard IRIs
const (
	// OwlClass is the type of every declared kind.
	OwlClass = OwlNamespace + "Class"

	// OwlObjectProperty is the type of every declared attribute.
	OwlObjectProperty = OwlNamespace + "ObjectProperty"

	// OwlSameAs indicates that two URI references refer to the same entity.
	OwlSameAs = OwlNamespace + "sameAs"
)

// XML Schema datatype IRIs used for field literals
const (
	XsdString  = XsdNamespace + "string"
	XsdInteger = XsdNamespace + "integer"
	XsdAnyURI  = XsdNamespace + "anyURI"
)

// SKOS (Simple Knowledge Organization System) Standard IRIs
const (
	// SkosPrefLabel provides the preferred lexical label for a resource.
	SkosPrefLabel = SkosNamespace + "prefLabel"

	// SkosAltLabel provides an alternative lexical label for a resource.
	SkosAltLabel = SkosNamespace + "altLabel"
)

// Dublin Core Metadata Terms Standard IRIs
const (
	// DcSource indicates a related resource from which the described resource is derived.
	DcSource = DcNamespace + "source"

	// DcTitle provides the name given to the resource.
	DcTitle = DcNamespace + "title"
)
