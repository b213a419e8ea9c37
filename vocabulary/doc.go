// Package vocabulary defines the IRIs the store uses when it indexes
// Lore declarations as triples.
//
// # Standard Vocabularies
//
// standards.go holds the W3C terms Lore declarations map onto:
//
//	kind Hero             -> <Hero> rdf:type owl:Class
//	attr Name             -> <Name> rdf:type owl:ObjectProperty
//	rel Hero hasOne Name  -> <hasOne> rdfs:domain <Hero>
//	                         <hasOne> rdfs:range  <Name>
//
// Field values carry an XSD datatype (xsd:integer, xsd:string) or an IRI.
//
// # Lore Vocabulary
//
// iris.go holds the terms under LoreBase that record what a declaration was
// in the source (lore:Kind, lore:Attribute, lore:Relation) and where it came
// from (lore:sourceFile, lore:batch).
//
// # Prefixes
//
// The prefix registry maps compact names such as "rdf:type" to full IRIs.
// The store expands compact terms in queries, and the YAML emitter writes the
// table into its manifest. The standard prefixes are registered at init;
// applications may add their own:
//
//	vocabulary.RegisterPrefix("schema", "https://schema.org/",
//	    vocabulary.WithDescription("Schema.org"))
//
//	vocabulary.Expand("rdfs:label") // http://www.w3.org/2000/01/rdf-schema#label
//	vocabulary.Compact(vocabulary.RdfsLabel) // rdfs:label
//
// A compact name only expands when its prefix is registered, so Lore URIs
// like "dota:ontology:2022/Hero" pass through untouched.
//
// The registry is safe for concurrent use.
package vocabulary
