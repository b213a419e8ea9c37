package vocabulary

func init() {
	RegisterStandardPrefixes()
}

// RegisterStandardPrefixes registers the prefixes of the standard
// vocabularies and of Lore itself.
func RegisterStandardPrefixes() {
	RegisterPrefix("rdf", RdfNamespace,
		WithDescription("RDF concepts"))

	RegisterPrefix("rdfs", RdfsNamespace,
		WithDescription("RDF Schema"))

	RegisterPrefix("owl", OwlNamespace,
		WithDescription("Web Ontology Language"))

	RegisterPrefix("xsd", XsdNamespace,
		WithDescription("XML Schema datatypes"))

	RegisterPrefix("skos", SkosNamespace,
		WithDescription("Simple Knowledge Organization System"))

	RegisterPrefix("dc", DcNamespace,
		WithDescription("Dublin Core terms"))

	RegisterPrefix("lore", LoreNamespace,
		WithDescription("Lore declarations"))
}
