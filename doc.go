// Package lore is a compiler front-end for Lore, a small language for
// describing ontologies.
//
// A Lore file declares Kinds (classes), Attributes (properties) and
// Relations (subject-predicate-object templates). Every declaration is
// named by an absolute URI or by an alias that the file's own directives
// resolve:
//
//	using dota:ontology:2022
//	prefix https://schema.org as @schema
//
//	# Heroes carry items
//	kind Hero { label "Hero" }
//	kind Item
//	attr Name
//
//	rel Hero hasOne Name
//	rel Hero carries Item { max 6 }
//	rel Hero sameAs @schema/Person
//
// # Pipeline
//
//	source text
//	     │
//	     ▼
//	┌─────────┐   tokens   ┌─────────┐  parse tree  ┌──────────┐
//	│  lexer  │──────────▶ │ parser  │────────────▶ │ resolver │
//	└─────────┘            └─────────┘              └──────────┘
//	                                                     │ ast.Structure
//	                                                     ▼
//	                       ┌──────────┐            ┌─────────┐
//	                       │ codegen  │ ◀──────────│  store  │ ◀── query
//	                       └──────────┘            └─────────┘
//
// The lexer, parser and resolver are pure: they take a filename and the
// source text and return either a resolved ast.Structure or a structured
// error (*parser.ParseError, *resolver.UnresolvedNamesError). Parsing stops
// at the first syntax error; resolution reports every unresolved name in
// the file.
//
// # Packages
//
//   - ast: URIs, names and the resolved declaration set
//   - lexer: tokens, the lexer and the one-token lookahead cursor
//   - parser: recursive-descent parser producing a parse tree
//   - resolver: `using` and `prefix` directive collection and name resolution
//   - store: in-memory index of declarations as triples, with pattern queries
//   - codegen: GraphQL SDL and YAML manifest emitters
//   - compiler: per-file pipeline and parallel compilation on pkg/worker
//   - config: project configuration from YAML, TOML or JSON
//   - diagnostic: human-readable rendering of compiler errors
//   - errors: classified errors (transient, invalid, fatal)
//   - metric: Prometheus metrics and textfile export
//   - vocabulary: RDF, RDFS, OWL, XSD and Lore IRIs and prefixes
//
// # Command Line
//
//	lore validate schemas/*.lore
//	lore query -q '?kind a owl:Class' schemas/*.lore
//	lore codegen --target graphql -o ./gen schemas/*.lore
//
// See cmd/lore for flags and configuration.
package lore
