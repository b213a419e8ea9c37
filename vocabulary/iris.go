package vocabulary

import (
	"strings"
)

// Base IRI constants for the Lore vocabulary
const (
	LoreBase      = "https://lore-lang.org/v1/"
	LoreNamespace = LoreBase
)

// Lore terms
const (
	// LoreType records which declaration produced a resource.
	LoreType = LoreBase + "type"

	LoreKind      = LoreBase + "Kind"
	LoreAttribute = LoreBase + "Attribute"
	LoreRelation  = LoreBase + "Relation"

	// LoreSourceFile names the file a declaration was compiled from.
	LoreSourceFile = LoreBase + "sourceFile"
)

// SourceFileIRI converts a file path into a file: IRI.
//
// Examples:
//   - "schemas/dota.lore" -> "file:schemas/dota.lore"
//   - "/abs/dota.lore" -> "file:///abs/dota.lore"
//
// Returns empty string for empty input.
func SourceFileIRI(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	path = strings.ReplaceAll(path, "\\", "/")
	if strings.HasPrefix(path, "/") {
		return "file://" + path
	}
	return "file:" + path
}
