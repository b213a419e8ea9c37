package ast

import "fmt"

// NameState is the resolution state of a Name.
type NameState int

const (
	// NameAbsolute carries a final URI.
	NameAbsolute NameState = iota
	// NameAlias carries a bare identifier waiting for a namespace.
	NameAlias
	// NamePrefixed carries an @alias URI waiting for prefix substitution.
	NamePrefixed
)

// String returns the string representation of NameState
func (s NameState) String() string {
	switch s {
	case NameAbsolute:
		return "absolute"
	case NameAlias:
		return "alias"
	case NamePrefixed:
		return "prefixed"
	default:
		return "unknown"
	}
}

// Name is a reference to a declaration. Exactly one state holds at a time:
// an absolute Name has a URI, an alias Name has only its identifier, and a
// prefixed Name has an @-marked URI that still needs substitution.
type Name struct {
	state NameState
	uri   URI
	alias string
}

// AbsoluteName returns a resolved Name.
func AbsoluteName(uri URI) Name {
	return Name{state: NameAbsolute, uri: uri}
}

// AliasName returns a pending Name for a bare identifier.
func AliasName(alias string) Name {
	return Name{state: NameAlias, alias: alias}
}

// NameOfURI classifies a URI token: @-marked URIs are prefixed placeholders,
// everything else is absolute.
func NameOfURI(uri URI) Name {
	if uri.IsPrefixed() {
		return Name{state: NamePrefixed, uri: uri}
	}
	return AbsoluteName(uri)
}

func (n Name) State() NameState { return n.state }

// URI returns the resolved URI, the raw placeholder for prefixed names, or
// Unresolved for aliases.
func (n Name) URI() URI {
	if n.state == NameAlias {
		return Unresolved
	}
	return n.uri
}

// Alias returns the bare identifier of an alias Name.
func (n Name) Alias() string { return n.alias }

// IsUnresolved is true for alias and prefixed names.
func (n Name) IsUnresolved() bool {
	return n.state != NameAbsolute
}

// String renders the alias for pending names and the URI otherwise.
func (n Name) String() string {
	if n.state == NameAlias {
		return n.alias
	}
	return string(n.uri)
}

// GoString keeps test failure output readable.
func (n Name) GoString() string {
	return fmt.Sprintf("ast.Name{%s %q}", n.state, n.String())
}
