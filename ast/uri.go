package ast

import "strings"

// URI is an absolute identifier for a declared entity.
type URI string

// Unresolved is the reserved URI rendered for names that have not been resolved yet.
// It is never produced by resolution.
const Unresolved URI = "lore:uri:unresolved"

// PrefixMarker starts every URI that still needs prefix substitution.
const PrefixMarker = "@"

func (u URI) String() string {
	return string(u)
}

// Join appends a path segment.
func (u URI) Join(segment string) URI {
	return URI(string(u) + "/" + segment)
}

// IsPrefixed reports whether the URI is an @alias placeholder.
func (u URI) IsPrefixed() bool {
	return strings.HasPrefix(string(u), PrefixMarker)
}

// HasPrefix reports whether p is a textual prefix of the URI.
func (u URI) HasPrefix(p string) bool {
	return strings.HasPrefix(string(u), p)
}

// ExpandPrefix replaces the leading p with expanded. The URI is returned
// unchanged when p is not a prefix.
func (u URI) ExpandPrefix(p string, expanded URI) URI {
	if !u.HasPrefix(p) {
		return u
	}
	return expanded + u[len(p):]
}

// LastSegment returns the text after the final '/', '#' or ':'.
func (u URI) LastSegment() string {
	s := string(u)
	if i := strings.LastIndexAny(s, "/#:"); i >= 0 {
		return s[i+1:]
	}
	return s
}
