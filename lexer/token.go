package lexer

import "fmt"

// TokenKind classifies a token.
type TokenKind int

const (
	Illegal TokenKind = iota
	Comment
	Using
	Prefix
	As
	Kind
	Attr
	Rel
	In
	Colon
	String
	MultiLineString
	OpenBrace
	ClosedBrace
	Slash
	URI
	Text
	Number
)

var tokenNames = map[TokenKind]string{
	Illegal:         "illegal",
	Comment:         "comment",
	Using:           "using",
	Prefix:          "prefix",
	As:              "as",
	Kind:            "kind",
	Attr:            "attr",
	Rel:             "rel",
	In:              "in",
	Colon:           ":",
	String:          "string",
	MultiLineString: "multi-line string",
	OpenBrace:       "{",
	ClosedBrace:     "}",
	Slash:           "/",
	URI:             "uri",
	Text:            "identifier",
	Number:          "number",
}

var keywords = map[string]TokenKind{
	"using":  Using,
	"prefix": Prefix,
	"as":     As,
	"kind":   Kind,
	"attr":   Attr,
	"rel":    Rel,
	"in":     In,
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(k))
}

// Span is a half-open byte range [Start, End) into the source.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Token is a classified piece of source text. Value holds the payload for
// Comment, String, MultiLineString, URI and Text tokens (decoded for strings,
// without the marker for comments); Number holds the value of Number tokens.
type Token struct {
	Kind   TokenKind
	Value  string
	Number uint64
	Span   Span
}

func (t Token) String() string {
	switch t.Kind {
	case Comment:
		return "#" + t.Value
	case String:
		return fmt.Sprintf("%q", t.Value)
	case MultiLineString:
		return `"""` + t.Value + `"""`
	case URI, Text, Illegal:
		return t.Value
	case Number:
		return fmt.Sprintf("%d", t.Number)
	default:
		return t.Kind.String()
	}
}
