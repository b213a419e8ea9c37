package parser

import (
	"fmt"

	"github.com/c360/lore/errors"
	"github.com/c360/lore/lexer"
)

// SyntaxErrorKind names the malformed construct.
type SyntaxErrorKind int

const (
	ExpectedURI SyntaxErrorKind = iota
	UsingExpectsURI
	PrefixExpectsURI
	PrefixMissingAs
	PrefixMissingAlias
	PrefixAliasMissingAt
	KindMissingName
	AttributeMissingName
	NameMissing
	NameInvalid
	RelationMissingSubject
	RelationMissingPredicate
	RelationMissingObject
	ExpectedTopLevelItem
	IncompleteFieldBlock
	FieldExpectedLiteral
	InvalidLiteral
)

const prefixFormat = "the `prefix` syntax should follow the format `prefix <uri> as @<name>`"
const relFormat = "the `rel` syntax should follow the format `rel <subject> <predicate> <object>`"

var syntaxMessages = map[SyntaxErrorKind]string{
	ExpectedURI:              "expected a URI",
	UsingExpectsURI:          "the `using` syntax expects a URI",
	PrefixExpectsURI:         prefixFormat + ", but the URI is missing",
	PrefixMissingAs:          prefixFormat + ", did you forget the `as`?",
	PrefixMissingAlias:       prefixFormat + ", did you forget to specify a name?",
	PrefixAliasMissingAt:     prefixFormat + ", did you forget the @ before the prefix name?",
	KindMissingName:          "the `kind <name>` syntax is missing a name",
	AttributeMissingName:     "the `attr <name>` syntax is missing a name",
	NameMissing:              "expected a name, did you forget it?",
	NameInvalid:              "expected a name (an alias or a URI) but found something else",
	RelationMissingSubject:   relFormat + ", the subject is missing or invalid",
	RelationMissingPredicate: relFormat + ", the predicate is missing or invalid",
	RelationMissingObject:    relFormat + ", the object is missing or invalid",
	ExpectedTopLevelItem:     "expected `using`, `prefix`, `kind`, `attr`, `rel` or a comment",
	IncompleteFieldBlock:     "did you forget to close this block with a `}`?",
	FieldExpectedLiteral:     "every field must have a string, a number or a name on the right side",
	InvalidLiteral:           "expected a string, a number or a name",
}

func (k SyntaxErrorKind) String() string {
	if msg, ok := syntaxMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("syntax error %d", int(k))
}

// SyntaxError is a malformed construct. Token is the offending token, nil
// when the input ended. Cause is the narrower error that triggered this
// one, such as NameMissing under RelationMissingObject.
type SyntaxError struct {
	Kind  SyntaxErrorKind
	Token *lexer.Token
	Cause *SyntaxError
}

func (e *SyntaxError) Error() string {
	msg := e.Kind.String()
	if e.Token != nil {
		msg = fmt.Sprintf("%s (found %s)", msg, e.Token)
	} else if e.Kind != IncompleteFieldBlock {
		msg += " (found end of input)"
	}
	return msg
}

// Unwrap exposes the cause, if any.
func (e *SyntaxError) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

// Is matches another SyntaxError of the same kind.
func (e *SyntaxError) Is(target error) bool {
	t, ok := target.(*SyntaxError)
	return ok && t.Kind == e.Kind
}

func syntaxErr(kind SyntaxErrorKind, tok lexer.Token, ok bool) *SyntaxError {
	e := &SyntaxError{Kind: kind}
	if ok {
		t := tok
		e.Token = &t
	}
	return e
}

// ParseError is a syntax error located in a file.
type ParseError struct {
	Filename string
	Span     lexer.Span
	Line     int
	Column   int
	Err      *SyntaxError
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Err.Error())
}

// Kind returns the kind of the underlying syntax error.
func (e *ParseError) Kind() SyntaxErrorKind {
	return e.Err.Kind
}

// Token returns the offending token, or nil at end of input.
func (e *ParseError) Token() *lexer.Token {
	return e.Err.Token
}

// Unwrap returns the syntax error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is lets callers match errors.ErrParsingFailed.
func (e *ParseError) Is(target error) bool {
	return target == errors.ErrParsingFailed
}
