// Package parser turns Lore source text into a parse tree.
//
// Parsing is all or nothing: the first syntax error aborts the file and no
// partial tree is returned. Names in the tree may still be aliases or
// prefixed placeholders; the resolver makes them absolute.
package parser

import (
	"github.com/c360/lore/ast"
	"github.com/c360/lore/lexer"
)

// Parser parses one source file.
type Parser struct {
	filename string
	source   string
}

// New returns a Parser for source. The filename is only used in errors.
func New(filename, source string) *Parser {
	return &Parser{filename: filename, source: source}
}

// Parse parses filename's source in one call.
func Parse(filename, source string) (*ParseTree, error) {
	return New(filename, source).Parse()
}

// Parse returns the parse tree or a *ParseError. The error span is the
// span of the last token read when the failure was detected.
func (p *Parser) Parse() (*ParseTree, error) {
	cur := lexer.NewCursor(p.source)
	items, err := parseItems(cur)
	if err != nil {
		span := cur.Span()
		pos := lexer.PositionOf(p.source, span.Start)
		return nil, &ParseError{
			Filename: p.filename,
			Span:     span,
			Line:     pos.Line,
			Column:   pos.Column,
			Err:      err,
		}
	}
	return &ParseTree{Filename: p.filename, Items: items}, nil
}

func parseItems(cur *lexer.Cursor) ([]Item, *SyntaxError) {
	var items []Item
	for {
		tok, ok := cur.Next()
		if !ok {
			return items, nil
		}
		item, err := parseItem(cur, tok)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func parseItem(cur *lexer.Cursor, tok lexer.Token) (Item, *SyntaxError) {
	switch tok.Kind {
	case lexer.Using:
		return parseUsing(cur)
	case lexer.Prefix:
		return parsePrefix(cur)
	case lexer.Kind:
		return parseKind(cur)
	case lexer.Attr:
		return parseAttr(cur)
	case lexer.Rel:
		return parseRel(cur)
	case lexer.Comment:
		return CommentItem{Text: tok.Value}, nil
	default:
		return nil, syntaxErr(ExpectedTopLevelItem, tok, true)
	}
}

func parseURI(cur *lexer.Cursor) (ast.URI, *SyntaxError) {
	tok, ok := cur.Next()
	if !ok || tok.Kind != lexer.URI {
		return "", syntaxErr(ExpectedURI, tok, ok)
	}
	return ast.URI(tok.Value), nil
}

func parseName(cur *lexer.Cursor) (ast.Name, *SyntaxError) {
	tok, ok := cur.Next()
	if !ok {
		return ast.Name{}, &SyntaxError{Kind: NameMissing}
	}
	switch tok.Kind {
	case lexer.URI:
		return ast.NameOfURI(ast.URI(tok.Value)), nil
	case lexer.Text:
		return ast.AliasName(tok.Value), nil
	default:
		return ast.Name{}, syntaxErr(NameInvalid, tok, true)
	}
}

// within re-labels a name error with the construct that needed the name.
func within(kind SyntaxErrorKind, cause *SyntaxError) *SyntaxError {
	return &SyntaxError{Kind: kind, Token: cause.Token, Cause: cause}
}

func parseUsing(cur *lexer.Cursor) (Item, *SyntaxError) {
	uri, err := parseURI(cur)
	if err != nil {
		return nil, within(UsingExpectsURI, err)
	}
	return NamespaceItem{URI: uri}, nil
}

func parsePrefix(cur *lexer.Cursor) (Item, *SyntaxError) {
	uri, err := parseURI(cur)
	if err != nil {
		return nil, within(PrefixExpectsURI, err)
	}

	tok, ok := cur.Next()
	if !ok || tok.Kind != lexer.As {
		return nil, syntaxErr(PrefixMissingAs, tok, ok)
	}

	tok, ok = cur.Next()
	switch {
	case !ok:
		return nil, syntaxErr(PrefixMissingAlias, tok, ok)
	case tok.Kind == lexer.Text:
		return nil, syntaxErr(PrefixAliasMissingAt, tok, ok)
	case tok.Kind != lexer.URI:
		return nil, syntaxErr(PrefixMissingAlias, tok, ok)
	case !ast.URI(tok.Value).IsPrefixed():
		return nil, syntaxErr(PrefixAliasMissingAt, tok, ok)
	}

	return PrefixItem{URI: uri, Alias: tok.Value}, nil
}

func parseKind(cur *lexer.Cursor) (Item, *SyntaxError) {
	name, err := parseName(cur)
	if err != nil {
		return nil, within(KindMissingName, err)
	}
	fields, err := parseFields(cur)
	if err != nil {
		return nil, err
	}
	return KindItem{Name: name, Fields: fields}, nil
}

func parseAttr(cur *lexer.Cursor) (Item, *SyntaxError) {
	name, err := parseName(cur)
	if err != nil {
		return nil, within(AttributeMissingName, err)
	}
	fields, err := parseFields(cur)
	if err != nil {
		return nil, err
	}
	return AttributeItem{Name: name, Fields: fields}, nil
}

func parseRel(cur *lexer.Cursor) (Item, *SyntaxError) {
	subject, err := parseName(cur)
	if err != nil {
		return nil, within(RelationMissingSubject, err)
	}
	predicate, err := parseName(cur)
	if err != nil {
		return nil, within(RelationMissingPredicate, err)
	}
	object, err := parseName(cur)
	if err != nil {
		return nil, within(RelationMissingObject, err)
	}
	fields, err := parseFields(cur)
	if err != nil {
		return nil, err
	}
	return RelationItem{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
		Fields:    fields,
	}, nil
}

// parseFields parses an optional `{ ... }` block. A missing block is an
// empty field list. The block closes only where a field could start, so a
// key followed directly by `}` is FieldExpectedLiteral rather than a
// silently dropped field.
func parseFields(cur *lexer.Cursor) ([]ast.Field, *SyntaxError) {
	if tok, ok := cur.Peek(); !ok || tok.Kind != lexer.OpenBrace {
		return nil, nil
	}
	cur.Next()

	var fields []ast.Field
	for {
		tok, ok := cur.Peek()
		for ok && tok.Kind == lexer.Comment {
			cur.Next()
			tok, ok = cur.Peek()
		}
		if !ok {
			return nil, &SyntaxError{Kind: IncompleteFieldBlock}
		}
		if tok.Kind == lexer.ClosedBrace {
			cur.Next()
			return fields, nil
		}

		field, err := parseField(cur)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
}

func parseField(cur *lexer.Cursor) (ast.Field, *SyntaxError) {
	name, err := parseName(cur)
	if err != nil {
		return ast.Field{}, err
	}
	value, err := parseLiteral(cur)
	if err != nil {
		return ast.Field{}, err
	}
	return ast.Field{Name: name, Value: value}, nil
}

func parseLiteral(cur *lexer.Cursor) (ast.Literal, *SyntaxError) {
	tok, ok := cur.Next()
	if !ok {
		return ast.Literal{}, &SyntaxError{Kind: IncompleteFieldBlock}
	}
	switch tok.Kind {
	case lexer.String, lexer.MultiLineString:
		return ast.StringLiteral(tok.Value), nil
	case lexer.Number:
		return ast.NumberLiteral(tok.Number), nil
	case lexer.URI:
		return ast.NameLiteral(ast.NameOfURI(ast.URI(tok.Value))), nil
	case lexer.Text:
		return ast.NameLiteral(ast.AliasName(tok.Value)), nil
	case lexer.ClosedBrace:
		return ast.Literal{}, syntaxErr(FieldExpectedLiteral, tok, true)
	default:
		return ast.Literal{}, syntaxErr(InvalidLiteral, tok, true)
	}
}
