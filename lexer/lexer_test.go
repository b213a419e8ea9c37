package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kv struct {
	kind  TokenKind
	value string
}

func scan(src string) []kv {
	var out []kv
	for _, tok := range Tokenize(src) {
		out = append(out, kv{tok.Kind, tok.Value})
	}
	return out
}

func TestLexer_Tokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []kv
	}{
		{
			name:     "comment",
			input:    `# spotify:artist:2Hkut4rAAyrQxRdof7FVJq `,
			expected: []kv{{Comment, " spotify:artist:2Hkut4rAAyrQxRdof7FVJq "}},
		},
		{
			name:     "comment stops at end of line",
			input:    "# one\r\nkind",
			expected: []kv{{Comment, " one"}, {Kind, "kind"}},
		},
		{
			name:     "single line string",
			input:    ` "spotify:artist:2Hkut4rAAyrQxRdof7FVJq" `,
			expected: []kv{{String, "spotify:artist:2Hkut4rAAyrQxRdof7FVJq"}},
		},
		{
			name:     "empty string",
			input:    ` "" `,
			expected: []kv{{String, ""}},
		},
		{
			name:     "escaped quote",
			input:    `"say \"hi\"\n"`,
			expected: []kv{{String, "say \"hi\"\n"}},
		},
		{
			name:     "multi line string",
			input:    "\"\"\"\n  first\n  second\n\"\"\"",
			expected: []kv{{MultiLineString, "\n  first\n  second\n"}},
		},
		{
			name:     "uri",
			input:    ` spotify:artist:2Hkut4rAAyrQxRdof7FVJq `,
			expected: []kv{{URI, "spotify:artist:2Hkut4rAAyrQxRdof7FVJq"}},
		},
		{
			name:     "using namespace",
			input:    ` using spotify:schema/2021 `,
			expected: []kv{{Using, "using"}, {URI, "spotify:schema/2021"}},
		},
		{
			name:     "prefix",
			input:    ` prefix spotify:schema/2021 as @spotify `,
			expected: []kv{{Prefix, "prefix"}, {URI, "spotify:schema/2021"}, {As, "as"}, {URI, "@spotify"}},
		},
		{
			name:     "prefixed uri",
			input:    ` @spotify/schema/2021 `,
			expected: []kv{{URI, "@spotify/schema/2021"}},
		},
		{
			name:     "leading colon uri",
			input:    `:symmetric`,
			expected: []kv{{URI, ":symmetric"}},
		},
		{
			name:     "lowercase kind name",
			input:    ` kind u `,
			expected: []kv{{Kind, "kind"}, {Text, "u"}},
		},
		{
			name:     "kind with body",
			input:    `kind User { }`,
			expected: []kv{{Kind, "kind"}, {Text, "User"}, {OpenBrace, ""}, {ClosedBrace, ""}},
		},
		{
			name:     "attribute in",
			input:    `attr Name in User`,
			expected: []kv{{Attr, "attr"}, {Text, "Name"}, {In, "in"}, {Text, "User"}},
		},
		{
			name:     "field with separated colon",
			input:    `range: integer`,
			expected: []kv{{Text, "range"}, {Colon, ""}, {Text, "integer"}},
		},
		{
			name:     "keyword prefix of identifier",
			input:    `kinds asx relation`,
			expected: []kv{{Text, "kinds"}, {Text, "asx"}, {Text, "relation"}},
		},
		{
			name:     "uppercase scheme is not a uri",
			input:    `Hero:x`,
			expected: []kv{{Text, "Hero"}, {URI, ":x"}},
		},
		{
			name:     "number",
			input:    `1234`,
			expected: []kv{{Number, "1234"}},
		},
		{
			name:     "digit scheme",
			input:    `2022:rev`,
			expected: []kv{{URI, "2022:rev"}},
		},
		{
			name:     "slash",
			input:    `a / b`,
			expected: []kv{{Text, "a"}, {Slash, ""}, {Text, "b"}},
		},
		{
			name:     "illegal characters",
			input:    `kind ~ é`,
			expected: []kv{{Kind, "kind"}, {Illegal, "~"}, {Illegal, "é"}},
		},
		{
			name:     "unterminated string",
			input:    `"abc`,
			expected: []kv{{Illegal, `"`}, {Text, "abc"}},
		},
		{
			name:     "lone at sign",
			input:    `@ x`,
			expected: []kv{{Illegal, "@"}, {Text, "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scan(tt.input))
		})
	}
}

func TestLexer_AttrWithFields(t *testing.T) {
	src := `
		attr Name {
			@label/en "Name"
			@label/es "Nombre"
			@comment/en ""
			@see-also    @other/entity

			@symmetry       :symmetric
			@reflexivity    :reflexive

			@domain      User
			@range       @lore/string
			@cardinality 1
		}
	`
	expected := []kv{
		{Attr, "attr"}, {Text, "Name"}, {OpenBrace, ""},
		{URI, "@label/en"}, {String, "Name"},
		{URI, "@label/es"}, {String, "Nombre"},
		{URI, "@comment/en"}, {String, ""},
		{URI, "@see-also"}, {URI, "@other/entity"},
		{URI, "@symmetry"}, {URI, ":symmetric"},
		{URI, "@reflexivity"}, {URI, ":reflexive"},
		{URI, "@domain"}, {Text, "User"},
		{URI, "@range"}, {URI, "@lore/string"},
		{URI, "@cardinality"}, {Number, "1"},
		{ClosedBrace, ""},
	}
	assert.Equal(t, expected, scan(src))
}

func TestLexer_URIShapesAreSingleTokens(t *testing.T) {
	inputs := []string{
		"dota:ontology:2022",
		"spotify:kind:artist",
		"lore:v1/doc",
		"urn:isbn:0451450523",
		"http://example.com/a?b=c#frag",
		"@alias/rest",
		"@X/suffix/more",
		"a-b:c(d)+e,f.g=h;i$j_k!l*m'n%o",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tokens := Tokenize(input)
			require.Len(t, tokens, 1)
			assert.Equal(t, URI, tokens[0].Kind)
			assert.Equal(t, input, tokens[0].Value)
		})
	}
}

func TestLexer_Spans(t *testing.T) {
	l := New("kind  Hero")

	tok, ok := l.Next()
	require.True(t, ok)
	assert.Equal(t, Span{Start: 0, End: 4}, tok.Span)

	tok, ok = l.Next()
	require.True(t, ok)
	assert.Equal(t, Span{Start: 6, End: 10}, tok.Span)
	assert.Equal(t, tok.Span, l.Span())

	_, ok = l.Next()
	assert.False(t, ok)
	assert.Equal(t, Span{Start: 10, End: 10}, l.Span())
}

func TestLexer_Restartable(t *testing.T) {
	src := "using a:b kind C"
	assert.Equal(t, Tokenize(src), Tokenize(src))
}

func TestCursor_PeekThenNext(t *testing.T) {
	c := NewCursor("kind Hero")

	peeked, ok := c.Peek()
	require.True(t, ok)
	assert.Equal(t, Kind, peeked.Kind)

	again, _ := c.Peek()
	assert.Equal(t, peeked, again)

	next, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, peeked, next)

	next, ok = c.Next()
	require.True(t, ok)
	assert.Equal(t, "Hero", next.Value)

	_, ok = c.Peek()
	assert.False(t, ok)
	_, ok = c.Next()
	assert.False(t, ok)
}

func TestPositionOf(t *testing.T) {
	src := "kind A\n  attr é B"
	assert.Equal(t, Position{Line: 1, Column: 1}, PositionOf(src, 0))
	assert.Equal(t, Position{Line: 2, Column: 3}, PositionOf(src, 9))
	assert.Equal(t, Position{Line: 2, Column: 11}, PositionOf(src, len(src)))

	line, start := LineAt(src, 9)
	assert.Equal(t, "  attr é B", line)
	assert.Equal(t, 7, start)
}
