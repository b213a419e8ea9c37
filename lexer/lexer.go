// Package lexer scans Lore source text into tokens.
//
// Tokens are produced on demand. Whitespace is skipped; characters that
// start no token become Illegal tokens so the parser can report them.
// URI-shaped text is matched before identifiers, keywords and numbers and
// the longest match wins, so "dota:ontology" is one URI token rather than
// an identifier followed by a colon.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Lexer produces tokens from one source string.
type Lexer struct {
	src  string
	pos  int
	span Span
}

// New returns a Lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

// Span returns the span of the most recently produced token, or an empty
// span at the end of input once the lexer is exhausted.
func (l *Lexer) Span() Span {
	return l.span
}

// Source returns the text being scanned.
func (l *Lexer) Source() string {
	return l.src
}

// Next returns the next token, or false at the end of input.
func (l *Lexer) Next() (Token, bool) {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		l.span = Span{Start: len(l.src), End: len(l.src)}
		return Token{}, false
	}

	start := l.pos
	tok := l.scan()
	tok.Span = Span{Start: start, End: l.pos}
	l.span = tok.Span
	return tok, true
}

// Tokenize scans the whole source.
func Tokenize(src string) []Token {
	l := New(src)
	var tokens []Token
	for {
		tok, ok := l.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\n', '\f', '\r':
			l.pos++
		default:
			return
		}
	}
}

func (l *Lexer) scan() Token {
	c := l.src[l.pos]
	switch c {
	case '#':
		return l.scanComment()
	case '"':
		return l.scanString()
	case '{':
		l.pos++
		return Token{Kind: OpenBrace}
	case '}':
		l.pos++
		return Token{Kind: ClosedBrace}
	case '/':
		l.pos++
		return Token{Kind: Slash}
	}

	uriLen := matchURI(l.src[l.pos:])
	wordLen := 0
	switch {
	case isLetter(c):
		wordLen = matchRun(l.src[l.pos:], isIdentChar)
	case isDigit(c):
		wordLen = matchRun(l.src[l.pos:], isDigit)
	}

	if uriLen > 0 && uriLen > wordLen {
		text := l.src[l.pos : l.pos+uriLen]
		l.pos += uriLen
		return Token{Kind: URI, Value: text}
	}

	if wordLen > 0 {
		text := l.src[l.pos : l.pos+wordLen]
		l.pos += wordLen
		if isDigit(c) {
			n, err := strconv.ParseUint(text, 10, 64)
			if err != nil {
				return Token{Kind: Illegal, Value: text}
			}
			return Token{Kind: Number, Number: n, Value: text}
		}
		if kw, ok := keywords[text]; ok {
			return Token{Kind: kw, Value: text}
		}
		return Token{Kind: Text, Value: text}
	}

	if c == ':' {
		l.pos++
		return Token{Kind: Colon}
	}

	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	text := l.src[l.pos : l.pos+size]
	l.pos += size
	return Token{Kind: Illegal, Value: text}
}

func (l *Lexer) scanComment() Token {
	rest := l.src[l.pos+1:]
	end := strings.IndexByte(rest, '\n')
	if end < 0 {
		end = len(rest)
	}
	text := strings.TrimSuffix(rest[:end], "\r")
	l.pos += 1 + end
	return Token{Kind: Comment, Value: text}
}

func (l *Lexer) scanString() Token {
	rest := l.src[l.pos:]
	if strings.HasPrefix(rest, `"""`) {
		if n, ok := matchQuoted(rest[3:], `"""`); ok {
			l.pos += 3 + n + 3
			return Token{Kind: MultiLineString, Value: unescape(rest[3 : 3+n])}
		}
	}
	if n, ok := matchQuoted(rest[1:], `"`); ok {
		l.pos += 1 + n + 1
		return Token{Kind: String, Value: unescape(rest[1 : 1+n])}
	}
	l.pos++
	return Token{Kind: Illegal, Value: `"`}
}

// matchQuoted returns the length of the body before the closing delimiter.
// The body may not contain a bare quote; a backslash escapes any byte.
func matchQuoted(s, closing string) (int, bool) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			if strings.HasPrefix(s[i:], closing) {
				return i, true
			}
			return 0, false
		}
	}
	return 0, false
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// matchURI returns the length of a URI token at the start of s, or 0.
// Accepted shapes: scheme ':' opaque, '@' opaque, ':' opaque.
func matchURI(s string) int {
	if s == "" {
		return 0
	}
	var head int
	switch c := s[0]; {
	case c == '@' || c == ':':
		head = 1
	case isSchemeStart(c):
		n := matchRun(s, isSchemeChar)
		if n >= len(s) || s[n] != ':' {
			return 0
		}
		head = n + 1
	default:
		return 0
	}
	body := matchRun(s[head:], isOpaqueChar)
	if body == 0 {
		return 0
	}
	return head + body
}

func matchRun(s string, accept func(byte) bool) int {
	n := 0
	for n < len(s) && accept(s[n]) {
		n++
	}
	return n
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-' || c == '_'
}

func isSchemeStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || isDigit(c)
}

func isSchemeChar(c byte) bool {
	return isSchemeStart(c) || c == '-'
}

func isOpaqueChar(c byte) bool {
	if isLetter(c) || isDigit(c) {
		return true
	}
	return strings.IndexByte("()+,-.:=@;$_!*'%/?#", c) >= 0
}
