package lexer

// Cursor gives one token of lookahead over a Lexer through a single
// buffered slot.
type Cursor struct {
	lex    *Lexer
	slot   Token
	slotOK bool
	peeked bool
}

// NewCursor returns a Cursor over src.
func NewCursor(src string) *Cursor {
	return &Cursor{lex: New(src)}
}

// Peek returns the next token without consuming it.
func (c *Cursor) Peek() (Token, bool) {
	if !c.peeked {
		c.slot, c.slotOK = c.lex.Next()
		c.peeked = true
	}
	return c.slot, c.slotOK
}

// Next consumes and returns the next token.
func (c *Cursor) Next() (Token, bool) {
	if c.peeked {
		c.peeked = false
		return c.slot, c.slotOK
	}
	return c.lex.Next()
}

// Span returns the span of the token the lexer produced last, including a
// token that has only been peeked.
func (c *Cursor) Span() Span {
	return c.lex.Span()
}
