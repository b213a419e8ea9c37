package diagnostic

import "github.com/c360/lore/lexer"

func spanOf(start, end int) lexer.Span {
	return lexer.Span{Start: start, End: end}
}
