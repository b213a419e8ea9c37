package lexer

// Position is a 1-based line and column. Columns count runes.
type Position struct {
	Line   int
	Column int
}

// PositionOf converts a byte offset in src into a Position. Offsets past
// the end are clamped.
func PositionOf(src string, offset int) Position {
	if offset > len(src) {
		offset = len(src)
	}
	if offset < 0 {
		offset = 0
	}
	pos := Position{Line: 1, Column: 1}
	for _, r := range src[:offset] {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
			continue
		}
		pos.Column++
	}
	return pos
}

// LineAt returns the text of the line containing offset, without its
// terminator, and the byte offset where that line starts.
func LineAt(src string, offset int) (string, int) {
	if offset > len(src) {
		offset = len(src)
	}
	start := offset
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := offset
	for end < len(src) && src[end] != '\n' {
		end++
	}
	line := src[start:end]
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line, start
}
