// Package diagnostic renders compiler errors for people.
//
// A syntax error is shown with the offending source line and a pointer
// under the token that triggered it, preceded by a few lines of context.
// Unresolved names are listed one per line with a hint on how to declare
// them. Any other error is printed as is.
//
//	r := diagnostic.New(diagnostic.WithColor(isTerminal))
//	fmt.Fprint(os.Stderr, r.Render(err, source))
package diagnostic

import (
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/c360/lore/lexer"
	"github.com/c360/lore/parser"
	"github.com/c360/lore/resolver"
)

const (
	// DefaultContextLines is how many lines precede the failing line.
	DefaultContextLines = 3

	tabWidth = 4

	unresolvedHelp = "did you forget to add a `prefix` alias or a `using` namespace?"
)

// Renderer formats errors.
type Renderer struct {
	color        bool
	contextLines int
	styles       Styles
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithColor turns styling on or off. Off produces plain text.
func WithColor(enabled bool) Option {
	return func(r *Renderer) {
		r.color = enabled
	}
}

// WithContextLines sets how many lines precede the failing line.
func WithContextLines(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.contextLines = n
		}
	}
}

// WithStyles replaces the colored style set.
func WithStyles(styles Styles) Option {
	return func(r *Renderer) {
		r.styles = styles
	}
}

// New returns a Renderer. Color is on by default; lipgloss drops it on
// its own when the output is not a terminal.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		color:        true,
		contextLines: DefaultContextLines,
		styles:       DefaultStyles(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Write renders err to w.
func (r *Renderer) Write(w io.Writer, err error, source string) error {
	_, werr := io.WriteString(w, r.Render(err, source))
	return werr
}

// Render formats err. source is the text of the file the error came from
// and may be empty when it is not available.
func (r *Renderer) Render(err error, source string) string {
	if err == nil {
		return ""
	}

	var parseErr *parser.ParseError
	if stderrors.As(err, &parseErr) {
		return r.renderParse(parseErr, source)
	}
	var unresolved *resolver.UnresolvedNamesError
	if stderrors.As(err, &unresolved) {
		return r.renderUnresolved(unresolved)
	}

	var b strings.Builder
	b.WriteString(r.paint(r.styles.Severity, "error"))
	b.WriteString(": ")
	b.WriteString(r.paint(r.styles.Message, err.Error()))
	b.WriteByte('\n')
	return b.String()
}

func (r *Renderer) renderParse(e *parser.ParseError, source string) string {
	var b strings.Builder
	b.WriteString(r.paint(r.styles.Severity, "error[syntax]"))
	b.WriteString(": ")
	b.WriteString(r.paint(r.styles.Message, e.Err.Error()))
	b.WriteByte('\n')

	if source == "" && e.Span.Start == 0 {
		fmt.Fprintf(&b, " --> %s\n", r.paint(r.styles.Location, location(e)))
		return b.String()
	}

	lines := strings.Split(source, "\n")
	target := e.Line - 1
	if target >= len(lines) {
		target = len(lines) - 1
	}
	first := max(target-r.contextLines, 0)

	width := len(strconv.Itoa(target + 1))
	pad := strings.Repeat(" ", width)
	bar := r.paint(r.styles.Gutter, "|")

	fmt.Fprintf(&b, "%s--> %s\n", pad, r.paint(r.styles.Location, location(e)))
	fmt.Fprintf(&b, "%s %s\n", pad, bar)
	for i := first; i <= target; i++ {
		number := r.paint(r.styles.Gutter, fmt.Sprintf("%*d", width, i+1))
		fmt.Fprintf(&b, "%s %s %s\n", number, bar, expandTabs(strings.TrimSuffix(lines[i], "\r")))
	}

	offset, length := pointer(source, e.Span)
	marker := strings.Repeat(" ", offset) + r.paint(r.styles.Pointer, strings.Repeat("^", length))
	fmt.Fprintf(&b, "%s %s %s\n", pad, bar, marker)

	if e.Kind() == parser.IncompleteFieldBlock {
		b.WriteString(r.paint(r.styles.Help, "help: every `{` opening a field block needs a matching `}`"))
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Renderer) renderUnresolved(e *resolver.UnresolvedNamesError) string {
	var b strings.Builder
	b.WriteString(r.paint(r.styles.Severity, "error[unresolved]"))
	b.WriteString(": ")
	noun := "names"
	if len(e.Names) == 1 {
		noun = "name"
	}
	b.WriteString(r.paint(r.styles.Message, fmt.Sprintf("%d unresolved %s", len(e.Names), noun)))
	b.WriteByte('\n')
	if e.Filename != "" {
		fmt.Fprintf(&b, " --> %s\n", r.paint(r.styles.Location, e.Filename))
	}
	for _, n := range e.Names {
		fmt.Fprintf(&b, "  * %s\n", r.paint(r.styles.Name, n.String()))
	}
	b.WriteString(r.paint(r.styles.Help, "help: "+unresolvedHelp))
	b.WriteByte('\n')
	return b.String()
}

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

func location(e *parser.ParseError) string {
	return fmt.Sprintf("%s:%d:%d", e.Filename, e.Line, e.Column)
}

// pointer returns the display column of span within its line and the
// width of the marker. Spans running past the line are cut at its end;
// empty spans get a single marker.
func pointer(source string, span lexer.Span) (int, int) {
	line, lineStart := lexer.LineAt(source, span.Start)
	start := min(max(span.Start-lineStart, 0), len(line))
	end := min(max(span.End-lineStart, start), len(line))

	offset := displayWidth(line[:start])
	length := displayWidth(line[:end]) - offset
	return offset, max(length, 1)
}

func displayWidth(s string) int {
	return utf8.RuneCountInString(expandTabs(s))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
