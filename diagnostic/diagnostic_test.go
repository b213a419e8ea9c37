package diagnostic

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/lore/parser"
	"github.com/c360/lore/resolver"
)

func parseErr(t *testing.T, src string) error {
	t.Helper()
	_, err := parser.Parse("bad.lore", src)
	require.Error(t, err)
	return err
}

func plain(opts ...Option) *Renderer {
	return New(append([]Option{WithColor(false)}, opts...)...)
}

func TestRender_SyntaxError(t *testing.T) {
	src := "using dota:x\nkind 42\n"
	out := plain().Render(parseErr(t, src), src)

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	assert.True(t, strings.HasPrefix(lines[0], "error[syntax]: the `kind <name>` syntax is missing a name"))
	assert.Contains(t, lines[0], "42")
	assert.Equal(t, []string{
		" --> bad.lore:2:6",
		"  |",
		"1 | using dota:x",
		"2 | kind 42",
		"  |      ^^",
		"",
	}, lines[1:])
}

func TestRender_EndOfInput(t *testing.T) {
	src := "kind Hero {\n  label\n"
	out := plain().Render(parseErr(t, src), src)

	assert.Equal(t, strings.Join([]string{
		"error[syntax]: did you forget to close this block with a `}`?",
		" --> bad.lore:3:1",
		"  |",
		"1 | kind Hero {",
		"2 |   label",
		"3 | ",
		"  | ^",
		"help: every `{` opening a field block needs a matching `}`",
		"",
	}, "\n"), out)
}

func TestRender_Tabs(t *testing.T) {
	src := "kind\t{"
	out := plain().Render(parseErr(t, src), src)
	assert.Contains(t, out, "1 | kind    {\n")
	assert.Contains(t, out, "  |         ^\n")
}

func TestRender_ContextLines(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 9; i++ {
		fmt.Fprintf(&b, "# line %d\n", i)
	}
	b.WriteString("rel A b\n")
	src := b.String()

	out := plain(WithContextLines(1)).Render(parseErr(t, src), src)
	assert.Contains(t, out, "  --> bad.lore:11:1\n")
	assert.Contains(t, out, "10 | rel A b\n")
	assert.Contains(t, out, "11 | \n")
	assert.NotContains(t, out, "# line 9")
}

func TestRender_WrappedParseError(t *testing.T) {
	src := "}"
	err := fmt.Errorf("compile: %w", parseErr(t, src))
	out := plain().Render(err, src)
	assert.True(t, strings.HasPrefix(out, "error[syntax]: "))
	assert.Contains(t, out, "1 | }\n")
	assert.Contains(t, out, "  | ^\n")
}

func TestRender_Unresolved(t *testing.T) {
	tree, err := parser.Parse("band.lore", "kind Band\nkind @inst/Guitar\n")
	require.NoError(t, err)
	_, err = resolver.Resolve(tree)
	require.Error(t, err)

	out := plain().Render(err, "")
	assert.Equal(t, strings.Join([]string{
		"error[unresolved]: 2 unresolved names",
		" --> band.lore",
		"  * Band",
		"  * @inst/Guitar",
		"help: did you forget to add a `prefix` alias or a `using` namespace?",
		"",
	}, "\n"), out)
}

func TestRender_UnresolvedSingular(t *testing.T) {
	err := &resolver.UnresolvedNamesError{}
	tree, perr := parser.Parse("", "attr Name")
	require.NoError(t, perr)
	_, rerr := resolver.Resolve(tree)
	require.True(t, stderrors.As(rerr, &err))

	out := plain().Render(rerr, "")
	assert.True(t, strings.HasPrefix(out, "error[unresolved]: 1 unresolved name\n"))
	assert.NotContains(t, out, "-->")
}

func TestRender_OtherErrors(t *testing.T) {
	r := plain()
	assert.Equal(t, "", r.Render(nil, ""))
	assert.Equal(t, "error: boom\n", r.Render(stderrors.New("boom"), ""))
}

func TestRender_Color(t *testing.T) {
	src := "kind 42"
	out := New().Render(parseErr(t, src), src)
	assert.Contains(t, out, "kind 42")
	assert.Contains(t, out, "^^")
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, plain().Write(&buf, stderrors.New("boom"), ""))
	assert.Equal(t, "error: boom\n", buf.String())
}

func TestPointer(t *testing.T) {
	tests := []struct {
		name   string
		source string
		start  int
		end    int
		offset int
		length int
	}{
		{name: "token", source: "kind Hero", start: 5, end: 9, offset: 5, length: 4},
		{name: "empty span", source: "kind", start: 4, end: 4, offset: 4, length: 1},
		{name: "second line", source: "a\nbc d", start: 5, end: 6, offset: 3, length: 1},
		{name: "span past line end", source: "ab\ncd", start: 1, end: 5, offset: 1, length: 1},
		{name: "multibyte", source: "é x", start: 3, end: 4, offset: 2, length: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, length := pointer(tt.source, spanOf(tt.start, tt.end))
			assert.Equal(t, tt.offset, offset)
			assert.Equal(t, tt.length, length)
		})
	}
}
