package resolver

import (
	"sort"

	"github.com/c360/lore/ast"
	"github.com/c360/lore/parser"
)

// Context holds the directives of one file: the local namespace from the
// last `using`, and every `prefix ... as @alias` mapping.
type Context struct {
	namespace    ast.URI
	hasNamespace bool
	prefixes     map[string]ast.URI
	// aliases ordered longest first, ties lexicographic
	aliases []string
}

// Collect runs the directive pass over the whole tree. Later directives win.
func Collect(tree *parser.ParseTree) *Context {
	ctx := &Context{prefixes: make(map[string]ast.URI)}
	for _, item := range tree.Items {
		switch it := item.(type) {
		case parser.NamespaceItem:
			ctx.namespace = it.URI
			ctx.hasNamespace = true
		case parser.PrefixItem:
			ctx.prefixes[it.Alias] = it.URI
		}
	}

	ctx.aliases = make([]string, 0, len(ctx.prefixes))
	for alias := range ctx.prefixes {
		ctx.aliases = append(ctx.aliases, alias)
	}
	sort.Slice(ctx.aliases, func(i, j int) bool {
		a, b := ctx.aliases[i], ctx.aliases[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	return ctx
}

// Namespace returns the local namespace, if the file declared one.
func (c *Context) Namespace() (ast.URI, bool) {
	return c.namespace, c.hasNamespace
}

// Prefix returns the expansion registered for alias.
func (c *Context) Prefix(alias string) (ast.URI, bool) {
	uri, ok := c.prefixes[alias]
	return uri, ok
}

// Aliases returns the registered prefix aliases in match order.
func (c *Context) Aliases() []string {
	return append([]string(nil), c.aliases...)
}

// ResolveName returns the absolute form of n. The boolean is false when
// no directive applies; n is then returned unchanged.
func (c *Context) ResolveName(n ast.Name) (ast.Name, bool) {
	switch n.State() {
	case ast.NameAlias:
		if !c.hasNamespace {
			return n, false
		}
		return ast.AbsoluteName(c.namespace.Join(n.Alias())), true
	case ast.NamePrefixed:
		raw := n.URI()
		for _, alias := range c.aliases {
			if raw.HasPrefix(alias) {
				return ast.AbsoluteName(raw.ExpandPrefix(alias, c.prefixes[alias])), true
			}
		}
		return n, false
	default:
		return n, true
	}
}
