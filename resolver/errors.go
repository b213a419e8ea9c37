package resolver

import (
	"strings"

	"github.com/c360/lore/ast"
	"github.com/c360/lore/errors"
)

// UnresolvedNamesError lists every name in a file that no `using` or
// `prefix` directive resolves, in the order they occur.
type UnresolvedNamesError struct {
	Filename string
	Names    []ast.Name
}

func (e *UnresolvedNamesError) Error() string {
	var b strings.Builder
	b.WriteString(e.Filename)
	b.WriteString(": unresolved names:")
	for _, n := range e.Names {
		b.WriteString("\n  * ")
		b.WriteString(n.String())
	}
	b.WriteString("\ndid you forget to add a `prefix` alias or a `using` namespace?")
	return b.String()
}

// Is lets callers match errors.ErrUnresolvedNames.
func (e *UnresolvedNamesError) Is(target error) bool {
	return target == errors.ErrUnresolvedNames
}
