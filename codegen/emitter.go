// Package codegen generates artifacts in other languages from a populated
// store.
//
// Each target is an Emitter registered by name:
//
//	emitter, err := codegen.ForTarget("graphql")
//	if err != nil {
//	    return err // errors.ErrUnknownTarget
//	}
//	sources, err := emitter.Emit(st)
//	...
//	err = sources.Write("./gen")
//
// Emitters only read the store. Output is deterministic: declarations are
// emitted in URI order.
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360/lore/errors"
	"github.com/c360/lore/store"
)

// Emitter turns a store into source files.
type Emitter interface {
	// Target is the name the emitter is selected by.
	Target() string
	Emit(st *store.Store) (*SourceSet, error)
}

var emitters = map[string]func() Emitter{
	TargetGraphQL: func() Emitter { return NewGraphQLEmitter() },
	TargetYAML:    func() Emitter { return NewYAMLEmitter() },
}

// Targets returns the names of every supported target, sorted.
func Targets() []string {
	out := make([]string, 0, len(emitters))
	for name := range emitters {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ForTarget returns the emitter for name. Names are case-insensitive.
func ForTarget(name string) (Emitter, error) {
	build, ok := emitters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %q (supported: %s)", errors.ErrUnknownTarget, name, strings.Join(Targets(), ", ")),
			"codegen", "ForTarget", "select emitter")
	}
	return build(), nil
}
