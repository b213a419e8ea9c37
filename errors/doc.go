// Package errors provides standardized error handling for the Lore compiler.
//
// # Overview
//
// Errors fall into three classes: Transient (could succeed if repeated),
// Invalid (bad source text, query or configuration) and Fatal (the run
// cannot continue, e.g. an input file cannot be read).
//
// Syntax errors from the parser and unresolved-name errors from the
// resolver are Invalid: they match ErrParsingFailed and ErrUnresolvedNames
// through errors.Is, so callers can branch without importing those packages:
//
//	if errors.Is(err, errors.ErrUnresolvedNames) {
//	    // add a `using` or `prefix` directive
//	}
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions attach a class while wrapping:
//
//	errors.WrapTransient(err, "Component", "Method", "action")
//	errors.WrapInvalid(err, "Component", "Method", "action")
//	errors.WrapFatal(err, "Component", "Method", "action")
//
// The generic Wrap() function keeps whatever class the wrapped error has.
//
// # Integration with errors.As/Is
//
//	var ce *errors.ClassifiedError
//	if errors.As(err, &ce) {
//	    logger.Warn("compile failed", "component", ce.Component, "class", ce.Class)
//	}
//
// Classification and wrapping are safe for concurrent use.
package errors
