// Package validator checks the per-construct rules of s-Java: variable
// declarations and assignments, method declarations and calls, and
// if/while conditions. Validators share one symbol table owned by the
// analyzer and keep no state of their own between calls.
package validator

import (
	"martianoff/sjavac/internal/sjava"
	"martianoff/sjavac/internal/sjava/classify"
	"martianoff/sjavac/internal/sjava/symbols"
	"martianoff/sjavac/sjavacerr"
)

// Options tunes rule variants.
type Options struct {
	// StrictCallArguments rejects declared but uninitialized variables passed
	// as method call arguments.
	StrictCallArguments bool
}

// DefaultOptions returns the strict rule set.
func DefaultOptions() Options {
	return Options{StrictCallArguments: true}
}

// checkValue verifies that value may be stored into a variable of type
// target. Variable references must be initialized and of the exact same
// type; literals follow classify.AcceptsLiteral.
func checkValue(tbl *symbols.Table, target sjava.Type, targetName, value string) error {
	if classify.IsIdentifier(value) {
		src, _, ok := tbl.Lookup(value)
		if !ok {
			return sjavacerr.Newf(sjavacerr.TypeUnknownIdentifier,
				"variable '%s' is not declared", value)
		}
		if !src.Initialized {
			return sjavacerr.Newf(sjavacerr.TypeUninitializedUse,
				"variable '%s' is used before it is initialized", value)
		}
		if src.Type != target {
			return sjavacerr.Newf(sjavacerr.TypeMismatch,
				"cannot assign '%s' of type %s to '%s' of type %s", value, src.Type, targetName, target)
		}
		return nil
	}
	if !classify.AcceptsLiteral(target, value) {
		return sjavacerr.Newf(sjavacerr.TypeMismatch,
			"cannot assign value '%s' to '%s' of type %s", value, targetName, target)
	}
	return nil
}
