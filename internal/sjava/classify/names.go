package classify

import (
	"regexp"
	"strings"

	"martianoff/sjavac/internal/sjava"
)

var (
	variableNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	methodNameRe   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
)

// IsIdentifier reports whether tok has the shape of a variable reference.
// Boolean literals are not identifiers.
func IsIdentifier(tok string) bool {
	return variableNameRe.MatchString(tok) && tok != "true" && tok != "false"
}

// IsLegalVariableName checks the naming rules for variables and parameters:
// a lone underscore, a double underscore anywhere and reserved words are
// rejected.
func IsLegalVariableName(name string) bool {
	if !variableNameRe.MatchString(name) {
		return false
	}
	if name == "_" || strings.Contains(name, "__") {
		return false
	}
	return !sjava.IsReservedWord(name)
}

// IsLegalMethodName checks the naming rules for methods: a letter first and
// no double underscore.
func IsLegalMethodName(name string) bool {
	if !methodNameRe.MatchString(name) || strings.Contains(name, "__") {
		return false
	}
	return !sjava.IsReservedWord(name)
}
