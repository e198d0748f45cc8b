// Package classify maps one trimmed s-Java source line to the construct it
// represents. Line shapes overlap, so they are tried in a fixed priority
// order; the first shape that matches wins.
package classify

import (
	"regexp"
	"strings"

	"martianoff/sjavac/internal/sjava"
	"martianoff/sjavac/sjavacerr"
)

// Kind is the construct category of a line.
type Kind int

const (
	KindSkip Kind = iota
	KindCloseScope
	KindDeclaration
	KindMethodDeclaration
	KindBlock
	KindAssignment
	KindMethodCall
	KindReturn
)

func (k Kind) String() string {
	switch k {
	case KindSkip:
		return "skip"
	case KindCloseScope:
		return "close-scope"
	case KindDeclaration:
		return "declaration"
	case KindMethodDeclaration:
		return "method-declaration"
	case KindBlock:
		return "block"
	case KindAssignment:
		return "assignment"
	case KindMethodCall:
		return "method-call"
	case KindReturn:
		return "return"
	}
	return "unknown"
}

// Binding is one `name` or `name = value` element of a declaration or
// assignment list.
type Binding struct {
	Name     string
	Value    string
	HasValue bool
}

// Line is a classified source line. Only the fields relevant to Kind are set.
type Line struct {
	Kind Kind
	Text string

	// declarations
	Final    bool
	TypeName string

	// declarations and assignments
	Bindings []Binding

	// method declarations and calls
	Name   string
	Params string
	Args   []string

	// if/while blocks
	Keyword string
	Guard   string
}

type shape struct {
	kind  Kind
	match func(text string) (Line, bool)
}

// priority is the order in which line shapes are tried.
var priority = []shape{
	{KindCloseScope, matchCloseScope},
	{KindDeclaration, matchDeclaration},
	{KindMethodDeclaration, matchMethodDeclaration},
	{KindBlock, matchBlock},
	{KindAssignment, matchAssignment},
	{KindMethodCall, matchMethodCall},
	{KindReturn, matchReturn},
}

var (
	declarationRe = regexp.MustCompile(`^(final\s+)?(int|double|boolean|char|String)\s+(.+?)\s*;$`)
	methodDeclRe  = regexp.MustCompile(`^void\s+([a-zA-Z_]\w*)\s*\((.*)\)\s*\{$`)
	blockRe       = regexp.MustCompile(`^(if|while)\s*\((.*)\)\s*\{$`)
	statementRe   = regexp.MustCompile(`^(.+?)\s*;$`)
	methodCallRe  = regexp.MustCompile(`^([a-zA-Z_]\w*)\s*\((.*)\)\s*;$`)
	returnRe      = regexp.MustCompile(`^return\s*;$`)
	bindingRe     = regexp.MustCompile(`^([a-zA-Z_]\w*)\s*(?:=\s*(\S.*))?$`)
	assignRe      = regexp.MustCompile(`^([a-zA-Z_]\w*)\s*=\s*(\S.*)$`)
)

// IsSkippable reports whether a trimmed line is empty or a `//` comment.
func IsSkippable(text string) bool {
	return text == "" || strings.HasPrefix(text, "//")
}

// Classify returns the category of a trimmed line. Comments and blank lines
// yield KindSkip. A line matching no shape is a SyntaxError.
func Classify(text string) (Line, error) {
	if IsSkippable(text) {
		return Line{Kind: KindSkip, Text: text}, nil
	}
	for _, s := range priority {
		if line, ok := s.match(text); ok {
			line.Kind = s.kind
			line.Text = text
			return line, nil
		}
	}
	return Line{}, sjavacerr.NewSyntaxError("unrecognized line: " + text)
}

func matchCloseScope(text string) (Line, bool) {
	return Line{}, text == "}"
}

func matchDeclaration(text string) (Line, bool) {
	m := declarationRe.FindStringSubmatch(text)
	if m == nil {
		return Line{}, false
	}
	bindings, ok := parseBindings(m[3], bindingRe)
	if !ok {
		return Line{}, false
	}
	return Line{
		Final:    m[1] != "",
		TypeName: m[2],
		Bindings: bindings,
	}, true
}

func matchMethodDeclaration(text string) (Line, bool) {
	m := methodDeclRe.FindStringSubmatch(text)
	if m == nil {
		return Line{}, false
	}
	return Line{Name: m[1], Params: strings.TrimSpace(m[2])}, true
}

func matchBlock(text string) (Line, bool) {
	m := blockRe.FindStringSubmatch(text)
	if m == nil {
		return Line{}, false
	}
	return Line{Keyword: m[1], Guard: strings.TrimSpace(m[2])}, true
}

func matchAssignment(text string) (Line, bool) {
	m := statementRe.FindStringSubmatch(text)
	if m == nil {
		return Line{}, false
	}
	bindings, ok := parseBindings(m[1], assignRe)
	if !ok {
		return Line{}, false
	}
	return Line{Bindings: bindings}, true
}

func matchMethodCall(text string) (Line, bool) {
	m := methodCallRe.FindStringSubmatch(text)
	if m == nil || sjava.IsReservedWord(m[1]) {
		return Line{}, false
	}
	var args []string
	if inner := strings.TrimSpace(m[2]); inner != "" {
		for _, arg := range SplitList(inner) {
			if arg == "" {
				return Line{}, false
			}
			args = append(args, arg)
		}
	}
	return Line{Name: m[1], Args: args}, true
}

func matchReturn(text string) (Line, bool) {
	return Line{}, returnRe.MatchString(text)
}

func parseBindings(list string, re *regexp.Regexp) ([]Binding, bool) {
	parts := SplitList(list)
	bindings := make([]Binding, 0, len(parts))
	for _, part := range parts {
		m := re.FindStringSubmatch(part)
		if m == nil {
			return nil, false
		}
		bindings = append(bindings, Binding{
			Name:     m[1],
			Value:    strings.TrimSpace(m[2]),
			HasValue: m[2] != "",
		})
	}
	return bindings, true
}

// SplitList splits a comma separated list, ignoring commas inside string and
// char literals. A char literal is always three bytes, so ''' is one char. A
// string closes only on a quote followed by a comma or the end of the list.
// Elements are trimmed.
func SplitList(s string) []string {
	var (
		parts    []string
		start    int
		inString bool
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			if !inString {
				inString = true
			} else if closesString(s[i+1:]) {
				inString = false
			}
		case '\'':
			if !inString && i+2 < len(s) && s[i+2] == '\'' {
				i += 2
			}
		case ',':
			if !inString {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

func closesString(rest string) bool {
	rest = strings.TrimLeft(rest, " \t")
	return rest == "" || rest[0] == ','
}
