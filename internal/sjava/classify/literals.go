package classify

import (
	"regexp"

	"martianoff/sjavac/internal/sjava"
)

var (
	intLiteralRe    = regexp.MustCompile(`^-?\d+$`)
	doubleLiteralRe = regexp.MustCompile(`^[+-]?(\d+\.\d*|\.\d+|\d+)$`)
	charLiteralRe   = regexp.MustCompile(`^'.'$`)
	stringLiteralRe = regexp.MustCompile(`^".*"$`)
)

// LiteralType infers the type of a literal token, preferring int over
// double for whole numbers. It returns InvalidType if tok is not a literal.
func LiteralType(tok string) sjava.Type {
	switch {
	case intLiteralRe.MatchString(tok):
		return sjava.Int
	case doubleLiteralRe.MatchString(tok):
		return sjava.Double
	case tok == "true" || tok == "false":
		return sjava.Boolean
	case charLiteralRe.MatchString(tok):
		return sjava.Char
	case stringLiteralRe.MatchString(tok):
		return sjava.String
	}
	return sjava.InvalidType
}

// IsLiteral reports whether tok is a literal of any type.
func IsLiteral(tok string) bool {
	return LiteralType(tok).IsValid()
}

// AcceptsLiteral reports whether a literal token may be assigned to a
// variable of the target type. Whole numbers widen to double, and boolean
// accepts any numeric literal.
func AcceptsLiteral(target sjava.Type, tok string) bool {
	switch target {
	case sjava.Int:
		return intLiteralRe.MatchString(tok)
	case sjava.Double:
		return doubleLiteralRe.MatchString(tok)
	case sjava.Boolean:
		return tok == "true" || tok == "false" || doubleLiteralRe.MatchString(tok)
	case sjava.Char:
		return charLiteralRe.MatchString(tok)
	case sjava.String:
		return stringLiteralRe.MatchString(tok)
	}
	return false
}
