package analyzer

import (
	"martianoff/sjavac/internal/sjava/classify"
	"martianoff/sjavac/sjavacerr"
)

// phase is the structural position of the scan.
type phase int

const (
	phaseGlobal phase = iota
	phaseMethodHeader
	phaseMethodBody
	phaseAfterReturn
)

func (p phase) String() string {
	switch p {
	case phaseGlobal:
		return "global"
	case phaseMethodHeader:
		return "method-header"
	case phaseMethodBody:
		return "method-body"
	case phaseAfterReturn:
		return "after-return"
	}
	return "unknown"
}

// inMethod reports whether p is inside a method body.
func (p phase) inMethod() bool {
	return p == phaseMethodBody || p == phaseAfterReturn
}

// transition returns the phase entered by a line of the given kind, or the
// rule the line violates in the current phase. Leaving a method body on its
// closing brace depends on scope depth and is handled by the driver.
func transition(p phase, kind classify.Kind) (phase, error) {
	switch p {
	case phaseGlobal:
		switch kind {
		case classify.KindDeclaration, classify.KindAssignment, classify.KindCloseScope:
			return phaseGlobal, nil
		case classify.KindMethodDeclaration:
			return phaseMethodHeader, nil
		}
		return p, sjavacerr.Newf(sjavacerr.TypeSemanticRule, "%s is not allowed in global scope", kind)
	case phaseMethodBody, phaseAfterReturn:
		switch kind {
		case classify.KindMethodDeclaration:
			return p, sjavacerr.NewSemanticError(sjavacerr.TypeSemanticRule, "method declared inside a method body")
		case classify.KindReturn:
			return phaseAfterReturn, nil
		}
		return phaseMethodBody, nil
	}
	return p, sjavacerr.Newf(sjavacerr.TypeSemanticRule, "unexpected %s in %s", kind, p)
}
