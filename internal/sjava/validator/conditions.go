package validator

import (
	"regexp"
	"strings"

	"martianoff/sjavac/internal/sjava/classify"
	"martianoff/sjavac/internal/sjava/symbols"
	"martianoff/sjavac/sjavacerr"
)

var conditionSeparatorRe = regexp.MustCompile(`&&|\|\|`)

// ConditionValidator validates if/while guards.
type ConditionValidator struct {
	table *symbols.Table
}

// NewConditionValidator creates a ConditionValidator over the shared table.
func NewConditionValidator(table *symbols.Table) *ConditionValidator {
	return &ConditionValidator{table: table}
}

// ValidateCondition checks every `&&`/`||` separated atom of the guard and,
// on success, opens the scope of the block.
func (c *ConditionValidator) ValidateCondition(line classify.Line) error {
	if line.Guard == "" {
		return sjavacerr.NewSyntaxError("empty " + line.Keyword + " condition")
	}
	for _, atom := range conditionSeparatorRe.Split(line.Guard, -1) {
		if err := c.checkAtom(strings.TrimSpace(atom)); err != nil {
			return err
		}
	}
	c.table.EnterScope()
	return nil
}

func (c *ConditionValidator) checkAtom(atom string) error {
	if atom == "" {
		return sjavacerr.NewSyntaxError("missing operand in condition")
	}
	if typ := classify.LiteralType(atom); typ.IsValid() {
		if !typ.IsConditional() {
			return sjavacerr.Newf(sjavacerr.TypeMismatch, "literal '%s' of type %s is not a condition", atom, typ)
		}
		return nil
	}
	if !classify.IsIdentifier(atom) {
		return sjavacerr.NewSyntaxError("invalid condition operand '" + atom + "'")
	}
	v, _, ok := c.table.Lookup(atom)
	if !ok {
		return sjavacerr.Newf(sjavacerr.TypeUnknownIdentifier, "variable '%s' is not declared", atom)
	}
	if !v.Initialized {
		return sjavacerr.Newf(sjavacerr.TypeUninitializedUse, "variable '%s' is used before it is initialized", atom)
	}
	if !v.Type.IsConditional() {
		return sjavacerr.Newf(sjavacerr.TypeMismatch, "variable '%s' of type %s is not a condition", atom, v.Type)
	}
	return nil
}
