package validator

import (
	"martianoff/sjavac/internal/sjava"
	"martianoff/sjavac/internal/sjava/classify"
	"martianoff/sjavac/internal/sjava/symbols"
	"martianoff/sjavac/sjavacerr"
)

// VariableValidator validates declarations and plain assignments.
type VariableValidator struct {
	table *symbols.Table
}

// NewVariableValidator creates a VariableValidator over the shared table.
func NewVariableValidator(table *symbols.Table) *VariableValidator {
	return &VariableValidator{table: table}
}

// ValidateDeclaration checks and registers every name of a declaration line,
// left to right. The first failing name aborts the line.
func (v *VariableValidator) ValidateDeclaration(line classify.Line) error {
	typ := sjava.ParseType(line.TypeName)
	for _, b := range line.Bindings {
		if err := v.declare(b, typ, line.Final, line.TypeName); err != nil {
			return err
		}
	}
	return nil
}

func (v *VariableValidator) declare(b classify.Binding, typ sjava.Type, final bool, typeName string) error {
	if !classify.IsLegalVariableName(b.Name) {
		return sjavacerr.Newf(sjavacerr.TypeIllegalName, "illegal variable name '%s'", b.Name)
	}
	if v.table.ExistsInCurrent(b.Name) {
		return sjavacerr.Newf(sjavacerr.TypeRedeclaration,
			"variable '%s' is already declared in this scope", b.Name)
	}
	if !typ.IsValid() {
		return sjavacerr.NewSyntaxError("unknown type '" + typeName + "'")
	}
	// The initializer is checked before the new binding exists, so a
	// variable never initializes itself.
	if b.HasValue {
		if err := checkValue(v.table, typ, b.Name, b.Value); err != nil {
			return err
		}
	}
	if final && !b.HasValue {
		return sjavacerr.Newf(sjavacerr.TypeSemanticRule,
			"final variable '%s' must be initialized at declaration", b.Name)
	}
	v.table.Declare(b.Name, typ, b.HasValue, final)
	return nil
}

// ValidateAssignment checks every `name = value` of an assignment line, left
// to right, and marks each target initialized.
func (v *VariableValidator) ValidateAssignment(line classify.Line) error {
	for _, b := range line.Bindings {
		if err := v.assign(b); err != nil {
			return err
		}
	}
	return nil
}

func (v *VariableValidator) assign(b classify.Binding) error {
	target, idx, ok := v.table.Lookup(b.Name)
	if !ok {
		return sjavacerr.Newf(sjavacerr.TypeUnknownIdentifier, "variable '%s' is not declared", b.Name)
	}
	if target.Final {
		return sjavacerr.Newf(sjavacerr.TypeSemanticRule, "cannot assign to final variable '%s'", b.Name)
	}
	if err := checkValue(v.table, target.Type, b.Name, b.Value); err != nil {
		return err
	}
	if idx == symbols.GlobalScope && v.table.Depth() == 0 {
		v.table.MarkGlobalBaseline(b.Name)
		return nil
	}
	return v.table.Initialize(idx, b.Name)
}
