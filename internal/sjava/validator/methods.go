package validator

import (
	"strings"

	"martianoff/sjavac/internal/sjava"
	"martianoff/sjavac/internal/sjava/classify"
	"martianoff/sjavac/internal/sjava/symbols"
	"martianoff/sjavac/sjavacerr"
)

// MethodValidator validates method declarations, calls and returns.
type MethodValidator struct {
	table *symbols.Table
	opts  Options
}

// NewMethodValidator creates a MethodValidator over the shared table.
func NewMethodValidator(table *symbols.Table, opts Options) *MethodValidator {
	return &MethodValidator{table: table, opts: opts}
}

// DeclareMethod registers the signature of a method declaration line and
// opens the scope of its body. Used by the sweep pass.
func (m *MethodValidator) DeclareMethod(line classify.Line) error {
	if !classify.IsLegalMethodName(line.Name) {
		return sjavacerr.Newf(sjavacerr.TypeIllegalName, "illegal method name '%s'", line.Name)
	}
	params, err := parseParams(line.Params)
	if err != nil {
		return err
	}
	if err := m.table.RegisterMethod(line.Name, params); err != nil {
		return err
	}
	m.table.EnterScope()
	return nil
}

// EnterMethod opens the body scope of an already registered method and binds
// its parameters as initialized locals. Used by the validation pass.
func (m *MethodValidator) EnterMethod(line classify.Line) error {
	m.table.EnterScope()
	return m.table.MethodParamsAsLocals(line.Name)
}

// ValidateCall checks that the called method exists and that the arguments
// match its parameters in number and exact type.
func (m *MethodValidator) ValidateCall(line classify.Line) error {
	method, ok := m.table.Method(line.Name)
	if !ok {
		return sjavacerr.Newf(sjavacerr.TypeUnknownIdentifier, "method '%s' is not declared", line.Name)
	}
	if len(line.Args) != method.Arity() {
		return sjavacerr.Newf(sjavacerr.TypeSemanticRule,
			"method '%s' expects %d argument(s) but got %d", line.Name, method.Arity(), len(line.Args))
	}
	for i, arg := range line.Args {
		argType, err := m.argumentType(arg)
		if err != nil {
			return err
		}
		if want := method.Params[i].Type; argType != want {
			return sjavacerr.Newf(sjavacerr.TypeMismatch,
				"argument '%s' of type %s does not match parameter '%s' of type %s in call to '%s'",
				arg, argType, method.Params[i].Name, want, line.Name)
		}
	}
	return nil
}

// ValidateReturn accepts a return statement. Methods are void, so there is no
// value to check.
func (m *MethodValidator) ValidateReturn(classify.Line) error {
	return nil
}

func (m *MethodValidator) argumentType(arg string) (sjava.Type, error) {
	if classify.IsIdentifier(arg) {
		v, _, ok := m.table.Lookup(arg)
		if !ok {
			return sjava.InvalidType, sjavacerr.Newf(sjavacerr.TypeUnknownIdentifier,
				"variable '%s' is not declared", arg)
		}
		if m.opts.StrictCallArguments && !v.Initialized {
			return sjava.InvalidType, sjavacerr.Newf(sjavacerr.TypeUninitializedUse,
				"variable '%s' is used before it is initialized", arg)
		}
		return v.Type, nil
	}
	typ := classify.LiteralType(arg)
	if !typ.IsValid() {
		return sjava.InvalidType, sjavacerr.Newf(sjavacerr.TypeMismatch, "argument '%s' is of unknown type", arg)
	}
	return typ, nil
}

// parseParams parses `[final] TYPE NAME, ...`.
func parseParams(raw string) ([]symbols.Param, error) {
	if raw == "" {
		return nil, nil
	}
	var params []symbols.Param
	seen := make(map[string]bool)
	for _, part := range classify.SplitList(raw) {
		fields := strings.Fields(part)
		final := false
		if len(fields) == 3 && fields[0] == "final" {
			final = true
			fields = fields[1:]
		}
		if len(fields) != 2 {
			return nil, sjavacerr.NewSyntaxError("invalid parameter '" + part + "'")
		}
		typ := sjava.ParseType(fields[0])
		if !typ.IsValid() {
			return nil, sjavacerr.NewSyntaxError("invalid parameter type '" + fields[0] + "'")
		}
		name := fields[1]
		if !classify.IsLegalVariableName(name) {
			return nil, sjavacerr.Newf(sjavacerr.TypeIllegalName, "illegal parameter name '%s'", name)
		}
		if seen[name] {
			return nil, sjavacerr.Newf(sjavacerr.TypeRedeclaration, "duplicate parameter name '%s'", name)
		}
		seen[name] = true
		params = append(params, symbols.Param{Type: typ, Name: name, Final: final})
	}
	return params, nil
}
