// Package symbols implements the scope stack and method registry shared by
// all validators.
package symbols

import (
	"martianoff/sjavac/internal/sjava"
	"martianoff/sjavac/sjavacerr"
)

// GlobalScope is the index of the outermost frame.
const GlobalScope = 0

// Variable is a declared variable or parameter.
type Variable struct {
	Name        string
	Type        sjava.Type
	Initialized bool
	Final       bool

	// UninitializedGlobal records that a global had no value at global level.
	// Global initialization state is restored from it after every method body.
	UninitializedGlobal bool
}

type scope map[string]*Variable

// Table is the symbol table of one source file: a stack of scopes, index 0
// being the global scope, and the method registry.
type Table struct {
	scopes  []scope
	methods *MethodRegistry
}

// NewTable creates a table holding only the global scope.
func NewTable() *Table {
	return &Table{
		scopes:  []scope{make(scope)},
		methods: NewMethodRegistry(),
	}
}

// Methods returns the method registry.
func (t *Table) Methods() *MethodRegistry {
	return t.methods
}

// Depth returns the number of open scopes above the global one.
func (t *Table) Depth() int {
	return len(t.scopes) - 1
}

// EnterScope pushes a new empty frame.
func (t *Table) EnterScope() {
	t.scopes = append(t.scopes, make(scope))
}

// ExitScope pops the innermost frame. Closing the global frame is a
// StructuralError.
func (t *Table) ExitScope() error {
	if len(t.scopes) == 1 {
		return sjavacerr.NewStructuralError("mismatched braces: '}' without an open scope")
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
	return nil
}

// DeclareGlobal inserts a variable into the global frame. Duplicate checks
// are the caller's responsibility.
func (t *Table) DeclareGlobal(name string, typ sjava.Type, initialized, final bool) {
	t.scopes[GlobalScope][name] = &Variable{
		Name:                name,
		Type:                typ,
		Initialized:         initialized,
		Final:               final,
		UninitializedGlobal: !initialized,
	}
}

// DeclareLocal inserts a variable into the innermost frame.
func (t *Table) DeclareLocal(name string, typ sjava.Type, initialized, final bool) {
	t.scopes[len(t.scopes)-1][name] = &Variable{
		Name:        name,
		Type:        typ,
		Initialized: initialized,
		Final:       final,
	}
}

// Declare inserts into the global frame when no other scope is open and
// into the innermost frame otherwise.
func (t *Table) Declare(name string, typ sjava.Type, initialized, final bool) {
	if t.Depth() == 0 {
		t.DeclareGlobal(name, typ, initialized, final)
		return
	}
	t.DeclareLocal(name, typ, initialized, final)
}

// ExistsInCurrent checks the innermost frame only.
func (t *Table) ExistsInCurrent(name string) bool {
	_, ok := t.scopes[len(t.scopes)-1][name]
	return ok
}

// FindScope searches the frames from innermost to global and returns the
// index of the first frame that declares name.
func (t *Table) FindScope(name string) (int, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if _, ok := t.scopes[i][name]; ok {
			return i, true
		}
	}
	return -1, false
}

// Lookup resolves name with lexical shadowing and returns the variable and
// the index of its frame.
func (t *Table) Lookup(name string) (*Variable, int, bool) {
	idx, ok := t.FindScope(name)
	if !ok {
		return nil, -1, false
	}
	return t.scopes[idx][name], idx, true
}

// Initialize marks the variable declared at the given frame as initialized.
func (t *Table) Initialize(scopeIdx int, name string) error {
	if scopeIdx < 0 || scopeIdx >= len(t.scopes) {
		return sjavacerr.Newf(sjavacerr.TypeUnknownIdentifier, "variable '%s' is not declared", name)
	}
	v, ok := t.scopes[scopeIdx][name]
	if !ok {
		return sjavacerr.Newf(sjavacerr.TypeUnknownIdentifier, "variable '%s' is not declared", name)
	}
	v.Initialized = true
	return nil
}

// MarkGlobalBaseline records a global-level assignment: the global counts as
// initialized in every method body from now on.
func (t *Table) MarkGlobalBaseline(name string) {
	if v, ok := t.scopes[GlobalScope][name]; ok {
		v.Initialized = true
		v.UninitializedGlobal = false
	}
}

// ResetGlobalsToDeclarationState discards initialization performed inside a
// method body. Method call order is undefined, so one body may not rely on
// another having run.
func (t *Table) ResetGlobalsToDeclarationState() {
	for _, v := range t.scopes[GlobalScope] {
		v.Initialized = !v.UninitializedGlobal
	}
}

// ResetVariables drops every local frame and restores the globals to their
// global-level state. Method signatures are kept.
func (t *Table) ResetVariables() {
	t.scopes = t.scopes[:1]
	t.ResetGlobalsToDeclarationState()
}

// RegisterMethod stores a method signature.
func (t *Table) RegisterMethod(name string, params []Param) error {
	return t.methods.Register(name, params)
}

// Method looks up a method signature by name.
func (t *Table) Method(name string) (*Method, bool) {
	return t.methods.Lookup(name)
}

// MethodParamsAsLocals injects the parameters of a registered method into
// the innermost frame as initialized locals.
func (t *Table) MethodParamsAsLocals(name string) error {
	m, ok := t.methods.Lookup(name)
	if !ok {
		return sjavacerr.Newf(sjavacerr.TypeUnknownIdentifier, "method '%s' is not declared", name)
	}
	for _, p := range m.Params {
		t.DeclareLocal(p.Name, p.Type, true, p.Final)
	}
	return nil
}
