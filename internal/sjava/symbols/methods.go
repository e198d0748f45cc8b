package symbols

import (
	"sort"
	"sync"

	"martianoff/sjavac/internal/sjava"
	"martianoff/sjavac/sjavacerr"
)

// Param is one declared method parameter.
type Param struct {
	Type  sjava.Type
	Name  string
	Final bool
}

// Method is a registered method signature. Signatures are immutable once
// registered: there is no overloading and no redeclaration.
type Method struct {
	Name   string
	Params []Param
}

// Arity returns the number of declared parameters.
func (m *Method) Arity() int {
	return len(m.Params)
}

// MethodRegistry is the flat namespace of method signatures. It is written
// during the sweep pass and only read afterwards.
//
// Thread-safe: all methods can be called concurrently.
type MethodRegistry struct {
	mu      sync.RWMutex
	methods map[string]*Method
}

// NewMethodRegistry creates an empty registry.
func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{
		methods: make(map[string]*Method),
	}
}

// Register stores a signature. A second method with the same name is a
// RedeclarationError.
func (r *MethodRegistry) Register(name string, params []Param) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.methods[name]; exists {
		return sjavacerr.Newf(sjavacerr.TypeRedeclaration, "method '%s' is already declared", name)
	}
	paramsCopy := make([]Param, len(params))
	copy(paramsCopy, params)
	r.methods[name] = &Method{Name: name, Params: paramsCopy}
	return nil
}

// Lookup returns the signature registered under name.
func (r *MethodRegistry) Lookup(name string) (*Method, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.methods[name]
	return m, ok
}

// Names returns the registered method names in sorted order.
func (r *MethodRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
