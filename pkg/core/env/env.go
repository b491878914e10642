package env

import (
	"fmt"
	"sort"

	"github.com/agenthands/iam/pkg/core/value"
)

// Env is the flat variable table of one program run.
// There is no scoping: bindings are never removed and the last write wins.
type Env struct {
	store map[string]value.Value
}

// New creates an empty environment.
func New() *Env {
	return &Env{store: make(map[string]value.Value)}
}

// Get looks up a binding.
func (e *Env) Get(name string) (value.Value, bool) {
	v, ok := e.store[name]
	return v, ok
}

// Set binds name to v, overwriting any previous binding.
func (e *Env) Set(name string, v value.Value) {
	e.store[name] = v
}

// Len returns the number of bindings.
func (e *Env) Len() int {
	return len(e.store)
}

// Names returns all bound names in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.store))
	for k := range e.store {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (e *Env) String() string {
	return fmt.Sprintf("Env{%d bindings: %v}", len(e.store), e.Names())
}
