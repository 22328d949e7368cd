package harness

import (
	"errors"
	"fmt"
	"sort"
)

var errDuplicateName = errors.New("duplicate name")

// Registry is a name-keyed collection. Test cases carry their own pass/fail
// checks, so a case and its assertions can never drift apart through
// ordinal coupling.
type Registry[T any] struct {
	entries map[string]T
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]T)}
}

// Register adds an entry under the given name.
func (r *Registry[T]) Register(name string, entry T) error {
	if name == "" {
		return errors.New("empty name")
	}
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("%w: %s", errDuplicateName, name)
	}
	r.entries[name] = entry
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry[T]) MustRegister(name string, entry T) {
	if err := r.Register(name, entry); err != nil {
		panic("harness registry: " + err.Error())
	}
}

// Lookup returns the entry for the given name.
func (r *Registry[T]) Lookup(name string) (T, bool) {
	entry, ok := r.entries[name]
	return entry, ok
}

// Names returns all registered names in sorted order.
func (r *Registry[T]) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
