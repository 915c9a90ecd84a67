package template

import (
	"fmt"
	"sort"
	"sync"
)

// NotFoundError reports a lookup for a template name that is not registered.
// It is always surfaced rather than silently defaulted; picking a template on
// the caller's behalf would mask a caller bug.
type NotFoundError struct {
	Name string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("template: %q not registered", e.Name)
}

// Registry stores templates by name. Reads are safe for concurrent use;
// registration, if ever exposed concurrently, is guarded by the same lock.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]Template
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]Template),
	}
}

// Register adds a template under its Name(). Re-registering a name overwrites
// the previous entry, it never merges.
func (r *Registry) Register(tpl Template) error {
	if tpl.Name() == "" {
		return fmt.Errorf("template: registry requires a named template")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.templates[tpl.Name()] = tpl
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(tpl Template) {
	if err := r.Register(tpl); err != nil {
		panic(err)
	}
}

// Get retrieves a template by name, returning NotFoundError when absent.
func (r *Registry) Get(name string) (Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tpl, ok := r.templates[name]
	if !ok {
		return Template{}, NotFoundError{Name: name}
	}
	return tpl, nil
}

// List returns the sorted template names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}
