package rendering

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultTemplate is used when no template is requested.
const DefaultTemplate = "two_column"

// Template is a fixed visual arrangement of CV sections. Implementations
// keep no state between renders and may be shared across goroutines.
type Template interface {
	Name() string
	Description() string
	Features() []string
	Render(p *Page) error
}

// Info describes a template for listings.
type Info struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// Registry holds templates by name.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]Template
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]Template)}
}

// DefaultRegistry returns a registry with every built-in template.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TwoColumn{})
	r.Register(Modern{})
	r.Register(Minimal{})
	return r
}

// Register adds t, replacing any template with the same name.
func (r *Registry) Register(t Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.Name()] = t
}

// Get returns the named template.
func (r *Registry) Get(name string) (Template, error) {
	r.mu.RLock()
	t, ok := r.templates[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &TemplateError{
			Name:    name,
			Message: fmt.Sprintf("template %q not found, available templates: %s", name, strings.Join(r.Names(), ", ")),
		}
	}
	return t, nil
}

// Names returns the registered template names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Info describes the named template.
func (r *Registry) Info(name string) (Info, error) {
	t, err := r.Get(name)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Name:        t.Name(),
		Description: t.Description(),
		Features:    t.Features(),
	}, nil
}
