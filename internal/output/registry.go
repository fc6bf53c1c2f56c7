package output

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Built-in format names.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Format describes how a document is rendered and which file extension the
// rendered file gets.
type Format struct {
	Name      string
	Extension string
	Serialize SerializeFunc
}

// Registry maps format names to Formats, enabling pluggable output formats.
type Registry struct {
	mu      sync.RWMutex
	formats map[string]Format
}

// NewRegistry creates an empty format registry.
func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]Format),
	}
}

// Register adds a format under its name.
// Existing entries for the same name are overwritten.
func (r *Registry) Register(f Format) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.formats[f.Name] = f
}

// Format returns the format registered under name, or an error if not found.
func (r *Registry) Format(name string) (Format, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formats[name]
	if !ok {
		return Format{}, fmt.Errorf("unknown output format %q (available: %s)", name, r.availableLocked())
	}

	return f, nil
}

// Formats returns the sorted list of registered format names.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.namesLocked()
}

// AvailableFormats returns a comma-separated string of registered format names.
func (r *Registry) AvailableFormats() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.availableLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *Registry) availableLocked() string {
	names := r.namesLocked()
	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, ", ")
}

// DefaultRegistry returns a registry pre-populated with the built-in
// formats: yaml and json.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(Format{Name: FormatYAML, Extension: ".yaml", Serialize: SerializeYAML})
	r.Register(Format{Name: FormatJSON, Extension: ".json", Serialize: SerializeJSON})

	return r
}
