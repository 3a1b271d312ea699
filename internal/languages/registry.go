package languages

import (
	"path/filepath"
	"sort"
	"strings"
)

type LanguageRegistry struct {
	plugins    map[string]LanguagePlugin
	extensions map[string]string
}

// DefaultRegistry is the global language registry used by the application.
var DefaultRegistry = NewDefaultRegistry()

func NewLanguageRegistry() *LanguageRegistry {
	return &LanguageRegistry{
		plugins:    make(map[string]LanguagePlugin),
		extensions: make(map[string]string),
	}
}

// NewDefaultRegistry returns a registry with every built-in language.
func NewDefaultRegistry() *LanguageRegistry {
	r := NewLanguageRegistry()
	r.Register(NewPythonPlugin())
	r.Register(NewJavaScriptPlugin())
	r.Register(NewJavaPlugin())
	r.Register(NewGoPlugin())
	r.Register(NewCppPlugin())
	return r
}

func (r *LanguageRegistry) Register(plugin LanguagePlugin) {
	r.plugins[plugin.ID()] = plugin
	for _, ext := range plugin.FileExtensions() {
		r.extensions[strings.ToLower(ext)] = plugin.ID()
	}
}

func (r *LanguageRegistry) Get(id string) (LanguagePlugin, bool) {
	p, ok := r.plugins[id]
	return p, ok
}

// ForPath selects a plugin by the file extension of path.
func (r *LanguageRegistry) ForPath(path string) (LanguagePlugin, bool) {
	id, ok := r.extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, false
	}
	return r.Get(id)
}

// Supports reports whether any plugin handles path.
func (r *LanguageRegistry) Supports(path string) bool {
	_, ok := r.ForPath(path)
	return ok
}

// IDs returns the registered language ids in sorted order.
func (r *LanguageRegistry) IDs() []string {
	ids := make([]string, 0, len(r.plugins))
	for id := range r.plugins {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
