// Package templates renders the prompts sent to language models.
package templates

import (
	"bytes"
	"embed"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"
)

//go:embed prompts/*.tmpl
var templateFS embed.FS

// Prompt names.
const (
	PromptEvaluate    = "evaluate"
	PromptInferTypes  = "infer_types"
	docstringTemplate = "docstring_"
)

// PromptData contains all data needed to render a prompt.
type PromptData struct {
	Language     string `json:"language"`
	LanguageName string `json:"language_name"`
	Kind         string `json:"kind"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	Existing     string `json:"existing,omitempty"`
}

// TemplateEngine handles template loading and execution
type TemplateEngine struct {
	templates map[string]*template.Template
}

// NewTemplateEngine creates a new template engine
func NewTemplateEngine() (*TemplateEngine, error) {
	engine := &TemplateEngine{
		templates: make(map[string]*template.Template),
	}

	if err := engine.loadTemplates(); err != nil {
		return nil, errors.Wrap(err, "failed to load templates")
	}

	return engine, nil
}

// DocstringPrompt renders the generation prompt for a documentation style.
func (e *TemplateEngine) DocstringPrompt(style string, data PromptData) (string, error) {
	return e.Render(docstringTemplate+style, data)
}

// Render executes the named template.
func (e *TemplateEngine) Render(name string, data PromptData) (string, error) {
	tmpl, exists := e.templates[name]
	if !exists {
		return "", errors.Newf("prompt template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "prompt template %q execution failed", name)
	}

	return buf.String(), nil
}

// Styles returns the documentation styles that have a generation prompt.
func (e *TemplateEngine) Styles() []string {
	var styles []string
	for key := range e.templates {
		if strings.HasPrefix(key, docstringTemplate) {
			styles = append(styles, strings.TrimPrefix(key, docstringTemplate))
		}
	}
	sort.Strings(styles)
	return styles
}

func (e *TemplateEngine) loadTemplates() error {
	entries, err := templateFS.ReadDir("prompts")
	if err != nil {
		return err
	}

	common, err := templateFS.ReadFile("prompts/common.tmpl")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == "common.tmpl" {
			continue
		}
		content, err := templateFS.ReadFile(path.Join("prompts", entry.Name()))
		if err != nil {
			return err
		}

		// Remove .tmpl extension for key
		key := strings.TrimSuffix(entry.Name(), ".tmpl")

		tmpl, err := template.New(key).Parse(string(content))
		if err != nil {
			return errors.Wrapf(err, "parse %s", entry.Name())
		}
		if _, err := tmpl.Parse(string(common)); err != nil {
			return errors.Wrapf(err, "parse common.tmpl for %s", entry.Name())
		}

		e.templates[key] = tmpl
	}

	return nil
}

// GetAvailableTemplates returns all available template keys
func (e *TemplateEngine) GetAvailableTemplates() []string {
	var keys []string
	for key := range e.templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
