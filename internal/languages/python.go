package languages

import (
	"strings"

	"github.com/getlawrence/autodoc/internal/formatter"
	sitter "github.com/smacker/go-tree-sitter"
	tspython "github.com/smacker/go-tree-sitter/python"
)

// PythonPlugin documents functions and classes with docstrings.
type PythonPlugin struct {
	config *Config
}

func NewPythonPlugin() *PythonPlugin {
	return &PythonPlugin{
		config: &Config{
			Language:       "Python",
			FileExtensions: []string{".py", ".pyw"},
			Queries: map[string]string{
				QueryAllFunctions: `
(function_definition) @func
(class_definition) @func
`,
				QueryDocumentedFunction: `
(function_definition
    body: (block . (expression_statement (string) @docstring))) @func
(class_definition
    body: (block . (expression_statement (string) @docstring))) @func
`,
				QueryTypedFunctions: `
(function_definition return_type: (_)) @func
(function_definition parameters: (parameters (typed_parameter))) @func
(function_definition parameters: (parameters (typed_default_parameter))) @func
`,
			},
		},
	}
}

func (p *PythonPlugin) ID() string          { return "python" }
func (p *PythonPlugin) DisplayName() string { return p.config.Language }
func (p *PythonPlugin) FileExtensions() []string {
	return p.config.FileExtensions
}
func (p *PythonPlugin) TreeSitterLanguage() *sitter.Language { return tspython.GetLanguage() }
func (p *PythonPlugin) Query(name string) (string, bool)     { return lookupQuery(p.config, name) }
func (p *PythonPlugin) DocStyle() DocStyle                   { return DocInBody }
func (p *PythonPlugin) Formatter() formatter.Formatter {
	return formatter.BlockString{Delimiter: `"""`}
}
func (p *PythonPlugin) WrapperKinds() []string { return nil }

func (p *PythonPlugin) NameOf(decl *sitter.Node, src []byte) string {
	return fieldName(decl, src)
}

// IsReserved matches dunder methods such as __init__.
func (p *PythonPlugin) IsReserved(name string) bool {
	return len(name) > 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}

func (p *PythonPlugin) SupportsTypeHints() bool { return true }
