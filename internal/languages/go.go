package languages

import (
	"github.com/getlawrence/autodoc/internal/formatter"
	sitter "github.com/smacker/go-tree-sitter"
	tsgo "github.com/smacker/go-tree-sitter/golang"
)

// GoPlugin documents functions and methods with // line comments.
type GoPlugin struct {
	config *Config
}

func NewGoPlugin() *GoPlugin {
	return &GoPlugin{
		config: &Config{
			Language:       "Go",
			FileExtensions: []string{".go"},
			Queries: map[string]string{
				QueryAllFunctions: `
(function_declaration) @func
(method_declaration) @func
`,
				QueryDocumentedFunction: `
((comment) @docstring . (function_declaration) @func)
((comment) @docstring . (method_declaration) @func)
`,
			},
		},
	}
}

func (p *GoPlugin) ID() string                           { return "go" }
func (p *GoPlugin) DisplayName() string                  { return p.config.Language }
func (p *GoPlugin) FileExtensions() []string             { return p.config.FileExtensions }
func (p *GoPlugin) TreeSitterLanguage() *sitter.Language { return tsgo.GetLanguage() }
func (p *GoPlugin) Query(name string) (string, bool)     { return lookupQuery(p.config, name) }
func (p *GoPlugin) DocStyle() DocStyle                   { return DocLeading }
func (p *GoPlugin) Formatter() formatter.Formatter       { return formatter.BlockComment{Prefix: "//"} }
func (p *GoPlugin) WrapperKinds() []string               { return nil }

func (p *GoPlugin) NameOf(decl *sitter.Node, src []byte) string {
	return fieldName(decl, src)
}

func (p *GoPlugin) IsReserved(string) bool  { return false }
func (p *GoPlugin) SupportsTypeHints() bool { return false }
