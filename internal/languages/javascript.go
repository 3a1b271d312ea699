package languages

import (
	"github.com/getlawrence/autodoc/internal/formatter"
	sitter "github.com/smacker/go-tree-sitter"
	tsjavascript "github.com/smacker/go-tree-sitter/javascript"
)

type JavaScriptPlugin struct {
	config *Config
}

func NewJavaScriptPlugin() *JavaScriptPlugin {
	return &JavaScriptPlugin{
		config: &Config{
			Language:       "JavaScript",
			FileExtensions: []string{".js", ".mjs", ".cjs", ".jsx"},
			Queries: map[string]string{
				QueryAllFunctions: `
(function_declaration) @func
(generator_function_declaration) @func
(method_definition) @func
(class_declaration) @func
`,
				QueryDocumentedFunction: `
((comment) @docstring . (function_declaration) @func)
((comment) @docstring . (generator_function_declaration) @func)
((comment) @docstring . (method_definition) @func)
((comment) @docstring . (class_declaration) @func)
`,
			},
			WrapperKinds: []string{"export_statement"},
		},
	}
}

func (p *JavaScriptPlugin) ID() string          { return "javascript" }
func (p *JavaScriptPlugin) DisplayName() string { return p.config.Language }
func (p *JavaScriptPlugin) FileExtensions() []string {
	return p.config.FileExtensions
}
func (p *JavaScriptPlugin) TreeSitterLanguage() *sitter.Language {
	return tsjavascript.GetLanguage()
}
func (p *JavaScriptPlugin) Query(name string) (string, bool) { return lookupQuery(p.config, name) }
func (p *JavaScriptPlugin) DocStyle() DocStyle               { return DocLeading }
func (p *JavaScriptPlugin) Formatter() formatter.Formatter {
	return formatter.BlockComment{Open: "/**", Prefix: " *", Close: " */"}
}
func (p *JavaScriptPlugin) WrapperKinds() []string { return p.config.WrapperKinds }

func (p *JavaScriptPlugin) NameOf(decl *sitter.Node, src []byte) string {
	return fieldName(decl, src)
}

func (p *JavaScriptPlugin) IsReserved(string) bool  { return false }
func (p *JavaScriptPlugin) SupportsTypeHints() bool { return false }
