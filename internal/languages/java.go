package languages

import (
	"github.com/getlawrence/autodoc/internal/formatter"
	sitter "github.com/smacker/go-tree-sitter"
	tsjava "github.com/smacker/go-tree-sitter/java"
)

// JavaPlugin has no documented_function query: the grammar's comment node
// kinds vary between releases, so documented Java declarations are found by
// the structural sibling check alone.
type JavaPlugin struct {
	config *Config
}

func NewJavaPlugin() *JavaPlugin {
	return &JavaPlugin{
		config: &Config{
			Language:       "Java",
			FileExtensions: []string{".java"},
			Queries: map[string]string{
				QueryAllFunctions: `
(method_declaration) @func
(constructor_declaration) @func
(class_declaration) @func
(interface_declaration) @func
`,
			},
		},
	}
}

func (p *JavaPlugin) ID() string                           { return "java" }
func (p *JavaPlugin) DisplayName() string                  { return p.config.Language }
func (p *JavaPlugin) FileExtensions() []string             { return p.config.FileExtensions }
func (p *JavaPlugin) TreeSitterLanguage() *sitter.Language { return tsjava.GetLanguage() }
func (p *JavaPlugin) Query(name string) (string, bool)     { return lookupQuery(p.config, name) }
func (p *JavaPlugin) DocStyle() DocStyle                   { return DocLeading }
func (p *JavaPlugin) Formatter() formatter.Formatter {
	return formatter.BlockComment{Open: "/**", Prefix: " *", Close: " */"}
}
func (p *JavaPlugin) WrapperKinds() []string { return nil }

func (p *JavaPlugin) NameOf(decl *sitter.Node, src []byte) string {
	return fieldName(decl, src)
}

func (p *JavaPlugin) IsReserved(string) bool  { return false }
func (p *JavaPlugin) SupportsTypeHints() bool { return false }
