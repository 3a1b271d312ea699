package languages

import (
	"strings"

	"github.com/getlawrence/autodoc/internal/formatter"
	sitter "github.com/smacker/go-tree-sitter"
	tscpp "github.com/smacker/go-tree-sitter/cpp"
)

type CppPlugin struct {
	config *Config
}

func NewCppPlugin() *CppPlugin {
	return &CppPlugin{
		config: &Config{
			Language:       "C++",
			FileExtensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".h"},
			Queries: map[string]string{
				QueryAllFunctions: `
(function_definition) @func
`,
				QueryDocumentedFunction: `
((comment) @docstring . (function_definition) @func)
`,
			},
			WrapperKinds: []string{"template_declaration"},
		},
	}
}

func (p *CppPlugin) ID() string                           { return "cpp" }
func (p *CppPlugin) DisplayName() string                  { return p.config.Language }
func (p *CppPlugin) FileExtensions() []string             { return p.config.FileExtensions }
func (p *CppPlugin) TreeSitterLanguage() *sitter.Language { return tscpp.GetLanguage() }
func (p *CppPlugin) Query(name string) (string, bool)     { return lookupQuery(p.config, name) }
func (p *CppPlugin) DocStyle() DocStyle                   { return DocLeading }
func (p *CppPlugin) Formatter() formatter.Formatter {
	return formatter.BlockComment{Open: "/**", Prefix: " *", Close: " */"}
}
func (p *CppPlugin) WrapperKinds() []string { return p.config.WrapperKinds }

// NameOf follows the declarator chain (pointer, reference, function
// declarators) down to the identifier.
func (p *CppPlugin) NameOf(decl *sitter.Node, src []byte) string {
	d := decl.ChildByFieldName("declarator")
	for d != nil {
		switch d.Type() {
		case "identifier", "field_identifier", "qualified_identifier",
			"operator_name", "destructor_name", "template_function":
			return d.Content(src)
		}
		next := d.ChildByFieldName("declarator")
		if next == nil && d.NamedChildCount() > 0 {
			next = d.NamedChild(0)
		}
		d = next
	}
	return ""
}

// IsReserved matches operator overloads, qualified or not.
func (p *CppPlugin) IsReserved(name string) bool {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	if !strings.HasPrefix(name, "operator") {
		return false
	}
	rest := strings.TrimPrefix(name, "operator")
	if rest == "" {
		return true
	}
	c := rest[0]
	return !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}

func (p *CppPlugin) SupportsTypeHints() bool { return false }
