package languages

import (
	"strings"

	"github.com/getlawrence/autodoc/internal/formatter"
	sitter "github.com/smacker/go-tree-sitter"
)

// DocStyle says where a language keeps the documentation of a declaration.
type DocStyle int

const (
	// DocInBody places documentation as the first statement of the body.
	DocInBody DocStyle = iota
	// DocLeading places documentation in a comment directly above the
	// declaration.
	DocLeading
)

func (s DocStyle) String() string {
	if s == DocInBody {
		return "body"
	}
	return "leading"
}

// Query names looked up in a plugin's Config.
const (
	QueryAllFunctions       = "all_functions"
	QueryDocumentedFunction = "documented_function"
	QueryTypedFunctions     = "typed_functions"
)

// Capture names used by the queries.
const (
	CaptureFunc      = "func"
	CaptureDocstring = "docstring"
)

// Config carries the static description of a language.
type Config struct {
	Language       string
	FileExtensions []string
	Queries        map[string]string
	// WrapperKinds are node kinds that wrap a declaration so that its leading
	// comment attaches to the wrapper (export statements, templates).
	WrapperKinds []string
}

// LanguagePlugin is everything the pipeline needs to know about a language.
type LanguagePlugin interface {
	ID() string
	DisplayName() string
	FileExtensions() []string
	TreeSitterLanguage() *sitter.Language

	// Query returns the named query source; ok is false when the language
	// does not define it.
	Query(name string) (string, bool)
	DocStyle() DocStyle
	Formatter() formatter.Formatter
	WrapperKinds() []string

	// NameOf extracts the declared identifier of a declaration node.
	NameOf(decl *sitter.Node, src []byte) string
	// IsReserved reports names that are excluded from type hint synthesis
	// and quality-driven rewrites.
	IsReserved(name string) bool
	SupportsTypeHints() bool
}

func lookupQuery(cfg *Config, name string) (string, bool) {
	q, ok := cfg.Queries[name]
	if !ok || strings.TrimSpace(q) == "" {
		return "", false
	}
	return q, true
}

// fieldName returns the text of the "name" field of decl.
func fieldName(decl *sitter.Node, src []byte) string {
	if n := decl.ChildByFieldName("name"); n != nil {
		return n.Content(src)
	}
	return ""
}
