// Package extractor finds declarations in a parsed file and classifies them by
// whether they carry documentation and type annotations.
package extractor

import (
	"sort"
	"strings"

	"fortio.org/safecast"
	"github.com/cockroachdb/errors"
	"github.com/getlawrence/autodoc/internal/languages"
	"github.com/getlawrence/autodoc/internal/syntax"
	sitter "github.com/smacker/go-tree-sitter"
)

// ErrNoQueries is returned when a language defines no all_functions query.
var ErrNoQueries = errors.New("language defines no declaration query")

// Doc is the span of an existing documentation block. For leading comments it
// may cover a run of adjacent line comments.
type Doc struct {
	Node  *sitter.Node
	Start int
	End   int
	Text  string
}

// Symbol is one declaration of interest.
type Symbol struct {
	Key      syntax.NodeKey
	Decl     *sitter.Node
	Name     string
	Language string
	Code     string
	// Line is the 1-based line of the declaration.
	Line int
	// Anchor is the node whose line receives leading documentation: the
	// declaration itself or a wrapper such as an export statement.
	Anchor    *sitter.Node
	Doc       *Doc
	Annotated bool
	Reserved  bool
}

// Documented reports whether the symbol carries documentation.
func (s Symbol) Documented() bool { return s.Doc != nil }

// Result holds every symbol of a file, ordered by position.
type Result struct {
	Symbols []Symbol
}

// Undocumented returns the symbols without documentation.
func (r *Result) Undocumented() []Symbol {
	return r.filter(func(s Symbol) bool { return !s.Documented() })
}

// Redocumentable returns documented symbols eligible for quality review.
func (r *Result) Redocumentable() []Symbol {
	return r.filter(func(s Symbol) bool { return s.Documented() && !s.Reserved })
}

// Unannotated returns functions with a parameter list, no annotations and a
// non-reserved name.
func (r *Result) Unannotated() []Symbol {
	return r.filter(func(s Symbol) bool {
		return !s.Annotated && !s.Reserved && s.Decl.ChildByFieldName("parameters") != nil
	})
}

func (r *Result) filter(keep func(Symbol) bool) []Symbol {
	var out []Symbol
	for _, s := range r.Symbols {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// Extract runs the plugin's queries over unit and builds the symbol table.
// Documentation found by query is unioned with the structural check so that
// either source marks a declaration as documented.
func Extract(unit *syntax.SourceUnit, plugin languages.LanguagePlugin) (*Result, error) {
	allQuery, ok := plugin.Query(languages.QueryAllFunctions)
	if !ok {
		return nil, errors.Wrapf(ErrNoQueries, "%s", plugin.ID())
	}
	all, err := unit.Matches(allQuery)
	if err != nil {
		return nil, err
	}

	queried := make(map[syntax.NodeKey]*sitter.Node)
	if q, ok := plugin.Query(languages.QueryDocumentedFunction); ok {
		matches, err := unit.Matches(q)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			fn, doc := m.First(languages.CaptureFunc), m.First(languages.CaptureDocstring)
			if fn != nil && doc != nil {
				queried[syntax.KeyOf(fn)] = doc
			}
		}
	}

	annotated := make(map[syntax.NodeKey]bool)
	if q, ok := plugin.Query(languages.QueryTypedFunctions); ok {
		matches, err := unit.Matches(q)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if fn := m.First(languages.CaptureFunc); fn != nil {
				annotated[syntax.KeyOf(fn)] = true
			}
		}
	}

	seen := make(map[syntax.NodeKey]bool)
	res := &Result{}
	for _, m := range all {
		decl := m.First(languages.CaptureFunc)
		if decl == nil {
			continue
		}
		key := syntax.KeyOf(decl)
		if seen[key] {
			continue
		}
		seen[key] = true

		sym := newSymbol(unit, plugin, decl)
		sym.Annotated = annotated[key]
		sym.Doc = findDoc(unit, plugin, sym, queried[key])
		res.Symbols = append(res.Symbols, sym)
	}
	sort.SliceStable(res.Symbols, func(i, j int) bool {
		return res.Symbols[i].Key.Start < res.Symbols[j].Key.Start
	})
	return res, nil
}

func newSymbol(unit *syntax.SourceUnit, plugin languages.LanguagePlugin, decl *sitter.Node) Symbol {
	name := plugin.NameOf(decl, unit.Content)
	line, err := safecast.Conv[int](decl.StartPoint().Row)
	if err != nil {
		line = 0
	}
	return Symbol{
		Key:      syntax.KeyOf(decl),
		Decl:     decl,
		Name:     name,
		Language: plugin.ID(),
		Code:     unit.Text(decl),
		Line:     line + 1,
		Anchor:   anchorOf(decl, plugin.WrapperKinds()),
		Reserved: name != "" && plugin.IsReserved(name),
	}
}

func findDoc(unit *syntax.SourceUnit, plugin languages.LanguagePlugin, sym Symbol, queried *sitter.Node) *Doc {
	if plugin.DocStyle() == languages.DocInBody {
		if queried != nil {
			return newDoc(unit, queried, queried)
		}
		return bodyDoc(unit, sym.Decl)
	}
	if doc := leadingDoc(unit, sym.Anchor); doc != nil {
		return doc
	}
	if queried != nil {
		return newDoc(unit, queried, queried)
	}
	return nil
}

// bodyDoc returns the string literal that forms the first statement of the
// declaration body, skipping comments.
func bodyDoc(unit *syntax.SourceUnit, decl *sitter.Node) *Doc {
	body := decl.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if isComment(stmt) {
			continue
		}
		if stmt.Type() == "expression_statement" && stmt.NamedChildCount() == 1 {
			if str := stmt.NamedChild(0); str.Type() == "string" {
				return newDoc(unit, str, str)
			}
		}
		return nil
	}
	return nil
}

// leadingDoc returns the comment block that ends on the line directly above
// anchor, or on the same line before it. Adjacent line comments are merged.
func leadingDoc(unit *syntax.SourceUnit, anchor *sitter.Node) *Doc {
	last := anchor.PrevNamedSibling()
	if !isComment(last) || !startsLine(unit, last) {
		return nil
	}
	if r := syntax.Row(anchor); syntax.EndRow(last)+1 < r || syntax.EndRow(last) > r {
		return nil
	}
	first := last
	if isLineComment(unit, last) {
		for p := first.PrevNamedSibling(); isComment(p) && isLineComment(unit, p) &&
			startsLine(unit, p) && syntax.EndRow(p)+1 == syntax.Row(first); p = p.PrevNamedSibling() {
			first = p
		}
	}
	return newDoc(unit, first, last)
}

func newDoc(unit *syntax.SourceUnit, first, last *sitter.Node) *Doc {
	start, _ := syntax.Span(first)
	_, end := syntax.Span(last)
	for end > start && (unit.Content[end-1] == '\n' || unit.Content[end-1] == '\r') {
		end--
	}
	return &Doc{Node: first, Start: start, End: end, Text: string(unit.Content[start:end])}
}

func anchorOf(decl *sitter.Node, wrappers []string) *sitter.Node {
	n := decl
	for p := n.Parent(); p != nil && contains(wrappers, p.Type()); p = n.Parent() {
		n = p
	}
	return n
}

func isComment(n *sitter.Node) bool {
	return n != nil && strings.Contains(n.Type(), "comment")
}

func isLineComment(unit *syntax.SourceUnit, n *sitter.Node) bool {
	text := unit.Text(n)
	return strings.HasPrefix(text, "//") || strings.HasPrefix(text, "#")
}

func startsLine(unit *syntax.SourceUnit, n *sitter.Node) bool {
	start, _ := syntax.Span(n)
	return syntax.OnlyWhitespaceBefore(unit.Content, start)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
