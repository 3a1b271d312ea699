// Package typehints rewrites Python function signatures with inferred
// annotations and plans the matching typing import.
package typehints

import (
	"sort"
	"strings"

	"github.com/getlawrence/autodoc/internal/extractor"
	"github.com/getlawrence/autodoc/internal/patch"
	"github.com/getlawrence/autodoc/internal/syntax"
	sitter "github.com/smacker/go-tree-sitter"
)

// Hints are the inferred annotations of one function.
type Hints struct {
	Parameters map[string]string `json:"parameters"`
	ReturnType string            `json:"return_type"`
}

// Empty reports whether h carries no usable annotation.
func (h Hints) Empty() bool {
	if strings.TrimSpace(h.ReturnType) != "" {
		return false
	}
	for _, t := range h.Parameters {
		if strings.TrimSpace(t) != "" {
			return false
		}
	}
	return true
}

func (h Hints) lookup(name string) string {
	for _, key := range []string{name, "*" + name, "**" + name} {
		if t := strings.TrimSpace(h.Parameters[key]); validType(t) {
			return t
		}
	}
	return ""
}

// Rewrite plans a single edit that replaces the signature of sym, from the
// def keyword through the colon, with an annotated version. Parameters that
// already carry an annotation are left alone. Every type applied is recorded
// in imports.
func Rewrite(unit *syntax.SourceUnit, sym extractor.Symbol, hints Hints, imports *Imports) (patch.Edit, bool) {
	decl := sym.Decl
	params := decl.ChildByFieldName("parameters")
	colon := signatureColon(decl)
	if params == nil || colon == nil {
		return patch.Edit{}, false
	}

	start, _ := syntax.Span(decl)
	_, end := syntax.Span(colon)
	sig := unit.Content[start:end]
	local := patch.NewEditSet(len(sig))
	var applied []string

	for i, p := range Parameters(unit, decl) {
		if p.Annotated || (i == 0 && (p.Name == "self" || p.Name == "cls")) {
			continue
		}
		typ := hints.lookup(p.Name)
		if typ == "" {
			continue
		}
		var e patch.Edit
		switch p.Kind {
		case "default_parameter":
			_, nameEnd := syntax.Span(p.NameNode)
			value := p.Node.ChildByFieldName("value")
			if value == nil {
				continue
			}
			valueStart, _ := syntax.Span(value)
			e = patch.Edit{Start: nameEnd - start, End: valueStart - start, Text: ": " + typ + " = "}
		default:
			_, paramEnd := syntax.Span(p.Node)
			e = patch.Edit{Start: paramEnd - start, End: paramEnd - start, Text: ": " + typ}
		}
		if local.Add(e) == nil {
			applied = append(applied, typ)
		}
	}

	if ret := strings.TrimSpace(hints.ReturnType); validType(ret) && decl.ChildByFieldName("return_type") == nil {
		_, paramsEnd := syntax.Span(params)
		if local.Add(patch.Edit{Start: paramsEnd - start, End: paramsEnd - start, Text: " -> " + ret}) == nil {
			applied = append(applied, ret)
		}
	}

	if len(applied) == 0 {
		return patch.Edit{}, false
	}
	rewritten, err := patch.Apply(sig, local)
	if err != nil {
		return patch.Edit{}, false
	}
	for _, t := range applied {
		imports.Collect(t)
	}
	return patch.Edit{
		Start:  start,
		End:    end,
		Text:   string(rewritten),
		Kind:   patch.KindSignature,
		Symbol: sym.Name,
	}, true
}

// signatureColon returns the ":" token that ends the def line.
func signatureColon(decl *sitter.Node) *sitter.Node {
	for i := 0; i < int(decl.ChildCount()); i++ {
		if c := decl.Child(i); c.Type() == ":" {
			return c
		}
	}
	return nil
}

// validType rejects strings that cannot be spliced into a signature as a
// single annotation expression.
func validType(t string) bool {
	if t == "" || strings.ContainsAny(t, "\n\r#;=") {
		return false
	}
	depth := 0
	for _, r := range t {
		switch r {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// vocabulary lists the typing names that require an import.
var vocabulary = map[string]bool{
	"Any": true, "Callable": true, "Dict": true, "List": true,
	"Optional": true, "Set": true, "Tuple": true, "Union": true,
}

// Imports accumulates typing names referenced by the annotations of a file.
type Imports struct {
	names map[string]bool
}

func NewImports() *Imports {
	return &Imports{names: make(map[string]bool)}
}

// Collect records every vocabulary name used in typ.
func (i *Imports) Collect(typ string) {
	for _, tok := range strings.FieldsFunc(typ, func(r rune) bool {
		return !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) {
		if vocabulary[tok] {
			i.names[tok] = true
		}
	}
}

// Names returns the collected names sorted.
func (i *Imports) Names() []string {
	out := make([]string, 0, len(i.names))
	for n := range i.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Plan returns the import insertion for the collected names. Nothing is
// planned when the file already imports from typing. The import goes at the
// top of the file, or after any __future__ imports, which must stay first.
func (i *Imports) Plan(unit *syntax.SourceUnit) (patch.Edit, bool) {
	names := i.Names()
	if len(names) == 0 {
		return patch.Edit{}, false
	}
	text := string(unit.Content)
	if strings.Contains(text, "from typing import") || strings.Contains(text, "import typing") {
		return patch.Edit{}, false
	}
	at := futureImportsEnd(unit)
	line := "from typing import " + strings.Join(names, ", ") + "\n\n"
	if at > 0 && unit.Content[at-1] != '\n' {
		line = "\n" + line
	}
	return patch.Edit{
		Start: at,
		End:   at,
		Text:  line,
		Kind:  patch.KindImport,
	}, true
}

func futureImportsEnd(unit *syntax.SourceUnit) int {
	root := unit.Root()
	at := 0
	for i := 0; i < int(root.NamedChildCount()); i++ {
		c := root.NamedChild(i)
		if c.Type() != "future_import_statement" {
			continue
		}
		_, end := syntax.Span(c)
		at = syntax.LineEnd(unit.Content, end)
		if at < len(unit.Content) {
			at++
		}
	}
	return at
}
