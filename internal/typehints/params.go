package typehints

import (
	"strings"

	"github.com/getlawrence/autodoc/internal/syntax"
	sitter "github.com/smacker/go-tree-sitter"
)

// Param is one entry of a Python parameter list.
type Param struct {
	Name string
	Kind string
	// Node is the whole parameter; NameNode the identifier that an
	// annotation follows.
	Node      *sitter.Node
	NameNode  *sitter.Node
	Annotated bool
}

// Parameters lists the parameters of a function definition in source order.
// Separators (*, /) and comments are skipped.
func Parameters(unit *syntax.SourceUnit, decl *sitter.Node) []Param {
	params := decl.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var out []Param
	for i := 0; i < int(params.NamedChildCount()); i++ {
		n := params.NamedChild(i)
		p := Param{Kind: n.Type(), Node: n}
		switch n.Type() {
		case "identifier":
			p.NameNode = n
		case "default_parameter":
			p.NameNode = n.ChildByFieldName("name")
		case "typed_default_parameter":
			p.NameNode = n.ChildByFieldName("name")
			p.Annotated = true
		case "typed_parameter":
			p.NameNode = firstIdentifier(n)
			p.Annotated = true
		case "list_splat_pattern", "dictionary_splat_pattern":
			p.NameNode = firstIdentifier(n)
		default:
			continue
		}
		if p.NameNode == nil {
			continue
		}
		p.Name = unit.Text(p.NameNode)
		out = append(out, p)
	}
	return out
}

func firstIdentifier(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "identifier" {
			return c
		}
		if strings.HasSuffix(c.Type(), "splat_pattern") {
			return firstIdentifier(c)
		}
	}
	return nil
}
