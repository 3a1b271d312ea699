// Package syntax wraps tree-sitter parsing and query execution over a single
// immutable source buffer.
package syntax

import (
	"context"

	"fortio.org/safecast"
	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
)

// NodeKey identifies a node by its span and kind. Equal keys denote the same
// declaration within one parse of one buffer.
type NodeKey struct {
	Start uint32
	End   uint32
	Kind  string
}

// KeyOf returns the identity key for n.
func KeyOf(n *sitter.Node) NodeKey {
	return NodeKey{Start: n.StartByte(), End: n.EndByte(), Kind: n.Type()}
}

// SourceUnit is a parsed file. Content is never mutated; edits are planned
// against it and applied to a copy.
type SourceUnit struct {
	Path     string
	Language string
	Content  []byte
	Tree     *sitter.Tree
	lang     *sitter.Language
}

// Parse builds a SourceUnit for src using the given grammar.
func Parse(ctx context.Context, path, languageID string, lang *sitter.Language, src []byte) (*SourceUnit, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return &SourceUnit{
		Path:     path,
		Language: languageID,
		Content:  src,
		Tree:     tree,
		lang:     lang,
	}, nil
}

// Close releases the tree.
func (u *SourceUnit) Close() {
	if u.Tree != nil {
		u.Tree.Close()
	}
}

// Root returns the root node of the tree.
func (u *SourceUnit) Root() *sitter.Node { return u.Tree.RootNode() }

// HasErrors reports whether the parser had to recover from syntax errors.
func (u *SourceUnit) HasErrors() bool { return u.Root().HasError() }

// Text returns the source bytes covered by n.
func (u *SourceUnit) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(u.Content)
}

// Offset converts a tree-sitter byte offset to an int index into Content.
func Offset(b uint32) int {
	v, err := safecast.Conv[int](b)
	if err != nil {
		// uint32 always fits in int on the 64-bit targets we build for.
		panic(err)
	}
	return v
}

// Span returns the [start, end) byte range of n as ints.
func Span(n *sitter.Node) (int, int) {
	return Offset(n.StartByte()), Offset(n.EndByte())
}
