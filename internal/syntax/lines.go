package syntax

import (
	"bytes"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// LineStart returns the offset of the first byte of the line containing off.
func LineStart(src []byte, off int) int {
	if off > len(src) {
		off = len(src)
	}
	return bytes.LastIndexByte(src[:off], '\n') + 1
}

// LineEnd returns the offset of the newline ending the line containing off,
// or len(src) on the last line.
func LineEnd(src []byte, off int) int {
	if i := bytes.IndexByte(src[off:], '\n'); i >= 0 {
		return off + i
	}
	return len(src)
}

// Indentation returns the leading whitespace of the line containing off.
func Indentation(src []byte, off int) string {
	start := LineStart(src, off)
	end := start
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return string(src[start:end])
}

// IndentWidth counts the leading whitespace characters of the line
// containing off. Tabs count as one.
func IndentWidth(src []byte, off int) int {
	return len(Indentation(src, off))
}

// OnlyWhitespaceBefore reports whether nothing but spaces or tabs precede off
// on its line.
func OnlyWhitespaceBefore(src []byte, off int) bool {
	return strings.Trim(string(src[LineStart(src, off):off]), " \t") == ""
}

// Row returns the zero-based row on which n starts.
func Row(n *sitter.Node) uint32 { return n.StartPoint().Row }

// EndRow returns the zero-based row on which n ends.
func EndRow(n *sitter.Node) uint32 { return n.EndPoint().Row }
