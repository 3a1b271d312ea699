// Package formatter renders raw documentation text into the comment syntax of
// a target language, indented to sit above or inside a declaration.
package formatter

import (
	"strings"
)

// Formatter turns generated prose into a syntactically valid comment block.
// The returned block has every line prefixed with indent and ends with a
// newline.
type Formatter interface {
	Format(raw, indent string) string
}

// Normalize trims blank lines around text, removes the common leading
// whitespace of its lines and strips trailing whitespace from each line.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	margin := -1
	for _, l := range lines {
		if l == "" {
			continue
		}
		w := len(l) - len(strings.TrimLeft(l, " \t"))
		if margin < 0 || w < margin {
			margin = w
		}
	}
	if margin > 0 {
		for i, l := range lines {
			if len(l) >= margin {
				lines[i] = l[margin:]
			}
		}
	}
	return strings.Join(lines, "\n")
}

// BlockString renders Python-style docstrings delimited by triple quotes.
type BlockString struct {
	Delimiter string
}

// Format renders raw as a docstring. Single-line text stays on one line;
// anything longer puts the delimiters on their own lines. Blank lines carry
// the indentation too. Backslashes are escaped so the literal reads back as
// the generated text.
func (f BlockString) Format(raw, indent string) string {
	delim := f.Delimiter
	if delim == "" {
		delim = `"""`
	}
	text := Normalize(unwrapDelimiters(Normalize(raw), `"""`, `'''`))
	// backslashes first, so the quote escapes below are not doubled
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, delim, escapeQuotes(delim))

	var b strings.Builder
	if text != "" && !strings.Contains(text, "\n") && !endsWithQuoteOrBackslash(text) {
		b.WriteString(indent + delim + text + delim + "\n")
		return b.String()
	}
	b.WriteString(indent + delim + "\n")
	for _, line := range strings.Split(text, "\n") {
		b.WriteString(indent + line + "\n")
	}
	b.WriteString(indent + delim + "\n")
	return b.String()
}

// BlockComment renders either a delimited block comment (Open/Close set) or
// a run of line comments (only Prefix set).
type BlockComment struct {
	Open   string
	Prefix string
	Close  string
}

// Format renders raw as a comment block.
func (f BlockComment) Format(raw, indent string) string {
	text := Normalize(raw)
	if f.Open != "" {
		text = unwrapBlockComment(text)
		text = strings.ReplaceAll(text, "*/", `*\/`)
	} else {
		text = unwrapLineComments(text, strings.TrimSpace(f.Prefix))
	}

	var b strings.Builder
	if f.Open != "" {
		b.WriteString(indent + f.Open + "\n")
	}
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			b.WriteString(indent + f.Prefix + "\n")
			continue
		}
		b.WriteString(indent + f.Prefix + " " + line + "\n")
	}
	if f.Close != "" {
		b.WriteString(indent + f.Close + "\n")
	}
	return b.String()
}

func escapeQuotes(delim string) string {
	var b strings.Builder
	for _, r := range delim {
		b.WriteRune('\\')
		b.WriteRune(r)
	}
	return b.String()
}

func endsWithQuoteOrBackslash(s string) bool {
	return strings.HasSuffix(s, `"`) || strings.HasSuffix(s, `'`) || strings.HasSuffix(s, `\`)
}

// unwrapDelimiters strips a matching pair of delimiters surrounding text.
func unwrapDelimiters(text string, delims ...string) string {
	for _, d := range delims {
		if len(text) >= 2*len(d) && strings.HasPrefix(text, d) && strings.HasSuffix(text, d) {
			return text[len(d) : len(text)-len(d)]
		}
	}
	return text
}

// unwrapBlockComment removes /** ... */ framing and leading "*" gutters when
// the generated text already arrives as a comment.
func unwrapBlockComment(text string) string {
	if !strings.HasPrefix(text, "/*") || !strings.HasSuffix(text, "*/") {
		return text
	}
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		l = strings.TrimLeft(l, " \t")
		l = strings.TrimPrefix(l, "*")
		lines[i] = strings.TrimPrefix(l, " ")
	}
	return Normalize(strings.Join(lines, "\n"))
}

func unwrapLineComments(text, marker string) string {
	if marker == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for _, l := range lines {
		if l != "" && !strings.HasPrefix(l, marker) {
			return text
		}
	}
	for i, l := range lines {
		l = strings.TrimPrefix(l, marker)
		lines[i] = strings.TrimPrefix(l, " ")
	}
	return Normalize(strings.Join(lines, "\n"))
}
