package syntax

import (
	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
)

// Match is one query match with its captures grouped by name.
type Match struct {
	Pattern  uint16
	Captures map[string][]*sitter.Node
}

// First returns the first node captured under name, or nil.
func (m Match) First(name string) *sitter.Node {
	if nodes := m.Captures[name]; len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

// Matches compiles source against the unit's grammar and returns every match
// over the whole tree, in document order.
func (u *SourceUnit) Matches(source string) ([]Match, error) {
	q, err := sitter.NewQuery([]byte(source), u.lang)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compile %s query", u.Language)
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, u.Root())

	var matches []Match
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		if len(m.Captures) == 0 {
			continue
		}
		match := Match{Pattern: m.PatternIndex, Captures: make(map[string][]*sitter.Node)}
		for _, c := range m.Captures {
			name := q.CaptureNameForId(c.Index)
			match.Captures[name] = append(match.Captures[name], c.Node)
		}
		matches = append(matches, match)
	}
	return matches, nil
}
