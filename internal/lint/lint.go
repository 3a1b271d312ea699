// Package lint reports naming problems in Python sources.
package lint

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/getlawrence/autodoc/internal/extractor"
	"github.com/getlawrence/autodoc/internal/syntax"
	"github.com/getlawrence/autodoc/internal/typehints"
	sitter "github.com/smacker/go-tree-sitter"
)

// MinNameLength is the shortest name accepted without being allow-listed.
const MinNameLength = 3

var allowedShortNames = map[string]bool{
	"i": true, "j": true, "k": true, "x": true, "y": true, "z": true, "id": true,
}

const assignmentQuery = `(assignment left: (identifier) @target)`

// Finding is one lint warning.
type Finding struct {
	Line    int
	Message string
}

func (f Finding) String() string { return fmt.Sprintf("L%d:[Naming] %s", f.Line, f.Message) }

// Supported reports whether the language can be linted.
func Supported(languageID string) bool { return languageID == "python" }

// ShortNames flags parameters and assignment targets whose names are too
// short to be descriptive.
func ShortNames(unit *syntax.SourceUnit, symbols []extractor.Symbol) ([]Finding, error) {
	var findings []Finding
	for _, sym := range symbols {
		for _, p := range typehints.Parameters(unit, sym.Decl) {
			if tooShort(p.Name) {
				findings = append(findings, Finding{
					Line:    line(p.NameNode),
					Message: fmt.Sprintf("Argument '%s' in function '%s' is too short.", p.Name, sym.Name),
				})
			}
		}
	}

	matches, err := unit.Matches(assignmentQuery)
	if err != nil {
		return nil, err
	}
	seen := make(map[syntax.NodeKey]bool)
	for _, m := range matches {
		target := m.First("target")
		if target == nil || seen[syntax.KeyOf(target)] {
			continue
		}
		seen[syntax.KeyOf(target)] = true
		if name := unit.Text(target); tooShort(name) {
			findings = append(findings, Finding{
				Line:    line(target),
				Message: fmt.Sprintf("Variable name '%s' is too short.", name),
			})
		}
	}
	return findings, nil
}

func tooShort(name string) bool {
	return len(name) < MinNameLength && !allowedShortNames[name]
}

func line(n *sitter.Node) int {
	row, err := safecast.Conv[int](n.StartPoint().Row)
	if err != nil {
		return 0
	}
	return row + 1
}
