package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/getlawrence/autodoc/internal/extractor"
	"github.com/getlawrence/autodoc/internal/typehints"
)

// Mock produces deterministic placeholder documentation without any network
// access. It accepts all existing documentation and infers no types.
type Mock struct {
	Style string
}

func NewMock(style string) *Mock {
	return &Mock{Style: style}
}

func (m *Mock) Generate(_ context.Context, sym extractor.Symbol) (string, error) {
	name := sym.Name
	if name == "" {
		name = "this declaration"
	}
	summary := fmt.Sprintf("Summary of %s.", name)
	switch m.Style {
	case StyleNumpy:
		return strings.Join([]string{summary, "", "Returns", "-------", "Description of the result."}, "\n"), nil
	case StyleRST:
		return strings.Join([]string{summary, "", ":returns: Description of the result."}, "\n"), nil
	default:
		return strings.Join([]string{summary, "", "Returns:", "    Description of the result."}, "\n"), nil
	}
}

func (m *Mock) Evaluate(context.Context, extractor.Symbol, string) (bool, error) {
	return true, nil
}

func (m *Mock) InferTypes(context.Context, extractor.Symbol) (typehints.Hints, error) {
	return typehints.Hints{}, nil
}
