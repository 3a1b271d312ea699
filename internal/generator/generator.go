// Package generator produces documentation text, quality verdicts and type
// hints for declarations.
package generator

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/getlawrence/autodoc/internal/extractor"
	"github.com/getlawrence/autodoc/internal/typehints"
)

// ErrEmptyResponse is returned when a generator produced no usable text.
var ErrEmptyResponse = errors.New("empty response")

// ContentGenerator is the capability the pipeline asks for documentation.
// Implementations must be safe for concurrent use.
type ContentGenerator interface {
	// Generate returns raw documentation prose for sym, without comment
	// delimiters.
	Generate(ctx context.Context, sym extractor.Symbol) (string, error)
	// Evaluate reports whether existing documentation is acceptable.
	Evaluate(ctx context.Context, sym extractor.Symbol, existing string) (bool, error)
	// InferTypes suggests annotations for a function's parameters and
	// return value.
	InferTypes(ctx context.Context, sym extractor.Symbol) (typehints.Hints, error)
}

// Style names accepted by generators.
const (
	StyleGoogle = "google"
	StyleNumpy  = "numpy"
	StyleRST    = "rst"
)

// Styles lists every supported documentation style.
var Styles = []string{StyleGoogle, StyleNumpy, StyleRST}

// ValidStyle reports whether s is a supported style.
func ValidStyle(s string) bool {
	for _, v := range Styles {
		if v == s {
			return true
		}
	}
	return false
}
