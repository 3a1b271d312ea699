package engine

import "github.com/getlawrence/autodoc/internal/patch"

// Summary aggregates the results of a run.
type Summary struct {
	Files      int
	Changed    int
	Written    int
	Skipped    int
	Errored    int
	Docs       int
	Signatures int
	Imports    int
	Failures   int
	Findings   int
}

// Summarize folds results into totals. Nil results (from a cancelled run)
// are ignored.
func Summarize(results []*FileResult) Summary {
	var s Summary
	for _, r := range results {
		if r == nil {
			continue
		}
		s.Files++
		switch {
		case r.Skipped != nil:
			s.Skipped++
			continue
		case r.Err != nil:
			s.Errored++
			continue
		}
		if r.Changed() {
			s.Changed++
		}
		if r.Written {
			s.Written++
		}
		s.Docs += r.Count(patch.KindDoc)
		s.Signatures += r.Count(patch.KindSignature)
		s.Imports += r.Count(patch.KindImport)
		s.Failures += r.Failures
		s.Findings += len(r.Findings)
	}
	return s
}
