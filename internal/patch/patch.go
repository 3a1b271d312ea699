// Package patch applies non-overlapping byte-range edits to an immutable
// source buffer in a single forward pass.
package patch

import (
	"bytes"
	"sort"

	"github.com/cockroachdb/errors"
)

// ErrOverlap marks edit sets whose ranges intersect. Overlap is a planner bug:
// the file that produced it is abandoned rather than partially rewritten.
var ErrOverlap = errors.New("overlapping edits")

// Kind tags an edit with the feature that produced it.
type Kind string

const (
	KindDoc       Kind = "doc"
	KindSignature Kind = "signature"
	KindImport    Kind = "import"
)

// Edit replaces the half-open byte range [Start, End) with Text.
// Start == End is a pure insertion.
type Edit struct {
	Start int
	End   int
	Text  string
	Kind  Kind
	// Symbol is the declaration name the edit belongs to, if any.
	Symbol string
}

// IsInsert reports whether the edit removes no bytes.
func (e Edit) IsInsert() bool { return e.Start == e.End }

// overlaps reports whether e and o touch the same bytes. Two insertions at the
// same offset do not overlap; neither does an insertion sitting at the boundary
// of a replacement.
func (e Edit) overlaps(o Edit) bool {
	if e.IsInsert() && o.IsInsert() {
		return false
	}
	if e.IsInsert() {
		return e.Start > o.Start && e.Start < o.End
	}
	if o.IsInsert() {
		return o.Start > e.Start && o.Start < e.End
	}
	return e.Start < o.End && o.Start < e.End
}

// EditSet collects the edits planned for one buffer.
type EditSet struct {
	size  int
	edits []Edit
}

// NewEditSet returns an empty set for a buffer of size bytes.
func NewEditSet(size int) *EditSet {
	return &EditSet{size: size}
}

// Add validates e against the buffer bounds and the edits already collected.
// A rejected edit leaves the set unchanged.
func (s *EditSet) Add(e Edit) error {
	if e.Start < 0 || e.End < e.Start || e.End > s.size {
		return errors.AssertionFailedf("edit [%d,%d) out of bounds for buffer of %d bytes", e.Start, e.End, s.size)
	}
	for _, o := range s.edits {
		if e.overlaps(o) {
			return errors.Mark(
				errors.AssertionFailedf("edit [%d,%d) for %q overlaps edit [%d,%d) for %q",
					e.Start, e.End, e.Symbol, o.Start, o.End, o.Symbol),
				ErrOverlap)
		}
	}
	s.edits = append(s.edits, e)
	return nil
}

// Len returns the number of collected edits.
func (s *EditSet) Len() int { return len(s.edits) }

// Size returns the length of the buffer the set was planned against.
func (s *EditSet) Size() int { return s.size }

// Sorted returns the edits ordered by start offset. At equal offsets
// insertions come before replacements; otherwise insertion order is kept.
func (s *EditSet) Sorted() []Edit {
	out := make([]Edit, len(s.edits))
	copy(out, s.edits)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].IsInsert() && !out[j].IsInsert()
	})
	return out
}

// Validate checks the sorted sequence: each edit must end at or before the
// start of the next one.
func (s *EditSet) Validate() error {
	sorted := s.Sorted()
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.End > cur.Start {
			return errors.Mark(
				errors.AssertionFailedf("edit [%d,%d) overlaps edit [%d,%d)", prev.Start, prev.End, cur.Start, cur.End),
				ErrOverlap)
		}
	}
	return nil
}

// Apply produces a new buffer with every edit in s applied to src. src is not
// modified. An empty set yields a byte-identical copy.
func Apply(src []byte, s *EditSet) ([]byte, error) {
	if s == nil || s.Len() == 0 {
		return bytes.Clone(src), nil
	}
	if s.size != len(src) {
		return nil, errors.AssertionFailedf("edit set planned for %d bytes applied to %d bytes", s.size, len(src))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	growth := 0
	for _, e := range s.edits {
		growth += len(e.Text) - (e.End - e.Start)
	}
	var out bytes.Buffer
	out.Grow(len(src) + max(growth, 0))

	cursor := 0
	for _, e := range s.Sorted() {
		out.Write(src[cursor:e.Start])
		out.WriteString(e.Text)
		cursor = e.End
	}
	out.Write(src[cursor:])
	return out.Bytes(), nil
}

// ApplyString is Apply over a string buffer.
func ApplyString(src string, edits ...Edit) (string, error) {
	set := NewEditSet(len(src))
	for _, e := range edits {
		if err := set.Add(e); err != nil {
			return "", err
		}
	}
	out, err := Apply([]byte(src), set)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
