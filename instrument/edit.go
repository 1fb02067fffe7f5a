// Package instrument rewrites digital-output call sites into diagnostic
// log statements without disturbing any unrelated source bytes.
package instrument

import (
	"sort"

	"github.com/inolab/pinspect/inspector/sketch"
)

// Edit is one substitution of a byte span with replacement text. Spans are
// expressed against the original buffer and must not overlap.
type Edit struct {
	Span        sketch.Span
	Replacement []byte
}

// Apply produces a new buffer with all edits applied. Edits are applied in
// descending start-offset order so that offsets computed against the
// original buffer stay valid while earlier spans are still untouched.
// The input buffer is never modified.
func Apply(src []byte, edits []Edit) []byte {
	ordered := make([]Edit, len(edits))
	copy(ordered, edits)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Span.Start > ordered[j].Span.Start
	})

	out := append([]byte(nil), src...)
	for _, edit := range ordered {
		rebuilt := make([]byte, 0, len(out)-edit.Span.Len()+len(edit.Replacement))
		rebuilt = append(rebuilt, out[:edit.Span.Start]...)
		rebuilt = append(rebuilt, edit.Replacement...)
		rebuilt = append(rebuilt, out[edit.Span.End:]...)
		out = rebuilt
	}
	return out
}
