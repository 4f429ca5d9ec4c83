package markdown

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Edit replaces src[Start:End] with Text. Offsets are byte offsets into the
// original source; End is exclusive.
type Edit struct {
	Start int
	End   int
	Text  string
}

// ApplyEdits applies non-overlapping edits to src.
//
// Edits are validated against the original source and applied from the end
// toward the beginning, so one replacement never shifts the offsets of
// another. Two edits producing identical text are still applied to their own
// spans only.
func ApplyEdits(src string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return src, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start > sorted[j].Start
	})

	for i, e := range sorted {
		switch {
		case e.Start < 0 || e.End < 0:
			return "", fmt.Errorf("invalid edit[%d]: negative range", i)
		case e.End < e.Start:
			return "", fmt.Errorf("invalid edit[%d]: end before start", i)
		case e.End > len(src):
			return "", fmt.Errorf("invalid edit[%d]: range out of bounds", i)
		}
		// Sorted by Start descending: each edit must end before the previous one begins.
		if i > 0 && e.End > sorted[i-1].Start {
			return "", errors.New("invalid edits: overlapping ranges")
		}
	}

	out := src
	for _, e := range sorted {
		var b strings.Builder
		b.Grow(len(out) - (e.End - e.Start) + len(e.Text))
		b.WriteString(out[:e.Start])
		b.WriteString(e.Text)
		b.WriteString(out[e.End:])
		out = b.String()
	}
	return out, nil
}

// MustApplyEdits is ApplyEdits for edits produced by this package's own
// scanners, which are non-overlapping by construction.
func MustApplyEdits(src string, edits []Edit) string {
	out, err := ApplyEdits(src, edits)
	if err != nil {
		panic(fmt.Sprintf("markdown: %v", err))
	}
	return out
}
