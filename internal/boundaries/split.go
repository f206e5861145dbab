package boundaries

import (
	"fmt"

	"github.com/goliatone/go-markers/internal/dom"
)

// SplitTextContainers rewrites both boundaries of r so that neither sits
// inside a text node. A text boundary at the edge of its node moves to the
// parent; one strictly inside is split in place. The returned range points at
// the same positions as r. Ranges whose boundaries are already between nodes
// come back unchanged.
func SplitTextContainers(t *dom.Tree, r Range) (Range, error) {
	start, end, err := splitBoundary(t, r.Start, r.End)
	if err != nil {
		return Range{}, fmt.Errorf("split start: %w", err)
	}
	end, start, err = splitBoundary(t, end, start)
	if err != nil {
		return Range{}, fmt.Errorf("split end: %w", err)
	}
	return Range{Start: start, End: end}, nil
}

// splitBoundary moves b out of its text container and keeps other pointing at
// the same position despite the split.
func splitBoundary(t *dom.Tree, b, other Boundary) (Boundary, Boundary, error) {
	if !t.IsText(b.Container) {
		return b, other, nil
	}
	text := b.Container
	parent := t.Parent(text)
	if parent == dom.Nil {
		return b, other, dom.ErrDetached
	}
	idx := t.Index(text)

	switch {
	case b.Offset <= 0:
		return Raw(parent, idx), other, nil
	case b.Offset >= t.Length(text):
		return Raw(parent, idx+1), other, nil
	}

	split := b.Offset
	tail, err := t.SplitText(text, split)
	if err != nil {
		return b, other, err
	}
	switch {
	case other.Container == text && other.Offset > split:
		other = Raw(tail, other.Offset-split)
	case other.Container == parent && other.Offset > idx:
		other.Offset++
	}
	return Raw(parent, idx+1), other, nil
}
