package boundarymarkers

import (
	"slices"

	"github.com/goliatone/go-markers/internal/boundaries"
	"github.com/goliatone/go-markers/internal/dom"
)

// Selection is a range expressed as paths from a root node, so it survives
// serializing and reparsing the tree.
type Selection struct {
	Start boundaries.Path `json:"start" yaml:"start"`
	End   boundaries.Path `json:"end" yaml:"end"`
}

// Collapsed reports whether both paths point at the same position.
func (s Selection) Collapsed() bool {
	return slices.Equal(s.Start, s.End)
}

// SelectionFromRange expresses r relative to root.
func SelectionFromRange(t *dom.Tree, root dom.NodeID, r boundaries.Range) (Selection, error) {
	start, err := boundaries.PathFromBoundary(t, root, r.Start)
	if err != nil {
		return Selection{}, err
	}
	end, err := boundaries.PathFromBoundary(t, root, r.End)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Start: start, End: end}, nil
}

// RangeFromSelection resolves sel below root and checks the result is an
// ordered range.
func RangeFromSelection(t *dom.Tree, root dom.NodeID, sel Selection) (boundaries.Range, error) {
	start, err := boundaries.BoundaryFromPath(t, root, sel.Start)
	if err != nil {
		return boundaries.Range{}, err
	}
	end, err := boundaries.BoundaryFromPath(t, root, sel.End)
	if err != nil {
		return boundaries.Range{}, err
	}
	return boundaries.FromBoundaries(t, start, end)
}
