package boundaries

import (
	"cmp"
	"fmt"

	"github.com/goliatone/go-markers/internal/dom"
)

// Range is an ordered pair of boundaries. Start never follows End.
type Range struct {
	Start Boundary `json:"start"`
	End   Boundary `json:"end"`
}

// FromBoundaries validates both boundaries and builds a range. A start that
// follows the end yields ErrRangeReversed.
func FromBoundaries(t *dom.Tree, start, end Boundary) (Range, error) {
	if err := Validate(t, start); err != nil {
		return Range{}, err
	}
	if err := Validate(t, end); err != nil {
		return Range{}, err
	}
	order, err := Compare(t, start, end)
	if err != nil {
		return Range{}, err
	}
	if order > 0 {
		return Range{}, ErrRangeReversed
	}
	return Range{Start: start, End: end}, nil
}

// Collapsed reports whether both boundaries are the same point.
func (r Range) Collapsed() bool {
	return r.Start == r.End
}

// Compare orders two boundary points of t. It returns -1 when a comes first,
// 0 when both are equal and 1 when a comes after b.
func Compare(t *dom.Tree, a, b Boundary) (int, error) {
	chainA := t.Ancestors(a.Container)
	chainB := t.Ancestors(b.Container)
	if len(chainA) == 0 || len(chainB) == 0 || chainA[0] != chainB[0] {
		return 0, ErrDisconnected
	}

	k := 0
	for k < len(chainA) && k < len(chainB) && chainA[k] == chainB[k] {
		k++
	}

	switch {
	case k == len(chainA) && k == len(chainB):
		return cmp.Compare(a.Offset, b.Offset), nil
	case k == len(chainA):
		// a.Container is an ancestor of b.Container.
		if a.Offset <= t.Index(chainB[k]) {
			return -1, nil
		}
		return 1, nil
	case k == len(chainB):
		if b.Offset <= t.Index(chainA[k]) {
			return 1, nil
		}
		return -1, nil
	default:
		return cmp.Compare(t.Index(chainA[k]), t.Index(chainB[k])), nil
	}
}

// CommonAncestor returns the deepest node containing both containers of r.
func CommonAncestor(t *dom.Tree, r Range) (dom.NodeID, error) {
	chainA := t.Ancestors(r.Start.Container)
	chainB := t.Ancestors(r.End.Container)
	if len(chainA) == 0 || len(chainB) == 0 || chainA[0] != chainB[0] {
		return dom.Nil, fmt.Errorf("%w: no common ancestor", ErrDisconnected)
	}
	common := chainA[0]
	for i := 1; i < len(chainA) && i < len(chainB) && chainA[i] == chainB[i]; i++ {
		common = chainA[i]
	}
	return common, nil
}
