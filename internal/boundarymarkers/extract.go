package boundarymarkers

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/goliatone/go-markers/internal/boundaries"
	"github.com/goliatone/go-markers/internal/dom"
	"github.com/goliatone/go-markers/internal/util"
)

var markerPattern = regexp.MustCompile(`[\[{}\]]`)

func isMarker(token string) bool {
	switch token {
	case TextStart, TextEnd, ElementStart, ElementEnd:
		return true
	}
	return false
}

func isStartMarker(token string) bool {
	return token == TextStart || token == ElementStart
}

func isEndMarker(token string) bool {
	return token == TextEnd || token == ElementEnd
}

// extraction carries the state of a single Extract call across the visits
// of the tree walk.
type extraction struct {
	tree         *dom.Tree
	markersFound int
	start        boundaries.Boundary
	end          boundaries.Boundary
	err          error
}

// Extract removes the markers found below root, rejoins the text that Insert
// split and returns the selection the markers described. Text nodes are
// visited in document order. On error the tree may be left partially
// rewritten; run Extract on a clone when that matters.
func Extract(t *dom.Tree, root dom.NodeID) (boundaries.Range, error) {
	if !t.Valid(root) {
		return boundaries.Range{}, dom.ErrInvalidNode
	}
	state := &extraction{tree: t}
	t.WalkRec(root, state.visit)
	if state.err != nil {
		return boundaries.Range{}, state.err
	}
	if state.markersFound != 2 {
		return boundaries.Range{}, markerError(ErrMissingMarkers, CodeMarkerMissing,
			"Missing one or both markers",
			map[string]any{"markers_found": state.markersFound})
	}
	return boundaries.Range{Start: state.start, End: state.end}, nil
}

func (x *extraction) visit(node dom.NodeID) {
	if x.err != nil || !x.tree.IsText(node) {
		return
	}
	tokens := util.SplitIncl(x.tree.Text(node), markerPattern)
	if !slices.ContainsFunc(tokens, isMarker) {
		return
	}
	parent := x.tree.Parent(node)
	if parent == dom.Nil {
		x.err = fmt.Errorf("boundarymarkers: marker in detached text node %d: %w", node, dom.ErrDetached)
		return
	}

	forceNextSplit := false
	for i, token := range tokens {
		forceNextSplit = forceNextSplit || i == 0
		if isMarker(token) {
			force, err := x.setBoundary(token, node)
			if err != nil {
				x.err = err
				return
			}
			forceNextSplit = force
			continue
		}
		prev := x.tree.PreviousSibling(node)
		if !forceNextSplit && prev != dom.Nil && x.tree.IsText(prev) {
			x.err = x.tree.AppendData(prev, token)
		} else {
			x.err = x.tree.InsertBefore(parent, x.tree.CreateText(token), node)
		}
		if x.err != nil {
			return
		}
	}
	x.err = x.tree.Remove(node)
}

// setBoundary records the boundary for marker found inside node and reports
// whether the following text must start a new node.
func (x *extraction) setBoundary(marker string, node dom.NodeID) (bool, error) {
	meta := map[string]any{"marker": marker, "markers_found": x.markersFound}
	var target *boundaries.Boundary
	switch x.markersFound {
	case 0:
		if !isStartMarker(marker) {
			return false, markerError(ErrMarkerOrder, CodeMarkerOrder, "end marker before start marker", meta)
		}
		target = &x.start
	case 1:
		if !isEndMarker(marker) {
			return false, markerError(ErrMarkerOrder, CodeMarkerOrder, "start marker before end marker", meta)
		}
		target = &x.end
	default:
		return false, markerError(ErrTooManyMarkers, CodeMarkerOverflow, "Too many markers", meta)
	}
	x.markersFound++

	parent := x.tree.Parent(node)
	if marker == TextStart || marker == TextEnd {
		prev := x.tree.PreviousSibling(node)
		if prev == dom.Nil || !x.tree.IsText(prev) {
			prev = x.tree.CreateText("")
			if err := x.tree.InsertBefore(parent, prev, node); err != nil {
				return false, err
			}
		}
		*target = boundaries.Raw(prev, x.tree.Length(prev))
		return false, nil
	}
	*target = boundaries.Raw(parent, x.tree.Index(node))
	return true, nil
}
