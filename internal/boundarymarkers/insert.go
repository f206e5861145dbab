// Package boundarymarkers encodes a selection as marker characters inside a
// tree and decodes it back. Start boundaries are written as "[" when their
// container is a text node and "{" otherwise; end boundaries as "]" and "}".
package boundarymarkers

import (
	"github.com/goliatone/go-markers/internal/boundaries"
	"github.com/goliatone/go-markers/internal/dom"
)

// Marker glyphs.
const (
	TextStart    = "["
	TextEnd      = "]"
	ElementStart = "{"
	ElementEnd   = "}"
)

// Insert adds two single character text nodes marking the boundaries of r.
// Text containers are split where a boundary falls inside them, so the tree
// may gain more nodes than the two markers.
func Insert(t *dom.Tree, r boundaries.Range) error {
	if err := boundaries.Validate(t, r.Start); err != nil {
		return err
	}
	if err := boundaries.Validate(t, r.End); err != nil {
		return err
	}

	left, right := ElementStart, ElementEnd
	if t.IsText(r.Start.Container) {
		left = TextStart
	}
	if t.IsText(r.End.Container) {
		right = TextEnd
	}

	r, err := boundaries.SplitTextContainers(t, r)
	if err != nil {
		return err
	}
	start, err := boundaries.CursorFromBoundary(t, r.Start)
	if err != nil {
		return err
	}
	end, err := boundaries.CursorFromBoundary(t, r.End)
	if err != nil {
		return err
	}
	if err := start.Insert(t, t.CreateText(left)); err != nil {
		return err
	}
	return end.Insert(t, t.CreateText(right))
}
