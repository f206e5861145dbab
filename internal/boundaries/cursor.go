package boundaries

import (
	"fmt"

	"github.com/goliatone/go-markers/internal/dom"
)

// Cursor is an insertion point relative to a node: either right before Node,
// or, when AtEnd is set, after the last child of Node.
type Cursor struct {
	Node  dom.NodeID
	AtEnd bool
}

// CursorFromBoundary converts a boundary between nodes into a cursor. Text
// boundaries must be split with SplitTextContainers first.
func CursorFromBoundary(t *dom.Tree, b Boundary) (Cursor, error) {
	if t.IsText(b.Container) {
		return Cursor{}, fmt.Errorf("%w: cursor inside text node %d", ErrInvalidBoundary, b.Container)
	}
	if err := Validate(t, b); err != nil {
		return Cursor{}, err
	}
	if b.Offset < t.ChildCount(b.Container) {
		return Cursor{Node: t.ChildAt(b.Container, b.Offset)}, nil
	}
	return Cursor{Node: b.Container, AtEnd: true}, nil
}

// Insert places node at the cursor.
func (c Cursor) Insert(t *dom.Tree, node dom.NodeID) error {
	if c.AtEnd {
		return t.AppendChild(c.Node, node)
	}
	parent := t.Parent(c.Node)
	if parent == dom.Nil {
		return dom.ErrDetached
	}
	return t.InsertBefore(parent, node, c.Node)
}
