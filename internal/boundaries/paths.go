package boundaries

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goliatone/go-markers/internal/dom"
)

// ErrInvalidPath is returned when a path cannot be resolved below a node.
var ErrInvalidPath = errors.New("boundaries: invalid path")

// Path locates a boundary below an ancestor: the child indexes leading from
// the ancestor to the container, followed by the boundary offset.
type Path []int

// PathFromBoundary expresses b relative to ancestor.
func PathFromBoundary(t *dom.Tree, ancestor dom.NodeID, b Boundary) (Path, error) {
	path := Path{b.Offset}
	node := b.Container
	for node != ancestor {
		parent := t.Parent(node)
		if parent == dom.Nil {
			return nil, fmt.Errorf("%w: node %d is not below %d", ErrInvalidPath, b.Container, ancestor)
		}
		path = append(path, t.Index(node))
		node = parent
	}
	slices.Reverse(path)
	return path, nil
}

// BoundaryFromPath resolves path below ancestor. It is the inverse of
// PathFromBoundary and works on any tree with the same shape, clones included.
func BoundaryFromPath(t *dom.Tree, ancestor dom.NodeID, path Path) (Boundary, error) {
	if len(path) == 0 {
		return Boundary{}, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	node := ancestor
	for _, idx := range path[:len(path)-1] {
		child := t.ChildAt(node, idx)
		if child == dom.Nil {
			return Boundary{}, fmt.Errorf("%w: no child %d under node %d", ErrInvalidPath, idx, node)
		}
		node = child
	}
	b := Raw(node, path[len(path)-1])
	if err := Validate(t, b); err != nil {
		return Boundary{}, err
	}
	return b, nil
}

// Concat returns p followed by rest.
func (p Path) Concat(rest Path) Path {
	out := make(Path, 0, len(p)+len(rest))
	out = append(out, p...)
	return append(out, rest...)
}
