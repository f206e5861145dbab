package boundarymarkers

import (
	"fmt"

	"github.com/goliatone/go-markers/internal/boundaries"
	"github.com/goliatone/go-markers/internal/dom"
)

// DefaultWrapperTag is the throwaway element used to serialize fragments.
const DefaultWrapperTag = "div"

// Show renders the smallest subtree enclosing r with markers inserted at its
// boundaries. The subtree is the parent of the common ancestor when there is
// one, so siblings next to the selection show up in the snapshot. t is never
// modified.
func Show(t *dom.Tree, r boundaries.Range) (string, error) {
	return show(t, r, DefaultWrapperTag)
}

func show(t *dom.Tree, r boundaries.Range, wrapperTag string) (string, error) {
	r, err := boundaries.FromBoundaries(t, r.Start, r.End)
	if err != nil {
		return "", err
	}
	cac, err := boundaries.CommonAncestor(t, r)
	if err != nil {
		return "", err
	}
	start, err := boundaries.PathFromBoundary(t, cac, r.Start)
	if err != nil {
		return "", err
	}
	end, err := boundaries.PathFromBoundary(t, cac, r.End)
	if err != nil {
		return "", err
	}

	scratch := dom.NewTree()
	var clone dom.NodeID
	var root boundaries.Path
	if parent := t.Parent(cac); parent != dom.Nil {
		at, err := boundaries.FromNode(t, cac)
		if err != nil {
			return "", err
		}
		if root, err = boundaries.PathFromBoundary(t, parent, at); err != nil {
			return "", err
		}
		clone = t.CloneInto(scratch, parent)
	} else {
		clone, root, err = detachedClone(t, scratch, cac)
		if err != nil {
			return "", err
		}
	}

	copyStart, err := boundaries.BoundaryFromPath(scratch, clone, root.Concat(start))
	if err != nil {
		return "", err
	}
	copyEnd, err := boundaries.BoundaryFromPath(scratch, clone, root.Concat(end))
	if err != nil {
		return "", err
	}
	if err := Insert(scratch, boundaries.Range{Start: copyStart, End: copyEnd}); err != nil {
		return "", err
	}
	return serializeOwned(scratch, clone, wrapperTag)
}

// detachedClone copies a common ancestor that has no parent. Fragments and
// documents are used as they are; a lone element or text node is wrapped in
// a fragment so that inserting before it stays possible.
func detachedClone(t *dom.Tree, scratch *dom.Tree, cac dom.NodeID) (dom.NodeID, boundaries.Path, error) {
	copied := t.CloneInto(scratch, cac)
	if kind := scratch.Kind(copied); kind == dom.KindFragment || kind == dom.KindDocument {
		return copied, boundaries.Path{}, nil
	}
	wrapper := scratch.CreateFragment()
	if err := scratch.AppendChild(wrapper, copied); err != nil {
		return dom.Nil, nil, err
	}
	return wrapper, boundaries.Path{0}, nil
}

// serialize renders id without modifying t. Fragment children are copied to a
// scratch tree before they are moved under the wrapper element.
func serialize(t *dom.Tree, id dom.NodeID, wrapperTag string) (string, error) {
	if !t.Valid(id) {
		return "", dom.ErrInvalidNode
	}
	if kind := t.Kind(id); kind == dom.KindElement || kind == dom.KindDocument {
		return serializeOwned(t, id, wrapperTag)
	}
	scratch := dom.NewTree()
	return serializeOwned(scratch, t.CloneInto(scratch, id), wrapperTag)
}

// serializeOwned renders id from a tree the caller owns: fragment children are
// moved under a throwaway wrapper element.
func serializeOwned(t *dom.Tree, id dom.NodeID, wrapperTag string) (string, error) {
	if t.Kind(id) == dom.KindElement {
		return t.OuterHTML(id)
	}
	if t.Kind(id) == dom.KindDocument {
		return t.InnerHTML(id)
	}
	wrapper := t.CreateElement(wrapperTag)
	for _, child := range t.Children(id) {
		if err := t.AppendChild(wrapper, child); err != nil {
			return "", err
		}
	}
	return t.InnerHTML(wrapper)
}

// Hint is Show for the shapes a selection is usually held in: a single
// Boundary (shown collapsed), a pair of boundaries as [2]Boundary or a two
// element []Boundary, a Range or a *Range.
func Hint(t *dom.Tree, target any) (string, error) {
	r, err := hintRange(target)
	if err != nil {
		return "", err
	}
	return Show(t, r)
}

func hintRange(target any) (boundaries.Range, error) {
	switch v := target.(type) {
	case boundaries.Boundary:
		return boundaries.Range{Start: v, End: v}, nil
	case [2]boundaries.Boundary:
		return boundaries.Range{Start: v[0], End: v[1]}, nil
	case []boundaries.Boundary:
		if len(v) != 2 {
			return boundaries.Range{}, fmt.Errorf("%w: expected 2 boundaries, got %d", ErrUnsupportedHintTarget, len(v))
		}
		return boundaries.Range{Start: v[0], End: v[1]}, nil
	case boundaries.Range:
		return v, nil
	case *boundaries.Range:
		if v == nil {
			return boundaries.Range{}, fmt.Errorf("%w: nil range", ErrUnsupportedHintTarget)
		}
		return *v, nil
	default:
		return boundaries.Range{}, fmt.Errorf("%w: %T", ErrUnsupportedHintTarget, target)
	}
}
