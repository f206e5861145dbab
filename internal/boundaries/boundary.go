// Package boundaries models positions inside a dom.Tree: boundaries
// (container + offset), ranges, node-relative cursors and index paths.
package boundaries

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-markers/internal/dom"
)

var (
	// ErrInvalidBoundary indicates a container/offset pair that does not fit the tree.
	ErrInvalidBoundary = errors.New("boundaries: invalid boundary")
	// ErrRangeReversed indicates a range whose start follows its end.
	ErrRangeReversed = errors.New("boundaries: range start is after range end")
	// ErrDisconnected indicates boundaries that do not share a root.
	ErrDisconnected = errors.New("boundaries: boundaries are not in the same tree")
)

const invalidBoundaryCode = "BOUNDARY_INVALID"

// Boundary is a position in the tree. For a text container Offset counts
// runes, for any other container it counts children: Offset n sits between
// child n-1 and child n.
type Boundary struct {
	Container dom.NodeID `json:"container"`
	Offset    int        `json:"offset"`
}

// Raw builds a boundary without validation.
func Raw(container dom.NodeID, offset int) Boundary {
	return Boundary{Container: container, Offset: offset}
}

// FromNode returns the boundary right before node inside its parent.
func FromNode(t *dom.Tree, node dom.NodeID) (Boundary, error) {
	parent := t.Parent(node)
	if parent == dom.Nil {
		return Boundary{}, fmt.Errorf("%w: %w", ErrInvalidBoundary, dom.ErrDetached)
	}
	return Raw(parent, t.Index(node)), nil
}

// AfterNode returns the boundary right after node inside its parent.
func AfterNode(t *dom.Tree, node dom.NodeID) (Boundary, error) {
	b, err := FromNode(t, node)
	if err != nil {
		return Boundary{}, err
	}
	b.Offset++
	return b, nil
}

// IsText reports whether the boundary container is a text node.
func IsText(t *dom.Tree, b Boundary) bool {
	return t.IsText(b.Container)
}

// Validate checks that the container belongs to t and that the offset lies
// within 0..Length(container).
func Validate(t *dom.Tree, b Boundary) error {
	err := validation.ValidateStruct(&b,
		validation.Field(&b.Container,
			validation.Required,
			validation.By(func(value any) error {
				if id, _ := value.(dom.NodeID); !t.Valid(id) {
					return validation.NewError("boundaries.container_unknown", "container is not part of the tree")
				}
				return nil
			}),
		),
		validation.Field(&b.Offset,
			validation.Min(0),
			validation.Max(t.Length(b.Container)),
		),
	)
	if err == nil {
		return nil
	}
	verr := goerrors.FromOzzoValidation(err, "invalid boundary").
		WithTextCode(invalidBoundaryCode).
		WithMetadata(map[string]any{
			"container": uint32(b.Container),
			"offset":    b.Offset,
		})
	verr.Source = ErrInvalidBoundary
	return verr
}
