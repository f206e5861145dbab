package boundarymarkers

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrMarkerProtocol groups the errors raised when markers appear in an
	// order extraction cannot accept.
	ErrMarkerProtocol = errors.New("boundarymarkers: marker protocol violation")
	// ErrMarkerOrder reports an end marker before any start marker, or a
	// second start marker.
	ErrMarkerOrder = fmt.Errorf("%w: marker order", ErrMarkerProtocol)
	// ErrTooManyMarkers reports a third marker.
	ErrTooManyMarkers = fmt.Errorf("%w: too many markers", ErrMarkerProtocol)
	// ErrMissingMarkers reports a tree holding fewer than two markers.
	ErrMissingMarkers = errors.New("boundarymarkers: missing one or both markers")
	// ErrUnsupportedHintTarget is returned by Hint for values it cannot turn
	// into a range.
	ErrUnsupportedHintTarget = errors.New("boundarymarkers: unsupported hint target")
)

// Text codes attached to marker errors.
const (
	CodeMarkerOrder    = "MARKER_ORDER"
	CodeMarkerOverflow = "MARKER_OVERFLOW"
	CodeMarkerMissing  = "MARKER_MISSING"
)

func markerError(sentinel error, code, message string, meta map[string]any) error {
	return goerrors.Wrap(sentinel, goerrors.CategoryBadInput, message).
		WithTextCode(code).
		WithMetadata(meta)
}

// TextCode returns the text code carried by err, or "" when there is none.
func TextCode(err error) string {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.TextCode
	}
	return ""
}
