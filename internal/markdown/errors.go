package markdown

import "errors"

var (
	// ErrUnknownFormat reports a fixture format other than html or markdown.
	ErrUnknownFormat = errors.New("markdown: unknown fixture format")
	// ErrNilFixture is returned when a nil fixture is rendered.
	ErrNilFixture = errors.New("markdown: fixture is nil")
)
