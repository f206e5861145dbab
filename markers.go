package markers

import (
	"context"

	"github.com/goliatone/go-markers/internal/boundaries"
	"github.com/goliatone/go-markers/internal/boundarymarkers"
	markerscmd "github.com/goliatone/go-markers/internal/commands/markers"
	"github.com/goliatone/go-markers/internal/di"
	"github.com/goliatone/go-markers/internal/dom"
	"github.com/goliatone/go-markers/internal/fixtures"
	"github.com/goliatone/go-markers/pkg/interfaces"
)

// Tree is the rich-text node arena markers are read from and written to.
type Tree = dom.Tree

// NodeID addresses a node inside a Tree.
type NodeID = dom.NodeID

// Boundary is a position between children of a container or inside a text node.
type Boundary = boundaries.Boundary

// Range is an ordered pair of boundaries.
type Range = boundaries.Range

// Path addresses a boundary by child indexes from a root, followed by the offset.
type Path = boundaries.Path

// Selection is a range expressed as paths.
type Selection = boundarymarkers.Selection

// ExtractResult is the markup and selection recovered from marked markup.
type ExtractResult = boundarymarkers.ExtractResult

// MarkerService exports the marker service.
type MarkerService = *boundarymarkers.Service

// FixtureRunner exports the fixture runner.
type FixtureRunner = *fixtures.Runner

// FixtureReport exports the fixture run summary.
type FixtureReport = fixtures.Report

// CommandHandlers bundles the go-command handlers for hint, extract and
// fixture checks.
type CommandHandlers = markerscmd.Handlers

// Marker glyphs.
const (
	TextStart    = boundarymarkers.TextStart
	TextEnd      = boundarymarkers.TextEnd
	ElementStart = boundarymarkers.ElementStart
	ElementEnd   = boundarymarkers.ElementEnd
)

var (
	// ErrMarkerProtocol is matched by every marker ordering or count error.
	ErrMarkerProtocol = boundarymarkers.ErrMarkerProtocol
	// ErrMarkerOrder reports an end marker before a start marker, or a second start marker.
	ErrMarkerOrder = boundarymarkers.ErrMarkerOrder
	// ErrTooManyMarkers reports a third marker.
	ErrTooManyMarkers = boundarymarkers.ErrTooManyMarkers
	// ErrMissingMarkers reports markup holding fewer than two markers.
	ErrMissingMarkers = boundarymarkers.ErrMissingMarkers
	// ErrUnsupportedHintTarget is returned by Hint for values it cannot turn into a range.
	ErrUnsupportedHintTarget = boundarymarkers.ErrUnsupportedHintTarget
	// ErrInvalidBoundary reports a container/offset pair that does not fit the tree.
	ErrInvalidBoundary = boundaries.ErrInvalidBoundary
	// ErrRangeReversed reports a range whose start follows its end.
	ErrRangeReversed = boundaries.ErrRangeReversed
)

// Module represents the top level markers runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a markers module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Markers returns the configured marker service.
func (m *Module) Markers() MarkerService {
	return m.container.MarkerService()
}

// Fixtures returns the fixture runner, nil unless the fixtures feature is on.
func (m *Module) Fixtures() FixtureRunner {
	return m.container.FixtureRunner()
}

// Commands returns the command handlers backed by this module's services.
func (m *Module) Commands() CommandHandlers {
	return m.container.Commands()
}

// Markdown returns the markdown parser used for markdown fixtures.
func (m *Module) Markdown() interfaces.MarkdownParser {
	return m.container.MarkdownParser()
}

// RunFixtures checks every fixture under dir with the configured runner.
func (m *Module) RunFixtures(ctx context.Context, dir string) (FixtureReport, error) {
	runner := m.Fixtures()
	if runner == nil {
		return FixtureReport{}, ErrFixturesFeatureRequired
	}
	return runner.Run(ctx, dir, interfaces.LoadOptions{})
}

// ParseFragment parses markup as the children of a div.
func ParseFragment(markup string) (*Tree, NodeID, error) {
	return dom.ParseFragmentString(markup)
}

// Insert writes the markers for r into t.
func Insert(t *Tree, r Range) error {
	return boundarymarkers.Insert(t, r)
}

// Extract removes the markers below root and returns the range they encoded.
func Extract(t *Tree, root NodeID) (Range, error) {
	return boundarymarkers.Extract(t, root)
}

// Show renders r with markers without modifying t.
func Show(t *Tree, r Range) (string, error) {
	return boundarymarkers.Show(t, r)
}

// Hint renders a Boundary, [2]Boundary, []Boundary, Range or *Range.
func Hint(t *Tree, target any) (string, error) {
	return boundarymarkers.Hint(t, target)
}
