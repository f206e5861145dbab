package fixtures

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-markers/internal/boundarymarkers"
	"github.com/goliatone/go-markers/internal/logging"
	"github.com/goliatone/go-markers/internal/validation"
	"github.com/goliatone/go-markers/pkg/interfaces"
)

// ErrRunnerNotConfigured is returned when Run is called without a marker
// service or fixture source.
var ErrRunnerNotConfigured = errors.New("fixtures: runner requires a marker service and a fixture source")

// IDGenerator produces run identifiers.
type IDGenerator func() uuid.UUID

// Runner loads fixtures and checks each one against the marker service.
type Runner struct {
	markers *boundarymarkers.Service
	source  interfaces.FixtureService
	logger  interfaces.Logger
	now     func() time.Time
	id      IDGenerator
}

// RunnerOption customises a Runner.
type RunnerOption func(*Runner)

// WithLogger attaches the logger run progress is reported to.
func WithLogger(logger interfaces.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock overrides the clock used to stamp reports.
func WithClock(clock func() time.Time) RunnerOption {
	return func(r *Runner) {
		if clock != nil {
			r.now = clock
		}
	}
}

// WithIDGenerator overrides how run ids are generated.
func WithIDGenerator(generator IDGenerator) RunnerOption {
	return func(r *Runner) {
		if generator != nil {
			r.id = generator
		}
	}
}

// NewRunner wires a runner over the marker service and fixture source.
func NewRunner(markers *boundarymarkers.Service, source interfaces.FixtureService, opts ...RunnerOption) *Runner {
	runner := &Runner{
		markers: markers,
		source:  source,
		logger:  logging.NoOp(),
		now:     time.Now,
		id:      uuid.New,
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// Run checks every fixture under dir. A fixture failing its checks is
// recorded in the report; only load errors and cancellation abort the run.
func (r *Runner) Run(ctx context.Context, dir string, opts interfaces.LoadOptions) (Report, error) {
	if r == nil || r.markers == nil || r.source == nil {
		return Report{}, ErrRunnerNotConfigured
	}
	if ctx == nil {
		ctx = context.Background()
	}

	report := Report{
		RunID:     r.id(),
		Dir:       dir,
		StartedAt: r.now(),
	}
	runFields := map[string]any{
		"run_id": report.RunID.String(),
		"dir":    dir,
	}
	logger := logging.WithFields(r.logger, runFields)
	ctx = logging.ContextWithFields(ctx, map[string]any{"run_id": runFields["run_id"]})

	loaded, err := r.source.LoadDirectory(ctx, dir, opts)
	if err != nil {
		logging.WithFields(logger, map[string]any{"error": err}).Error("markers.fixtures.load_failed")
		return report, fmt.Errorf("fixtures: load %s: %w", dir, err)
	}

	for _, fixture := range loaded {
		result := r.Check(ctx, fixture)
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.add(result)

		fixtureLogger := logging.WithFixtureContext(logger, fixture.FilePath, fixture.FrontMatter.Name)
		if result.Status == StatusFailed {
			logging.WithFields(fixtureLogger, map[string]any{
				"failures": len(result.Failures),
			}).Warn("markers.fixtures.fixture_failed")
			continue
		}
		fixtureLogger.Debug("markers.fixtures.fixture_" + string(result.Status))
	}

	report.FinishedAt = r.now()
	logging.WithFields(logger, map[string]any{
		"passed":      report.Passed,
		"failed":      report.Failed,
		"skipped":     report.Skipped,
		"duration_ms": report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
	}).Info("markers.fixtures.run_completed")
	return report, nil
}

// Check runs the selection, hint and round trip checks for one fixture.
func (r *Runner) Check(ctx context.Context, fixture *interfaces.Fixture) Result {
	fm := fixture.FrontMatter
	result := Result{
		Name:     fm.Name,
		Path:     fixture.FilePath,
		Expected: fm.Hint,
		Status:   StatusPassed,
	}
	if fm.Skip {
		result.Status = StatusSkipped
		return result
	}

	sel := boundarymarkers.Selection{Start: fm.Start, End: fm.End}
	if err := validation.ValidateSelection(sel); err != nil {
		return result.fail(CheckSelection, err)
	}

	snapshot, err := r.markers.HintHTML(ctx, fixture.Markup, sel)
	if err != nil {
		return result.fail(CheckHint, err)
	}
	result.Snapshot = snapshot
	if fm.Hint != "" && snapshot != fm.Hint {
		result = result.fail(CheckHint, fmt.Errorf("snapshot %q, expected %q", snapshot, fm.Hint))
	}

	if err := r.roundTrip(ctx, fixture.Markup, sel); err != nil {
		result = result.fail(CheckRoundTrip, err)
	}
	return result
}

// roundTrip writes the markers into the parsed markup, serializes it, and
// checks extraction yields the original markup and selection.
func (r *Runner) roundTrip(ctx context.Context, markup string, sel boundarymarkers.Selection) error {
	t, root, err := r.markers.Parse(markup)
	if err != nil {
		return err
	}
	clean, err := r.markers.Render(t, root)
	if err != nil {
		return err
	}
	rng, err := boundarymarkers.RangeFromSelection(t, root, sel)
	if err != nil {
		return err
	}
	if err := r.markers.Insert(ctx, t, rng); err != nil {
		return err
	}
	marked, err := r.markers.Render(t, root)
	if err != nil {
		return err
	}

	extracted, err := r.markers.ExtractHTML(ctx, marked)
	if err != nil {
		return err
	}
	if extracted.HTML != clean {
		return fmt.Errorf("extracted markup %q, expected %q", extracted.HTML, clean)
	}
	if !slices.Equal(extracted.Selection.Start, sel.Start) || !slices.Equal(extracted.Selection.End, sel.End) {
		return fmt.Errorf("extracted selection %v..%v, expected %v..%v",
			extracted.Selection.Start, extracted.Selection.End, sel.Start, sel.End)
	}
	return nil
}

func (res Result) fail(check Check, err error) Result {
	res.Status = StatusFailed
	res.Failures = append(res.Failures, Failure{
		Check:   check,
		Message: err.Error(),
		Code:    boundarymarkers.TextCode(err),
	})
	return res
}
