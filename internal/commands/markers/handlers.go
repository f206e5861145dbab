package markerscmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-markers/internal/boundarymarkers"
	"github.com/goliatone/go-markers/internal/commands"
	"github.com/goliatone/go-markers/internal/fixtures"
	"github.com/goliatone/go-markers/pkg/interfaces"
)

// ErrServiceRequired is returned when a handler runs without its backing service.
var ErrServiceRequired = errors.New("markerscmd: service is required")

// Handlers bundles the command handlers for the marker operations. Fixtures
// is nil when no fixture runner is configured.
type Handlers struct {
	Hint     *commands.Handler[HintCommand]
	Extract  *commands.Handler[ExtractCommand]
	Fixtures *commands.Handler[CheckFixturesCommand]
}

// NewHandlers builds every handler backed by svc and runner.
func NewHandlers(svc *boundarymarkers.Service, runner *fixtures.Runner, logger interfaces.Logger) Handlers {
	handlers := Handlers{
		Hint:    NewHintHandler(svc, logger),
		Extract: NewExtractHandler(svc, logger),
	}
	if runner != nil {
		handlers.Fixtures = NewCheckFixturesHandler(runner, logger)
	}
	return handlers
}

// NewHintHandler wires HintCommand to the marker service.
func NewHintHandler(svc *boundarymarkers.Service, logger interfaces.Logger, opts ...commands.HandlerOption[HintCommand]) *commands.Handler[HintCommand] {
	base := []commands.HandlerOption[HintCommand]{
		commands.WithLogger[HintCommand](logger),
		commands.WithOperation[HintCommand](HintMessageType),
		commands.WithMessageFields[HintCommand](func(msg HintCommand) map[string]any {
			return map[string]any{
				"start": msg.Selection.Start,
				"end":   msg.Selection.End,
			}
		}),
	}
	return commands.NewHandler[HintCommand](func(ctx context.Context, msg HintCommand) error {
		if svc == nil {
			return ErrServiceRequired
		}
		snapshot, err := svc.HintHTML(ctx, msg.Markup, msg.Selection)
		if err != nil {
			return err
		}
		*msg.Result = snapshot
		return nil
	}, append(base, opts...)...)
}

// NewExtractHandler wires ExtractCommand to the marker service.
func NewExtractHandler(svc *boundarymarkers.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ExtractCommand]) *commands.Handler[ExtractCommand] {
	base := []commands.HandlerOption[ExtractCommand]{
		commands.WithLogger[ExtractCommand](logger),
		commands.WithOperation[ExtractCommand](ExtractMessageType),
	}
	return commands.NewHandler[ExtractCommand](func(ctx context.Context, msg ExtractCommand) error {
		if svc == nil {
			return ErrServiceRequired
		}
		res, err := svc.ExtractHTML(ctx, msg.Markup)
		if err != nil {
			return err
		}
		*msg.Result = res
		return nil
	}, append(base, opts...)...)
}

// NewCheckFixturesHandler wires CheckFixturesCommand to the fixture runner.
// Failing fixtures are reported through the result, not as an error.
func NewCheckFixturesHandler(runner *fixtures.Runner, logger interfaces.Logger, opts ...commands.HandlerOption[CheckFixturesCommand]) *commands.Handler[CheckFixturesCommand] {
	base := []commands.HandlerOption[CheckFixturesCommand]{
		commands.WithLogger[CheckFixturesCommand](logger),
		commands.WithOperation[CheckFixturesCommand](CheckFixturesMessageType),
		commands.WithTimeout[CheckFixturesCommand](0),
		commands.WithMessageFields[CheckFixturesCommand](func(msg CheckFixturesCommand) map[string]any {
			return map[string]any{"dir": msg.Dir}
		}),
	}
	return commands.NewHandler[CheckFixturesCommand](func(ctx context.Context, msg CheckFixturesCommand) error {
		if runner == nil {
			return ErrServiceRequired
		}
		dir := msg.Dir
		if dir == "" {
			dir = "."
		}
		report, err := runner.Run(ctx, dir, interfaces.LoadOptions{Pattern: msg.Pattern})
		if err != nil {
			return err
		}
		*msg.Result = report
		return nil
	}, append(base, opts...)...)
}
