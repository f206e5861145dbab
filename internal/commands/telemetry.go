package commands

import (
	"context"
	"maps"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-markers/internal/logging"
	"github.com/goliatone/go-markers/pkg/interfaces"
)

// TelemetryStatus captures the result category for command execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes a command execution outcome provided to telemetry callbacks.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is invoked once per execution after the wrapped function returns.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs command outcomes with the supplied logger.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(_ context.Context, _ T, info TelemetryInfo) {
		fields := map[string]any{"duration_ms": info.Duration.Milliseconds()}
		maps.Copy(fields, info.Fields)
		if info.Error != nil {
			fields["error"] = info.Error
		}
		entry := logging.WithFields(logger, fields)
		switch info.Status {
		case TelemetryStatusSuccess:
			entry.Info("markers.command.execute_succeeded")
		case TelemetryStatusContextError:
			entry.Error("markers.command.context_error")
		default:
			entry.Error("markers.command.execute_failed")
		}
	}
}
