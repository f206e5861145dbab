package logging

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-markers/pkg/interfaces"
)

const (
	rootModule     = "markers"
	markdownModule = "markers.markdown"
	fixturesModule = "markers.fixtures"
)

const (
	fieldTreeID      = "tree_id"
	fieldOperation   = "operation"
	fieldFixturePath = "fixture_path"
	fieldFixtureName = "fixture"
)

// ModuleLogger returns a logger scoped to module. Without a provider the
// result drops every entry. The module name is attached as the "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// MarkersLogger returns the logger used by the marker service.
func MarkersLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, rootModule)
}

// MarkdownLogger returns the logger used when rendering markdown fixtures.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// FixturesLogger returns the logger used by the fixture runner.
func FixturesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, fixturesModule)
}

// WithTreeContext tags entries with the tree being worked on and the
// operation name. A zero tree id or blank operation is skipped.
func WithTreeContext(logger interfaces.Logger, treeID uuid.UUID, operation string) interfaces.Logger {
	fields := map[string]any{}
	if treeID != uuid.Nil {
		fields[fieldTreeID] = treeID.String()
	}
	if trimmed := strings.TrimSpace(operation); trimmed != "" {
		fields[fieldOperation] = trimmed
	}
	return WithFields(logger, fields)
}

// WithFixtureContext tags entries with the fixture file and its name.
func WithFixtureContext(logger interfaces.Logger, path, name string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldFixturePath] = trimmed
	}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		fields[fieldFixtureName] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
