package di

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goliatone/go-markers/internal/boundarymarkers"
	"github.com/goliatone/go-markers/internal/commands"
	markerscmd "github.com/goliatone/go-markers/internal/commands/markers"
	"github.com/goliatone/go-markers/internal/fixtures"
	"github.com/goliatone/go-markers/internal/logging"
	"github.com/goliatone/go-markers/internal/logging/console"
	"github.com/goliatone/go-markers/internal/logging/gologger"
	"github.com/goliatone/go-markers/internal/markdown"
	"github.com/goliatone/go-markers/internal/runtimeconfig"
	"github.com/goliatone/go-markers/pkg/interfaces"
)

// ErrMarkdownDisabled is returned when a markdown fixture is rendered while
// the markdown feature is off.
var ErrMarkdownDisabled = errors.New("di: markdown fixtures require the markdown feature")

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer
	metrics        interfaces.MarkerMetrics
	parser         interfaces.MarkdownParser

	markersSvc *boundarymarkers.Service
	fixtureSvc interfaces.FixtureService
	runner     *fixtures.Runner
	handlers   markerscmd.Handlers
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithLogWriter sets where the console provider writes. Defaults to stderr.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		c.logWriter = w
	}
}

// WithMetrics overrides the no-op marker metrics recorder.
func WithMetrics(metrics interfaces.MarkerMetrics) Option {
	return func(c *Container) {
		c.metrics = metrics
	}
}

// WithMarkdownParser overrides the goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithFixtureService overrides the filesystem fixture loader.
func WithFixtureService(svc interfaces.FixtureService) Option {
	return func(c *Container) {
		c.fixtureSvc = svc
	}
}

// NewContainer validates cfg and builds the services it enables.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:    cfg,
		logWriter: os.Stderr,
		metrics:   boundarymarkers.NoOpMetrics(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureMarkdown()
	c.configureMarkers()
	if err := c.configureFixtures(); err != nil {
		return nil, err
	}
	c.handlers = markerscmd.NewHandlers(c.markersSvc, c.runner, commands.CommandLogger(c.loggerProvider, "markers"))

	logging.WithFields(logging.MarkersLogger(c.loggerProvider), map[string]any{
		"wrapper_tag": c.markersSvc.WrapperTag(),
		"parse_mode":  c.parseMode(),
		"markdown":    c.markdownEnabled(),
		"fixtures":    c.runner != nil,
	}).Debug("markers.container.configured")

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure go-logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		level, err := console.ParseLevel(cfg.Level)
		if err != nil {
			return err
		}
		c.loggerProvider = console.NewProvider(console.Options{
			Writer:   c.logWriter,
			MinLevel: &level,
			Format:   console.Format(strings.ToLower(strings.TrimSpace(cfg.Format))),
		})
	}
	return nil
}

func (c *Container) configureMarkdown() {
	if c.parser != nil {
		return
	}
	if !c.markdownEnabled() {
		c.parser = disabledParser{}
		return
	}
	c.parser = markdown.NewGoldmarkParser(c.markdownOptions())
}

func (c *Container) configureMarkers() {
	cfg := c.Config.Markers
	c.markersSvc = boundarymarkers.NewService(
		boundarymarkers.WithLogger(logging.MarkersLogger(c.loggerProvider)),
		boundarymarkers.WithMetrics(c.metrics),
		boundarymarkers.WithWrapperTag(cfg.WrapperTag),
		boundarymarkers.WithParseMode(c.parseMode()),
		boundarymarkers.WithGraphemeWarnings(cfg.GraphemeWarnings),
	)
}

func (c *Container) configureFixtures() error {
	if !c.Config.Features.Fixtures && c.fixtureSvc == nil {
		return nil
	}
	if c.fixtureSvc == nil {
		cfg := c.Config.Fixtures
		svc, err := markdown.NewService(markdown.Config{
			BasePath:  cfg.Dir,
			Pattern:   cfg.Pattern,
			Recursive: cfg.Recursive,
			Parser:    c.markdownOptions(),
		}, c.parser, markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)))
		if err != nil {
			return err
		}
		c.fixtureSvc = svc
	}
	c.runner = fixtures.NewRunner(c.markersSvc, c.fixtureSvc,
		fixtures.WithLogger(logging.FixturesLogger(c.loggerProvider)),
	)
	return nil
}

func (c *Container) markdownEnabled() bool {
	return c.Config.Features.Markdown && c.Config.Markdown.Enabled
}

func (c *Container) markdownOptions() interfaces.ParseOptions {
	cfg := c.Config.Markdown.Parser
	return interfaces.ParseOptions{
		Extensions: append([]string(nil), cfg.Extensions...),
		HardWraps:  cfg.HardWraps,
		SafeMode:   cfg.SafeMode,
	}
}

func (c *Container) parseMode() boundarymarkers.ParseMode {
	if strings.EqualFold(strings.TrimSpace(c.Config.Markers.ParseMode), string(boundarymarkers.ParseModeDocument)) {
		return boundarymarkers.ParseModeDocument
	}
	return boundarymarkers.ParseModeFragment
}

// LoggerProvider returns the configured provider, nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// MarkerService returns the marker service.
func (c *Container) MarkerService() *boundarymarkers.Service {
	return c.markersSvc
}

// MarkdownParser returns the markdown parser. It rejects every call when the
// markdown feature is off.
func (c *Container) MarkdownParser() interfaces.MarkdownParser {
	return c.parser
}

// FixtureService returns the fixture loader, nil when fixtures are off.
func (c *Container) FixtureService() interfaces.FixtureService {
	return c.fixtureSvc
}

// FixtureRunner returns the fixture runner, nil when fixtures are off.
func (c *Container) FixtureRunner() *fixtures.Runner {
	return c.runner
}

// Commands returns the command handlers for the marker operations.
func (c *Container) Commands() markerscmd.Handlers {
	return c.handlers
}

type disabledParser struct{}

func (disabledParser) Parse([]byte) ([]byte, error) {
	return nil, ErrMarkdownDisabled
}

func (disabledParser) ParseWithOptions([]byte, interfaces.ParseOptions) ([]byte, error) {
	return nil, ErrMarkdownDisabled
}
