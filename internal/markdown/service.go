package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-markers/internal/logging"
	"github.com/goliatone/go-markers/pkg/interfaces"
)

// Config controls how the fixture service discovers and parses files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Parser    interfaces.ParseOptions
}

// Service implements interfaces.FixtureService for filesystem-backed fixtures.
type Service struct {
	cfg    Config
	parser interfaces.MarkdownParser
	loader *Loader
	logger interfaces.Logger
}

// ServiceOption customises the fixture service.
type ServiceOption func(*Service)

// WithLogger attaches the logger fixture loads are reported to.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

var _ interfaces.FixtureService = (*Service)(nil)

// NewService constructs a fixture service over cfg.BasePath. When parser is
// nil, a Goldmark parser with cfg.Parser defaults is created.
func NewService(cfg Config, parser interfaces.MarkdownParser, opts ...ServiceOption) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}

	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}

	svc := &Service{
		cfg:    cfg,
		parser: parser,
		loader: NewLoader(filesystem, LoaderConfig{
			BasePath:  cfg.BasePath,
			Pattern:   cfg.Pattern,
			Recursive: cfg.Recursive,
		}),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Load reads a single fixture relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Fixture, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path))
	if err != nil {
		return nil, err
	}
	if err := s.renderFixture(ctx, result.Fixture, opts.Parser); err != nil {
		return nil, err
	}
	return result.Fixture, nil
}

// LoadDirectory reads every fixture within dir.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Fixture, error) {
	results, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}

	fixtures := make([]*interfaces.Fixture, 0, len(results))
	for _, result := range results {
		if err := s.renderFixture(ctx, result.Fixture, opts.Parser); err != nil {
			return nil, err
		}
		fixtures = append(fixtures, result.Fixture)
	}
	return fixtures, nil
}

// Render converts Markdown bytes into HTML using the configured parser.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.parser.ParseWithOptions(markdown, mergeParseOptions(s.cfg.Parser, opts))
}

// RenderFixture fills fixture.Markup from its body and returns it.
func (s *Service) RenderFixture(ctx context.Context, fixture *interfaces.Fixture, opts interfaces.ParseOptions) (string, error) {
	if fixture == nil {
		return "", ErrNilFixture
	}
	if err := s.renderFixture(ctx, fixture, opts); err != nil {
		return "", err
	}
	return fixture.Markup, nil
}

func (s *Service) renderFixture(ctx context.Context, fixture *interfaces.Fixture, overrides interfaces.ParseOptions) error {
	if fixture == nil {
		return nil
	}
	logger := logging.WithFixtureContext(s.logger, fixture.FilePath, fixture.FrontMatter.Name)

	markup := fixture.Body
	if fixture.FrontMatter.Format == interfaces.FixtureFormatMarkdown {
		html, err := s.Render(ctx, fixture.Body, overrides)
		if err != nil {
			logging.WithFields(logger, map[string]any{"error": err}).Error("markers.markdown.render_failed")
			return fmt.Errorf("markdown render fixture %s: %w", fixture.FilePath, err)
		}
		markup = html
	}
	fixture.Markup = strings.TrimSpace(string(markup))
	logging.WithFields(logger, map[string]any{
		"format": string(fixture.FrontMatter.Format),
	}).Debug("markers.markdown.fixture_loaded")
	return nil
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}

func toLoaderParams(opts interfaces.LoadOptions) LoadParams {
	return LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	}
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
