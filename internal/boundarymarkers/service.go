package boundarymarkers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-markers/internal/boundaries"
	"github.com/goliatone/go-markers/internal/dom"
	"github.com/goliatone/go-markers/internal/grapheme"
	"github.com/goliatone/go-markers/internal/logging"
	"github.com/goliatone/go-markers/pkg/interfaces"
)

// ParseMode selects how markup handed to the service is parsed.
type ParseMode string

const (
	// ParseModeFragment parses markup as the content of the wrapper element.
	ParseModeFragment ParseMode = "fragment"
	// ParseModeDocument parses markup as a full HTML document.
	ParseModeDocument ParseMode = "document"
)

// Operation names reported to logs and metrics.
const (
	OpInsert  = "insert"
	OpExtract = "extract"
	OpShow    = "show"
	OpHint    = "hint"
)

const failureCodeUnknown = "ERROR"

// ExtractResult is the outcome of ExtractHTML: the markup with its markers
// removed and the selection they encoded.
type ExtractResult struct {
	HTML      string    `json:"html" yaml:"html"`
	Selection Selection `json:"selection" yaml:"selection"`
}

// Service wraps the marker codec with logging, metrics and markup parsing.
type Service struct {
	logger           interfaces.Logger
	metrics          interfaces.MarkerMetrics
	wrapperTag       string
	parseMode        ParseMode
	graphemeWarnings bool
}

// ServiceOption customises service behaviour.
type ServiceOption func(*Service)

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics wires the metrics recorder used for telemetry.
func WithMetrics(metrics interfaces.MarkerMetrics) ServiceOption {
	return func(s *Service) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithWrapperTag sets the element fragments are parsed in and serialized
// through.
func WithWrapperTag(tag string) ServiceOption {
	return func(s *Service) {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			s.wrapperTag = strings.ToLower(trimmed)
		}
	}
}

// WithParseMode sets how HintHTML and ExtractHTML parse their input.
func WithParseMode(mode ParseMode) ServiceOption {
	return func(s *Service) {
		if mode == ParseModeFragment || mode == ParseModeDocument {
			s.parseMode = mode
		}
	}
}

// WithGraphemeWarnings logs a warning whenever a text boundary falls inside a
// grapheme cluster.
func WithGraphemeWarnings(enabled bool) ServiceOption {
	return func(s *Service) {
		s.graphemeWarnings = enabled
	}
}

// NewService constructs a marker service.
func NewService(opts ...ServiceOption) *Service {
	service := &Service{
		logger:     logging.NoOp(),
		metrics:    NoOpMetrics(),
		wrapperTag: DefaultWrapperTag,
		parseMode:  ParseModeFragment,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// WrapperTag returns the element used for fragment parsing and serialization.
func (s *Service) WrapperTag() string {
	return s.wrapperTag
}

// Insert writes markers for r into t.
func (s *Service) Insert(ctx context.Context, t *dom.Tree, r boundaries.Range) error {
	return s.run(ctx, OpInsert, t, func(logger interfaces.Logger) error {
		s.warnGraphemeSplits(logger, t, r)
		return Insert(t, r)
	})
}

// Extract removes the markers below root and returns the range they encoded.
func (s *Service) Extract(ctx context.Context, t *dom.Tree, root dom.NodeID) (boundaries.Range, error) {
	var out boundaries.Range
	err := s.run(ctx, OpExtract, t, func(interfaces.Logger) error {
		var err error
		out, err = Extract(t, root)
		return err
	})
	return out, err
}

// Show renders r with markers without modifying t.
func (s *Service) Show(ctx context.Context, t *dom.Tree, r boundaries.Range) (string, error) {
	var out string
	err := s.run(ctx, OpShow, t, func(logger interfaces.Logger) error {
		s.warnGraphemeSplits(logger, t, r)
		var err error
		out, err = show(t, r, s.wrapperTag)
		return err
	})
	return out, err
}

// Hint is Show for any target accepted by the package level Hint.
func (s *Service) Hint(ctx context.Context, t *dom.Tree, target any) (string, error) {
	var out string
	err := s.run(ctx, OpHint, t, func(logger interfaces.Logger) error {
		r, err := hintRange(target)
		if err != nil {
			return err
		}
		s.warnGraphemeSplits(logger, t, r)
		out, err = show(t, r, s.wrapperTag)
		return err
	})
	return out, err
}

// Parse parses markup according to the configured parse mode.
func (s *Service) Parse(markup string) (*dom.Tree, dom.NodeID, error) {
	if s.parseMode == ParseModeDocument {
		return dom.ParseDocument(strings.NewReader(markup))
	}
	return dom.ParseFragmentIn(strings.NewReader(markup), s.wrapperTag)
}

// Render serializes root the way Show serializes snapshots. t is not modified.
func (s *Service) Render(t *dom.Tree, root dom.NodeID) (string, error) {
	return serialize(t, root, s.wrapperTag)
}

// HintHTML parses markup, resolves sel against the parsed root and returns
// the snapshot with markers.
func (s *Service) HintHTML(ctx context.Context, markup string, sel Selection) (string, error) {
	t, root, err := s.Parse(markup)
	if err != nil {
		return "", err
	}
	r, err := RangeFromSelection(t, root, sel)
	if err != nil {
		return "", fmt.Errorf("resolve selection: %w", err)
	}
	return s.Show(ctx, t, r)
}

// ExtractHTML parses markup holding two markers and returns the markup
// without them together with the selection they described.
func (s *Service) ExtractHTML(ctx context.Context, markup string) (ExtractResult, error) {
	t, root, err := s.Parse(markup)
	if err != nil {
		return ExtractResult{}, err
	}
	r, err := s.Extract(ctx, t, root)
	if err != nil {
		return ExtractResult{}, err
	}
	sel, err := SelectionFromRange(t, root, r)
	if err != nil {
		return ExtractResult{}, err
	}
	html, err := s.Render(t, root)
	if err != nil {
		return ExtractResult{}, err
	}
	return ExtractResult{HTML: html, Selection: sel}, nil
}

func (s *Service) run(ctx context.Context, op string, t *dom.Tree, fn func(interfaces.Logger) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("boundarymarkers: %s: nil tree", op)
	}

	logger := logging.WithTreeContext(s.baseLogger(ctx), t.ID(), "markers."+op)

	start := time.Now()
	err := fn(logger)
	elapsed := time.Since(start)
	s.metrics.ObserveDuration(op, elapsed)

	fields := map[string]any{
		"duration_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		code := TextCode(err)
		if code == "" {
			code = failureCodeUnknown
		}
		s.metrics.IncrementFailure(op, code)
		fields["error"] = err
		fields["text_code"] = code
		logging.WithFields(logger, fields).Error("markers.service." + op + "_failed")
		return err
	}
	logging.WithFields(logger, fields).Debug("markers.service." + op + "_succeeded")
	return nil
}

func (s *Service) warnGraphemeSplits(logger interfaces.Logger, t *dom.Tree, r boundaries.Range) {
	if !s.graphemeWarnings {
		return
	}
	for i, b := range [2]boundaries.Boundary{r.Start, r.End} {
		if !t.IsText(b.Container) || !grapheme.SplitsCluster(t.Text(b.Container), b.Offset) {
			continue
		}
		name := "start"
		if i == 1 {
			name = "end"
		}
		logging.WithFields(logger, map[string]any{
			"boundary":  name,
			"container": uint32(b.Container),
			"offset":    b.Offset,
		}).Warn("markers.service.grapheme_split")
	}
}

func (s *Service) baseLogger(ctx context.Context) interfaces.Logger {
	logger := s.logger
	if logger == nil {
		logger = logging.NoOp()
	}
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	return logger
}
