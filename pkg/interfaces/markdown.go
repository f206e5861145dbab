package interfaces

import (
	"context"
	"time"
)

// MarkdownParser converts raw Markdown bytes into HTML.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// FixtureFormat names the markup a fixture body is written in.
type FixtureFormat string

const (
	FixtureFormatHTML     FixtureFormat = "html"
	FixtureFormatMarkdown FixtureFormat = "markdown"
)

// FixtureService loads selection fixtures from disk.
type FixtureService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Fixture, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Fixture, error)
}

// Fixture is a markup document paired with a selection and the snapshot that
// selection is expected to render as.
type Fixture struct {
	FilePath    string
	FrontMatter FixtureFrontMatter
	Body        []byte
	// Markup is the HTML the selection applies to. It equals Body for html
	// fixtures and the rendered Body for markdown fixtures.
	Markup       string
	LastModified time.Time
	Checksum     []byte
}

// FixtureFrontMatter models the metadata block at the top of a fixture file.
type FixtureFrontMatter struct {
	Name   string         `yaml:"name" json:"name"`
	Format FixtureFormat  `yaml:"format" json:"format"`
	Start  []int          `yaml:"start" json:"start"`
	End    []int          `yaml:"end" json:"end"`
	Hint   string         `yaml:"hint" json:"hint"`
	Skip   bool           `yaml:"skip" json:"skip"`
	Custom map[string]any `yaml:",inline" json:"custom"`
}

// LoadOptions fine-tunes how fixtures are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}
