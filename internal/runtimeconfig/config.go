package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrWrapperTagInvalid = errors.New("markers config: wrapper tag must be a plain element name")
var ErrParseModeUnknown = errors.New("markers config: parse mode is invalid")
var ErrMarkdownFeatureRequired = errors.New("markers config: markdown feature must be enabled to configure markdown")
var ErrMarkdownExtensionUnknown = errors.New("markers config: markdown extension is invalid")
var ErrFixturesFeatureRequired = errors.New("markers config: fixtures feature must be enabled to configure fixtures")
var ErrFixturesDirRequired = errors.New("markers config: fixtures directory is required when fixtures are enabled")
var ErrFixturesPatternInvalid = errors.New("markers config: fixtures pattern is invalid")
var ErrLoggingProviderRequired = errors.New("markers config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("markers config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("markers config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("markers config: logging format is invalid")

var elementName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// Config aggregates feature flags and options for the markers module.
type Config struct {
	Markers  MarkersConfig  `yaml:"markers"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Fixtures FixturesConfig `yaml:"fixtures"`
	Logging  LoggingConfig  `yaml:"logging"`
	Features Features       `yaml:"features"`
}

// MarkersConfig controls how markup is parsed and snapshots are rendered.
type MarkersConfig struct {
	WrapperTag       string `yaml:"wrapper_tag"`
	ParseMode        string `yaml:"parse_mode"`
	GraphemeWarnings bool   `yaml:"grapheme_warnings"`
}

// MarkdownConfig toggles markdown fixture bodies.
type MarkdownConfig struct {
	Enabled bool                 `yaml:"enabled"`
	Parser  MarkdownParserConfig `yaml:"parser"`
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
}

// FixturesConfig locates fixture files on disk.
type FixturesConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Dir       string `yaml:"dir"`
	Pattern   string `yaml:"pattern"`
	Recursive bool   `yaml:"recursive"`
}

// Features toggles module functionality.
type Features struct {
	Logger   bool `yaml:"logger"`
	Markdown bool `yaml:"markdown"`
	Fixtures bool `yaml:"fixtures"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the defaults used by the CLI and by New when no
// configuration is supplied.
func DefaultConfig() Config {
	return Config{
		Markers: MarkersConfig{
			WrapperTag: "div",
			ParseMode:  "fragment",
		},
		Markdown: MarkdownConfig{
			Parser: MarkdownParserConfig{
				Extensions: []string{"table", "strikethrough"},
			},
		},
		Fixtures: FixturesConfig{
			Dir:       "testdata",
			Pattern:   "*.md",
			Recursive: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Load reads a YAML file over DefaultConfig. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("markers config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("markers config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if tag := strings.TrimSpace(cfg.Markers.WrapperTag); tag != "" && !elementName.MatchString(tag) {
		return fmt.Errorf("%w: %q", ErrWrapperTagInvalid, tag)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Markers.ParseMode)) {
	case "", "fragment", "document":
	default:
		return fmt.Errorf("%w: %s", ErrParseModeUnknown, cfg.Markers.ParseMode)
	}
	if cfg.Markdown.Enabled {
		if !cfg.Features.Markdown {
			return ErrMarkdownFeatureRequired
		}
		for _, ext := range cfg.Markdown.Parser.Extensions {
			if !isSupportedExtension(ext) {
				return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, ext)
			}
		}
	}
	if cfg.Fixtures.Enabled {
		if !cfg.Features.Fixtures {
			return ErrFixturesFeatureRequired
		}
		if strings.TrimSpace(cfg.Fixtures.Dir) == "" {
			return ErrFixturesDirRequired
		}
		if pattern := strings.TrimSpace(cfg.Fixtures.Pattern); pattern != "" && !validPattern(pattern) {
			return fmt.Errorf("%w: %s", ErrFixturesPatternInvalid, pattern)
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(provider, format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(provider, format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console":
		return true
	case "pretty":
		return provider == "gologger"
	default:
		return false
	}
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(strings.TrimSpace(ext)) {
	case "table", "strikethrough", "linkify", "tasklist", "gfm", "typographer", "definitionlist", "footnote":
		return true
	default:
		return false
	}
}

// validPattern rejects globs filepath.Match would fail on.
func validPattern(pattern string) bool {
	depth := 0
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			depth--
		}
		if depth < 0 || depth > 1 {
			return false
		}
	}
	return depth == 0
}
