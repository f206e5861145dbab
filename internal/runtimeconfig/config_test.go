package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-markers/internal/runtimeconfig"
)

func TestConfigValidate_DefaultsAreValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Markers.WrapperTag != "div" || cfg.Markers.ParseMode != "fragment" {
		t.Fatalf("unexpected marker defaults %+v", cfg.Markers)
	}
}

func TestConfigValidate_RejectsWrapperTagWithMarkup(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markers.WrapperTag = "<div>"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrWrapperTagInvalid) {
		t.Fatalf("expected ErrWrapperTagInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownParseMode(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markers.ParseMode = "xml"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrParseModeUnknown) {
		t.Fatalf("expected ErrParseModeUnknown, got %v", err)
	}
}

func TestConfigValidate_MarkdownRequiresFeature(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.Enabled = true

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrMarkdownFeatureRequired) {
		t.Fatalf("expected ErrMarkdownFeatureRequired, got %v", err)
	}

	cfg.Features.Markdown = true
	cfg.Markdown.Parser.Extensions = []string{"table", "emoji"}
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrMarkdownExtensionUnknown) {
		t.Fatalf("expected ErrMarkdownExtensionUnknown, got %v", err)
	}
}

func TestConfigValidate_FixturesRequireDirectory(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Fixtures.Enabled = true
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrFixturesFeatureRequired) {
		t.Fatalf("expected ErrFixturesFeatureRequired, got %v", err)
	}

	cfg.Features.Fixtures = true
	cfg.Fixtures.Dir = " "
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrFixturesDirRequired) {
		t.Fatalf("expected ErrFixturesDirRequired, got %v", err)
	}

	cfg.Fixtures.Dir = "testdata"
	cfg.Fixtures.Pattern = "[*.md"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrFixturesPatternInvalid) {
		t.Fatalf("expected ErrFixturesPatternInvalid, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_LoggingLevelAndFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "pretty"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("console provider must reject pretty format, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("gologger accepts pretty format, got %v", err)
	}
}

func TestLoad_MergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markers.yaml")
	body := "markers:\n  wrapper_tag: section\nlogging:\n  level: debug\nfeatures:\n  logger: true\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Markers.WrapperTag != "section" {
		t.Fatalf("expected wrapper tag from file, got %q", cfg.Markers.WrapperTag)
	}
	if cfg.Markers.ParseMode != "fragment" || cfg.Logging.Provider != "console" {
		t.Fatalf("defaults must survive, got %+v / %+v", cfg.Markers, cfg.Logging)
	}
	if cfg.Logging.Level != "debug" || !cfg.Features.Logger {
		t.Fatalf("unexpected logging config %+v features %+v", cfg.Logging, cfg.Features)
	}
}

func TestLoad_ReportsDecodeErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("markers: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := runtimeconfig.Load(path); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := runtimeconfig.Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}
