package markers

import "github.com/goliatone/go-markers/internal/runtimeconfig"

var (
	ErrWrapperTagInvalid        = runtimeconfig.ErrWrapperTagInvalid
	ErrParseModeUnknown         = runtimeconfig.ErrParseModeUnknown
	ErrMarkdownFeatureRequired  = runtimeconfig.ErrMarkdownFeatureRequired
	ErrMarkdownExtensionUnknown = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrFixturesFeatureRequired  = runtimeconfig.ErrFixturesFeatureRequired
	ErrFixturesDirRequired      = runtimeconfig.ErrFixturesDirRequired
	ErrFixturesPatternInvalid   = runtimeconfig.ErrFixturesPatternInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	MarkersConfig        = runtimeconfig.MarkersConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	FixturesConfig       = runtimeconfig.FixturesConfig
	Features             = runtimeconfig.Features
	LoggingConfig        = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML configuration file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
