package article

import "github.com/goliatone/go-article/internal/runtimeconfig"

var (
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrHyperlinkColorInvalid    = runtimeconfig.ErrHyperlinkColorInvalid
	ErrRuleWidthInvalid         = runtimeconfig.ErrRuleWidthInvalid
	ErrFilenameMaxLengthInvalid = runtimeconfig.ErrFilenameMaxLengthInvalid
	ErrExportFormatUnknown      = runtimeconfig.ErrExportFormatUnknown
	ErrPreviewFeatureRequired   = runtimeconfig.ErrPreviewFeatureRequired
	ErrPreviewExtensionUnknown  = runtimeconfig.ErrPreviewExtensionUnknown
	ErrCommandsTimeoutInvalid   = runtimeconfig.ErrCommandsTimeoutInvalid
)

type (
	Config         = runtimeconfig.Config
	Features       = runtimeconfig.Features
	LoggingConfig  = runtimeconfig.LoggingConfig
	DocumentConfig = runtimeconfig.DocumentConfig
	FilenameConfig = runtimeconfig.FilenameConfig
	ExportConfig   = runtimeconfig.ExportConfig
	PreviewConfig  = runtimeconfig.PreviewConfig
	CommandsConfig = runtimeconfig.CommandsConfig
)

const (
	FormatDOCX     = runtimeconfig.FormatDOCX
	FormatMarkdown = runtimeconfig.FormatMarkdown
	FormatHTML     = runtimeconfig.FormatHTML
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
