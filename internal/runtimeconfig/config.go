package runtimeconfig

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-article/internal/markdown"
)

var ErrLoggingProviderRequired = errors.New("article config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("article config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("article config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("article config: logging format is invalid")

// ErrHyperlinkColorInvalid rejects colors that are not six hex digits.
var ErrHyperlinkColorInvalid = errors.New("article config: hyperlink color must be a 6 digit hex value")
var ErrRuleWidthInvalid = errors.New("article config: rule width must be zero or positive")
var ErrFilenameMaxLengthInvalid = errors.New("article config: filename max length must be zero or positive")
var ErrExportFormatUnknown = errors.New("article config: export format is invalid")

// ErrPreviewFeatureRequired guards the html format behind the preview flag.
var ErrPreviewFeatureRequired = errors.New("article config: preview feature must be enabled to export html")
var ErrPreviewExtensionUnknown = errors.New("article config: preview extension is invalid")
var ErrCommandsTimeoutInvalid = errors.New("article config: command timeout must be zero or positive")

// Export format identifiers.
const (
	FormatDOCX     = "docx"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Config aggregates feature flags and rendering options for the article
// exporter. Fields use simple types so host applications can load them from
// any configuration source.
type Config struct {
	Features Features
	Logging  LoggingConfig
	Document DocumentConfig
	Filename FilenameConfig
	Export   ExportConfig
	Preview  PreviewConfig
	Commands CommandsConfig
}

// Features toggles optional functionality.
type Features struct {
	Logger   bool
	Preview  bool
	Commands bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DocumentConfig controls DOCX styling and core properties.
type DocumentConfig struct {
	HyperlinkColor string
	RuleGlyph      string
	RuleWidth      int
	Creator        string
	// TitleFallback uses the topic as document title when the article has
	// no title line.
	TitleFallback bool
}

// FilenameConfig controls how download names are derived from topics.
type FilenameConfig struct {
	MaxLength   int
	Placeholder string
	Suffix      string
}

// ExportConfig lists default formats and where the CLI writes artifacts.
type ExportConfig struct {
	Formats   []string
	OutputDir string
}

// PreviewConfig mirrors interfaces.ParseOptions for runtime configuration.
type PreviewConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Timeout time.Duration
}

// DefaultConfig returns defaults matching the reference application: blue
// underlined links, a 50 glyph rule, and markdown plus docx downloads.
func DefaultConfig() Config {
	return Config{
		Features: Features{
			Preview:  true,
			Commands: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
		Document: DocumentConfig{
			HyperlinkColor: "0563C1",
			RuleGlyph:      "─",
			RuleWidth:      50,
			Creator:        "go-article",
			TitleFallback:  true,
		},
		Filename: FilenameConfig{
			MaxLength:   50,
			Placeholder: "article",
			Suffix:      "_article",
		},
		Export: ExportConfig{
			Formats:   []string{FormatMarkdown, FormatDOCX},
			OutputDir: ".",
		},
		Preview: PreviewConfig{
			SafeMode: true,
		},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
	}
}

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if color := strings.TrimSpace(cfg.Document.HyperlinkColor); color != "" && !hexColor.MatchString(color) {
		return fmt.Errorf("%w: %s", ErrHyperlinkColorInvalid, color)
	}
	if cfg.Document.RuleWidth < 0 {
		return ErrRuleWidthInvalid
	}
	if cfg.Filename.MaxLength < 0 {
		return ErrFilenameMaxLengthInvalid
	}
	for _, format := range cfg.Export.Formats {
		normalized := NormalizeFormat(format)
		if !IsSupportedFormat(normalized) {
			return fmt.Errorf("%w: %s", ErrExportFormatUnknown, format)
		}
		if normalized == FormatHTML && !cfg.Features.Preview {
			return ErrPreviewFeatureRequired
		}
	}
	for _, name := range cfg.Preview.Extensions {
		if !markdown.KnownExtension(name) {
			return fmt.Errorf("%w: %s", ErrPreviewExtensionUnknown, name)
		}
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandsTimeoutInvalid
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
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedLogFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// NormalizeFormat lowercases a format name and maps "md" to markdown and
// "word" to docx.
func NormalizeFormat(format string) string {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "md":
		return FormatMarkdown
	case "word":
		return FormatDOCX
	default:
		return f
	}
}

// IsSupportedFormat reports whether format is a normalized export format.
func IsSupportedFormat(format string) bool {
	return slices.Contains([]string{FormatDOCX, FormatMarkdown, FormatHTML}, format)
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

func isSupportedLogFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
