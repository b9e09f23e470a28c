package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-article/internal/convert"
	"github.com/goliatone/go-article/internal/docx"
	"github.com/goliatone/go-article/internal/filename"
	"github.com/goliatone/go-article/internal/logging"
	"github.com/goliatone/go-article/internal/markdown"
	"github.com/goliatone/go-article/internal/runtimeconfig"
	"github.com/goliatone/go-article/pkg/interfaces"
)

// MIME types of the produced artifacts.
const (
	MIMEMarkdown = "text/markdown"
	MIMEHTML     = "text/html"
	MIMEDOCX     = docx.MIMEType
)

// Service exposes the article export use-cases.
type Service interface {
	Export(ctx context.Context, req Request) (*Result, error)
	MarkdownToDOCX(markdown string) ([]byte, error)
}

// Request carries one generated article.
type Request struct {
	Topic    string
	Markdown string
	// Formats overrides the configured default formats.
	Formats []string
}

// Result lists the artifacts produced for a request. Errors holds
// per-format failures that did not prevent the remaining formats.
type Result struct {
	ID          uuid.UUID
	Topic       string
	Title       string
	Slug        string
	BaseName    string
	FrontMatter interfaces.FrontMatter
	Artifacts   []interfaces.Artifact
	Stats       convert.Stats
	Errors      []error
}

// Artifact returns the artifact produced for format.
func (r *Result) Artifact(format string) (interfaces.Artifact, bool) {
	format = runtimeconfig.NormalizeFormat(format)
	for _, artifact := range r.Artifacts {
		if artifact.Format == format {
			return artifact, true
		}
	}
	return interfaces.Artifact{}, false
}

// Err joins the per-format errors, or returns nil.
func (r *Result) Err() error {
	return errors.Join(r.Errors...)
}

// Config holds the rendering settings the service applies to every export.
type Config struct {
	HyperlinkColor string
	RuleGlyph      string
	RuleWidth      int
	Creator        string
	TitleFallback  bool
	Filename       filename.Options
	Suffix         string
	Formats        []string
	Preview        interfaces.ParseOptions
}

// DefaultConfig mirrors runtimeconfig.DefaultConfig.
func DefaultConfig() Config {
	return ConfigFrom(runtimeconfig.DefaultConfig())
}

// ConfigFrom extracts the export settings from a runtime configuration.
func ConfigFrom(cfg runtimeconfig.Config) Config {
	return Config{
		HyperlinkColor: cfg.Document.HyperlinkColor,
		RuleGlyph:      cfg.Document.RuleGlyph,
		RuleWidth:      cfg.Document.RuleWidth,
		Creator:        cfg.Document.Creator,
		TitleFallback:  cfg.Document.TitleFallback,
		Filename: filename.Options{
			MaxLength:   cfg.Filename.MaxLength,
			Placeholder: cfg.Filename.Placeholder,
		},
		Suffix:  cfg.Filename.Suffix,
		Formats: append([]string(nil), cfg.Export.Formats...),
		Preview: interfaces.ParseOptions{
			Extensions: append([]string(nil), cfg.Preview.Extensions...),
			Sanitize:   cfg.Preview.Sanitize,
			HardWraps:  cfg.Preview.HardWraps,
			SafeMode:   cfg.Preview.SafeMode,
		},
	}
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp document properties.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithParser overrides the HTML preview renderer.
func WithParser(parser interfaces.MarkdownParser) ServiceOption {
	return func(s *service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithLoggerProvider routes export, conversion and docx logs through provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) ServiceOption {
	return func(s *service) {
		s.provider = provider
	}
}

type service struct {
	cfg       Config
	converter *convert.Converter
	parser    interfaces.MarkdownParser
	provider  interfaces.LoggerProvider
	logger    interfaces.Logger
	docLogger interfaces.Logger
	now       func() time.Time
	id        IDGenerator
	pack      func(*docx.Document) ([]byte, error)
}

// NewService constructs an export service.
func NewService(cfg Config, opts ...ServiceOption) Service {
	s := &service{
		cfg: cfg,
		now:  time.Now,
		id:   uuid.New,
		pack: (*docx.Document).Bytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(s.cfg.Formats) == 0 {
		s.cfg.Formats = []string{runtimeconfig.FormatMarkdown, runtimeconfig.FormatDOCX}
	}
	if s.parser == nil {
		s.parser = markdown.NewGoldmarkParser(s.cfg.Preview)
	}
	s.logger = logging.ExportLogger(s.provider)
	s.docLogger = logging.DOCXLogger(s.provider)
	s.converter = convert.New(convert.Options{
		RuleGlyph: cfg.RuleGlyph,
		RuleWidth: cfg.RuleWidth,
		Logger:    logging.ConvertLogger(s.provider),
	})
	return s
}

// Export produces every requested format. Only validation problems and
// cancellation fail the whole call; a format that cannot be rendered is
// reported in Result.Errors while the others are still returned.
func (s *service) Export(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Markdown) == "" {
		return nil, ErrEmptyArticle
	}

	formats, err := s.formats(req.Formats)
	if err != nil {
		return nil, err
	}

	meta, body := s.splitFrontMatter(req.Markdown)
	topic := firstNonEmpty(req.Topic, meta.Topic, meta.Title)

	result := &Result{
		ID:          s.id(),
		Topic:       topic,
		Title:       s.title(body, meta, topic),
		Slug:        deriveSlug(meta.Slug, topic),
		BaseName:    s.cfg.Filename.Sanitize(topic),
		FrontMatter: meta,
	}
	logger := logging.WithFields(s.logger.WithContext(ctx), map[string]any{"export_id": result.ID.String()})

	for _, format := range formats {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		name := filename.WithSuffix(result.BaseName, s.cfg.Suffix, extension(format))
		artifact := interfaces.Artifact{Format: format, Filename: name}

		var err error
		switch format {
		case runtimeconfig.FormatMarkdown:
			artifact.MIMEType = MIMEMarkdown
			artifact.Data = []byte(req.Markdown)
		case runtimeconfig.FormatDOCX:
			artifact.MIMEType = MIMEDOCX
			artifact.Data, result.Stats, err = s.renderDOCX(body, result)
		case runtimeconfig.FormatHTML:
			artifact.MIMEType = MIMEHTML
			artifact.Data, err = s.renderHTML(body, result.Title)
		}

		formatLogger := logging.WithExportContext(logger, topic, name, format)
		if err != nil {
			formatLogger.Error("export.format.failed", "error", err)
			result.Errors = append(result.Errors, err)
			continue
		}
		formatLogger.Debug("export.format.rendered", "bytes", len(artifact.Data))
		result.Artifacts = append(result.Artifacts, artifact)
	}

	logger.Info("export.completed",
		"topic", topic,
		"artifacts", len(result.Artifacts),
		"errors", len(result.Errors),
		"links", result.Stats.Links,
		"link_fallbacks", result.Stats.LinkFallbacks,
	)

	if len(result.Artifacts) == 0 {
		return result, result.Err()
	}
	return result, nil
}

// MarkdownToDOCX converts markdown into a .docx package with no document
// properties beyond the title line.
func (s *service) MarkdownToDOCX(source string) ([]byte, error) {
	data, _, err := s.renderDOCX(source, &Result{Title: firstTitle(source)})
	return data, err
}

func (s *service) renderDOCX(body string, result *Result) (data []byte, stats convert.Stats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrDOCXGeneration, r)
		}
	}()

	doc := docx.New(docx.Options{
		HyperlinkColor: s.cfg.HyperlinkColor,
		Title:          result.Title,
		Subject:        firstNonEmpty(result.FrontMatter.Summary, result.Topic),
		Creator:        firstNonEmpty(result.FrontMatter.Author, s.cfg.Creator),
		Keywords:       keywords(result.FrontMatter.Tags, result.Slug),
		Now:            s.now,
		Logger:         s.docLogger,
	})
	stats = s.converter.Convert(body, doc)

	data, err = s.pack(doc)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %w", ErrDOCXGeneration, err)
	}
	return data, stats, nil
}

// renderHTML converts the article through the markdown writer so the preview
// shows exactly the structure the Word document gets.
func (s *service) renderHTML(body, title string) ([]byte, error) {
	w := markdown.NewWriter()
	s.converter.Convert(body, w)

	fragment, err := s.parser.Parse([]byte(w.String()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTMLGeneration, err)
	}

	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title>\n</head>\n<body>\n<article>\n")
	b.Write(fragment)
	b.WriteString("</article>\n</body>\n</html>\n")
	return b.Bytes(), nil
}

// splitFrontMatter strips an optional header. A malformed header is kept as
// article text.
func (s *service) splitFrontMatter(source string) (interfaces.FrontMatter, string) {
	meta, body, err := markdown.ParseFrontMatter([]byte(source))
	if err != nil {
		s.logger.Warn("export.frontmatter.invalid", "error", err)
		return interfaces.FrontMatter{}, source
	}
	// A leading rule followed by YAML-compatible text (a "# Title" reads as a
	// comment) parses as an empty header; that is article content.
	if len(meta.Raw) == 0 {
		return interfaces.FrontMatter{}, source
	}
	return meta, string(body)
}

func (s *service) title(body string, meta interfaces.FrontMatter, topic string) string {
	if title := firstTitle(body); title != "" {
		return title
	}
	if meta.Title != "" {
		return meta.Title
	}
	if s.cfg.TitleFallback {
		return topic
	}
	return ""
}

func (s *service) formats(requested []string) ([]string, error) {
	if len(requested) == 0 {
		requested = s.cfg.Formats
	}
	var formats []string
	for _, raw := range requested {
		format := runtimeconfig.NormalizeFormat(raw)
		if !runtimeconfig.IsSupportedFormat(format) {
			return nil, fmt.Errorf("%w: %q", ErrFormatUnknown, raw)
		}
		if !slices.Contains(formats, format) {
			formats = append(formats, format)
		}
	}
	return formats, nil
}

func firstTitle(body string) string {
	for block := range convert.Blocks(body) {
		if block.Kind == convert.BlockTitle {
			return strings.TrimSpace(block.Text)
		}
	}
	return ""
}

func deriveSlug(explicit, topic string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit
	}
	normalized, err := slug.Normalize(topic)
	if err != nil {
		return ""
	}
	return normalized
}

func keywords(tags []string, slugValue string) []string {
	out := slices.Clone(tags)
	if slugValue != "" && !slices.Contains(out, slugValue) {
		out = append(out, slugValue)
	}
	return out
}

func extension(format string) string {
	switch format {
	case runtimeconfig.FormatMarkdown:
		return ".md"
	case runtimeconfig.FormatDOCX:
		return ".docx"
	default:
		return "." + format
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// MarkdownToDOCX converts markdown into a .docx package using the default
// configuration.
func MarkdownToDOCX(source string) ([]byte, error) {
	return NewService(DefaultConfig()).MarkdownToDOCX(source)
}
