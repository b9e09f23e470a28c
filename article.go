// Package article converts generated markdown articles into Word documents,
// markdown downloads and HTML previews.
package article

import (
	"context"

	exportcmd "github.com/goliatone/go-article/internal/commands/export"
	"github.com/goliatone/go-article/internal/di"
	"github.com/goliatone/go-article/internal/export"
	"github.com/goliatone/go-article/internal/filename"
	"github.com/goliatone/go-article/pkg/interfaces"
)

// ExportService exports the export service contract.
type ExportService = export.Service

// ExportRequest exports the export request DTO.
type ExportRequest = export.Request

// ExportResult exports the export result DTO.
type ExportResult = export.Result

// Artifact exports the artifact DTO.
type Artifact = interfaces.Artifact

// ExportArticleCommand exports the command message handled by ExportHandler.
type ExportArticleCommand = exportcmd.ExportArticleCommand

// ExportHandler exports the command handler type.
type ExportHandler = *exportcmd.ExportArticleHandler

// Sentinel errors returned by exports.
var (
	ErrEmptyArticle   = export.ErrEmptyArticle
	ErrFormatUnknown  = export.ErrFormatUnknown
	ErrDOCXGeneration = export.ErrDOCXGeneration
	ErrHTMLGeneration = export.ErrHTMLGeneration
)

// Module represents the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Export returns the configured export service.
func (m *Module) Export() ExportService {
	return m.container.ExportService()
}

// ExportArticle is shorthand for Export().Export.
func (m *Module) ExportArticle(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	return m.container.ExportService().Export(ctx, req)
}

// ExportHandler returns the export command handler, nil when the commands
// feature is disabled.
func (m *Module) ExportHandler() ExportHandler {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ExportHandler()
}

// Close releases dispatcher subscriptions made during construction.
func (m *Module) Close() {
	if m != nil && m.container != nil {
		m.container.Close()
	}
}

// MarkdownToDOCX converts markdown into a .docx package using the default
// configuration.
func MarkdownToDOCX(markdown string) ([]byte, error) {
	return export.MarkdownToDOCX(markdown)
}

// SanitizeFilename derives a download base name from a topic.
func SanitizeFilename(topic string) string {
	return filename.Sanitize(topic)
}
