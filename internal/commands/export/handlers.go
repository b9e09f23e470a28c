package exportcmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-article/internal/commands"
	"github.com/goliatone/go-article/internal/export"
	"github.com/goliatone/go-article/internal/logging"
	"github.com/goliatone/go-article/internal/markdown"
	"github.com/goliatone/go-article/pkg/interfaces"
)

const exportOperation = "article.export"

var (
	// ErrCommandsDisabled is returned when the commands feature flag is off.
	ErrCommandsDisabled = errors.New("export command: feature disabled")
	// ErrSourceRequired is returned when a command carries no markdown and
	// no article source is configured.
	ErrSourceRequired = errors.New("export command: article source is required")
)

var _ command.Commander[ExportArticleCommand] = (*ExportArticleHandler)(nil)

// ResultObserver receives every export result after delivery, including
// partial results.
type ResultObserver func(ctx context.Context, result *export.Result)

// Dependencies lists the collaborators of the export handler. Source and
// Sink are optional.
type Dependencies struct {
	Service  export.Service
	Source   interfaces.ArticleSource
	Sink     interfaces.ArtifactSink
	Observer ResultObserver
}

// ExportArticleHandler fetches, converts and delivers one article.
type ExportArticleHandler struct {
	inner *commands.Handler[ExportArticleCommand]
}

// NewExportArticleHandler creates a handler bound to the supplied dependencies.
func NewExportArticleHandler(deps Dependencies, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ExportArticleCommand]) *ExportArticleHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ExportArticleCommand) error {
		if !gates.commandsEnabled() {
			return ErrCommandsDisabled
		}

		source := msg.Markdown
		if strings.TrimSpace(source) == "" {
			if deps.Source == nil {
				return commands.InputError(ErrSourceRequired, "markdown or an article source is required")
			}
			article, err := deps.Source.Article(ctx, msg.Topic)
			if errors.Is(err, markdown.ErrArticleNotFound) {
				return commands.InputError(err, "no article found for topic")
			}
			if err != nil {
				return fmt.Errorf("export command: fetch article: %w", err)
			}
			source = article
		}

		result, err := deps.Service.Export(ctx, export.Request{
			Topic:    msg.Topic,
			Markdown: source,
			Formats:  msg.Formats,
		})
		if result != nil && deps.Observer != nil {
			defer deps.Observer(ctx, result)
		}
		if errors.Is(err, export.ErrEmptyArticle) || errors.Is(err, export.ErrFormatUnknown) {
			return commands.InputError(err, "article cannot be exported")
		}
		if err != nil {
			return err
		}

		if deps.Sink != nil && len(result.Artifacts) > 0 {
			if err := deps.Sink.Deliver(ctx, result.Artifacts); err != nil {
				return fmt.Errorf("export command: deliver artifacts: %w", err)
			}
		}

		entry := logging.WithFields(baseLogger, map[string]any{
			"export_id":      result.ID.String(),
			"artifact_count": len(result.Artifacts),
			"error_count":    len(result.Errors),
		})
		if len(result.Errors) > 0 {
			entry.Warn("export.command.partial", "error", result.Err())
			return nil
		}
		entry.Info("export.command.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportArticleCommand]{
		commands.WithLogger[ExportArticleCommand](baseLogger),
		commands.WithOperation[ExportArticleCommand](exportOperation),
		commands.WithMessageFields(func(msg ExportArticleCommand) map[string]any {
			fields := map[string]any{
				"topic": msg.Topic,
			}
			if len(msg.Formats) > 0 {
				fields["formats"] = strings.Join(msg.Formats, ",")
			}
			if msg.Markdown != "" {
				fields["inline_markdown"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ExportArticleCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportArticleHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ExportArticleCommand].
func (h *ExportArticleHandler) Execute(ctx context.Context, msg ExportArticleCommand) error {
	return h.inner.Execute(ctx, msg)
}
