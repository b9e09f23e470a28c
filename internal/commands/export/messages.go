package exportcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-article/internal/runtimeconfig"
)

const exportArticleMessageType = "article.export.article"

// ExportArticleCommand asks for the artifacts of one article. When Markdown
// is empty the handler fetches the article for Topic from its
// interfaces.ArticleSource.
type ExportArticleCommand struct {
	// Topic names the article and seeds the download file names.
	Topic string `json:"topic"`
	// Markdown carries an already generated article.
	Markdown string `json:"markdown,omitempty"`
	// Formats overrides the configured formats (docx, markdown, html).
	Formats []string `json:"formats,omitempty"`
}

// Type implements command.Message.
func (ExportArticleCommand) Type() string { return exportArticleMessageType }

// Validate requires a topic or an article body and known format names.
func (cmd ExportArticleCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Topic, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" && strings.TrimSpace(cmd.Markdown) == "" {
				return validation.NewError("article.export.topic_required", "topic is required when no markdown is supplied")
			}
			return nil
		})),
		validation.Field(&cmd.Formats, validation.Each(validation.By(func(value any) error {
			format, _ := value.(string)
			if !runtimeconfig.IsSupportedFormat(runtimeconfig.NormalizeFormat(format)) {
				return validation.NewError("article.export.format_invalid", "format must be one of docx, markdown, html")
			}
			return nil
		}))),
	)
}
