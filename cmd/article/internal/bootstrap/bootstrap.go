package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	article "github.com/goliatone/go-article"
	"github.com/goliatone/go-article/internal/artifacts"
	exportcmd "github.com/goliatone/go-article/internal/commands/export"
	"github.com/goliatone/go-article/internal/di"
	"github.com/goliatone/go-article/internal/export"
	"github.com/goliatone/go-article/internal/logging"
	"github.com/goliatone/go-article/internal/markdown"
	"github.com/goliatone/go-article/pkg/interfaces"
)

// Options captures configuration for the article CLI bootstrap.
type Options struct {
	// ArticleDir, when set, serves articles by topic from a directory.
	ArticleDir    string
	Recursive     bool
	OutputDir     string
	Formats       []string
	LogLevel      string
	LogFormat     string
	TitleFallback *bool
	Retries       int
	Sink          interfaces.ArtifactSink
}

// Module wraps the article module with the sink and the last export result.
type Module struct {
	Module *article.Module
	Sink   interfaces.ArtifactSink
	Logger interfaces.Logger

	mu     sync.Mutex
	result *export.Result
}

// LastResult returns the result observed by the most recent export command.
func (m *Module) LastResult() *export.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result
}

func (m *Module) observe(_ context.Context, result *export.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.result = result
}

// BuildModule constructs an article module subscribed to the command bus and
// writing artifacts to the output directory.
func BuildModule(opts Options) (*Module, error) {
	cfg := article.DefaultConfig()
	if dir := strings.TrimSpace(opts.OutputDir); dir != "" {
		cfg.Export.OutputDir = dir
	}
	if len(opts.Formats) > 0 {
		cfg.Export.Formats = cloneStrings(opts.Formats)
	}
	if opts.TitleFallback != nil {
		cfg.Document.TitleFallback = *opts.TitleFallback
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Features.Logger = true
		cfg.Logging.Level = level
		if format := strings.TrimSpace(opts.LogFormat); format != "" {
			cfg.Logging.Provider = "gologger"
			cfg.Logging.Format = format
		}
	}

	sink := opts.Sink
	if sink == nil {
		sink = artifacts.NewDirSink(cfg.Export.OutputDir)
	}

	wrapper := &Module{Sink: sink}
	diOpts := []di.Option{
		di.WithArtifactSink(sink),
		di.WithResultObserver(wrapper.observe),
		di.WithCommandDispatcher(exportcmd.NewBusDispatcher(opts.Retries)),
	}
	if dir := strings.TrimSpace(opts.ArticleDir); dir != "" {
		diOpts = append(diOpts, di.WithArticleSource(markdown.NewSource(os.DirFS(dir), markdown.SourceConfig{
			Recursive: opts.Recursive,
		})))
	}

	module, err := article.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise article module: %w", err)
	}
	if module.ExportHandler() == nil {
		module.Close()
		return nil, fmt.Errorf("export commands not configured; ensure Features.Commands is enabled")
	}

	wrapper.Module = module
	wrapper.Logger = logging.ModuleLogger(module.Container().LoggerProvider(), "cli")
	return wrapper, nil
}

// SplitFormats parses a comma separated format list into a trimmed slice.
func SplitFormats(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	formats := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			formats = append(formats, trimmed)
		}
	}
	return formats
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
