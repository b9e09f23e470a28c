package di

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-article/internal/commands"
	exportcmd "github.com/goliatone/go-article/internal/commands/export"
	"github.com/goliatone/go-article/internal/export"
	"github.com/goliatone/go-article/internal/logging"
	"github.com/goliatone/go-article/internal/logging/console"
	"github.com/goliatone/go-article/internal/logging/gologger"
	"github.com/goliatone/go-article/internal/runtimeconfig"
	"github.com/goliatone/go-article/pkg/interfaces"
)

// Container wires the exporter's dependencies from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer
	parser         interfaces.MarkdownParser
	source         interfaces.ArticleSource
	sink           interfaces.ArtifactSink
	observer       exportcmd.ResultObserver
	clock          func() time.Time
	idGenerator    func() uuid.UUID

	registry   commands.CommandRegistry
	dispatcher commands.CommandDispatcher

	exportSvc     export.Service
	handlers      *exportcmd.HandlerSet
	subscriptions []commands.CommandSubscription
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider derived from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithLogWriter redirects the console provider, which writes to stderr by default.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		c.logWriter = w
	}
}

// WithParser overrides the HTML preview renderer.
func WithParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithArticleSource sets where commands fetch articles that are not supplied inline.
func WithArticleSource(source interfaces.ArticleSource) Option {
	return func(c *Container) {
		c.source = source
	}
}

// WithArtifactSink sets where commands deliver artifacts.
func WithArtifactSink(sink interfaces.ArtifactSink) Option {
	return func(c *Container) {
		c.sink = sink
	}
}

// WithResultObserver receives every export result produced by commands.
func WithResultObserver(observer exportcmd.ResultObserver) Option {
	return func(c *Container) {
		c.observer = observer
	}
}

// WithClock overrides the clock stamped into document properties.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		c.clock = clock
	}
}

// WithIDGenerator overrides export identifiers.
func WithIDGenerator(generator func() uuid.UUID) Option {
	return func(c *Container) {
		c.idGenerator = generator
	}
}

// WithCommandRegistry registers command handlers with reg.
func WithCommandRegistry(reg commands.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// WithCommandDispatcher subscribes command handlers to dispatcher.
func WithCommandDispatcher(dispatcher commands.CommandDispatcher) Option {
	return func(c *Container) {
		c.dispatcher = dispatcher
	}
}

// NewContainer validates cfg and builds the export service and, when the
// commands feature is on, its command handlers.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureExport()
	if err := c.configureCommands(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		writer := c.logWriter
		if writer == nil {
			writer = os.Stderr
		}
		opts := console.Options{Writer: writer}
		if level, ok := console.ParseLevel(c.Config.Logging.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureExport() {
	opts := []export.ServiceOption{
		export.WithLoggerProvider(c.loggerProvider),
		export.WithParser(c.parser),
		export.WithClock(c.clock),
	}
	if c.idGenerator != nil {
		opts = append(opts, export.WithIDGenerator(c.idGenerator))
	}
	c.exportSvc = export.NewService(export.ConfigFrom(c.Config), opts...)
}

func (c *Container) configureCommands() error {
	if !c.Config.Features.Commands {
		return nil
	}

	set, err := exportcmd.RegisterExportCommands(c.registry, exportcmd.Dependencies{
		Service:  c.exportSvc,
		Source:   c.source,
		Sink:     c.sink,
		Observer: c.observer,
	}, c.loggerProvider, exportcmd.FeatureGates{
		CommandsEnabled: func() bool { return c.Config.Features.Commands },
	}, exportcmd.WithExportHandlerOptions(
		commands.WithTimeout[exportcmd.ExportArticleCommand](c.Config.Commands.Timeout),
	))
	if err != nil {
		return err
	}
	c.handlers = set

	if c.dispatcher != nil {
		sub, err := c.dispatcher.RegisterCommand(set.Export)
		if err != nil {
			return fmt.Errorf("di: subscribe export handler: %w", err)
		}
		c.subscriptions = append(c.subscriptions, sub)
	}

	logging.ModuleLogger(c.loggerProvider, "article").Debug("commands.configured",
		"dispatcher", c.dispatcher != nil,
		"registry", c.registry != nil,
	)
	return nil
}

// LoggerProvider returns the active provider, nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// ExportService returns the configured export service.
func (c *Container) ExportService() export.Service {
	return c.exportSvc
}

// ExportHandler returns the export command handler, nil when commands are disabled.
func (c *Container) ExportHandler() *exportcmd.ExportArticleHandler {
	if c.handlers == nil {
		return nil
	}
	return c.handlers.Export
}

// Close releases dispatcher subscriptions.
func (c *Container) Close() {
	for _, sub := range c.subscriptions {
		sub.Unsubscribe()
	}
	c.subscriptions = nil
}
