package exportcmd

import (
	"errors"

	"github.com/goliatone/go-article/internal/commands"
	"github.com/goliatone/go-article/internal/logging"
	"github.com/goliatone/go-article/pkg/interfaces"
)

// HandlerSet groups the handlers produced by RegisterExportCommands.
type HandlerSet struct {
	Export *ExportArticleHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	exportHandlerOpts []commands.HandlerOption[ExportArticleCommand]
}

// WithExportHandlerOptions forwards options to the ExportArticleHandler constructor.
func WithExportHandlerOptions(opts ...commands.HandlerOption[ExportArticleCommand]) Option {
	return func(cfg *options) {
		cfg.exportHandlerOpts = append(cfg.exportHandlerOpts, opts...)
	}
}

// RegisterExportCommands builds the export handler and registers it with
// reg when one is supplied.
func RegisterExportCommands(reg commands.CommandRegistry, deps Dependencies, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if deps.Service == nil {
		return nil, errors.New("export command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := logging.CommandLogger(provider, "export")
	handler := NewExportArticleHandler(deps, logger, gates, cfg.exportHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{Export: handler}, nil
}
