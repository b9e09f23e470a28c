// Package commands exposes the article command handlers to hosts that run
// their own go-command registry or dispatcher.
package commands

import (
	"errors"

	article "github.com/goliatone/go-article"
	internalcommands "github.com/goliatone/go-article/internal/commands"
	exportcmd "github.com/goliatone/go-article/internal/commands/export"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry = internalcommands.CommandRegistry

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher = internalcommands.CommandDispatcher

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription = internalcommands.CommandSubscription

// ErrNoHandlers is returned when the module was built without the commands feature.
var ErrNoHandlers = errors.New("no command handlers registered; ensure Features.Commands is enabled")

// RegistrationOptions configures how handlers are registered.
type RegistrationOptions struct {
	Registry   CommandRegistry
	Dispatcher CommandDispatcher
}

// RegistrationResult captures the handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// Close releases every dispatcher subscription.
func (r *RegistrationResult) Close() {
	if r == nil {
		return
	}
	for _, sub := range r.Subscriptions {
		sub.Unsubscribe()
	}
	r.Subscriptions = nil
}

// NewBusDispatcher returns a CommandDispatcher backed by go-command's global
// dispatcher, retrying failed executions the given number of times.
func NewBusDispatcher(retries int) CommandDispatcher {
	return exportcmd.NewBusDispatcher(retries)
}

// RegisterModuleCommands registers the module's command handlers with the
// provided registry and dispatcher. Both are optional; the handlers are
// returned either way.
func RegisterModuleCommands(module *article.Module, opts RegistrationOptions) (*RegistrationResult, error) {
	result := &RegistrationResult{
		Handlers:      make([]any, 0, 1),
		Subscriptions: make([]CommandSubscription, 0, 1),
	}
	if module == nil {
		return result, ErrNoHandlers
	}

	var errs error
	register := func(handler any) {
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}
		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	if handler := module.ExportHandler(); handler != nil {
		register(handler)
	}

	if len(result.Handlers) == 0 {
		return result, ErrNoHandlers
	}
	return result, errs
}
