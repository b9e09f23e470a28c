package exportcmd

import (
	"fmt"

	"github.com/goliatone/go-article/internal/commands"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

// BusDispatcher subscribes export handlers to go-command's global dispatcher
// so callers can publish ExportArticleCommand with dispatcher.Dispatch.
type BusDispatcher struct {
	retries int
}

var _ commands.CommandDispatcher = BusDispatcher{}

// NewBusDispatcher returns an adapter that retries failed executions the given
// number of times.
func NewBusDispatcher(retries int) BusDispatcher {
	return BusDispatcher{retries: max(retries, 0)}
}

// RegisterCommand subscribes handler when it is an export handler.
func (d BusDispatcher) RegisterCommand(handler any) (commands.CommandSubscription, error) {
	switch h := handler.(type) {
	case *ExportArticleHandler:
		return dispatcher.SubscribeCommand(h, runner.WithMaxRetries(d.retries)), nil
	default:
		return nil, fmt.Errorf("exportcmd: unsupported handler %T", handler)
	}
}
