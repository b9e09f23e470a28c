package commands

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandSubscription is released when a dispatcher registration is no
// longer needed.
type CommandSubscription interface {
	Unsubscribe()
}

// CommandDispatcher subscribes handlers to a message bus such as
// go-command's dispatcher.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}
