package exportcmd

// FeatureGates exposes runtime feature toggles required by the export
// handler. Callers supply closures reading Config.Features.Commands so the
// handler stays decoupled from configuration.
type FeatureGates struct {
	CommandsEnabled func() bool
}

func (g FeatureGates) commandsEnabled() bool {
	if g.CommandsEnabled == nil {
		return true
	}
	return g.CommandsEnabled()
}
