package workspace

// CreatedEvent is published after a workspace is provisioned.
type CreatedEvent struct {
	Result *Workspace
}

func NewCreatedEvent(result *Workspace) *CreatedEvent {
	return &CreatedEvent{Result: result}
}

// CustomDomainUpdatedEvent is published when DNS validation flips the
// custom-domain state of a workspace.
type CustomDomainUpdatedEvent struct {
	Result   *Workspace
	Hostname string
	Enabled  bool
}

func NewCustomDomainUpdatedEvent(result *Workspace, hostname string, enabled bool) *CustomDomainUpdatedEvent {
	return &CustomDomainUpdatedEvent{Result: result, Hostname: hostname, Enabled: enabled}
}

// CustomDomainClearedEvent is published when a hostname is no longer
// recognized upstream and was detached from its workspace.
type CustomDomainClearedEvent struct {
	Result   *Workspace
	Hostname string
}

func NewCustomDomainClearedEvent(result *Workspace, hostname string) *CustomDomainClearedEvent {
	return &CustomDomainClearedEvent{Result: result, Hostname: hostname}
}
