package domain

// Phase describes the lifecycle state of a meetup session.
type Phase int

const (
	// PhaseUnspecified represents an invalid phase value.
	PhaseUnspecified Phase = iota
	// PhaseScheduled indicates the session exists and awaits its timers.
	PhaseScheduled
	// PhaseResourcesProvisioned indicates the workspace has been created.
	PhaseResourcesProvisioned
	// PhaseStarted indicates the start instant has passed.
	PhaseStarted
	// PhaseCancelled is the terminal phase reached by the owner's cancel.
	PhaseCancelled
	// PhaseOver is the terminal phase reached by natural completion.
	PhaseOver
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseScheduled:
		return "scheduled"
	case PhaseResourcesProvisioned:
		return "resources_provisioned"
	case PhaseStarted:
		return "started"
	case PhaseCancelled:
		return "cancelled"
	case PhaseOver:
		return "over"
	default:
		return "unspecified"
	}
}

// Terminal reports whether the phase absorbs all further transitions.
func (p Phase) Terminal() bool {
	return p == PhaseCancelled || p == PhaseOver
}

// CanTransition reports whether moving from p to next respects the monotonic
// order Scheduled → ResourcesProvisioned → Started → {Cancelled | Over}.
// Cancelled is reachable from any non-terminal phase; Over only from Started.
func (p Phase) CanTransition(next Phase) bool {
	if p.Terminal() {
		return false
	}
	switch next {
	case PhaseResourcesProvisioned:
		return p == PhaseScheduled
	case PhaseStarted:
		return p == PhaseScheduled || p == PhaseResourcesProvisioned
	case PhaseCancelled:
		return true
	case PhaseOver:
		return p == PhaseStarted
	default:
		return false
	}
}
