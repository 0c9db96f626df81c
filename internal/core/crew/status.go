package crew

// Status is the lifecycle state the backend reports for a crew or execution.
// ENUM(pending, running, completed, failed).
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"

	// StatusIdle is the local default for a crew the backend reported without
	// a status. It is never sent to the backend.
	StatusIdle Status = "idle"
)

// OrIdle returns s, or StatusIdle when s is not a declared backend state.
func (s Status) OrIdle() Status {
	if !s.IsKnown() {
		return StatusIdle
	}
	return s
}

// IsRunning reports whether s is the running state.
func (s Status) IsRunning() bool {
	return s == StatusRunning
}

// IsKnown reports whether s is one of the declared backend states.
func (s Status) IsKnown() bool {
	switch s {
	case StatusPending, StatusRunning, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Label returns the display label for s.
func (s Status) Label() string {
	switch s.OrIdle() {
	case StatusPending:
		return "Pending"
	case StatusRunning:
		return "Running"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	default:
		return "Idle"
	}
}

// AnyRunning reports whether any execution in execs is running.
func AnyRunning(execs []Execution) bool {
	for _, e := range execs {
		if e.Status.IsRunning() {
			return true
		}
	}
	return false
}
