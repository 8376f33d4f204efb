package domain

// LoadStatus describes the roster load lifecycle.
type LoadStatus int

const (
	StatusIdle LoadStatus = iota
	StatusLoading
	StatusLoaded
	StatusErrored
)

// String returns a human-readable representation of the status.
func (s LoadStatus) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusLoading:
		return "Loading"
	case StatusLoaded:
		return "Loaded"
	case StatusErrored:
		return "Errored"
	default:
		return "Unknown"
	}
}
