package domain

import "errors"

// Domain errors returned by the store, the loader and the session.
// Check them with errors.Is.
var (
	// ErrLoadFailed is wrapped by every roster load failure.
	ErrLoadFailed = errors.New("failed to fetch cricket data")

	// ErrIndexOutOfRange is returned when a team index does not address an
	// existing team.
	ErrIndexOutOfRange = errors.New("dreamteam: team index out of range")

	// ErrPlayerNotFound is returned when a name does not match any roster entry.
	ErrPlayerNotFound = errors.New("dreamteam: player not found in roster")

	// ErrUnsupportedVersion is returned when a persisted snapshot was written
	// by a newer format version.
	ErrUnsupportedVersion = errors.New("dreamteam: unsupported snapshot version")
)
