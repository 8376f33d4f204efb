package domain

import "fmt"

// SnapshotVersion is the format version written by this build.
const SnapshotVersion = 1

// Snapshot is the persisted portion of the team store.
// It is saved after every mutation and read back at startup.
type Snapshot struct {
	// Version is the snapshot format version
	Version int `json:"version"`

	// Teams is the team collection, in creation order
	Teams []Team `json:"teams"`

	// CurrentTeam indexes the team that edits apply to
	CurrentTeam int `json:"currentTeam"`
}

// DefaultSnapshot returns the first-run state: one empty team, selected.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Version:     SnapshotVersion,
		Teams:       []Team{{}},
		CurrentTeam: 0,
	}
}

// Normalize checks the version and repairs invariant violations: an empty
// collection gains one empty team, the pointer is clamped into range and
// duplicate names within a team keep their first occurrence.
func (s Snapshot) Normalize() (Snapshot, error) {
	if s.Version > SnapshotVersion {
		return DefaultSnapshot(), fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}
	out := Snapshot{
		Version:     SnapshotVersion,
		Teams:       make([]Team, 0, len(s.Teams)),
		CurrentTeam: s.CurrentTeam,
	}
	for _, t := range s.Teams {
		out.Teams = append(out.Teams, t.dedupe())
	}
	if len(out.Teams) == 0 {
		out.Teams = append(out.Teams, Team{})
	}
	out.CurrentTeam = clamp(out.CurrentTeam, len(out.Teams))
	return out, nil
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	teams := make([]Team, len(s.Teams))
	for i, t := range s.Teams {
		teams[i] = t.Clone()
	}
	return Snapshot{Version: s.Version, Teams: teams, CurrentTeam: s.CurrentTeam}
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
