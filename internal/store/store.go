// Package store implements the team store: the roster, the user's teams, the
// current-team pointer and the roster load status, with every team mutation
// persisted to local storage.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/bft-labs/dreamteam/internal/domain"
	"github.com/bft-labs/dreamteam/internal/ports"
)

// DefaultNamespace is the local storage key snapshots are saved under.
const DefaultNamespace = "root"

// State is a point-in-time copy of everything the store holds.
type State struct {
	Roster      domain.Roster
	Teams       []domain.Team
	CurrentTeam int
	Loading     bool
	Error       string
}

// Store owns the team state. All methods are safe to call from multiple
// goroutines; each mutation runs to completion before the next starts.
type Store struct {
	mu sync.RWMutex

	roster   domain.Roster
	loaded   bool
	snap     domain.Snapshot
	loading  bool
	errorMsg string

	storage   ports.LocalStorage
	namespace string
	logger    ports.Logger

	// saveMu orders writes to storage and guards saveErr.
	saveMu  sync.Mutex
	saveErr error
}

// Option configures a Store.
type Option func(*Store)

// WithNamespace sets the local storage key. Defaults to DefaultNamespace.
func WithNamespace(ns string) Option {
	return func(s *Store) {
		if ns != "" {
			s.namespace = ns
		}
	}
}

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(logger ports.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a store in its initial state: one empty team selected, an
// empty roster, not loading and no error. Call Rehydrate to restore
// persisted teams.
func New(storage ports.LocalStorage, opts ...Option) *Store {
	s := &Store{
		snap:      domain.DefaultSnapshot(),
		storage:   storage,
		namespace: DefaultNamespace,
		logger:    noopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rehydrate replaces teams and the current pointer with the persisted
// snapshot. A missing snapshot leaves the defaults in place. A corrupt or
// newer-format snapshot also leaves the defaults and returns the error.
func (s *Store) Rehydrate(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}
	data, ok, err := s.storage.Get(ctx, s.namespace)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	if !ok {
		s.logger.Debug("no persisted snapshot, using defaults", ports.String("namespace", s.namespace))
		return nil
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	snap, err = snap.Normalize()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.logger.Debug("rehydrated teams",
		ports.Int("teams", len(snap.Teams)),
		ports.Team(snap.CurrentTeam),
	)
	return nil
}

// BeginLoad marks a roster load as in flight and clears any previous error.
func (s *Store) BeginLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.errorMsg = ""
}

// LoadSucceeded replaces the roster and ends the load.
func (s *Store) LoadSucceeded(roster domain.Roster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.errorMsg = ""
	s.roster = append(domain.Roster(nil), roster...)
	s.loaded = true
}

// LoadFailed records the error description and ends the load.
// The roster from an earlier successful load is kept.
func (s *Store) LoadFailed(description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.errorMsg = description
}

// AddPlayer appends p to the current team. A player whose name is already
// in the team is not added again; the return value reports whether p was
// added.
func (s *Store) AddPlayer(ctx context.Context, p domain.Player) bool {
	s.mu.Lock()
	team := s.snap.Teams[s.snap.CurrentTeam]
	if team.Contains(p.Name) {
		s.mu.Unlock()
		return false
	}
	s.snap.Teams[s.snap.CurrentTeam] = append(team, p)
	current := s.snap.CurrentTeam
	s.commitLocked(ctx)

	s.logger.Debug("player added", ports.Player(p.Name), ports.Team(current))
	return true
}

// RemovePlayer removes the named player from the current team. The return
// value reports whether anything was removed.
func (s *Store) RemovePlayer(ctx context.Context, name string) bool {
	s.mu.Lock()
	team := s.snap.Teams[s.snap.CurrentTeam]
	kept := make(domain.Team, 0, len(team))
	for _, p := range team {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(team) {
		s.mu.Unlock()
		return false
	}
	s.snap.Teams[s.snap.CurrentTeam] = kept
	current := s.snap.CurrentTeam
	s.commitLocked(ctx)

	s.logger.Debug("player removed", ports.Player(name), ports.Team(current))
	return true
}

// AddNewTeam appends an empty team, selects it and returns its index.
func (s *Store) AddNewTeam(ctx context.Context) int {
	s.mu.Lock()
	s.snap.Teams = append(s.snap.Teams, domain.Team{})
	s.snap.CurrentTeam = len(s.snap.Teams) - 1
	current := s.snap.CurrentTeam
	s.commitLocked(ctx)

	s.logger.Debug("team created", ports.Team(current))
	return current
}

// SetCurrentTeam selects the team at index.
// Returns ErrIndexOutOfRange, leaving the selection unchanged, if index does
// not address a team.
func (s *Store) SetCurrentTeam(ctx context.Context, index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.snap.Teams) {
		n := len(s.snap.Teams)
		s.mu.Unlock()
		return fmt.Errorf("%w: %d not in [0, %d)", domain.ErrIndexOutOfRange, index, n)
	}
	s.snap.CurrentTeam = index
	s.commitLocked(ctx)
	return nil
}

// DeleteTeam removes the team at index. Deleting the only team leaves one
// empty team in its place. The pointer is clamped to the new collection.
// An out-of-range index is a no-op; the return value reports whether a team
// was removed.
func (s *Store) DeleteTeam(ctx context.Context, index int) bool {
	s.mu.Lock()
	if index < 0 || index >= len(s.snap.Teams) {
		s.mu.Unlock()
		return false
	}
	teams := make([]domain.Team, 0, len(s.snap.Teams))
	teams = append(teams, s.snap.Teams[:index]...)
	teams = append(teams, s.snap.Teams[index+1:]...)
	if len(teams) == 0 {
		teams = append(teams, domain.Team{})
	}
	s.snap.Teams = teams
	if s.snap.CurrentTeam > len(teams)-1 {
		s.snap.CurrentTeam = len(teams) - 1
	}
	remaining := len(teams)
	s.commitLocked(ctx)

	s.logger.Debug("team deleted", ports.Team(index), ports.Int("remaining", remaining))
	return true
}

// Reset discards every team and removes the saved snapshot, returning the
// teams to the first-run state. The roster and load status are kept.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.snap = domain.DefaultSnapshot()
	s.saveMu.Lock()
	s.mu.Unlock()
	defer s.saveMu.Unlock()

	s.saveErr = nil
	if s.storage == nil {
		return nil
	}
	if err := s.storage.Remove(ctx, s.namespace); err != nil {
		s.saveErr = fmt.Errorf("remove snapshot: %w", err)
		s.logger.Error("failed to remove saved teams", ports.String("namespace", s.namespace), ports.Err(err))
		return s.saveErr
	}
	s.logger.Debug("teams reset", ports.String("namespace", s.namespace))
	return nil
}

// TotalRuns sums the runs of a team, counting players with no data as zero.
func TotalRuns(team domain.Team) int {
	return team.TotalRuns()
}

// Snapshot returns a deep copy of the full state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snap.Clone()
	return State{
		Roster:      append(domain.Roster(nil), s.roster...),
		Teams:       snap.Teams,
		CurrentTeam: snap.CurrentTeam,
		Loading:     s.loading,
		Error:       s.errorMsg,
	}
}

// Roster returns a copy of the loaded roster.
func (s *Store) Roster() domain.Roster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(domain.Roster(nil), s.roster...)
}

// Teams returns a copy of the team collection.
func (s *Store) Teams() []domain.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone().Teams
}

// CurrentTeam returns the selected index and a copy of that team.
func (s *Store) CurrentTeam() (int, domain.Team) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.CurrentTeam, s.snap.Teams[s.snap.CurrentTeam].Clone()
}

// InCurrentTeam reports whether the named player is in the selected team.
func (s *Store) InCurrentTeam(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Teams[s.snap.CurrentTeam].Contains(name)
}

// Status returns where the roster load lifecycle stands.
func (s *Store) Status() domain.LoadStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.loading:
		return domain.StatusLoading
	case s.errorMsg != "":
		return domain.StatusErrored
	case s.loaded:
		return domain.StatusLoaded
	default:
		return domain.StatusIdle
	}
}

// Error returns the description of the last failed load, or "".
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errorMsg
}

// LastPersistError returns the error from the most recent save, or nil if it
// succeeded.
func (s *Store) LastPersistError() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.saveErr
}

// commitLocked must be called with s.mu held and releases it. It writes the
// current snapshot to storage; saves happen in mutation order. A failed
// write does not undo the mutation; it is logged and kept for
// LastPersistError.
func (s *Store) commitLocked(ctx context.Context) {
	snap := s.snap.Clone()
	s.saveMu.Lock()
	s.mu.Unlock()
	defer s.saveMu.Unlock()

	if s.storage == nil {
		return
	}
	s.saveErr = s.save(ctx, snap)
	if s.saveErr != nil {
		s.logger.Error("failed to persist teams", ports.String("namespace", s.namespace), ports.Err(s.saveErr))
	}
}

func (s *Store) save(ctx context.Context, snap domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.storage.Set(ctx, s.namespace, data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, fields ...ports.Field) {}
func (noopLogger) Info(msg string, fields ...ports.Field)  {}
func (noopLogger) Warn(msg string, fields ...ports.Field)  {}
func (noopLogger) Error(msg string, fields ...ports.Field) {}
