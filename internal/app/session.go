package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bft-labs/dreamteam/internal/domain"
	"github.com/bft-labs/dreamteam/internal/ports"
	"github.com/bft-labs/dreamteam/internal/store"
)

// Session connects a team store to a roster loader. It plays the part the
// player screen plays in a browser client: it triggers the roster load and
// turns names typed by the user into roster entries.
type Session struct {
	store  *store.Store
	loader ports.RosterLoader
	logger ports.Logger
}

// NewSession creates a session over an already rehydrated store.
func NewSession(st *store.Store, loader ports.RosterLoader, logger ports.Logger) *Session {
	return &Session{
		store:  st,
		loader: loader,
		logger: logger,
	}
}

// Store returns the underlying team store.
func (s *Session) Store() *store.Store {
	return s.store
}

// Logger returns the session's logger.
func (s *Session) Logger() ports.Logger {
	return s.logger
}

// EnsureRoster loads the roster unless one is already loaded or a load is
// in flight.
func (s *Session) EnsureRoster(ctx context.Context) error {
	if len(s.store.Roster()) > 0 || s.store.Status() == domain.StatusLoading {
		return nil
	}
	return s.Reload(ctx)
}

// Reload fetches the roster unconditionally. The outcome is recorded in the
// store; a failure is also returned.
func (s *Session) Reload(ctx context.Context) error {
	start := time.Now()
	s.store.BeginLoad()

	roster, err := s.loader.Load(ctx)
	if err != nil {
		s.store.LoadFailed(err.Error())
		s.logger.Warn("roster load failed", ports.Err(err), ports.Duration("took", time.Since(start)))
		return fmt.Errorf("load roster: %w", err)
	}

	s.store.LoadSucceeded(roster)
	s.logger.Info("roster loaded", ports.Int("players", len(roster)), ports.Duration("took", time.Since(start)))
	return nil
}

// AddByName resolves name against the roster and adds that player to the
// current team. It reports whether the player was newly added; a player
// already in the team is not an error.
func (s *Session) AddByName(ctx context.Context, name string) (domain.Player, bool, error) {
	if err := s.EnsureRoster(ctx); err != nil {
		return domain.Player{}, false, err
	}
	p, ok := s.store.Roster().Find(name)
	if !ok {
		return domain.Player{}, false, fmt.Errorf("%w: %q", domain.ErrPlayerNotFound, name)
	}
	return p, s.store.AddPlayer(ctx, p), nil
}

// RemoveByName removes the player from the current team. Names are matched
// exactly first, then case-insensitively against the team's members.
func (s *Session) RemoveByName(ctx context.Context, name string) bool {
	_, team := s.store.CurrentTeam()
	if p, ok := domain.Roster(team).Find(name); ok {
		name = p.Name
	}
	return s.store.RemovePlayer(ctx, name)
}
