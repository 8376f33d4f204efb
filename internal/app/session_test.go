package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bft-labs/dreamteam/internal/adapters/memory"
	"github.com/bft-labs/dreamteam/internal/domain"
	"github.com/bft-labs/dreamteam/internal/ports"
	"github.com/bft-labs/dreamteam/internal/store"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct{}

func (mockLogger) Debug(msg string, fields ...ports.Field) {}
func (mockLogger) Info(msg string, fields ...ports.Field)  {}
func (mockLogger) Warn(msg string, fields ...ports.Field)  {}
func (mockLogger) Error(msg string, fields ...ports.Field) {}

// mockLoader returns scripted results and counts calls.
type mockLoader struct {
	mu     sync.Mutex
	roster domain.Roster
	err    error
	calls  int
}

func (m *mockLoader) Load(ctx context.Context) (domain.Roster, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.roster, nil
}

func (m *mockLoader) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var testRoster = domain.Roster{
	{Name: "V Kohli", Runs: domain.RunsOf(973)},
	{Name: "R Sharma", Runs: domain.NoRuns},
}

func newTestSession(loader ports.RosterLoader) *Session {
	return NewSession(store.New(memory.NewLocalStorage()), loader, mockLogger{})
}

func TestSession_EnsureRoster_LoadsOnce(t *testing.T) {
	ctx := context.Background()
	loader := &mockLoader{roster: testRoster}
	s := newTestSession(loader)

	for i := 0; i < 3; i++ {
		if err := s.EnsureRoster(ctx); err != nil {
			t.Fatalf("EnsureRoster error = %v", err)
		}
	}
	if loader.Calls() != 1 {
		t.Errorf("loader called %d times, want 1", loader.Calls())
	}
	if s.Store().Status() != domain.StatusLoaded {
		t.Errorf("Status = %v, want Loaded", s.Store().Status())
	}
}

func TestSession_EnsureRoster_SkipsWhileLoading(t *testing.T) {
	loader := &mockLoader{roster: testRoster}
	s := newTestSession(loader)
	s.Store().BeginLoad()

	if err := s.EnsureRoster(context.Background()); err != nil {
		t.Fatalf("EnsureRoster error = %v", err)
	}
	if loader.Calls() != 0 {
		t.Errorf("loader called %d times during an in-flight load", loader.Calls())
	}
}

func TestSession_Reload_Failure(t *testing.T) {
	ctx := context.Background()
	loader := &mockLoader{roster: testRoster}
	s := newTestSession(loader)

	if err := s.Reload(ctx); err != nil {
		t.Fatalf("first Reload error = %v", err)
	}

	loader.err = domain.ErrLoadFailed
	err := s.Reload(ctx)
	if !errors.Is(err, domain.ErrLoadFailed) {
		t.Fatalf("Reload error = %v, want ErrLoadFailed", err)
	}

	st := s.Store().Snapshot()
	if st.Loading {
		t.Error("Loading = true after failed reload")
	}
	if st.Error != domain.ErrLoadFailed.Error() {
		t.Errorf("Error = %q, want %q", st.Error, domain.ErrLoadFailed.Error())
	}
	if len(st.Roster) != len(testRoster) {
		t.Errorf("roster dropped after failed reload: %v", st.Roster)
	}
}

func TestSession_AddByName(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(&mockLoader{roster: testRoster})

	p, added, err := s.AddByName(ctx, "v kohli")
	if err != nil {
		t.Fatalf("AddByName error = %v", err)
	}
	if !added || p.Name != "V Kohli" {
		t.Errorf("AddByName = %+v, %v", p, added)
	}

	_, added, err = s.AddByName(ctx, "V Kohli")
	if err != nil || added {
		t.Errorf("second AddByName = added %v, err %v; want no-op", added, err)
	}

	_, _, err = s.AddByName(ctx, "Nobody")
	if !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Errorf("AddByName(Nobody) error = %v, want ErrPlayerNotFound", err)
	}
}

func TestSession_AddByName_LoadError(t *testing.T) {
	s := newTestSession(&mockLoader{err: domain.ErrLoadFailed})

	_, _, err := s.AddByName(context.Background(), "V Kohli")
	if !errors.Is(err, domain.ErrLoadFailed) {
		t.Fatalf("error = %v, want ErrLoadFailed", err)
	}
	if _, team := s.Store().CurrentTeam(); len(team) != 0 {
		t.Errorf("team = %v, want empty", team)
	}
}

func TestSession_RemoveByName(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(&mockLoader{roster: testRoster})
	if _, _, err := s.AddByName(ctx, "R Sharma"); err != nil {
		t.Fatal(err)
	}

	if !s.RemoveByName(ctx, "r sharma") {
		t.Error("RemoveByName(r sharma) = false")
	}
	if s.RemoveByName(ctx, "R Sharma") {
		t.Error("second RemoveByName = true")
	}
}
