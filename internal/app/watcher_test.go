package app

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestSnapshotWatcher_NotifiesOnReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "root.json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	notified := make(chan struct{}, 8)
	w := NewSnapshotWatcher(path, 20*time.Millisecond, mockLogger{})

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() {
			calls.Add(1)
			notified <- struct{}{}
		})
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(`{"version":1}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	select {
	case <-notified:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(150 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (unrelated files ignored)", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSnapshotWatcher_MissingDir(t *testing.T) {
	w := NewSnapshotWatcher(filepath.Join(t.TempDir(), "missing", "root.json"), 0, mockLogger{})
	if err := w.Run(context.Background(), func() {}); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
