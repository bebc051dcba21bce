package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/atomicstack/tmux-bulk-actions/internal/menu"
	"github.com/atomicstack/tmux-bulk-actions/internal/tmux"
)

func stubFetch(t *testing.T, fn func(string) (tmux.SessionSnapshot, error)) {
	t.Helper()
	prev := fetchSessions
	fetchSessions = fn
	t.Cleanup(func() { fetchSessions = prev })
}

func nextEvent(t *testing.T, w *Watcher, kind Kind) Event {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case evt, ok := <-w.Events():
			if !ok {
				t.Fatalf("events closed while waiting for %s", kind)
			}
			if evt.Kind == kind {
				return evt
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s event", kind)
		}
	}
}

func TestWatcherPublishesSessions(t *testing.T) {
	var calls atomic.Int32
	stubFetch(t, func(socket string) (tmux.SessionSnapshot, error) {
		calls.Add(1)
		if socket != "/tmp/sock" {
			return tmux.SessionSnapshot{}, errors.New("wrong socket")
		}
		return tmux.SessionSnapshot{Sessions: []tmux.Session{{Name: "a"}}, Current: "a"}, nil
	})
	w, err := NewWatcher(Options{SocketPath: "/tmp/sock", PollInterval: time.Hour})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	evt := nextEvent(t, w, KindSessions)
	if evt.Err != nil {
		t.Fatalf("unexpected error: %v", evt.Err)
	}
	snap, ok := evt.Data.(tmux.SessionSnapshot)
	if !ok || len(snap.Sessions) != 1 || snap.Current != "a" {
		t.Fatalf("unexpected payload %#v", evt.Data)
	}

	w.Refresh()
	nextEvent(t, w, KindSessions)
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected refresh to trigger a second fetch, got %d", got)
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	stubFetch(t, func(string) (tmux.SessionSnapshot, error) {
		return tmux.SessionSnapshot{}, errors.New("no server")
	})
	w, err := NewWatcher(Options{PollInterval: time.Hour})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if evt := nextEvent(t, w, KindSessions); evt.Err == nil {
		t.Fatalf("expected fetch error to be published")
	}
	w.Stop()
	w.Wait()
	drained := make(chan struct{})
	go func() {
		for range w.Events() {
		}
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(time.Second):
		t.Fatalf("events channel not closed")
	}
}

func TestWatcherReloadsLayout(t *testing.T) {
	stubFetch(t, func(string) (tmux.SessionSnapshot, error) { return tmux.SessionSnapshot{}, nil })
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	if err := os.WriteFile(path, []byte("promoted:\n  - session:kill\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := NewWatcher(Options{PollInterval: time.Hour, LayoutPath: path})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if err := os.WriteFile(path, []byte("promoted:\n  - session:kill\n  - session:detach\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	evt := nextEvent(t, w, KindLayout)
	if evt.Err != nil {
		t.Fatalf("unexpected layout error: %v", evt.Err)
	}
	layout, ok := evt.Data.(menu.Layout)
	if !ok || len(layout.Promoted) != 2 {
		t.Fatalf("unexpected layout payload %#v", evt.Data)
	}

	if err := os.WriteFile(path, []byte("promoted:\n  - session:explode\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	evt = nextEvent(t, w, KindLayout)
	if !errors.Is(evt.Err, menu.ErrUnknownAction) {
		t.Fatalf("expected unknown action error, got %v", evt.Err)
	}
}

func TestWatcherRejectsMissingLayoutDir(t *testing.T) {
	_, err := NewWatcher(Options{LayoutPath: filepath.Join(t.TempDir(), "missing", "layout.yaml")})
	if err == nil {
		t.Fatalf("expected error for unwatchable directory")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(40 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if !th.wait(ctx) {
			t.Fatalf("wait returned false")
		}
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Fatalf("expected throttled calls, took %v", elapsed)
	}
}

func TestThrottleHonoursCancel(t *testing.T) {
	th := newThrottle(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	th.wait(ctx)
	cancel()
	if th.wait(ctx) {
		t.Fatalf("expected cancelled wait to report false")
	}
}
