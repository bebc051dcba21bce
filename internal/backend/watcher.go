package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/tmux-bulk-actions/internal/logging/events"
	"github.com/atomicstack/tmux-bulk-actions/internal/menu"
	"github.com/atomicstack/tmux-bulk-actions/internal/tmux"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindSessions Kind = iota
	KindLayout
)

func (k Kind) String() string {
	switch k {
	case KindSessions:
		return "sessions"
	case KindLayout:
		return "layout"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event conveys updated data or an error from a backend source. Data is a
// tmux.SessionSnapshot for KindSessions and a menu.Layout for KindLayout.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Options configures a Watcher.
type Options struct {
	SocketPath   string
	PollInterval time.Duration
	// LayoutPath enables the layout file watcher when non-empty.
	LayoutPath string
	Registry   *menu.Registry
}

const (
	defaultPollInterval = 2 * time.Second
	minFetchGap         = 250 * time.Millisecond
	layoutDebounce      = 150 * time.Millisecond
)

var fetchSessions = tmux.FetchSessions

// Watcher polls tmux sessions and, optionally, watches the layout file,
// publishing both on a single event stream.
type Watcher struct {
	opts Options

	ctx    context.Context
	cancel context.CancelFunc

	events  chan Event
	refresh chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher starts the pollers. It fails only when the layout file
// watcher cannot be created.
func NewWatcher(opts Options) (*Watcher, error) {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.Registry == nil {
		opts.Registry = menu.BuildRegistry()
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
		events:  make(chan Event, 16),
		refresh: make(chan struct{}, 1),
	}

	if opts.LayoutPath != "" {
		fsw, err := fsnotify.NewWatcher()
		if err != nil {
			cancel()
			return nil, fmt.Errorf("layout watcher: %w", err)
		}
		if err := fsw.Add(filepath.Dir(opts.LayoutPath)); err != nil {
			fsw.Close()
			cancel()
			return nil, fmt.Errorf("watch %s: %w", filepath.Dir(opts.LayoutPath), err)
		}
		w.wg.Add(1)
		go w.watchLayout(fsw)
	}

	w.wg.Add(1)
	go w.pollSessions()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()
	return w, nil
}

// Events returns a channel of backend events. It is closed after Stop once
// every source has exited.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Refresh requests an immediate session poll.
func (w *Watcher) Refresh() {
	select {
	case w.refresh <- struct{}{}:
	default:
	}
}

// Stop cancels every source.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all sources have exited and the events channel is
// closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}

func (w *Watcher) pollSessions() {
	defer w.wg.Done()

	gate := newThrottle(minFetchGap)
	fetch := func() bool {
		if !gate.wait(w.ctx) {
			return false
		}
		snapshot, err := fetchSessions(w.opts.SocketPath)
		if err == nil {
			events.Session.Fetch(len(snapshot.Sessions), snapshot.Current)
		}
		return w.emit(Event{Kind: KindSessions, Data: snapshot, Err: err})
	}

	if !fetch() {
		return
	}
	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
		case <-w.refresh:
		}
		if !fetch() {
			return
		}
	}
}

func (w *Watcher) watchLayout(fsw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fsw.Close()

	target := filepath.Clean(w.opts.LayoutPath)
	debounce := time.NewTimer(layoutDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			debounce.Reset(layoutDebounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Kind: KindLayout, Err: fmt.Errorf("layout watcher: %w", err)}) {
				return
			}
		case <-debounce.C:
			layout, err := menu.Load(w.opts.LayoutPath, w.opts.Registry)
			if err != nil {
				events.Layout.Error(w.opts.LayoutPath, err)
				if !w.emit(Event{Kind: KindLayout, Err: err}) {
					return
				}
				continue
			}
			events.Layout.Reload(w.opts.LayoutPath, len(layout.Promoted), len(layout.Secondary))
			if !w.emit(Event{Kind: KindLayout, Data: layout}) {
				return
			}
		}
	}
}
