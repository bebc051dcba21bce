package dispatcher

import (
	"github.com/atomicstack/tmux-bulk-actions/internal/backend"
	"github.com/atomicstack/tmux-bulk-actions/internal/menu"
	"github.com/atomicstack/tmux-bulk-actions/internal/state"
	"github.com/atomicstack/tmux-bulk-actions/internal/tmux"
)

type Result struct {
	SessionsUpdated bool
	LayoutUpdated   bool
	Err             error
}

type Dispatcher struct {
	sessions state.SessionStore
	layout   state.LayoutStore
}

func New(s state.SessionStore, l state.LayoutStore) *Dispatcher {
	return &Dispatcher{sessions: s, layout: l}
}

// Handle applies evt to the stores. Layout errors are recorded on the
// layout store; the previous layout stays active.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		res.Err = evt.Err
		if evt.Kind == backend.KindLayout {
			d.layout.SetErr(evt.Err)
		}
		return res
	}
	switch evt.Kind {
	case backend.KindSessions:
		if snapshot, ok := evt.Data.(tmux.SessionSnapshot); ok {
			changed := d.sessions.SetEntries(menu.SessionEntriesFromTmux(snapshot.Sessions))
			if d.sessions.Current() != snapshot.Current {
				d.sessions.SetCurrent(snapshot.Current)
				changed = true
			}
			res.SessionsUpdated = changed
		}
	case backend.KindLayout:
		if layout, ok := evt.Data.(menu.Layout); ok {
			d.layout.SetLayout(layout)
			res.LayoutUpdated = true
		}
	}
	return res
}
