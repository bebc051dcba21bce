package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-bulk-actions/internal/backend"
	"github.com/atomicstack/tmux-bulk-actions/internal/logging"
	"github.com/atomicstack/tmux-bulk-actions/internal/menu"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent folds a watcher event into the stores. Session updates
// replace the list rows; the bar follows in finishUpdate.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if m.backendState == nil {
		m.backendState = make(map[backend.Kind]error)
	}
	m.backendState[evt.Kind] = evt.Err
	m.backendLastErr = m.backendError()

	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		logging.Error(res.Err)
		return
	}
	if res.SessionsUpdated {
		entries := m.sessions.Entries()
		m.list.SetItems(menu.SessionItems(entries))
		m.list.EnsureCursorVisible(m.maxVisibleItems())
		if m.sessionForm != nil {
			m.sessionForm.SetSessions(entries)
		}
	}
	if res.LayoutUpdated && m.verbose {
		m.setInfo("Layout reloaded")
	}
}

func (m *Model) backendError() string {
	for _, kind := range []backend.Kind{backend.KindSessions, backend.KindLayout} {
		if err := m.backendState[kind]; err != nil {
			return fmt.Sprintf("%s: %v", kind, err)
		}
	}
	return ""
}

func (m *Model) requestRefresh() {
	if m.backend != nil {
		m.backend.Refresh()
	}
}
