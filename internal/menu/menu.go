// Package menu defines the bulk actions offered for tmux sessions: the
// catalog of handlers, the YAML layout that arranges them into promoted and
// secondary entries, and the prompt used by actions that need a name.
package menu

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-bulk-actions/internal/tmux"
)

// Item represents one row of the session list.
type Item struct {
	ID    string
	Label string
}

// SessionEntry is the menu-side view of a tmux session.
type SessionEntry struct {
	Name     string
	Label    string
	Attached bool
	Current  bool
	Clients  []string
	Windows  int
}

// Context carries the runtime data an action needs: where tmux lives, what
// sessions exist and which of them the action applies to.
type Context struct {
	SocketPath string
	ClientID   string
	Sessions   []SessionEntry
	Current    string
	// Targets are the marked sessions, or the highlighted one when nothing
	// is marked.
	Targets []string
	// Marked counts explicitly marked sessions.
	Marked int
}

// Entry returns the session named name.
func (c Context) Entry(name string) (SessionEntry, bool) {
	for _, entry := range c.Sessions {
		if entry.Name == name {
			return entry, true
		}
	}
	return SessionEntry{}, false
}

// Action executes a catalog entry against ctx.
type Action func(Context) tea.Cmd

// ActionResult communicates the outcome of executing an action.
type ActionResult struct {
	Info string
	Err  error
	// Quit asks the popup to close once the result is shown.
	Quit bool
}

// SessionPrompt requests interactive input for session operations.
type SessionPrompt struct {
	Context Context
	Action  string
	Target  string
	Initial string
}

// SelectionMode names a bulk change to the marked set.
type SelectionMode string

const (
	SelectAll    SelectionMode = "all"
	SelectNone   SelectionMode = "none"
	SelectInvert SelectionMode = "invert"
)

// SelectionRequest asks the list to change its marked set.
type SelectionRequest struct {
	Mode SelectionMode
}

// RefreshRequest asks the backend to poll tmux immediately.
type RefreshRequest struct{}

func SessionEntriesFromTmux(sessions []tmux.Session) []SessionEntry {
	entries := make([]SessionEntry, 0, len(sessions))
	for _, sess := range sessions {
		entries = append(entries, SessionEntry{
			Name:     sess.Name,
			Label:    sess.Label,
			Attached: sess.Attached,
			Current:  sess.Current,
			Clients:  append([]string(nil), sess.Clients...),
			Windows:  sess.Windows,
		})
	}
	return entries
}
