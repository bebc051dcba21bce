package state

import (
	"reflect"

	"github.com/atomicstack/tmux-bulk-actions/internal/menu"
)

type SessionStore interface {
	Entries() []menu.SessionEntry
	// SetEntries replaces the entries and reports whether they changed.
	SetEntries([]menu.SessionEntry) bool
	Current() string
	SetCurrent(string)
}

type sessionStore struct {
	entries []menu.SessionEntry
	current string
}

func NewSessionStore() SessionStore {
	return &sessionStore{}
}

func (s *sessionStore) Entries() []menu.SessionEntry {
	return cloneSessionEntries(s.entries)
}

func (s *sessionStore) SetEntries(entries []menu.SessionEntry) bool {
	if len(entries) == len(s.entries) && (len(entries) == 0 || reflect.DeepEqual(entries, s.entries)) {
		return false
	}
	s.entries = cloneSessionEntries(entries)
	return true
}

func (s *sessionStore) Current() string {
	return s.current
}

func (s *sessionStore) SetCurrent(current string) {
	s.current = current
}

func cloneSessionEntries(entries []menu.SessionEntry) []menu.SessionEntry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]menu.SessionEntry, len(entries))
	for i, entry := range entries {
		entry.Clients = append([]string(nil), entry.Clients...)
		dup[i] = entry
	}
	return dup
}
