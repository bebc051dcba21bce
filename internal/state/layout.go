package state

import "github.com/atomicstack/tmux-bulk-actions/internal/menu"

// LayoutStore holds the active action layout. A failed reload keeps the
// previous layout and records the error.
type LayoutStore interface {
	Layout() menu.Layout
	SetLayout(menu.Layout)
	Err() error
	SetErr(error)
	Generation() int
}

type layoutStore struct {
	layout     menu.Layout
	err        error
	generation int
}

func NewLayoutStore(initial menu.Layout) LayoutStore {
	return &layoutStore{layout: initial}
}

func (l *layoutStore) Layout() menu.Layout {
	return l.layout
}

func (l *layoutStore) SetLayout(layout menu.Layout) {
	l.layout = layout
	l.err = nil
	l.generation++
}

func (l *layoutStore) Err() error {
	return l.err
}

func (l *layoutStore) SetErr(err error) {
	l.err = err
}

// Generation counts successful reloads.
func (l *layoutStore) Generation() int {
	return l.generation
}
