// Package state holds the session list model: cursor, viewport, filter and
// the marked set that bulk actions operate on.
package state

import "github.com/atomicstack/tmux-bulk-actions/internal/menu"

// List is a filterable, multi-select list of menu items.
type List struct {
	Items          []menu.Item
	Full           []menu.Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
	Marked         map[string]struct{}
}

// NewList returns a list over items with the cursor on the first row.
func NewList(items []menu.Item) *List {
	l := &List{LastCursor: -1, Marked: make(map[string]struct{})}
	l.SetItems(items)
	return l
}

// SetItems replaces the rows, keeping the cursor on the same ID when it
// survives and dropping marks for rows that disappeared.
func (l *List) SetItems(items []menu.Item) {
	currentID := l.CurrentID()
	l.Full = CloneItems(items)
	l.cleanupMarks()
	l.applyFilter()
	if idx := l.IndexOf(currentID); idx >= 0 {
		l.Cursor = idx
	}
	l.clampCursor()
}

// IndexOf returns the visible index of id, or -1.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the highlighted row.
func (l *List) Current() (menu.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return menu.Item{}, false
	}
	return l.Items[l.Cursor], true
}

// CurrentID returns the highlighted row's ID or "".
func (l *List) CurrentID() string {
	item, ok := l.Current()
	if !ok {
		return ""
	}
	return item.ID
}

// CloneItems produces a shallow copy of the provided menu items.
func CloneItems(items []menu.Item) []menu.Item {
	dup := make([]menu.Item, len(items))
	copy(dup, items)
	return dup
}

func (l *List) clampCursor() {
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}
