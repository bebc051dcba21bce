package state

import "github.com/atomicstack/tmux-bulk-actions/internal/menu"

// IsMarked reports whether id is marked.
func (l *List) IsMarked(id string) bool {
	_, ok := l.Marked[id]
	return ok
}

// ToggleMark flips the mark on the highlighted row.
func (l *List) ToggleMark() bool {
	id := l.CurrentID()
	if id == "" {
		return false
	}
	if l.Marked == nil {
		l.Marked = make(map[string]struct{})
	}
	if _, ok := l.Marked[id]; ok {
		delete(l.Marked, id)
	} else {
		l.Marked[id] = struct{}{}
	}
	return true
}

// MarkAll marks every row, including rows hidden by the filter.
func (l *List) MarkAll() {
	if l.Marked == nil {
		l.Marked = make(map[string]struct{}, len(l.Full))
	}
	for _, item := range l.Full {
		l.Marked[item.ID] = struct{}{}
	}
}

// ClearMarks unmarks every row.
func (l *List) ClearMarks() {
	clear(l.Marked)
}

// InvertMarks flips the mark on every row.
func (l *List) InvertMarks() {
	next := make(map[string]struct{}, len(l.Full))
	for _, item := range l.Full {
		if !l.IsMarked(item.ID) {
			next[item.ID] = struct{}{}
		}
	}
	l.Marked = next
}

// MarkedCount returns the number of marked rows.
func (l *List) MarkedCount() int {
	return len(l.Marked)
}

// MarkedItems returns the marked rows in list order.
func (l *List) MarkedItems() []menu.Item {
	if len(l.Marked) == 0 {
		return nil
	}
	out := make([]menu.Item, 0, len(l.Marked))
	for _, item := range l.Full {
		if l.IsMarked(item.ID) {
			out = append(out, item)
		}
	}
	return out
}

// Targets returns the IDs a bulk action applies to: the marked rows, or
// the highlighted row when nothing is marked.
func (l *List) Targets() []string {
	if marked := l.MarkedItems(); len(marked) > 0 {
		ids := make([]string, len(marked))
		for i, item := range marked {
			ids[i] = item.ID
		}
		return ids
	}
	if id := l.CurrentID(); id != "" {
		return []string{id}
	}
	return nil
}

func (l *List) cleanupMarks() {
	if len(l.Marked) == 0 {
		return
	}
	valid := make(map[string]struct{}, len(l.Full))
	for _, item := range l.Full {
		valid[item.ID] = struct{}{}
	}
	for id := range l.Marked {
		if _, ok := valid[id]; !ok {
			delete(l.Marked, id)
		}
	}
}
