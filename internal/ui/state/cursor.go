package state

// MoveCursor moves the cursor by delta, clamped to the list bounds.
func (l *List) MoveCursor(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor += delta
	l.clampCursor()
	return l.Cursor != old
}

// MoveCursorHome moves the cursor to the first item.
func (l *List) MoveCursorHome() bool {
	return l.MoveCursor(-len(l.Items))
}

// MoveCursorEnd moves the cursor to the last item.
func (l *List) MoveCursorEnd() bool {
	return l.MoveCursor(len(l.Items))
}

// MoveCursorPageUp moves the cursor up by one page of maxVisible rows.
func (l *List) MoveCursorPageUp(maxVisible int) bool {
	return l.MoveCursor(-l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by one page of maxVisible rows.
func (l *List) MoveCursorPageDown(maxVisible int) bool {
	return l.MoveCursor(l.pageSize(maxVisible))
}

func (l *List) pageSize(maxVisible int) int {
	size := maxVisible
	if size <= 0 || size > len(l.Items) {
		size = len(l.Items)
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays
// within maxVisible rows.
func (l *List) EnsureCursorVisible(maxVisible int) {
	l.clampCursor()
	if len(l.Items) == 0 || maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	if upper := l.ViewportOffset + maxVisible - 1; l.Cursor > upper {
		l.ViewportOffset = min(l.Cursor-maxVisible+1, maxOffset)
	}
}
