package state

import (
	"reflect"
	"testing"

	"github.com/atomicstack/tmux-bulk-actions/internal/menu"
)

func newTestList(ids ...string) *List {
	items := make([]menu.Item, len(ids))
	for i, id := range ids {
		items[i] = menu.Item{ID: id, Label: id}
	}
	return NewList(items)
}

func TestCursorMovementClamps(t *testing.T) {
	l := newTestList("a", "b", "c")
	if l.Cursor != 0 {
		t.Fatalf("expected cursor at top, got %d", l.Cursor)
	}
	if l.MoveCursor(-1) {
		t.Fatalf("moving above the top should be a no-op")
	}
	if !l.MoveCursorEnd() || l.Cursor != 2 {
		t.Fatalf("expected cursor at end, got %d", l.Cursor)
	}
	if !l.MoveCursorPageUp(2) || l.Cursor != 0 {
		t.Fatalf("expected page up to reach 0, got %d", l.Cursor)
	}
	empty := newTestList()
	if empty.MoveCursorHome() || empty.Cursor != 0 {
		t.Fatalf("empty list must keep cursor at 0")
	}
}

func TestEnsureCursorVisible(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	l.Cursor = 4
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}
	l.Cursor = 1
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 1 {
		t.Fatalf("expected offset 1, got %d", l.ViewportOffset)
	}
}

func TestSetItemsKeepsCursorOnSameID(t *testing.T) {
	l := newTestList("a", "b", "c")
	l.Cursor = 2
	l.SetItems([]menu.Item{{ID: "z"}, {ID: "c"}, {ID: "a"}})
	if l.CurrentID() != "c" {
		t.Fatalf("expected cursor to follow c, got %q", l.CurrentID())
	}
	l.SetItems([]menu.Item{{ID: "z"}})
	if l.CurrentID() != "z" {
		t.Fatalf("expected cursor clamped to z, got %q", l.CurrentID())
	}
}

func TestFilterNarrowsAndRestores(t *testing.T) {
	l := newTestList("alpha", "beta", "gamma")
	l.Cursor = 2
	l.InsertFilterText("bet")
	if len(l.Items) != 1 || l.CurrentID() != "beta" {
		t.Fatalf("unexpected filtered rows %#v", l.Items)
	}
	if !l.DeleteFilterWordBackward() || l.Filter != "" {
		t.Fatalf("expected filter cleared, got %q", l.Filter)
	}
	if l.CurrentID() != "gamma" {
		t.Fatalf("expected cursor restored to gamma, got %q", l.CurrentID())
	}
}

func TestFilterRuneEditing(t *testing.T) {
	l := newTestList("alpha")
	l.InsertFilterText("ab")
	l.MoveFilterCursor(-1)
	l.InsertFilterText("z")
	if l.Filter != "azb" || l.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", l.Filter, l.FilterCursor)
	}
	l.DeleteFilterRuneBackward()
	if l.Filter != "ab" || l.FilterCursor != 1 {
		t.Fatalf("unexpected filter after delete %q/%d", l.Filter, l.FilterCursor)
	}
	if !l.ClearFilter() || l.ClearFilter() {
		t.Fatalf("clear should succeed once")
	}
}

func TestMarksAndTargets(t *testing.T) {
	l := newTestList("a", "b", "c")
	if got := l.Targets(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("expected cursor target, got %v", got)
	}
	l.MoveCursor(2)
	l.ToggleMark()
	l.MoveCursorHome()
	l.ToggleMark()
	if got := l.Targets(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("expected marked targets in list order, got %v", got)
	}
	l.InvertMarks()
	if got := l.Targets(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("expected inverted marks, got %v", got)
	}
	l.MarkAll()
	if l.MarkedCount() != 3 {
		t.Fatalf("expected all marked, got %d", l.MarkedCount())
	}
	l.SetItems([]menu.Item{{ID: "a"}, {ID: "b"}})
	if l.MarkedCount() != 2 {
		t.Fatalf("marks for removed rows should be dropped, got %d", l.MarkedCount())
	}
	l.ClearMarks()
	if l.MarkedCount() != 0 {
		t.Fatalf("expected no marks")
	}
}

func TestMarkAllIncludesFilteredRows(t *testing.T) {
	l := newTestList("alpha", "beta")
	l.InsertFilterText("alp")
	l.MarkAll()
	if l.MarkedCount() != 2 {
		t.Fatalf("expected hidden rows marked too, got %d", l.MarkedCount())
	}
}
