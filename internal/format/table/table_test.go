package table

import "testing"

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"alpha", "3 windows", "attached"},
		{"b", "12 windows", ""},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight, AlignLeft})
	want := []string{
		"alpha   3 windows  attached",
		"b      12 windows",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestFormatMeasuresCells(t *testing.T) {
	rows := [][]string{{"会话", "x"}, {"ab", "y"}, {"\x1b[1mab\x1b[0m", "z"}}
	got := Format(rows, nil)
	want := []string{"会话  x", "ab    y", "\x1b[1mab\x1b[0m    z"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestFormatRaggedRows(t *testing.T) {
	got := Format([][]string{{"a"}, {"bb", "c"}}, nil)
	if got[0] != "a" || got[1] != "bb  c" {
		t.Fatalf("unexpected rows %q", got)
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
