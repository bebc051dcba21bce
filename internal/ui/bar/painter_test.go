package bar

import (
	"strings"
	"testing"

	"github.com/atomicstack/tmux-bulk-actions/internal/measure"
	"github.com/atomicstack/tmux-bulk-actions/internal/overflow"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestButtonWidthIsStableAcrossFocus(t *testing.T) {
	p := NewPainter(nil, 0)
	action := overflow.Simple(overflow.Action{ID: "kill", Label: "Kill"})
	plain := p.Button(action, false)
	focused := p.Button(action, true)
	if lipgloss.Width(plain) != lipgloss.Width(focused) {
		t.Fatalf("focus changed width: %q vs %q", plain, focused)
	}
	if got := lipgloss.Width(plain); got != len(" Kill ") {
		t.Fatalf("expected padded width %d, got %d", len(" Kill "), got)
	}
}

func TestGroupButtonCarriesMarker(t *testing.T) {
	p := NewPainter(nil, 0)
	group := overflow.Grouped("Manage", overflow.Action{ID: "rename", Label: "Rename"})
	if out := p.Button(group, false); !strings.Contains(out, "Manage"+groupMarker) {
		t.Fatalf("expected group marker in %q", out)
	}
}

func TestLongLabelsAreTruncated(t *testing.T) {
	p := NewPainter(nil, 8)
	action := overflow.Simple(overflow.Action{ID: "x", Label: "Detach every attached client"})
	out := p.Button(action, false)
	if !strings.Contains(out, "…") {
		t.Fatalf("expected truncation marker in %q", out)
	}
	if got := lipgloss.Width(out); got != 8+2 {
		t.Fatalf("expected width 10, got %d (%q)", got, out)
	}
}

func TestDisclosureIndicator(t *testing.T) {
	p := NewPainter(nil, 0)
	plain := p.Disclosure(measure.Disclosure{Label: "More actions"}, false)
	badged := p.Disclosure(measure.Disclosure{Label: "More actions", Indicator: true}, false)
	if !strings.HasSuffix(badged, indicatorGlyph) {
		t.Fatalf("expected indicator glyph, got %q", badged)
	}
	if lipgloss.Width(badged) <= lipgloss.Width(plain) {
		t.Fatalf("expected indicator to widen the control")
	}
}

func TestRowJoinsWithGap(t *testing.T) {
	p := NewPainter(nil, 0)
	row := p.Row("2 selected", []string{"[a]", "[b]"}, "[more]", 2)
	if row != "2 selected  [a]  [b]  [more]" {
		t.Fatalf("unexpected row %q", row)
	}
}

func TestMenuListsSectionsAndCursor(t *testing.T) {
	p := NewPainter(nil, 0)
	sections := []overflow.Section{
		{Items: []overflow.Action{{ID: "kill", Label: "Kill"}}},
		{Title: "Selection", Items: []overflow.Action{{ID: "all", Label: "Select all", New: true}, {ID: "none", Label: "Select none", Disabled: true}}},
	}
	out := p.Menu("More actions", sections, 1)
	for _, want := range []string{"More actions", "Kill", "Selection", menuCursorMarker + " Select all", badgeText, "Select none"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in menu:\n%s", want, out)
		}
	}
	if strings.Contains(out, menuCursorMarker+" Kill") {
		t.Fatalf("cursor should not be on first item:\n%s", out)
	}
}

func TestMenuWithoutItems(t *testing.T) {
	p := NewPainter(nil, 0)
	if out := p.Menu("", nil, 0); !strings.Contains(out, "(no actions)") {
		t.Fatalf("expected empty placeholder, got:\n%s", out)
	}
}
