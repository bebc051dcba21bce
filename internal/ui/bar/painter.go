// Package bar paints the bulk actions bar and its menus. The same Painter
// feeds the off-screen measurement pass and the visible render, which keeps
// measured and painted widths identical.
package bar

import (
	"strings"

	"github.com/atomicstack/tmux-bulk-actions/internal/measure"
	"github.com/atomicstack/tmux-bulk-actions/internal/overflow"
	"github.com/atomicstack/tmux-bulk-actions/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	groupMarker      = " ▾"
	indicatorGlyph   = "●"
	badgeText        = " new"
	defaultMaxLabel  = 24
	menuCursorMarker = "›"
)

// Painter renders bar buttons, the disclosure control and menus.
type Painter struct {
	styles   *theme.Styles
	maxLabel int
}

var _ measure.Painter = (*Painter)(nil)

// NewPainter returns a painter. Labels longer than maxLabel cells are
// truncated; zero selects the default limit.
func NewPainter(styles *theme.Styles, maxLabel int) *Painter {
	if styles == nil {
		styles = theme.Default()
	}
	if maxLabel <= 0 {
		maxLabel = defaultMaxLabel
	}
	return &Painter{styles: styles, maxLabel: maxLabel}
}

// Button renders one promoted entry.
func (p *Painter) Button(action overflow.Promoted, focused bool) string {
	label := p.label(action.Label())
	if action.Kind() == overflow.KindGroup {
		label += groupMarker
	}
	style := p.styles.Button
	switch {
	case action.Disabled():
		style = p.styles.ButtonDisabled
	case focused:
		style = p.styles.ButtonFocused
	}
	return render(style, label)
}

// Disclosure renders the control that opens the overflow menu.
func (p *Painter) Disclosure(d measure.Disclosure, focused bool) string {
	style := p.styles.Disclosure
	if focused {
		style = p.styles.DisclosureActive
	}
	out := render(style, p.label(d.Label)+groupMarker)
	if d.Indicator {
		out += render(p.styles.Indicator, indicatorGlyph)
	}
	return out
}

// Row joins the summary, the inline buttons and the disclosure with gap
// cells between neighbours.
func (p *Painter) Row(summary string, buttons []string, disclosure string, gap int) string {
	if gap < 0 {
		gap = 0
	}
	spacer := strings.Repeat(" ", gap)
	parts := make([]string, 0, len(buttons)+2)
	if summary != "" {
		parts = append(parts, render(p.styles.BarSummary, summary))
	}
	parts = append(parts, buttons...)
	if disclosure != "" {
		parts = append(parts, disclosure)
	}
	return strings.Join(parts, spacer)
}

// Summary renders the selection summary shown at the start of the row.
func (p *Painter) Summary(summary string) string {
	return render(p.styles.BarSummary, summary)
}

// Placeholder is painted while the first measurement is pending.
func (p *Painter) Placeholder(width int) string {
	if width <= 0 {
		return ""
	}
	return render(p.styles.Placeholder, strings.Repeat("┄", width))
}

// Menu renders a bordered list of sections with the cursor on the leaf at
// index cursor (counted across sections).
func (p *Painter) Menu(title string, sections []overflow.Section, cursor int) string {
	lines := make([]string, 0, 8)
	if title != "" {
		lines = append(lines, render(p.styles.MenuTitle, title))
	}
	idx := 0
	for i, section := range sections {
		if section.Title != "" {
			lines = append(lines, render(p.styles.MenuSection, section.Title))
		} else if i > 0 {
			lines = append(lines, render(p.styles.MenuBorder, "─"))
		}
		for _, item := range section.Items {
			lines = append(lines, p.menuItem(item, idx == cursor))
			idx++
		}
	}
	if idx == 0 {
		lines = append(lines, render(p.styles.MenuItemDisabled, "(no actions)"))
	}
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if p.styles.MenuBorder != nil {
		box = box.BorderForeground(p.styles.MenuBorder.GetForeground())
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (p *Painter) menuItem(item overflow.Action, selected bool) string {
	marker := " "
	style := p.styles.MenuItem
	switch {
	case item.Disabled:
		style = p.styles.MenuItemDisabled
	case selected:
		marker = menuCursorMarker
		style = p.styles.MenuItemSelected
	}
	text := render(style, marker+" "+p.label(item.Label))
	if item.New {
		text += render(p.styles.Badge, badgeText)
	}
	return text
}

func (p *Painter) label(text string) string {
	text = strings.TrimSpace(text)
	if ansi.StringWidth(text) <= p.maxLabel {
		return text
	}
	return ansi.Truncate(text, p.maxLabel, "…")
}

func render(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}
