// Package measure performs the off-screen measurement pass for the bulk
// actions bar: every candidate button and the disclosure control are
// rendered to strings that never reach the terminal, and their cell widths
// are recorded.
package measure

import (
	"github.com/atomicstack/tmux-bulk-actions/internal/overflow"
	"github.com/charmbracelet/lipgloss"
)

// Painter renders bar elements exactly as the visible bar paints them, so a
// measured width matches the painted one.
type Painter interface {
	Button(p overflow.Promoted, focused bool) string
	Disclosure(d Disclosure, focused bool) string
}

// Disclosure describes the rendering parameters of the disclosure control.
type Disclosure struct {
	Label     string
	Indicator bool
}

// Measurer produces MeasurementSets from a Painter.
type Measurer struct {
	painter Painter
	gap     int
}

// New returns a Measurer. gap is the number of cells between neighbouring
// buttons and is charged to every action width.
func New(painter Painter, gap int) *Measurer {
	if gap < 0 {
		gap = 0
	}
	return &Measurer{painter: painter, gap: gap}
}

// Gap returns the inter-button gap in cells.
func (m *Measurer) Gap() int {
	return m.gap
}

// Measure renders every action and the disclosure off-screen. It reports
// false without doing any work when there are no actions. Focus styling is
// measured in its widest form so moving the focus never changes the layout.
func (m *Measurer) Measure(listID string, actions []overflow.Promoted, disclosure Disclosure, containerWidth int) (overflow.MeasurementSet, bool) {
	if len(actions) == 0 || m == nil || m.painter == nil {
		return overflow.MeasurementSet{}, false
	}
	widths := make([]int, len(actions))
	for i, action := range actions {
		widths[i] = m.widest(func(focused bool) string { return m.painter.Button(action, focused) }) + m.gap
	}
	return overflow.MeasurementSet{
		ListID:          listID,
		Widths:          widths,
		DisclosureWidth: m.widest(func(focused bool) string { return m.painter.Disclosure(disclosure, focused) }),
		ContainerWidth:  containerWidth,
	}, true
}

func (m *Measurer) widest(render func(focused bool) string) int {
	plain := lipgloss.Width(render(false))
	focused := lipgloss.Width(render(true))
	if focused > plain {
		return focused
	}
	return plain
}
