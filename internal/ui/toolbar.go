package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/tmux-bulk-actions/internal/logging/events"
	"github.com/atomicstack/tmux-bulk-actions/internal/measure"
	"github.com/atomicstack/tmux-bulk-actions/internal/menu"
	"github.com/atomicstack/tmux-bulk-actions/internal/overflow"
	"github.com/atomicstack/tmux-bulk-actions/internal/ui/command"
)

const (
	disclosureLabel      = "More actions"
	disclosureLabelAlone = "Actions"
	placeholderFallback  = 24
)

// barView is the bar as it should be painted for the current allocation.
type barView struct {
	visible    []overflow.Promoted
	overflow   overflow.Overflow
	disclosure bool
}

func (v barView) focusable() int {
	n := len(v.visible)
	if v.disclosure {
		n++
	}
	return n
}

// disclosureAt reports whether focus index i is the disclosure control.
func (v barView) disclosureAt(i int) bool {
	return v.disclosure && i == len(v.visible)
}

func (v barView) enabledAt(i int) bool {
	if v.disclosureAt(i) {
		return true
	}
	if i < 0 || i >= len(v.visible) {
		return false
	}
	return !v.visible[i].Disabled()
}

// syncBar resolves the layout against the current selection, installs the
// result in the coordinator and runs a measurement pass. The coordinator
// keeps list identity for equal content and ignores a measurement whose
// inputs it has already folded in, so calling this after every update only
// recomputes when something relevant moved.
func (m *Model) syncBar() {
	promoted, secondary := menu.Resolve(m.layouts.Layout(), m.registry, m.menuContext())
	m.secondary = secondary
	listID, changed := m.coordinator.SetActions(promoted)
	if changed {
		events.Bar.Identity(listID, len(promoted), changed)
	}
	m.measureBar(listID, promoted)
	m.clampBarFocus()
	m.refreshPopup()
}

func (m *Model) measureBar(listID string, promoted []overflow.Promoted) {
	disclosure := measure.Disclosure{Label: disclosureLabel, Indicator: hasNewAction(promoted, m.secondary)}
	ms, ok := m.measurer.Measure(listID, promoted, disclosure, m.barContainerWidth())
	if !ok {
		return
	}
	if ms.Measurable() && hasSecondary(m.secondary) {
		// Secondary entries keep the disclosure on screen even when every
		// promoted action fits, so its width comes off the container up front.
		// The floor of one cell keeps a cramped bar measurable: nothing fits.
		ms.ContainerWidth = max(ms.ContainerWidth-ms.DisclosureWidth, 1)
		ms.DisclosureWidth = 0
	}
	if !ms.Measurable() || ms.ListID != m.coordinator.ListID() {
		events.Bar.Discard(ms.ListID, m.coordinator.ListID())
		return
	}
	if !m.coordinator.Apply(ms) {
		return
	}
	events.Bar.Measure(ms.ListID, ms.Widths, ms.DisclosureWidth, ms.ContainerWidth)
	snap := m.coordinator.Snapshot()
	events.Bar.Allocate(snap.ListID, snap.Allocation.Visible, snap.Allocation.Hidden)
}

// hasNewAction reports whether any action could carry a "new" badge into
// the overflow menu. The disclosure is measured with the indicator whenever
// one might be painted.
func hasNewAction(promoted []overflow.Promoted, secondary []overflow.Secondary) bool {
	if overflow.HasNewBadge(secondary) {
		return true
	}
	for _, p := range promoted {
		for _, leaf := range p.Leaves() {
			if leaf.New {
				return true
			}
		}
	}
	return false
}

func hasSecondary(secondary []overflow.Secondary) bool {
	for _, entry := range secondary {
		if len(entry.Section().Items) > 0 {
			return true
		}
	}
	return false
}

// barContainerWidth is the room left for buttons and the disclosure once
// the summary and its gap are placed.
func (m *Model) barContainerWidth() int {
	if m.width <= 0 {
		return overflow.Unmeasured
	}
	used := 0
	if summary := m.barSummary(); summary != "" {
		used = lipgloss.Width(m.painter.Summary(summary)) + m.measurer.Gap()
	}
	if used >= m.width {
		return 0
	}
	return m.width - used
}

func (m *Model) barSummary() string {
	total := len(m.list.Full)
	if total == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d selected", m.list.MarkedCount(), total)
}

// barSettled reports whether the bar can be painted. An empty promoted list
// needs no measurement; it only waits for a usable width.
func (m *Model) barSettled() bool {
	snap := m.coordinator.Snapshot()
	if snap.Settled {
		return true
	}
	return len(m.coordinator.Actions()) == 0 && m.width > 0
}

func (m *Model) currentBar() barView {
	actions := m.coordinator.Actions()
	alloc := m.coordinator.Snapshot().Allocation
	ov := overflow.Assemble(actions, alloc.Hidden, m.secondary)
	return barView{
		visible:    overflow.Select(actions, alloc.Visible),
		overflow:   ov,
		disclosure: !ov.Empty(),
	}
}

func (v barView) disclosureParams() measure.Disclosure {
	label := disclosureLabel
	if len(v.visible) == 0 {
		label = disclosureLabelAlone
	}
	indicator := false
	for _, item := range v.overflow.Items() {
		if item.New {
			indicator = true
			break
		}
	}
	return measure.Disclosure{Label: label, Indicator: indicator}
}

func (m *Model) barLine() string {
	if !m.barSettled() {
		width := m.width
		if width <= 0 {
			width = placeholderFallback
		}
		return m.painter.Placeholder(width)
	}
	view := m.currentBar()
	focused := m.mode == ModeBar
	buttons := make([]string, len(view.visible))
	for i, p := range view.visible {
		buttons[i] = m.painter.Button(p, focused && i == m.barCursor)
	}
	disclosure := ""
	if view.disclosure {
		disclosure = m.painter.Disclosure(view.disclosureParams(), focused && view.disclosureAt(m.barCursor))
	}
	return m.painter.Row(m.barSummary(), buttons, disclosure, m.measurer.Gap())
}

func (m *Model) focusBar() {
	if !m.barSettled() {
		return
	}
	view := m.currentBar()
	for i := 0; i < view.focusable(); i++ {
		if view.enabledAt(i) {
			m.barCursor = i
			m.setMode(ModeBar)
			m.traceBarFocus(view)
			return
		}
	}
}

func (m *Model) moveBarFocus(delta int) {
	view := m.currentBar()
	n := view.focusable()
	if n == 0 || delta == 0 {
		return
	}
	for i := m.barCursor + delta; i >= 0 && i < n; i += delta {
		if view.enabledAt(i) {
			m.barCursor = i
			m.traceBarFocus(view)
			return
		}
	}
}

func (m *Model) clampBarFocus() {
	if m.mode != ModeBar {
		return
	}
	view := m.currentBar()
	n := view.focusable()
	if n == 0 {
		m.barCursor = 0
		m.setMode(ModeList)
		return
	}
	if m.barCursor >= n {
		m.barCursor = n - 1
	}
	if !view.enabledAt(m.barCursor) {
		// Step back first so focus lands near where it was.
		for i := m.barCursor; i >= 0; i-- {
			if view.enabledAt(i) {
				m.barCursor = i
				return
			}
		}
		for i := m.barCursor; i < n; i++ {
			if view.enabledAt(i) {
				m.barCursor = i
				return
			}
		}
		m.setMode(ModeList)
	}
}

func (m *Model) traceBarFocus(view barView) {
	id := "disclosure"
	if !view.disclosureAt(m.barCursor) && m.barCursor < len(view.visible) {
		p := view.visible[m.barCursor]
		id = p.Label()
		if p.Kind() == overflow.KindSimple {
			id = p.Action().ID
		}
	}
	events.Bar.Focus(m.barCursor, id)
}

func (m *Model) activateBar() tea.Cmd {
	view := m.currentBar()
	if !view.enabledAt(m.barCursor) {
		return nil
	}
	if view.disclosureAt(m.barCursor) {
		m.openPopup(popupOverflow, view.disclosureParams().Label, -1)
		return nil
	}
	p := view.visible[m.barCursor]
	if p.Kind() == overflow.KindGroup {
		m.openPopup(popupGroup, p.Label(), m.barCursor)
		return nil
	}
	return m.runAction(p.Action().ID)
}

func (m *Model) runAction(id string) tea.Cmd {
	def, ok := m.registry.Find(id)
	if !ok {
		m.errMsg = fmt.Sprintf("unknown action %s", id)
		return nil
	}
	ctx := m.menuContext()
	if !def.Applies(ctx) {
		events.Command.Skip(id, "disabled")
		return nil
	}
	m.errMsg = ""
	return m.bus.Execute(ctx, command.Request{ID: id, Handler: def.Run})
}

type popupKind int

const (
	popupOverflow popupKind = iota
	popupGroup
)

// popupMenu is the open overflow or group menu.
type popupMenu struct {
	kind     popupKind
	title    string
	// group is the promoted index of the group a group popup belongs to.
	group    int
	sections []overflow.Section
	items    []overflow.Action
	cursor   int
}

func (p *popupMenu) setSections(sections []overflow.Section) {
	selected := ""
	if p.cursor >= 0 && p.cursor < len(p.items) {
		selected = p.items[p.cursor].ID
	}
	p.sections = sections
	p.items = p.items[:0]
	for _, section := range sections {
		p.items = append(p.items, section.Items...)
	}
	p.cursor = -1
	for i, item := range p.items {
		if item.ID == selected && !item.Disabled {
			p.cursor = i
			return
		}
	}
	p.move(1)
}

// move steps the cursor by delta, skipping disabled items.
func (p *popupMenu) move(delta int) {
	for i := p.cursor + delta; i >= 0 && i < len(p.items); i += delta {
		if !p.items[i].Disabled {
			p.cursor = i
			return
		}
	}
}

func (p *popupMenu) selected() (overflow.Action, bool) {
	if p.cursor < 0 || p.cursor >= len(p.items) {
		return overflow.Action{}, false
	}
	item := p.items[p.cursor]
	return item, !item.Disabled
}

func (m *Model) openPopup(kind popupKind, title string, group int) {
	popup := &popupMenu{kind: kind, title: title, group: group, cursor: -1}
	sections, ok := m.popupSections(popup)
	if !ok {
		return
	}
	popup.setSections(sections)
	m.popup = popup
	m.setMode(ModeMenu)
	events.Overflow.Open(title, len(popup.items))
}

func (m *Model) closePopup() {
	if m.popup == nil {
		return
	}
	events.Overflow.Close(m.popup.title)
	m.popup = nil
	m.setMode(ModeBar)
	m.clampBarFocus()
}

// popupSections recomputes a popup's contents from the current allocation.
// A group popup is rebuilt from the inline button at its promoted index;
// it closes when that button is gone or now holds a different group.
func (m *Model) popupSections(p *popupMenu) ([]overflow.Section, bool) {
	view := m.currentBar()
	if p.kind == popupOverflow {
		if !view.disclosure {
			return nil, false
		}
		return view.overflow.Sections, true
	}
	if p.group < 0 || p.group >= len(view.visible) {
		return nil, false
	}
	promoted := view.visible[p.group]
	if promoted.Kind() != overflow.KindGroup || promoted.Label() != p.title {
		return nil, false
	}
	return []overflow.Section{{Items: promoted.Group().Actions}}, true
}

func (m *Model) refreshPopup() {
	if m.popup == nil || m.mode != ModeMenu {
		return
	}
	sections, ok := m.popupSections(m.popup)
	if !ok {
		m.closePopup()
		return
	}
	m.popup.setSections(sections)
	if m.popup.kind == popupOverflow {
		m.popup.title = m.currentBar().disclosureParams().Label
	}
}

func (m *Model) activatePopup() tea.Cmd {
	if m.popup == nil {
		return nil
	}
	item, ok := m.popup.selected()
	if !ok {
		return nil
	}
	events.Overflow.Select(m.popup.title, item.ID)
	events.Overflow.Close(m.popup.title)
	m.popup = nil
	m.setMode(ModeList)
	return m.runAction(item.ID)
}

func (m *Model) popupView() string {
	if m.popup == nil {
		return ""
	}
	return m.painter.Menu(m.popup.title, m.popup.sections, m.popup.cursor)
}
