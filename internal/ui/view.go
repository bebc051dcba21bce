package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/tmux-bulk-actions/internal/logging/events"
	"github.com/atomicstack/tmux-bulk-actions/internal/menu"
)

const (
	itemIndicator = "▌ "
	markOn        = "[✓] "
	markOff       = "[ ] "
	infoTTL       = 5 * time.Second
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.mode == ModeSessionForm && m.sessionForm != nil {
		return m.viewSessionForm()
	}
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.header(), style: styles.Header})
	lines = append(lines, m.listLines()...)
	lines = append(lines, styledLine{text: m.barLine(), raw: true})
	if m.mode == ModeMenu && m.popup != nil {
		for _, line := range strings.Split(m.popupView(), "\n") {
			lines = append(lines, styledLine{text: line, raw: true})
		}
	}
	if status, style := m.statusLine(); status != "" {
		lines = append(lines, styledLine{text: status, style: style})
	}
	lines = append(lines, styledLine{text: m.filterPrompt(), raw: true})
	if m.showFooter {
		lines = append(lines, styledLine{text: m.footer(), style: styles.Footer})
	}
	lines = applyWidth(lines, m.width)
	lines = limitHeight(lines, m.height, m.width)
	return renderLines(lines)
}

func (m *Model) header() string {
	total := len(m.list.Full)
	if m.list.Filter != "" {
		return fmt.Sprintf("Sessions (%d/%d)", len(m.list.Items), total)
	}
	return fmt.Sprintf("Sessions (%d)", total)
}

func (m *Model) listLines() []styledLine {
	if len(m.list.Items) == 0 {
		msg := "(no sessions)"
		if m.list.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", m.list.Filter)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	items := m.list.Items
	start := 0
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(items) > maxItems {
		m.list.EnsureCursorVisible(maxItems)
		start = max(0, min(m.list.ViewportOffset, len(items)-maxItems))
		items = items[start : start+maxItems]
	}
	lines := make([]styledLine, len(items))
	for i, item := range items {
		lines[i] = m.itemLine(item, start+i == m.list.Cursor)
	}
	return lines
}

func (m *Model) itemLine(item menu.Item, selected bool) styledLine {
	prefix := "  "
	style := styles.Item
	prefixStyle := styles.ItemIndicator
	if selected {
		prefix = itemIndicator
		style = styles.SelectedItem
		prefixStyle = styles.SelectedItemIndicator
	}
	mark := markOff
	if m.list.IsMarked(item.ID) {
		mark = markOn
		if !selected {
			prefixStyle = styles.Marked
		}
	}
	head := prefix + mark
	return styledLine{
		text:          head + item.Label,
		style:         style,
		prefixStyle:   prefixStyle,
		highlightFrom: len([]rune(head)),
	}
}

func (m *Model) statusLine() (string, *lipgloss.Style) {
	switch {
	case m.errMsg != "":
		return m.errMsg, styles.Error
	case m.backendLastErr != "":
		return m.backendLastErr, styles.Error
	}
	if info := m.currentInfo(); info != "" {
		return info, styles.Info
	}
	return "", nil
}

func (m *Model) footer() string {
	switch m.mode {
	case ModeBar:
		return "←/→ move · enter run · esc back"
	case ModeMenu:
		return "↑/↓ move · enter run · esc close"
	default:
		return "↑/↓ move · tab mark · enter actions · esc quit"
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	m.list.EnsureCursorVisible(m.maxVisibleItems())
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 3 // header + bar + filter prompt
	if status, _ := m.statusLine(); status != "" {
		used++
	}
	if m.showFooter {
		used++
	}
	if m.mode == ModeMenu && m.popup != nil {
		used += lipgloss.Height(m.popupView())
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTTL)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		if line.raw {
			if lipgloss.Width(line.text) > width {
				line.text = truncate.StringWithTail(line.text, uint(width-1), "…")
			}
		} else {
			line.text = truncateText(line.text, width)
		}
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line.raw {
			out[i] = line.text
			continue
		}
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			text = render(line.prefixStyle, string(runes[:line.highlightFrom])) + render(line.style, string(runes[line.highlightFrom:]))
		} else {
			text = render(line.style, text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
