package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/tmux-bulk-actions/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.String() == "ctrl+c" {
		return tea.Quit
	}
	switch m.mode {
	case ModeMenu:
		return m.handleMenuKey(key)
	case ModeBar:
		return m.handleBarKey(key)
	default:
		return m.handleListKey(key)
	}
}

func (m *Model) handleListKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "up", "ctrl+p":
		m.moveCursor(m.list.MoveCursor(-1))
		return nil
	case "down", "ctrl+n":
		m.moveCursor(m.list.MoveCursor(1))
		return nil
	case "pgup":
		m.moveCursor(m.list.MoveCursorPageUp(m.maxVisibleItems()))
		return nil
	case "pgdown":
		m.moveCursor(m.list.MoveCursorPageDown(m.maxVisibleItems()))
		return nil
	case "home":
		m.moveCursor(m.list.MoveCursorHome())
		return nil
	case "end":
		m.moveCursor(m.list.MoveCursorEnd())
		return nil
	case "tab":
		if m.list.ToggleMark() {
			events.UI.Selection("toggle", m.list.MarkedCount())
			m.moveCursor(m.list.MoveCursor(1))
		}
		return nil
	case "enter":
		m.focusBar()
		return nil
	case "esc":
		if m.list.ClearFilter() {
			m.noteFilterChange()
			return nil
		}
		return tea.Quit
	}
	m.handleTextInput(key)
	return nil
}

func (m *Model) handleBarKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "left", "shift+tab", "h":
		m.moveBarFocus(-1)
	case "right", "tab", "l":
		m.moveBarFocus(1)
	case "enter", " ":
		return m.activateBar()
	case "esc", "up":
		m.setMode(ModeList)
	}
	return nil
}

func (m *Model) handleMenuKey(key tea.KeyMsg) tea.Cmd {
	if m.popup == nil {
		m.setMode(ModeList)
		return nil
	}
	switch key.String() {
	case "up", "k", "shift+tab":
		m.popup.move(-1)
	case "down", "j", "tab":
		m.popup.move(1)
	case "enter", " ":
		return m.activatePopup()
	case "esc", "left":
		m.closePopup()
	}
	return nil
}

func (m *Model) moveCursor(moved bool) {
	if !moved {
		return
	}
	m.list.EnsureCursorVisible(m.maxVisibleItems())
	events.UI.ListCursor(m.list.Cursor, m.list.CurrentID())
}

func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	changed := false
	switch msg.String() {
	case "ctrl+u":
		changed = m.list.ClearFilter()
	case "ctrl+w":
		changed = m.list.DeleteFilterWordBackward()
	case "left":
		return m.list.MoveFilterCursor(-1)
	case "right":
		return m.list.MoveFilterCursor(1)
	default:
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyCtrlH:
			changed = m.list.DeleteFilterRuneBackward()
		case tea.KeySpace:
			changed = m.list.InsertFilterText(" ")
		case tea.KeyRunes:
			if msg.Alt || len(msg.Runes) == 0 {
				return false
			}
			for _, r := range msg.Runes {
				if unicode.IsControl(r) {
					return false
				}
			}
			changed = m.list.InsertFilterText(string(msg.Runes))
		}
	}
	if changed {
		m.noteFilterChange()
	}
	return changed
}

func (m *Model) noteFilterChange() {
	m.forceClearInfo()
	m.errMsg = ""
	if m.list.Filter == "" {
		events.Filter.Cleared()
	} else {
		events.Filter.Changed(m.list.Filter, len(m.list.Items))
	}
	m.list.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) filterPrompt() string {
	prompt := render(styles.FilterPrompt, "» ")
	text := m.list.Filter
	if text == "" {
		placeholder := []rune("(type to filter)")
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = *styles.FilterPlaceholder
		}
		caret := m.renderFilterCursor(string(placeholder[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = *styles.Filter
	}
	runes := []rune(text)
	pos := max(0, min(m.list.FilterCursor, len(runes)))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = string(runes[pos+1:])
	}
	return prompt + render(styles.Filter, string(runes[:pos])) + m.renderFilterCursor(caretRune) + render(styles.Filter, after)
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	return m.filterCursor.View()
}

func render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}
