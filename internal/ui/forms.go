package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-bulk-actions/internal/menu"
)

func (m *Model) handleSessionPromptMsg(msg tea.Msg) tea.Cmd {
	prompt, ok := msg.(menu.SessionPrompt)
	if !ok {
		return nil
	}
	m.startSessionForm(prompt)
	return nil
}

func (m *Model) startSessionForm(prompt menu.SessionPrompt) {
	m.sessionForm = menu.NewSessionForm(prompt)
	m.errMsg = ""
	m.setMode(ModeSessionForm)
}

func (m *Model) handleSessionForm(msg tea.Msg) (bool, tea.Cmd) {
	cmd, done, cancel := m.sessionForm.Update(msg)
	if cancel || done {
		m.sessionForm = nil
		m.setMode(ModeList)
	}
	return true, cmd
}

func (m *Model) viewSessionForm() string {
	lines := []string{render(styles.FormTitle, m.sessionForm.Title()), "", m.sessionForm.InputView()}
	if err := m.sessionForm.Error(); err != "" {
		lines = append(lines, "", render(styles.Error, err))
	}
	lines = append(lines, "", render(styles.FormHelp, m.sessionForm.Help()))
	return strings.Join(lines, "\n")
}
