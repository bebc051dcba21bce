package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-bulk-actions/internal/logging/events"
	"github.com/atomicstack/tmux-bulk-actions/internal/menu"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		m.requestRefresh()
		return nil
	}
	m.errMsg = ""
	events.Action.Success(result.Info)
	if result.Quit {
		return tea.Quit
	}
	if result.Info != "" {
		m.setInfo(result.Info)
	} else {
		m.forceClearInfo()
	}
	m.list.ClearMarks()
	m.requestRefresh()
	return nil
}

func (m *Model) handleSelectionRequestMsg(msg tea.Msg) tea.Cmd {
	req, ok := msg.(menu.SelectionRequest)
	if !ok {
		return nil
	}
	switch req.Mode {
	case menu.SelectAll:
		m.list.MarkAll()
	case menu.SelectNone:
		m.list.ClearMarks()
	case menu.SelectInvert:
		m.list.InvertMarks()
	default:
		return nil
	}
	events.UI.Selection(string(req.Mode), m.list.MarkedCount())
	return nil
}

func (m *Model) handleRefreshRequestMsg(tea.Msg) tea.Cmd {
	m.requestRefresh()
	if m.verbose {
		m.setInfo("Refreshing sessions")
	}
	return nil
}

func (m *Model) menuContext() menu.Context {
	return menu.Context{
		SocketPath: m.socketPath,
		ClientID:   m.clientID,
		Sessions:   m.sessions.Entries(),
		Current:    m.sessions.Current(),
		Targets:    m.list.Targets(),
		Marked:     m.list.MarkedCount(),
	}
}
