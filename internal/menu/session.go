package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-bulk-actions/internal/format/table"
	"github.com/atomicstack/tmux-bulk-actions/internal/logging/events"
	"github.com/atomicstack/tmux-bulk-actions/internal/tmux"
)

var (
	switchClient   = tmux.SwitchClient
	detachSessions = tmux.DetachSessions
	killSessions   = tmux.KillSessions
	renameSession  = tmux.RenameSession
	newSession     = tmux.NewSession
)

func SessionSwitchAction(ctx Context) tea.Cmd {
	if len(ctx.Targets) != 1 {
		return failure(fmt.Errorf("switch needs exactly one session, have %d", len(ctx.Targets)))
	}
	target := ctx.Targets[0]
	return func() tea.Msg {
		events.Session.Switch(target)
		if err := switchClient(ctx.SocketPath, ctx.ClientID, target); err != nil {
			return ActionResult{Err: err}
		}
		return ActionResult{Info: fmt.Sprintf("Switched to %s", target), Quit: true}
	}
}

func SessionDetachAction(ctx Context) tea.Cmd {
	targets := cleanTargets(ctx.Targets)
	if len(targets) == 0 {
		return failure(fmt.Errorf("no sessions selected"))
	}
	return func() tea.Msg {
		events.Session.Detach(targets)
		if err := detachSessions(ctx.SocketPath, targets); err != nil {
			return ActionResult{Err: err}
		}
		return ActionResult{Info: fmt.Sprintf("Detached %s", describeTargets(targets))}
	}
}

func SessionKillAction(ctx Context) tea.Cmd {
	targets := cleanTargets(ctx.Targets)
	if len(targets) == 0 {
		return failure(fmt.Errorf("no sessions selected"))
	}
	return func() tea.Msg {
		events.Session.Kill(targets)
		if err := killSessions(ctx.SocketPath, targets); err != nil {
			return ActionResult{Err: err}
		}
		return ActionResult{Info: fmt.Sprintf("Killed %s", describeTargets(targets))}
	}
}

func SessionRenameAction(ctx Context) tea.Cmd {
	targets := cleanTargets(ctx.Targets)
	if len(targets) != 1 {
		return failure(fmt.Errorf("rename needs exactly one session, have %d", len(targets)))
	}
	target := targets[0]
	return func() tea.Msg {
		events.Session.RenamePrompt(target)
		return SessionPrompt{Context: ctx, Action: "session:rename", Target: target, Initial: target}
	}
}

func SessionNewAction(ctx Context) tea.Cmd {
	return func() tea.Msg {
		events.Session.NewPrompt(len(ctx.Sessions))
		return SessionPrompt{Context: ctx, Action: "session:new"}
	}
}

func SessionCreateCommand(ctx Context, name string) tea.Cmd {
	return func() tea.Msg {
		events.Session.Create(name)
		if err := newSession(ctx.SocketPath, name); err != nil {
			return ActionResult{Err: err}
		}
		return ActionResult{Info: fmt.Sprintf("Created session %s", name)}
	}
}

func SessionRenameCommand(ctx Context, target, name string) tea.Cmd {
	return func() tea.Msg {
		events.Session.Rename(target, name)
		if err := renameSession(ctx.SocketPath, target, name); err != nil {
			return ActionResult{Err: err}
		}
		return ActionResult{Info: fmt.Sprintf("Renamed %s to %s", target, name)}
	}
}

func failure(err error) tea.Cmd {
	return func() tea.Msg { return ActionResult{Err: err} }
}

func cleanTargets(targets []string) []string {
	out := make([]string, 0, len(targets))
	for _, target := range targets {
		if trimmed := strings.TrimSpace(target); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func describeTargets(targets []string) string {
	if len(targets) == 1 {
		return targets[0]
	}
	return fmt.Sprintf("%d sessions", len(targets))
}

type sessionFormMode int

const (
	sessionFormModeCreate sessionFormMode = iota
	sessionFormModeRename
)

// SessionForm prompts for a session name when creating or renaming.
type SessionForm struct {
	input    textinput.Model
	existing map[string]struct{}
	ctx      Context
	err      string
	mode     sessionFormMode
	target   string
	title    string
	help     string
}

func NewSessionForm(prompt SessionPrompt) *SessionForm {
	ti := textinput.New()
	ti.Placeholder = "session-name"
	ti.CharLimit = 64
	ti.Focus()
	if prompt.Initial != "" {
		ti.SetValue(prompt.Initial)
	}
	form := &SessionForm{
		input:  ti,
		ctx:    prompt.Context,
		mode:   sessionFormModeCreate,
		target: strings.TrimSpace(prompt.Target),
		title:  "Create Session",
		help:   "Enter to create · Esc to cancel",
	}
	if prompt.Action == "session:rename" {
		form.mode = sessionFormModeRename
		form.title = "Rename Session"
		if form.target != "" {
			form.title = fmt.Sprintf("Rename %s", form.target)
		}
		form.help = "Enter to rename · Esc to cancel"
	}
	form.SetSessions(prompt.Context.Sessions)
	return form
}

func (f *SessionForm) Context() Context  { return f.ctx }
func (f *SessionForm) Value() string     { return strings.TrimSpace(f.input.Value()) }
func (f *SessionForm) InputView() string { return f.input.View() }
func (f *SessionForm) Error() string     { return f.err }
func (f *SessionForm) Target() string    { return f.target }
func (f *SessionForm) Title() string     { return f.title }
func (f *SessionForm) Help() string      { return f.help }
func (f *SessionForm) IsRename() bool    { return f.mode == sessionFormModeRename }

// Update feeds msg to the input. It returns the command to run once the
// form is submitted, and whether the form is done or cancelled.
func (f *SessionForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlU:
			f.input.SetValue("")
			f.input.CursorStart()
			f.err = f.validate()
			return nil, false, false
		case tea.KeyEsc:
			if f.IsRename() {
				events.Session.CancelRename(f.target, events.SessionReasonEscape)
			} else {
				events.Session.CancelNew(events.SessionReasonEscape)
			}
			return nil, false, true
		case tea.KeyEnter:
			return f.submit()
		}
	}
	updated, cmd := f.input.Update(msg)
	f.input = updated
	f.err = f.validate()
	return cmd, false, false
}

func (f *SessionForm) submit() (tea.Cmd, bool, bool) {
	value := f.Value()
	if f.IsRename() && (value == "" || value == f.target) {
		events.Session.CancelRename(f.target, events.SessionReasonEmpty)
		return nil, false, true
	}
	if err := f.validateName(value); err != "" {
		f.err = err
		return nil, false, false
	}
	f.err = ""
	if f.IsRename() {
		return SessionRenameCommand(f.ctx, f.target, value), true, false
	}
	return SessionCreateCommand(f.ctx, value), true, false
}

// SetSessions refreshes the names the form rejects as duplicates.
func (f *SessionForm) SetSessions(entries []SessionEntry) {
	f.existing = make(map[string]struct{}, len(entries))
	targetLower := strings.ToLower(f.target)
	for _, entry := range entries {
		name := strings.ToLower(strings.TrimSpace(entry.Name))
		if name == "" || (f.IsRename() && name == targetLower) {
			continue
		}
		f.existing[name] = struct{}{}
	}
	f.err = f.validate()
}

func (f *SessionForm) validate() string {
	value := f.Value()
	if value == "" && f.IsRename() {
		return ""
	}
	return f.validateName(value)
}

func (f *SessionForm) validateName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "Session name required"
	}
	if strings.ContainsAny(trimmed, ":.") {
		return "Session names cannot contain ':' or '.'"
	}
	if _, exists := f.existing[strings.ToLower(trimmed)]; exists {
		return "Session already exists"
	}
	return ""
}

// SessionItems renders entries as aligned list rows.
func SessionItems(entries []SessionEntry) []Item {
	if len(entries) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		current := ""
		if entry.Current {
			current = "current"
		}
		rows = append(rows, []string{entry.Name, windowCount(entry.Windows), sessionStatus(entry), current})
	}
	aligned := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft, table.AlignLeft})
	items := make([]Item, len(aligned))
	for i, label := range aligned {
		items[i] = Item{ID: entries[i].Name, Label: label}
	}
	return items
}

func windowCount(n int) string {
	if n == 1 {
		return "1 window"
	}
	return fmt.Sprintf("%d windows", n)
}

func sessionStatus(entry SessionEntry) string {
	if !entry.Attached {
		return ""
	}
	if count := len(entry.Clients); count > 1 {
		return fmt.Sprintf("attached (%d)", count)
	}
	return "attached"
}
