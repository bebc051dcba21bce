package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-bulk-actions/internal/logging/events"
	"github.com/atomicstack/tmux-bulk-actions/internal/menu"
)

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Handler menu.Action
}

// Bus coordinates the execution of menu actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a menu action into a Bubble Tea command while emitting trace
// logs. The handler runs inside the returned command, off the update loop.
func (b *Bus) Execute(ctx menu.Context, req Request) tea.Cmd {
	events.Command.Queue(req.ID, ctx.Targets)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, "no handler")
			return nil
		}
		cmd := req.Handler(ctx)
		if cmd == nil {
			events.Command.NoOp(req.ID)
			return nil
		}
		msg := cmd()
		events.Command.Result(req.ID, fmt.Sprintf("%T", msg))
		return msg
	}
}
