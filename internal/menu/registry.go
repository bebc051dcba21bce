package menu

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"
)

// Definition describes one catalog action.
type Definition struct {
	ID    string
	Label string
	Run   Action
	// Enabled reports whether the action applies to ctx. Nil means always.
	Enabled func(Context) bool
}

// Applies reports whether the definition can run against ctx.
func (d Definition) Applies(ctx Context) bool {
	if d.Run == nil {
		return false
	}
	if d.Enabled == nil {
		return true
	}
	return d.Enabled(ctx)
}

// Registry exposes lookup utilities for action definitions.
type Registry struct {
	defs map[string]Definition
}

// BuildRegistry returns the registry holding every built-in action.
func BuildRegistry() *Registry {
	defs := []Definition{
		{ID: "session:switch", Label: "Switch", Run: SessionSwitchAction, Enabled: singleOtherTarget},
		{ID: "session:detach", Label: "Detach", Run: SessionDetachAction, Enabled: anyAttachedTarget},
		{ID: "session:kill", Label: "Kill", Run: SessionKillAction, Enabled: anyTarget},
		{ID: "session:rename", Label: "Rename", Run: SessionRenameAction, Enabled: singleTarget},
		{ID: "session:new", Label: "New session", Run: SessionNewAction},
		{ID: "selection:all", Label: "Select all", Run: selectionAction(SelectAll), Enabled: func(ctx Context) bool {
			return ctx.Marked < len(ctx.Sessions)
		}},
		{ID: "selection:none", Label: "Select none", Run: selectionAction(SelectNone), Enabled: func(ctx Context) bool {
			return ctx.Marked > 0
		}},
		{ID: "selection:invert", Label: "Invert selection", Run: selectionAction(SelectInvert), Enabled: func(ctx Context) bool {
			return len(ctx.Sessions) > 0
		}},
		{ID: "app:refresh", Label: "Refresh", Run: func(Context) tea.Cmd {
			return func() tea.Msg { return RefreshRequest{} }
		}},
		{ID: "app:quit", Label: "Quit", Run: func(Context) tea.Cmd { return tea.Quit }},
	}
	r := &Registry{defs: make(map[string]Definition, len(defs))}
	for _, def := range defs {
		r.Register(def)
	}
	return r
}

// Register adds def, replacing any definition with the same ID.
func (r *Registry) Register(def Definition) {
	if r.defs == nil {
		r.defs = make(map[string]Definition)
	}
	r.defs[def.ID] = def
}

// Find locates a definition by ID.
func (r *Registry) Find(id string) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	def, ok := r.defs[id]
	return def, ok
}

// IDs returns every registered action ID in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.defs))
	for id := range r.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func selectionAction(mode SelectionMode) Action {
	return func(Context) tea.Cmd {
		return func() tea.Msg { return SelectionRequest{Mode: mode} }
	}
}

func anyTarget(ctx Context) bool {
	return len(ctx.Targets) > 0
}

func singleTarget(ctx Context) bool {
	return len(ctx.Targets) == 1
}

func singleOtherTarget(ctx Context) bool {
	return len(ctx.Targets) == 1 && ctx.Targets[0] != ctx.Current
}

func anyAttachedTarget(ctx Context) bool {
	for _, target := range ctx.Targets {
		if entry, ok := ctx.Entry(target); ok && entry.Attached {
			return true
		}
	}
	return false
}
