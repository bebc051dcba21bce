package menu

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/tmux-bulk-actions/internal/overflow"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrInvalidEntry  = errors.New("invalid layout entry")
)

// Entry is one element of a layout. Exactly one of Action, Group or
// Section is set. In YAML a bare string is shorthand for {action: <id>}.
type Entry struct {
	Action  string  `yaml:"action,omitempty"`
	Group   string  `yaml:"group,omitempty"`
	Section string  `yaml:"section,omitempty"`
	Label   string  `yaml:"label,omitempty"`
	New     bool    `yaml:"new,omitempty"`
	Actions []Entry `yaml:"actions,omitempty"`
}

// UnmarshalYAML accepts either a scalar action ID or a mapping.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Action = node.Value
		return nil
	}
	type plain Entry
	var out plain
	if err := node.Decode(&out); err != nil {
		return err
	}
	*e = Entry(out)
	return nil
}

// Layout arranges catalog actions into the promoted row and the secondary
// "more actions" entries.
type Layout struct {
	Promoted  []Entry `yaml:"promoted"`
	Secondary []Entry `yaml:"secondary"`
}

// DefaultLayout is used when no layout file is configured.
func DefaultLayout() Layout {
	return Layout{
		Promoted: []Entry{
			{Action: "session:switch"},
			{Action: "session:detach"},
			{Action: "session:kill"},
			{Group: "Manage", Actions: []Entry{
				{Action: "session:rename"},
				{Action: "session:new"},
			}},
		},
		Secondary: []Entry{
			{Section: "Selection", Actions: []Entry{
				{Action: "selection:all"},
				{Action: "selection:none"},
				{Action: "selection:invert"},
			}},
			{Action: "app:refresh"},
			{Action: "app:quit"},
		},
	}
}

// Load reads and validates a layout file.
func Load(path string, reg *Registry) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}
	layout, err := Parse(data, reg)
	if err != nil {
		return Layout{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return layout, nil
}

// Parse decodes YAML into a validated layout.
func Parse(data []byte, reg *Registry) (Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	if err := layout.Validate(reg); err != nil {
		return Layout{}, err
	}
	return layout, nil
}

// Validate checks every entry's shape and that each action ID is known.
func (l Layout) Validate(reg *Registry) error {
	for i, entry := range l.Promoted {
		if entry.Section != "" {
			return fmt.Errorf("promoted[%d]: sections are only allowed in secondary: %w", i, ErrInvalidEntry)
		}
		if err := entry.validate(reg); err != nil {
			return fmt.Errorf("promoted[%d]: %w", i, err)
		}
	}
	for i, entry := range l.Secondary {
		if err := entry.validate(reg); err != nil {
			return fmt.Errorf("secondary[%d]: %w", i, err)
		}
	}
	return nil
}

func (e Entry) validate(reg *Registry) error {
	set := 0
	for _, v := range []string{e.Action, e.Group, e.Section} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("exactly one of action, group or section required: %w", ErrInvalidEntry)
	}
	if e.Action != "" {
		if len(e.Actions) > 0 {
			return fmt.Errorf("action %q cannot nest actions: %w", e.Action, ErrInvalidEntry)
		}
		if _, ok := reg.Find(e.Action); !ok {
			return fmt.Errorf("%q: %w", e.Action, ErrUnknownAction)
		}
		return nil
	}
	for j, child := range e.Actions {
		if child.Action == "" || child.Group != "" || child.Section != "" || len(child.Actions) > 0 {
			return fmt.Errorf("actions[%d]: only plain actions may be nested: %w", j, ErrInvalidEntry)
		}
		if _, ok := reg.Find(child.Action); !ok {
			return fmt.Errorf("actions[%d] %q: %w", j, child.Action, ErrUnknownAction)
		}
	}
	return nil
}

// Resolve turns layout into overflow entries for ctx. Actions that do not
// apply to the current targets are marked disabled.
func Resolve(layout Layout, reg *Registry, ctx Context) ([]overflow.Promoted, []overflow.Secondary) {
	promoted := make([]overflow.Promoted, 0, len(layout.Promoted))
	for _, entry := range layout.Promoted {
		if entry.Group != "" {
			promoted = append(promoted, overflow.Grouped(entry.Group, resolveActions(entry.Actions, reg, ctx)...))
			continue
		}
		if action, ok := resolveAction(entry, reg, ctx); ok {
			promoted = append(promoted, overflow.Simple(action))
		}
	}
	secondary := make([]overflow.Secondary, 0, len(layout.Secondary))
	for _, entry := range layout.Secondary {
		switch {
		case entry.Section != "":
			secondary = append(secondary, overflow.SectionOf(entry.Section, resolveActions(entry.Actions, reg, ctx)...))
		case entry.Group != "":
			secondary = append(secondary, overflow.GroupOf(overflow.Group{Title: entry.Group, Actions: resolveActions(entry.Actions, reg, ctx)}))
		default:
			if action, ok := resolveAction(entry, reg, ctx); ok {
				secondary = append(secondary, overflow.ActionOf(action))
			}
		}
	}
	return promoted, secondary
}

func resolveActions(entries []Entry, reg *Registry, ctx Context) []overflow.Action {
	out := make([]overflow.Action, 0, len(entries))
	for _, entry := range entries {
		if action, ok := resolveAction(entry, reg, ctx); ok {
			out = append(out, action)
		}
	}
	return out
}

func resolveAction(entry Entry, reg *Registry, ctx Context) (overflow.Action, bool) {
	def, ok := reg.Find(entry.Action)
	if !ok {
		return overflow.Action{}, false
	}
	label := entry.Label
	if label == "" {
		label = def.Label
	}
	return overflow.Action{
		ID:       def.ID,
		Label:    label,
		Disabled: !def.Applies(ctx),
		New:      entry.New,
	}, true
}
