// Package overflow decides which promoted actions of a bulk actions bar fit
// inline and which collapse behind the overflow disclosure.
//
// The package is pure: widths come from a measurement pass performed by the
// caller (see internal/measure), the Allocator partitions indices, the
// Coordinator tracks when a recomputation is due, and Assemble rebuilds the
// overflow menu contents from the hidden indices.
package overflow

// Kind tags a promoted entry as a single action or a group of actions.
type Kind int

const (
	KindSimple Kind = iota
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Action is a leaf action: a button when promoted, a row in a menu otherwise.
type Action struct {
	ID       string
	Label    string
	Disabled bool
	New      bool
}

// Group bundles leaf actions behind one promoted button.
type Group struct {
	Title   string
	Actions []Action
}

// Promoted is a promoted action or action group. Build it with Simple or
// Grouped; the zero value is an empty simple action.
type Promoted struct {
	kind   Kind
	action Action
	group  Group
}

// Simple wraps a single action.
func Simple(a Action) Promoted {
	return Promoted{kind: KindSimple, action: a}
}

// Grouped wraps a titled group of actions.
func Grouped(title string, actions ...Action) Promoted {
	return Promoted{kind: KindGroup, group: Group{Title: title, Actions: cloneActions(actions)}}
}

func (p Promoted) Kind() Kind     { return p.kind }
func (p Promoted) Action() Action { return p.action }

// Group returns the group payload; it is empty for simple entries.
func (p Promoted) Group() Group {
	return Group{Title: p.group.Title, Actions: cloneActions(p.group.Actions)}
}

// Label is the text painted on the promoted button.
func (p Promoted) Label() string {
	if p.kind == KindGroup {
		return p.group.Title
	}
	return p.action.Label
}

// Disabled reports whether the button should be painted inactive. A group is
// disabled when every sub-action is.
func (p Promoted) Disabled() bool {
	if p.kind != KindGroup {
		return p.action.Disabled
	}
	if len(p.group.Actions) == 0 {
		return true
	}
	for _, a := range p.group.Actions {
		if !a.Disabled {
			return false
		}
	}
	return true
}

// Leaves returns the leaf actions in order: the sub-actions of a group, or
// the action itself.
func (p Promoted) Leaves() []Action {
	if p.kind == KindGroup {
		return cloneActions(p.group.Actions)
	}
	return []Action{p.action}
}

// Equal reports content equality, used to keep the identity of an action
// list stable across renders.
func (p Promoted) Equal(o Promoted) bool {
	if p.kind != o.kind {
		return false
	}
	if p.kind == KindSimple {
		return p.action == o.action
	}
	if p.group.Title != o.group.Title || len(p.group.Actions) != len(o.group.Actions) {
		return false
	}
	for i := range p.group.Actions {
		if p.group.Actions[i] != o.group.Actions[i] {
			return false
		}
	}
	return true
}

// Section is an ordered run of leaf actions inside the overflow menu.
type Section struct {
	Title string
	Items []Action
}

type secondaryKind int

const (
	secondarySection secondaryKind = iota
	secondaryGroup
	secondaryAction
)

// Secondary is an overflow entry supplied independently of the promoted
// list: a raw section, a group, or a single action.
type Secondary struct {
	kind    secondaryKind
	section Section
	group   Group
	action  Action
}

// SectionOf builds a raw section entry.
func SectionOf(title string, items ...Action) Secondary {
	return Secondary{kind: secondarySection, section: Section{Title: title, Items: cloneActions(items)}}
}

// GroupOf builds an entry that expands to the group's sub-actions.
func GroupOf(g Group) Secondary {
	return Secondary{kind: secondaryGroup, group: Group{Title: g.Title, Actions: cloneActions(g.Actions)}}
}

// ActionOf builds an entry holding a single action.
func ActionOf(a Action) Secondary {
	return Secondary{kind: secondaryAction, action: a}
}

// Section classifies the entry into a menu section.
func (s Secondary) Section() Section {
	switch s.kind {
	case secondaryGroup:
		return Section{Title: s.group.Title, Items: cloneActions(s.group.Actions)}
	case secondaryAction:
		return Section{Items: []Action{s.action}}
	default:
		return Section{Title: s.section.Title, Items: cloneActions(s.section.Items)}
	}
}

// HasNewBadge reports whether any secondary leaf carries the "new" badge.
func HasNewBadge(entries []Secondary) bool {
	for _, entry := range entries {
		for _, item := range entry.Section().Items {
			if item.New {
				return true
			}
		}
	}
	return false
}

func cloneActions(actions []Action) []Action {
	if len(actions) == 0 {
		return nil
	}
	dup := make([]Action, len(actions))
	copy(dup, actions)
	return dup
}
