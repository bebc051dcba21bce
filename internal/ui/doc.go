// Package ui contains the Bubble Tea program that powers the bulk actions
// popup: a filterable, multi-select list of tmux sessions with an action bar
// underneath it.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Key presses go
//     to the session form while it is open; everything else is routed
//     through a typed handler registry keyed by message type.
//   - Every update ends in finishUpdate, which resolves the action layout
//     against the current selection and hands the promoted list to the
//     overflow coordinator. The coordinator keeps the list identity while
//     the content is unchanged, so a measurement pass only re-allocates when
//     the actions, their labels or the available width actually moved.
//
// Bar and menus:
//   - The measurement pass renders buttons and the disclosure with the same
//     painter the visible row uses (internal/ui/bar), so measured and painted
//     widths agree. Until the first allocation lands the bar shows a
//     placeholder row.
//   - Hidden promoted actions and the layout's secondary entries are
//     assembled into the overflow menu behind the disclosure. Groups kept
//     inline open their own menu. Disabled items are skipped by keyboard
//     navigation.
//
// Backend interactions:
//   - A backend.Watcher streams session snapshots and layout reloads; the
//     dispatcher folds them into the stores and the list rows follow.
//   - Actions run through the command bus (internal/ui/command) as tea.Cmd
//     values and report back with menu.ActionResult.
package ui
