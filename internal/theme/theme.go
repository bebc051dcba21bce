package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	Marked                *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Header                *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style

	// Bulk actions bar.
	BarSummary       *lipgloss.Style
	Button           *lipgloss.Style
	ButtonFocused    *lipgloss.Style
	ButtonDisabled   *lipgloss.Style
	Disclosure       *lipgloss.Style
	DisclosureActive *lipgloss.Style
	Indicator        *lipgloss.Style
	Placeholder      *lipgloss.Style

	// Overflow and group menus.
	MenuBorder       *lipgloss.Style
	MenuTitle        *lipgloss.Style
	MenuSection      *lipgloss.Style
	MenuItem         *lipgloss.Style
	MenuItemSelected *lipgloss.Style
	MenuItemDisabled *lipgloss.Style
	Badge            *lipgloss.Style

	FormTitle *lipgloss.Style
	FormHelp  *lipgloss.Style
}

var defaultStyles = Styles{
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Marked: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	),
	BarSummary: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Button: ptr(
		lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
	),
	ButtonFocused: ptr(
		lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true),
	),
	ButtonDisabled: ptr(
		lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("241")).Background(lipgloss.Color("235")),
	),
	Disclosure: ptr(
		lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")),
	),
	DisclosureActive: ptr(
		lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true),
	),
	Indicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	),
	Placeholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	MenuBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	MenuTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	MenuSection: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	MenuItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	MenuItemSelected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	MenuItemDisabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	Badge: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	FormTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	FormHelp: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
