package tui

import "github.com/charmbracelet/bubbles/key"

// StandardKeys defines common key bindings used across TUI components.
type StandardKeys struct {
	Quit   key.Binding
	Select key.Binding
	Back   key.Binding
	Help   key.Binding
}

// NewStandardKeys creates a standard set of key bindings.
func NewStandardKeys() StandardKeys {
	return StandardKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// DashboardKeys are the catalog table bindings.
type DashboardKeys struct {
	StandardKeys
	New     key.Binding
	Delete  key.Binding
	Search  key.Binding
	Seed    key.Binding
	Refresh key.Binding
	Dismiss key.Binding
	Logout  key.Binding
}

// NewDashboardKeys creates key bindings for the dashboard.
func NewDashboardKeys() DashboardKeys {
	return DashboardKeys{
		StandardKeys: NewStandardKeys(),
		New: key.NewBinding(
			key.WithKeys("n", "a"),
			key.WithHelp("n", "new entry"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Seed: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "seed samples"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "reload"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "sign out"),
		),
	}
}

// ShortHelp returns a slice of key bindings for the short help view.
func (k DashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Select, k.Delete, k.Search, k.Help, k.Quit}
}

// FullHelp returns the bindings for the expanded help view.
func (k DashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Select, k.Delete},
		{k.Search, k.Refresh, k.Seed},
		{k.Dismiss, k.Logout, k.Help, k.Quit},
	}
}
