package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/hay-kot/a4s/internal/tui/components"
)

// KeyMap holds every binding the TUI responds to outside of modals.
type KeyMap struct {
	NextView   key.Binding
	CreateView key.Binding
	CrewsView  key.Binding
	Up         key.Binding
	Down       key.Binding

	// Create view.
	Toggle key.Binding
	Build  key.Binding

	// Crews view.
	Execute      key.Binding
	Sync         key.Binding
	Executions   key.Binding
	RefreshAll   key.Binding
	Reload       key.Binding
	Delete       key.Binding
	NewCrew      key.Binding
	ToggleDetail key.Binding

	Help          key.Binding
	Notifications key.Binding
	Dismiss       key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextView:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		CreateView: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "create")),
		CrewsView:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "crews")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),

		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle task")),
		Build:  key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter", "build crew")),

		Execute:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "execute")),
		Sync:         key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync status")),
		Executions:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "executions")),
		RefreshAll:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh all")),
		Reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		NewCrew:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new crew")),
		ToggleDetail: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),

		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Notifications: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "notifications")),
		Dismiss:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss toast")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// SetView enables the bindings that belong to the active view.
func (k *KeyMap) SetView(v ViewType) {
	create := v == ViewCreate
	k.Toggle.SetEnabled(create)
	k.Build.SetEnabled(create)

	for _, b := range []*key.Binding{
		&k.Execute, &k.Sync, &k.Executions, &k.RefreshAll,
		&k.Reload, &k.Delete, &k.NewCrew, &k.ToggleDetail,
	} {
		b.SetEnabled(!create)
	}
}

// ShortHelp implements help.KeyMap for the bottom help bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.NextView, k.Toggle, k.Build,
		k.Execute, k.Sync, k.Delete, k.NewCrew,
		k.Help, k.Quit,
	}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	sections := k.Sections()
	out := make([][]key.Binding, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Bindings)
	}
	return out
}

// Sections groups the bindings for the help dialog.
func (k KeyMap) Sections() []components.HelpDialogSection {
	return []components.HelpDialogSection{
		{
			Title:    "Navigation",
			Bindings: []key.Binding{k.NextView, k.CreateView, k.CrewsView, k.Up, k.Down},
		},
		{
			Title:    "Create",
			Bindings: []key.Binding{k.Toggle, k.Build},
		},
		{
			Title: "Crews",
			Bindings: []key.Binding{
				k.Execute, k.Sync, k.Executions, k.RefreshAll,
				k.Reload, k.Delete, k.NewCrew, k.ToggleDetail,
			},
		},
		{
			Title:    "General",
			Bindings: []key.Binding{k.Notifications, k.Dismiss, k.Help, k.Quit},
		},
	}
}
