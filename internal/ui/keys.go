package ui

import "github.com/charmbracelet/bubbles/key"

type bbqKeyMap struct {
	Units key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k bbqKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Units, k.Help, k.Quit}
}

func (k bbqKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Units},
		{k.Help, k.Quit},
	}
}

var bbqKeys = bbqKeyMap{
	Units: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "°F/°C"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q/ctrl+c", "quit"),
	),
}
