package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Search     key.Binding
	Filter     key.Binding
	NextFilter key.Binding
	Clear      key.Binding
	View       key.Binding
	Delete     key.Binding
	Detail     key.Binding
	Up         key.Binding
	Down       key.Binding
	Sort       key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	NextFilter: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "next filter")),
	Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	View:       key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Detail:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	Up:         key.NewBinding(key.WithKeys("up", "k")),
	Down:       key.NewBinding(key.WithKeys("down", "j")),
	Sort:       key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "sort")),
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Search, k.Filter, k.NextFilter, k.Clear, k.Sort, k.View, k.Delete, k.Detail, k.Quit}
}
