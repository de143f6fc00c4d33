package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add      key.Binding
	Edit     key.Binding
	Toggle   key.Binding
	Remove   key.Binding
	All      key.Binding
	Active   key.Binding
	Complete key.Binding
	Cycle    key.Binding
	Clear    key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding

	// input mode
	Submit key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:      key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add")),
		Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Remove:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		All:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Active:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		Complete: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		Cycle:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
		Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear completed")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap for list mode.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Toggle, k.Remove, k.Cycle, k.Clear, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Edit, k.Remove},
		{k.All, k.Active, k.Complete, k.Cycle, k.Clear},
		{k.Add, k.Quit},
	}
}

// inputKeys is the help shown while the input has focus.
type inputKeys struct{ keyMap }

func (k inputKeys) ShortHelp() []key.Binding { return []key.Binding{k.Submit, k.Cancel} }

func (k inputKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
