package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the application-wide bindings. Pane-specific bindings live with their
// components.
type KeyMap struct {
	SwitchFocus key.Binding
	New         key.Binding
	Delete      key.Binding
	Jump        key.Binding
	Copy        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the application bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		SwitchFocus: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch pane")),
		New:         key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new chat")),
		Delete:      key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete chat")),
		Jump:        key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "jump to chat")),
		Copy:        key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy last reply")),
		Help:        key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1/?", "help")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp is shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchFocus, k.New, k.Help, k.Quit}
}
