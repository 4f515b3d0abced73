package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the explorer's key bindings. Row movement is handled by the
// table itself; Up, Down and the paging bindings mirror its keys so they
// show in help.
type KeyMap struct {
	Up, Down, PageUp, PageDown, Top, Bottom key.Binding
	NextAttribute, PrevAttribute           key.Binding
	Sort, Reverse                          key.Binding
	Help, Quit, ForceQuit                  key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       bind("↑/k", "up", "up", "k"),
		Down:     bind("↓/j", "down", "down", "j"),
		PageUp:   bind("PgUp/b", "page up", "pgup", "b"),
		PageDown: bind("PgDn/f", "page down", "pgdown", "f"),
		Top:      bind("g/Home", "first row", "home", "g"),
		Bottom:   bind("G/End", "last row", "end", "G"),

		NextAttribute: bind("Tab/→/l", "next attribute", "tab", "right", "l"),
		PrevAttribute: bind("S-Tab/←/h", "previous attribute", "shift+tab", "left", "h"),

		Sort:    bind("s", "cycle sort column", "s"),
		Reverse: bind("r", "reverse order", "r"),

		Help:      bind("?", "toggle help", "?"),
		Quit:      bind("q/Esc", "quit", "q", "esc"),
		ForceQuit: bind("Ctrl+C", "force quit", "ctrl+c"),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextAttribute, k.Sort, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.NextAttribute, k.PrevAttribute},
		{k.Sort, k.Reverse, k.Help, k.Quit},
	}
}
