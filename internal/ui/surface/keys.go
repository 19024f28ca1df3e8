package surface

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap lists the tab switcher bindings. Every intent acts on the tab
// under the cursor.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Activate      key.Binding
	Close         key.Binding
	CloseUnpinned key.Binding
	Pin           key.Binding
	Mute          key.Binding
	Detach        key.Binding
	Reattach      key.Binding
	ZoomIn        key.Binding
	ZoomOut       key.Binding
	ZoomReset     key.Binding
	NewTab        key.Binding
	Navigate      key.Binding
	Reload        key.Binding
	Back          key.Binding
	Forward       key.Binding
	CloseWindow   key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.NewTab, k.Close, k.Detach, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Activate, k.NewTab, k.Navigate},
		{k.Close, k.CloseUnpinned, k.Pin, k.Mute},
		{k.Detach, k.Reattach, k.CloseWindow},
		{k.ZoomIn, k.ZoomOut, k.ZoomReset},
		{k.Reload, k.Back, k.Forward},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default tab switcher bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Activate:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate")),
		Close:         key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close tab")),
		CloseUnpinned: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "close unpinned")),
		Pin:           key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pin/unpin")),
		Mute:          key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute/unmute")),
		Detach:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "detach")),
		Reattach:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "reattach")),
		ZoomIn:        key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:       key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		ZoomReset:     key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset zoom")),
		NewTab:        key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "new tab")),
		Navigate:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open url")),
		Reload:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Back:          key.NewBinding(key.WithKeys("backspace", "["), key.WithHelp("[", "back")),
		Forward:       key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "forward")),
		CloseWindow:   key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "close window")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
