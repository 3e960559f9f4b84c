// Package keymap defines keybindings for the TUI.
package keymap

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Back   key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// Add opens the passenger registration form.
	Add key.Binding

	// Spend shows the selected passenger's total spend.
	Spend key.Binding

	// Reload refetches the current view.
	Reload key.Binding

	// Reset opens a new cashbox; it asks for confirmation first.
	Reset key.Binding

	// Destination picks a destination by its 1-based menu number.
	Destination key.Binding

	// ClearFilter drops a destination filter.
	ClearFilter key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	destinationKeys := make([]string, 0, domain.DestinationCount)
	for _, d := range domain.AllDestinations() {
		destinationKeys = append(destinationKeys, strconv.Itoa(d.Selector()))
	}

	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "register"),
		),
		Spend: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "total spend"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset cashbox"),
		),
		Destination: key.NewBinding(
			key.WithKeys(destinationKeys...),
			key.WithHelp("1-6", "destination"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "all tickets"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Help, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Add, k.Spend, k.Destination, k.ClearFilter},
		{k.Reload, k.Reset},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}

// DestinationFor maps a destination key press to its destination.
func DestinationFor(keyStr string) (domain.Destination, bool) {
	n, err := strconv.Atoi(keyStr)
	if err != nil {
		return 0, false
	}
	d, err := domain.DestinationFromSelector(n)
	if err != nil {
		return 0, false
	}
	return d, true
}
