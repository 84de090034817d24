package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the dashboard's key bindings
type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	Lock          key.Binding
	Unlock        key.Binding
	Exclude       key.Binding
	Restore       key.Binding
	NextCategory  key.Binding
	PrevCategory  key.Binding
	Region        key.Binding
	ClearRegion   key.Binding
	ScaleBand     key.Binding
	ThresholdUp   key.Binding
	ThresholdDown key.Binding
	Focus         key.Binding
	Reset         key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:            key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:          key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Lock:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "lock")),
		Unlock:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "unlock")),
		Exclude:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "exclude")),
		Restore:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "restore last excluded")),
		NextCategory:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "next category")),
		PrevCategory:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "previous category")),
		Region:        key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "brush region cell")),
		ClearRegion:   key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "clear region")),
		ScaleBand:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle scale band")),
		ThresholdUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "raise threshold")),
		ThresholdDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "lower threshold")),
		Focus:         key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "focus by name")),
		Reset:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Lock, k.Exclude, k.NextCategory, k.Region, k.Focus, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Lock, k.Unlock, k.Focus},
		{k.Exclude, k.Restore, k.NextCategory, k.PrevCategory},
		{k.Region, k.ClearRegion, k.ScaleBand, k.ThresholdUp, k.ThresholdDown},
		{k.Reset, k.Help, k.Quit},
	}
}
