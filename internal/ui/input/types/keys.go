package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists every key binding of the normal mode
type KeyMap struct {
	Primary     key.Binding
	Secondary   key.Binding
	Tertiary    key.Binding
	Reset       key.Binding
	Algorithm   key.Binding
	Heuristic   key.Binding
	Diagonal    key.Binding
	Corners     key.Binding
	Bidirection key.Binding
	Recursion   key.Binding
	WeightUp    key.Binding
	WeightDown  key.Binding
	TimeUp      key.Binding
	TimeDown    key.Binding
	Help        key.Binding
	HelpPager   key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Primary:     key.NewBinding(key.WithKeys("1", " "), key.WithHelp("1/space", "button 1")),
		Secondary:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "button 2")),
		Tertiary:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "button 3")),
		Reset:       key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset grid")),
		Algorithm:   key.NewBinding(key.WithKeys("a", "A"), key.WithHelp("a/A", "next/prev algorithm")),
		Heuristic:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "heuristic")),
		Diagonal:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "allow diagonal")),
		Corners:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "don't cross corners")),
		Bidirection: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bidirectional")),
		Recursion:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "track recursion")),
		WeightUp:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "weight up")),
		WeightDown:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "weight down")),
		TimeUp:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "time limit up")),
		TimeDown:    key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "time limit down")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		HelpPager:   key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "help in pager")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Primary, k.Secondary, k.Tertiary, k.Algorithm, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Primary, k.Secondary, k.Tertiary, k.Reset},
		{k.Algorithm, k.Heuristic, k.Diagonal, k.Corners},
		{k.Bidirection, k.Recursion, k.WeightUp, k.WeightDown},
		{k.TimeUp, k.TimeDown, k.Help, k.HelpPager, k.Quit},
	}
}
