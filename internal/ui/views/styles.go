package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Popup         lipgloss.Style
	Highlight     lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style

	ButtonEnabled  lipgloss.Style
	ButtonDisabled lipgloss.Style

	OptionOn  lipgloss.Style
	OptionOff lipgloss.Style

	// Cell fills, one per node kind
	Normal  lipgloss.Style
	Blocked lipgloss.Style
	Start   lipgloss.Style
	End     lipgloss.Style
	Opened  lipgloss.Style
	Closed  lipgloss.Style
	Tested  lipgloss.Style
	Path    lipgloss.Style
	Flash   lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	fill := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Background(lipgloss.Color(color))
	}
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("99")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green

		ButtonEnabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")),
		ButtonDisabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Background(lipgloss.Color("237")),

		OptionOn:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		OptionOff: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		Normal:  fill("#ffffff"),
		Blocked: fill("#808080"),
		Start:   fill("#00dd00"),
		End:     fill("#ee4400"),
		Opened:  fill("#98fb98"),
		Closed:  fill("#afeeee"),
		Tested:  fill("#e5e5e5"),
		Path:    fill("#ffff00"),
		Flash:   fill("#ffd700"),
	}
}
