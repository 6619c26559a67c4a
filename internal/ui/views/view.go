package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"pathviz/internal/controller"
)

// Option is one entry of the algorithm panel
type Option struct {
	Key       string
	Name      string
	Value     string
	On        bool
	Supported bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	State         controller.State
	Algorithm     string
	Options       []Option
	Controls      []controller.Control
	Cells         [][]Cell
	Stats         string
	StatusMessage string
	StatusIsError bool
	ShowHelp      bool
	HelpContent   string
	HelpModel     help.Model
	KeyMap        help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	cellRender  *CellRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(cellWidth int) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		cellRender:  NewCellRenderer(styles, cellWidth),
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles { return r.styles }

// CellWidth is the number of terminal columns per grid cell
func (r *Renderer) CellWidth() int { return r.cellRender.Width() }

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	// Row 0: title with the lifecycle state on the right
	logo := r.styles.Title.Render("pathviz")
	right := r.styles.Dim.Render(fmt.Sprintf("%s | %s", state.Algorithm, state.State))
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	if pad := termWidth - lipgloss.Width(logo) - lipgloss.Width(right); pad > 0 {
		content.WriteString(logo + strings.Repeat(" ", pad) + right)
	} else {
		content.WriteString(logo + "  " + right)
	}
	content.WriteString("\n")

	// Row BarRow: control buttons
	content.WriteString(r.cellRender.RenderControls(state.Controls))
	content.WriteString("\n\n")

	// Rows from GridTop: the grid itself
	content.WriteString(r.cellRender.RenderGrid(state.Cells))
	content.WriteString("\n\n")

	if state.Stats != "" {
		content.WriteString(r.styles.Highlight.Render(state.Stats))
		content.WriteString("\n")
	}
	content.WriteString(r.renderPanel(state.Options))
	content.WriteString("\n")

	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		content.WriteString(style.Render(state.StatusMessage))
		content.WriteString("\n")
	}

	if state.KeyMap != nil && !state.ShowHelp {
		content.WriteString(state.HelpModel.View(state.KeyMap))
	}

	main := content.String()
	if state.ShowHelp {
		return r.popupRender.RenderPopupOverlay(main, state.HelpContent, state.Height, state.Width)
	}
	return main
}

func (r *Renderer) renderPanel(options []Option) string {
	parts := make([]string, 0, len(options))
	for _, o := range options {
		if !o.Supported {
			continue
		}
		text := fmt.Sprintf("[%s] %s", o.Key, o.Name)
		if o.Value != "" {
			text += ": " + o.Value
		}
		style := r.styles.OptionOff
		if o.On || o.Value != "" {
			style = r.styles.OptionOn
		}
		parts = append(parts, style.Render(text))
	}
	return strings.Join(parts, "  ")
}
