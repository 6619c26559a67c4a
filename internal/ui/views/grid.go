package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pathviz/internal/controller"
)

// Screen layout. The grid's top-left cell is drawn at column 0 of GridTop.
const (
	BarRow  = 1
	GridTop = 3
)

// ButtonGap is the number of blank columns between two control buttons
const ButtonGap = 1

// Cell is the painted state of one grid node
type Cell struct {
	Blocked bool
	Opened  bool
	Closed  bool
	Tested  bool
	Path    bool
	Start   bool
	End     bool
	Flash   bool
}

// CellRenderer paints grid cells
type CellRenderer struct {
	styles *Styles
	width  int
	cache  map[*lipgloss.Style]string
}

// NewCellRenderer creates a renderer drawing every cell width columns wide
func NewCellRenderer(styles *Styles, width int) *CellRenderer {
	if width < 1 {
		width = 1
	}
	return &CellRenderer{styles: styles, width: width, cache: make(map[*lipgloss.Style]string)}
}

// Width is the number of terminal columns per cell
func (r *CellRenderer) Width() int { return r.width }

func (r *CellRenderer) styleFor(c Cell) *lipgloss.Style {
	s := r.styles
	switch {
	case c.Start:
		return &s.Start
	case c.End:
		return &s.End
	case c.Path:
		return &s.Path
	case c.Blocked:
		return &s.Blocked
	case c.Flash:
		return &s.Flash
	case c.Closed:
		return &s.Closed
	case c.Opened:
		return &s.Opened
	case c.Tested:
		return &s.Tested
	default:
		return &s.Normal
	}
}

// RenderCell returns the styled block for one cell
func (r *CellRenderer) RenderCell(c Cell) string {
	style := r.styleFor(c)
	if out, ok := r.cache[style]; ok {
		return out
	}
	out := style.Render(strings.Repeat(" ", r.width))
	r.cache[style] = out
	return out
}

// RenderGrid draws rows of cells, one terminal line per row
func (r *CellRenderer) RenderGrid(cells [][]Cell) string {
	var b strings.Builder
	for y, row := range cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			b.WriteString(r.RenderCell(c))
		}
	}
	return b.String()
}

// ButtonText is the unstyled text of a control button
func ButtonText(c controller.Control) string {
	return fmt.Sprintf(" %d %s ", c.ID, c.Label)
}

// ButtonAt returns the control under column x of the button bar
func ButtonAt(controls []controller.Control, x int) (controller.Control, bool) {
	pos := 0
	for _, c := range controls {
		w := lipgloss.Width(ButtonText(c))
		if x >= pos && x < pos+w {
			return c, true
		}
		pos += w + ButtonGap
	}
	return controller.Control{}, false
}

// RenderControls draws the button bar
func (r *CellRenderer) RenderControls(controls []controller.Control) string {
	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		style := r.styles.ButtonDisabled
		if c.Enabled {
			style = r.styles.ButtonEnabled
		}
		parts = append(parts, style.Render(ButtonText(c)))
	}
	return strings.Join(parts, strings.Repeat(" ", ButtonGap))
}
