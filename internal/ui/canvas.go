package ui

import (
	"fmt"
	"time"

	"pathviz/internal/controller"
	"pathviz/internal/domain"
	"pathviz/internal/grid"
	"pathviz/internal/oplog"
	"pathviz/internal/ui/views"
)

// Canvas is the terminal rendition of the grid. It receives paint calls
// from the controller and the playback engine and keeps the cell state
// the view draws from.
type Canvas struct {
	cols      int
	rows      int
	cellWidth int
	colorize  time.Duration
	now       func() time.Time

	cells      [][]views.Cell
	dirty      map[grid.Point]struct{}
	flashUntil map[grid.Point]time.Time
	start      grid.Point
	end        grid.Point

	state    controller.State
	controls []controller.Control
	stats    *domain.Stats
}

// NewCanvas creates a blank canvas of cols×rows cells
func NewCanvas(cols, rows, cellWidth int, colorize time.Duration) *Canvas {
	if cellWidth < 1 {
		cellWidth = 1
	}
	c := &Canvas{
		cols:       cols,
		rows:       rows,
		cellWidth:  cellWidth,
		colorize:   colorize,
		now:        time.Now,
		dirty:      make(map[grid.Point]struct{}),
		flashUntil: make(map[grid.Point]time.Time),
	}
	c.cells = make([][]views.Cell, rows)
	for y := range c.cells {
		c.cells[y] = make([]views.Cell, cols)
	}
	return c
}

func (c *Canvas) cell(x, y int) *views.Cell {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return nil
	}
	return &c.cells[y][x]
}

// SetAttributeAt paints one recorded attribute write
func (c *Canvas) SetAttributeAt(x, y int, attr oplog.Attribute, value bool) {
	cell := c.cell(x, y)
	if cell == nil {
		return
	}
	switch attr {
	case oplog.Walkable:
		cell.Blocked = !value
		return
	case oplog.Opened:
		cell.Opened = value
	case oplog.Closed:
		cell.Closed = value
	case oplog.Tested:
		cell.Tested = value
	default:
		return
	}
	c.dirty[grid.Point{X: x, Y: y}] = struct{}{}
	if value && c.colorize > 0 {
		c.flashUntil[grid.Point{X: x, Y: y}] = c.now().Add(c.colorize)
	}
}

func (c *Canvas) SetStartPos(x, y int) {
	if old := c.cell(c.start.X, c.start.Y); old != nil {
		old.Start = false
	}
	c.start = grid.Point{X: x, Y: y}
	if cell := c.cell(x, y); cell != nil {
		cell.Start = true
	}
}

func (c *Canvas) SetEndPos(x, y int) {
	if old := c.cell(c.end.X, c.end.Y); old != nil {
		old.End = false
	}
	c.end = grid.Point{X: x, Y: y}
	if cell := c.cell(x, y); cell != nil {
		cell.End = true
	}
}

// ClearFootprints erases every search mark and the drawn path
func (c *Canvas) ClearFootprints() {
	for p := range c.dirty {
		cell := &c.cells[p.Y][p.X]
		cell.Opened, cell.Closed, cell.Tested, cell.Path = false, false, false, false
	}
	c.dirty = make(map[grid.Point]struct{})
	c.flashUntil = make(map[grid.Point]time.Time)
	c.stats = nil
}

func (c *Canvas) ClearPath() {
	c.each(func(cell *views.Cell) { cell.Path = false })
}

func (c *Canvas) ClearBlockedNodes() {
	c.each(func(cell *views.Cell) { cell.Blocked = false })
}

func (c *Canvas) each(fn func(*views.Cell)) {
	for y := range c.cells {
		for x := range c.cells[y] {
			fn(&c.cells[y][x])
		}
	}
}

// DrawPath marks every cell the path passes through
func (c *Canvas) DrawPath(path grid.Path) {
	for _, p := range grid.ExpandPath(path) {
		if cell := c.cell(p.X, p.Y); cell != nil {
			cell.Path = true
			c.dirty[p] = struct{}{}
		}
	}
}

func (c *Canvas) ShowStats(stats domain.Stats) {
	c.stats = &stats
}

// ToGridCoordinate maps a terminal cell to a grid cell. Positions above or
// left of the grid map to -1.
func (c *Canvas) ToGridCoordinate(px, py int) (int, int) {
	if px < 0 || py < views.GridTop {
		return -1, -1
	}
	return px / c.cellWidth, py - views.GridTop
}

// Refresh records the controls to draw in the button bar
func (c *Canvas) Refresh(state controller.State, controls []controller.Control) {
	c.state = state
	c.controls = controls
}

// ButtonAt returns the enabled or disabled control under a terminal cell
func (c *Canvas) ButtonAt(px, py int) (controller.Control, bool) {
	if py != views.BarRow {
		return controller.Control{}, false
	}
	return views.ButtonAt(c.controls, px)
}

// Cells returns a snapshot with the colorize flash applied
func (c *Canvas) Cells() [][]views.Cell {
	now := c.now()
	out := make([][]views.Cell, len(c.cells))
	for y, row := range c.cells {
		out[y] = append([]views.Cell(nil), row...)
	}
	for p, until := range c.flashUntil {
		if now.Before(until) {
			out[p.Y][p.X].Flash = true
		} else {
			delete(c.flashUntil, p)
		}
	}
	return out
}

// Flashing reports whether any cell is still inside its colorize effect
func (c *Canvas) Flashing() bool { return len(c.flashUntil) > 0 }

// StatsLine formats the result of the last finished search
func (c *Canvas) StatsLine() string {
	if c.stats == nil {
		return ""
	}
	return FormatStats(*c.stats)
}

// FormatStats renders stats as shown under the grid
func FormatStats(s domain.Stats) string {
	ms := float64(s.TimeSpent.Microseconds()) / 1000
	if s.Unreachable {
		return fmt.Sprintf("No path found | time: %.4fms | operations: %d", ms, s.OperationCount)
	}
	return fmt.Sprintf("length: %.2f | nodes: %d | time: %.4fms | operations: %d",
		s.PathLength, s.PathNodes, ms, s.OperationCount)
}
