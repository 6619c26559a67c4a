package controller

import (
	"pathviz/internal/domain"
	"pathviz/internal/grid"
	"pathviz/internal/oplog"
)

// RenderSink paints the grid. Pixel coordinates passed to the pointer
// methods are converted through ToGridCoordinate.
type RenderSink interface {
	SetAttributeAt(x, y int, attr oplog.Attribute, value bool)
	SetStartPos(x, y int)
	SetEndPos(x, y int)
	ClearFootprints()
	ClearPath()
	ClearBlockedNodes()
	DrawPath(path grid.Path)
	ShowStats(stats domain.Stats)
	ToGridCoordinate(px, py int) (x, y int)
}

// ControlSurface displays the control buttons
type ControlSurface interface {
	Refresh(state State, controls []Control)
}

// ControlID identifies one of the three control buttons
type ControlID int

const (
	ControlPrimary ControlID = iota + 1
	ControlSecondary
	ControlTertiary
)

const numControls = 3

// Control is the current label, availability and binding of a button
type Control struct {
	ID      ControlID
	Label   string
	Enabled bool
	// Event fires when the button is pressed; empty for none
	Event Event
}
