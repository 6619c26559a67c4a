package controller

import (
	"log"

	"github.com/cockroachdb/errors"

	"pathviz/internal/grid"
	"pathviz/internal/oplog"
)

// MouseDown picks the editing mode for the cell under the pointer
func (c *Controller) MouseDown(px, py int) {
	x, y := c.sink.ToGridCoordinate(px, py)
	if !c.grid.Contains(x, y) {
		return
	}
	c.flushPendingReset()
	p := grid.Point{X: x, Y: y}

	switch {
	case p == c.start && c.Can(EventDragStart):
		_ = c.Fire(EventDragStart)
	case p == c.end && c.Can(EventDragEnd):
		_ = c.Fire(EventDragEnd)
	case c.grid.Walkable(x, y) && c.Can(EventDrawWall):
		if c.Fire(EventDrawWall) == nil {
			c.setWalkableAt(x, y, false)
		}
	case !c.grid.Walkable(x, y) && c.Can(EventEraseWall):
		if c.Fire(EventEraseWall) == nil {
			c.setWalkableAt(x, y, true)
		}
	}
}

// MouseMove applies the current editing mode to the cell under the pointer
func (c *Controller) MouseMove(px, py int) {
	x, y := c.sink.ToGridCoordinate(px, py)
	if !c.grid.Contains(x, y) || c.isStartOrEndPos(x, y) {
		return
	}

	switch c.State() {
	case StateDraggingStart:
		if c.grid.Walkable(x, y) {
			c.setStartPos(x, y)
		}
	case StateDraggingEnd:
		if c.grid.Walkable(x, y) {
			c.setEndPos(x, y)
		}
	case StateDrawingWall:
		c.setWalkableAt(x, y, false)
	case StateErasingWall:
		c.setWalkableAt(x, y, true)
	}
}

// MouseUp leaves the editing mode
func (c *Controller) MouseUp() {
	if c.Can(EventRest) {
		_ = c.Fire(EventRest)
	}
}

// MoveStart relocates the start marker outside of a pointer gesture. It is
// allowed wherever a drag could begin.
func (c *Controller) MoveStart(x, y int) error {
	if err := c.checkEndpointMove(EventDragStart, x, y); err != nil {
		return err
	}
	c.setStartPos(x, y)
	return nil
}

// MoveEnd relocates the end marker outside of a pointer gesture
func (c *Controller) MoveEnd(x, y int) error {
	if err := c.checkEndpointMove(EventDragEnd, x, y); err != nil {
		return err
	}
	c.setEndPos(x, y)
	return nil
}

func (c *Controller) checkEndpointMove(ev Event, x, y int) error {
	if !c.Can(ev) {
		return errors.Wrapf(ErrIllegalTransition, "%s in state %s", ev, c.State())
	}
	c.flushPendingReset()
	walkable, err := c.grid.IsWalkableAt(x, y)
	if err != nil {
		return err
	}
	if !walkable || c.isStartOrEndPos(x, y) {
		return errors.Wrapf(ErrBlockedCell, "(%d,%d)", x, y)
	}
	return nil
}

// SetWalkableAt edits a wall outside of a pointer gesture. It is allowed
// wherever a wall could be drawn; the endpoints cannot be blocked.
func (c *Controller) SetWalkableAt(x, y int, walkable bool) error {
	if !c.Can(EventDrawWall) {
		return errors.Wrapf(ErrIllegalTransition, "edit in state %s", c.State())
	}
	if !c.grid.Contains(x, y) {
		return errors.Wrapf(grid.ErrOutOfBounds, "(%d,%d)", x, y)
	}
	c.flushPendingReset()
	if c.isStartOrEndPos(x, y) {
		return errors.Wrapf(ErrBlockedCell, "(%d,%d) is an endpoint", x, y)
	}
	c.setWalkableAt(x, y, walkable)
	return nil
}

func (c *Controller) setWalkableAt(x, y int, walkable bool) {
	if err := c.grid.SetWalkableAt(x, y, walkable); err != nil {
		log.Printf("controller: %v", err)
		return
	}
	c.sink.SetAttributeAt(x, y, oplog.Walkable, walkable)
}

func (c *Controller) setStartPos(x, y int) {
	c.start = grid.Point{X: x, Y: y}
	c.sink.SetStartPos(x, y)
}

func (c *Controller) setEndPos(x, y int) {
	c.end = grid.Point{X: x, Y: y}
	c.sink.SetEndPos(x, y)
}

func (c *Controller) isStartOrEndPos(x, y int) bool {
	p := grid.Point{X: x, Y: y}
	return p == c.start || p == c.end
}

// setDefaultStartEndPos puts the endpoints on either side of the grid centre
func (c *Controller) setDefaultStartEndPos() {
	cols, rows := c.grid.Width(), c.grid.Height()
	cx, cy := (cols+1)/2, rows/2

	start := grid.Point{X: clamp(cx-2, 0, cols-1), Y: cy}
	end := grid.Point{X: clamp(cx+8, 0, cols-1), Y: cy}
	if start == end {
		end = grid.Point{X: cols - 1, Y: rows - 1}
	}
	c.setStartPos(start.X, start.Y)
	c.setEndPos(end.X, end.Y)
}

// drawDemoWall draws a short vertical wall between the default endpoints
func (c *Controller) drawDemoWall() {
	x := c.start.X + 5
	for y := c.start.Y - 2; y <= c.start.Y+2; y++ {
		if c.grid.Contains(x, y) && !c.isStartOrEndPos(x, y) {
			c.setWalkableAt(x, y, false)
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
