package grid

import (
	"github.com/cockroachdb/errors"
)

// ErrOutOfBounds is returned for coordinates outside the grid extent.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// Grid is a fixed-size walkability matrix. The zero value is not usable; use New.
type Grid struct {
	width  int
	height int
	cells  [][]bool // [y][x], true when walkable
}

// New creates a grid where every cell is walkable
func New(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([][]bool, height)
	for y := range cells {
		row := make([]bool, width)
		for x := range row {
			row[x] = true
		}
		cells[y] = row
	}
	return &Grid{width: width, height: height, cells: cells}
}

// FromMatrix builds a grid from rows of 0 (walkable) and 1 (blocked)
func FromMatrix(matrix [][]int) *Grid {
	height := len(matrix)
	width := 0
	if height > 0 {
		width = len(matrix[0])
	}
	g := New(width, height)
	for y, row := range matrix {
		for x := 0; x < width && x < len(row); x++ {
			g.cells[y][x] = row[x] == 0
		}
	}
	return g
}

// Width returns the number of columns
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows
func (g *Grid) Height() int { return g.height }

// Contains reports whether (x, y) lies inside the grid
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) check(x, y int) error {
	if !g.Contains(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "(%d,%d) outside %dx%d grid", x, y, g.width, g.height)
	}
	return nil
}

// IsWalkableAt reports whether the cell at (x, y) can be walked on
func (g *Grid) IsWalkableAt(x, y int) (bool, error) {
	if err := g.check(x, y); err != nil {
		return false, err
	}
	return g.cells[y][x], nil
}

// SetWalkableAt changes the walkability of a single cell
func (g *Grid) SetWalkableAt(x, y int, walkable bool) error {
	if err := g.check(x, y); err != nil {
		return err
	}
	g.cells[y][x] = walkable
	return nil
}

// Walkable is the search-side lookup: out-of-bounds cells are simply not walkable.
func (g *Grid) Walkable(x, y int) bool {
	return g.Contains(x, y) && g.cells[y][x]
}

// Clone returns a deep copy that can be mutated independently
func (g *Grid) Clone() *Grid {
	cells := make([][]bool, g.height)
	for y, row := range g.cells {
		cells[y] = append([]bool(nil), row...)
	}
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Blocked returns every non-walkable cell in row-major order
func (g *Grid) Blocked() []Point {
	var out []Point
	for y, row := range g.cells {
		for x, walkable := range row {
			if !walkable {
				out = append(out, Point{X: x, Y: y})
			}
		}
	}
	return out
}

// Neighbors returns the walkable neighbors of (x, y) allowed by the diagonal
// policy. Orthogonal neighbors come first (up, right, down, left), followed by
// the diagonals (up-left, up-right, down-right, down-left).
func (g *Grid) Neighbors(x, y int, diagonal DiagonalMovement) []Point {
	var (
		out            []Point
		s0, s1, s2, s3 bool
		d0, d1, d2, d3 bool
	)

	// ↑
	if g.Walkable(x, y-1) {
		out = append(out, Point{x, y - 1})
		s0 = true
	}
	// →
	if g.Walkable(x+1, y) {
		out = append(out, Point{x + 1, y})
		s1 = true
	}
	// ↓
	if g.Walkable(x, y+1) {
		out = append(out, Point{x, y + 1})
		s2 = true
	}
	// ←
	if g.Walkable(x-1, y) {
		out = append(out, Point{x - 1, y})
		s3 = true
	}

	switch diagonal {
	case DiagonalNever:
		return out
	case DiagonalOnlyWhenNoObstacles:
		d0, d1, d2, d3 = s3 && s0, s0 && s1, s1 && s2, s2 && s3
	case DiagonalIfAtMostOneObstacle:
		d0, d1, d2, d3 = s3 || s0, s0 || s1, s1 || s2, s2 || s3
	case DiagonalAlways:
		d0, d1, d2, d3 = true, true, true, true
	}

	// ↖
	if d0 && g.Walkable(x-1, y-1) {
		out = append(out, Point{x - 1, y - 1})
	}
	// ↗
	if d1 && g.Walkable(x+1, y-1) {
		out = append(out, Point{x + 1, y - 1})
	}
	// ↘
	if d2 && g.Walkable(x+1, y+1) {
		out = append(out, Point{x + 1, y + 1})
	}
	// ↙
	if d3 && g.Walkable(x-1, y+1) {
		out = append(out, Point{x - 1, y + 1})
	}
	return out
}
