package grid

import (
	"fmt"
	"math"
)

// DiagonalMovement controls which diagonal steps a search may take
type DiagonalMovement int

const (
	DiagonalAlways DiagonalMovement = iota
	DiagonalNever
	DiagonalIfAtMostOneObstacle
	DiagonalOnlyWhenNoObstacles
)

func (d DiagonalMovement) String() string {
	switch d {
	case DiagonalAlways:
		return "always"
	case DiagonalNever:
		return "never"
	case DiagonalIfAtMostOneObstacle:
		return "if-at-most-one-obstacle"
	case DiagonalOnlyWhenNoObstacles:
		return "only-when-no-obstacles"
	default:
		return fmt.Sprintf("DiagonalMovement(%d)", int(d))
	}
}

// DiagonalFor maps the allowDiagonal / dontCrossCorners option pair onto a policy
func DiagonalFor(allowDiagonal, dontCrossCorners bool) DiagonalMovement {
	switch {
	case !allowDiagonal:
		return DiagonalNever
	case dontCrossCorners:
		return DiagonalOnlyWhenNoObstacles
	default:
		return DiagonalIfAtMostOneObstacle
	}
}

// Point is a grid coordinate
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Path is an ordered list of coordinates from start to end. An empty path
// means the end was unreachable.
type Path []Point

// Empty reports whether no path was found
func (p Path) Empty() bool { return len(p) == 0 }

// Length is the sum of the Euclidean lengths of every segment
func (p Path) Length() float64 {
	var sum float64
	for i := 1; i < len(p); i++ {
		dx := float64(p[i].X - p[i-1].X)
		dy := float64(p[i].Y - p[i-1].Y)
		sum += math.Sqrt(dx*dx + dy*dy)
	}
	return sum
}

// Interpolate returns the cells on the Bresenham line from a to b, inclusive
func Interpolate(a, b Point) []Point {
	var line []Point
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	sx, sy := -1, -1
	if a.X < b.X {
		sx = 1
	}
	if a.Y < b.Y {
		sy = 1
	}
	e := dx - dy
	x, y := a.X, a.Y
	for {
		line = append(line, Point{x, y})
		if x == b.X && y == b.Y {
			break
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x += sx
		}
		if e2 < dx {
			e += dx
			y += sy
		}
	}
	return line
}

// ExpandPath fills in every cell between consecutive waypoints of a
// compressed path, such as the one produced by jump point search.
func ExpandPath(p Path) Path {
	if len(p) < 2 {
		return p
	}
	expanded := Path{}
	for i := 0; i < len(p)-1; i++ {
		seg := Interpolate(p[i], p[i+1])
		expanded = append(expanded, seg[:len(seg)-1]...)
	}
	return append(expanded, p[len(p)-1])
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
