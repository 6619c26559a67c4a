package domain

import "fmt"

// Position is a cell coordinate as reported in events
type Position struct {
	X, Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
