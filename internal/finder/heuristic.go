package finder

import "math"

// Heuristic estimates the remaining distance from axis deltas
type Heuristic func(dx, dy float64) float64

// HeuristicName is the configuration name of a heuristic
type HeuristicName string

const (
	Manhattan HeuristicName = "manhattan"
	Euclidean HeuristicName = "euclidean"
	Octile    HeuristicName = "octile"
	Chebyshev HeuristicName = "chebyshev"
)

// HeuristicNames lists the heuristics in panel order
var HeuristicNames = []HeuristicName{Manhattan, Euclidean, Octile, Chebyshev}

var heuristics = map[HeuristicName]Heuristic{
	Manhattan: func(dx, dy float64) float64 { return dx + dy },
	Euclidean: func(dx, dy float64) float64 { return math.Sqrt(dx*dx + dy*dy) },
	Octile: func(dx, dy float64) float64 {
		f := math.Sqrt2 - 1
		if dx < dy {
			return f*dx + dy
		}
		return f*dy + dx
	},
	Chebyshev: func(dx, dy float64) float64 { return math.Max(dx, dy) },
}

// HeuristicFor returns the named heuristic, falling back to manhattan
func HeuristicFor(name HeuristicName) Heuristic {
	if h, ok := heuristics[name]; ok {
		return h
	}
	return heuristics[Manhattan]
}
