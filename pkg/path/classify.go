package path

import geo "github.com/natevvv/grid-astar/pkg/geometry"

// Classification is the role of a cell in the outcome of a search.
type Classification int

const (
	Outside Classification = iota
	Start
	Goal
	OnPath
	Frontier
	Visited
	Plain
)

func (c Classification) String() string {
	switch c {
	case Outside:
		return "OUTSIDE"
	case Start:
		return "START"
	case Goal:
		return "GOAL"
	case OnPath:
		return "PATH"
	case Frontier:
		return "FRONTIER"
	case Visited:
		return "VISITED"
	case Plain:
		return "PLAIN"
	}
	return "UNKNOWN"
}

// Classify reports the single role of a cell. When several apply, the first
// of Outside, Goal, Start, OnPath, Visited, Frontier wins; Plain otherwise.
func (a *AStar) Classify(row, col int) Classification {
	p := geo.MakePoint(row, col)
	if !a.g.Contains(p) {
		return Outside
	}
	if p == a.goal {
		return Goal
	}
	if p == a.start {
		return Start
	}
	c := a.cell(p)
	switch {
	case c.onPath:
		return OnPath
	case c.visited:
		return Visited
	case c.frontier:
		return Frontier
	}
	return Plain
}
