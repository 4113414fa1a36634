// SPDX-License-Identifier: MIT

package openapi_server

import (
	geo "github.com/natevvv/grid-astar/pkg/geometry"
	"github.com/natevvv/grid-astar/pkg/path"
)

type Cell struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Class string `json:"class"`
}

type SearchSpace struct {
	Cells []Cell `json:"cells"`
}

// SearchSnapshot is streamed after every step of a search. Cells holds the
// cells whose classification may have changed with that step.
type SearchSnapshot struct {
	Iteration   int    `json:"iteration"`
	State       string `json:"state"`
	OpenSetSize int    `json:"openSetSize"`
	Cells       []Cell `json:"cells"`
	Path        *Path  `json:"path,omitempty"`
}

func newCell(a *path.AStar, p geo.Point) Cell {
	return Cell{Row: p.Row, Col: p.Col, Class: a.Classify(p.Row, p.Col).String()}
}

// newSearchSpace lists every cell the search has touched.
func newSearchSpace(a *path.AStar) SearchSpace {
	g := a.Grid()
	cells := make([]Cell, 0)
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			if class := a.Classify(row, col); class != path.Plain {
				cells = append(cells, Cell{Row: row, Col: col, Class: class.String()})
			}
		}
	}
	return SearchSpace{Cells: cells}
}

func newSearchSnapshot(a *path.AStar) SearchSnapshot {
	snapshot := SearchSnapshot{
		Iteration:   a.Iterations(),
		State:       a.State().String(),
		OpenSetSize: a.OpenSetSize(),
		Cells:       make([]Cell, 0),
	}
	if current, ok := a.Current(); ok {
		snapshot.Cells = append(snapshot.Cells, newCell(a, current))
		for _, d := range geo.Directions {
			if next := current.Move(d); a.Grid().Contains(next) && !a.Grid().IsBlocked(next) {
				snapshot.Cells = append(snapshot.Cells, newCell(a, next))
			}
		}
	} else {
		snapshot.Cells = append(snapshot.Cells, newCell(a, a.Start()))
	}
	if a.State() == path.Succeeded {
		snapshot.Path = newPath(a)
	}
	return snapshot
}

func newPath(a *path.AStar) *Path {
	return &Path{Length: a.PathLength(), Cost: a.PathCost(), Waypoints: newPoints(a.Path())}
}
