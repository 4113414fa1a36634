package pbf

import (
	"errors"
	"math"

	geo "github.com/natevvv/grid-astar/pkg/geometry"
	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/paulmach/orb"
)

var ErrNoNodes = errors.New("no nodes imported")

// Rasterizer maps lon/lat points of a bounding box onto the cells of a grid,
// north up.
type Rasterizer struct {
	bound orb.Bound
	rows  int
	cols  int
}

func NewRasterizer(bound orb.Bound, rows, cols int) *Rasterizer {
	return &Rasterizer{bound: bound, rows: rows, cols: cols}
}

// Cell returns the grid cell of p. Points outside the bounds are clamped to the border.
func (r *Rasterizer) Cell(p orb.Point) geo.Point {
	col := scale(p.Lon(), r.bound.Min.Lon(), r.bound.Max.Lon(), r.cols)
	row := r.rows - 1 - scale(p.Lat(), r.bound.Min.Lat(), r.bound.Max.Lat(), r.rows)
	return geo.MakePoint(row, col)
}

func scale(value, min, max float64, cells int) int {
	if max <= min {
		return 0
	}
	index := int(math.Round((value - min) / (max - min) * float64(cells-1)))
	if index < 0 {
		return 0
	}
	if index >= cells {
		return cells - 1
	}
	return index
}

// Rasterize blocks every cell crossed by an obstacle. Single node obstacles block one cell.
func (r *Rasterizer) Rasterize(obstacles []Obstacle) (*grid.Grid, error) {
	g, err := grid.NewGrid(r.rows, r.cols)
	if err != nil {
		return nil, err
	}
	for _, obstacle := range obstacles {
		previous := r.Cell(obstacle.Points[0])
		if err := g.Set(previous.Row, previous.Col, grid.Blocked); err != nil {
			return nil, err
		}
		for _, p := range obstacle.Points[1:] {
			current := r.Cell(p)
			for _, cell := range Line(previous, current) {
				if err := g.Set(cell.Row, cell.Col, grid.Blocked); err != nil {
					return nil, err
				}
			}
			previous = current
		}
	}
	return g, nil
}

// Line returns the cells of the Bresenham line from a to b, both included.
func Line(a, b geo.Point) []geo.Point {
	dc := abs(b.Col - a.Col)
	dr := -abs(b.Row - a.Row)
	stepCol, stepRow := sign(b.Col-a.Col), sign(b.Row-a.Row)
	e := dc + dr

	cells := make([]geo.Point, 0, max(dc, -dr)+1)
	for p := a; ; {
		cells = append(cells, p)
		if p == b {
			break
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			p.Col += stepCol
		}
		if e2 <= dc {
			e += dc
			p.Row += stepRow
		}
	}
	return cells
}

// BuildGrid rasterises the obstacles of an import over the
// bounds of all of its nodes.
func BuildGrid(importer *ObstacleImporter, rows, cols int) (*grid.Grid, error) {
	if len(importer.nodes) == 0 {
		return nil, ErrNoNodes
	}
	return NewRasterizer(importer.Bounds(), rows, cols).Rasterize(importer.Obstacles())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
