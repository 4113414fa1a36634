// Package render draws grids and searches to the console, to images and to GeoJSON.
package render

import (
	geo "github.com/natevvv/grid-astar/pkg/geometry"
	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/path"
)

// Search is the read-only view of a search the renderers need.
type Search interface {
	Grid() *grid.Grid
	Classify(row, col int) path.Classification
	Iterations() int
	State() path.State
}

// Result adds the outcome of a search, as needed for exports.
type Result interface {
	Search
	Start() geo.Point
	Goal() geo.Point
	Path() []geo.Point
	PathLength() int
	PathCost() float64
}

// tileAt reads a tile of a point known to be inside g.
func tileAt(g *grid.Grid, row, col int) grid.Tile {
	tile, err := g.Get(row, col)
	if err != nil {
		panic(err)
	}
	return tile
}
