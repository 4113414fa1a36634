package grid

import (
	"errors"
	"fmt"

	geo "github.com/natevvv/grid-astar/pkg/geometry"
)

var (
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
	ErrOutOfBounds       = errors.New("coordinate out of bounds")
)

type Tile uint8

const (
	Passable Tile = iota
	Blocked
)

func (t Tile) String() string {
	switch t {
	case Passable:
		return "Passable"
	case Blocked:
		return "Blocked"
	default:
		return "Invalid"
	}
}

// Grid is a fixed-size, row-major map of tiles.
// Searches borrow a grid and assume it is not modified while they run.
type Grid struct {
	rows  int
	cols  int
	tiles []Tile
}

// NewGrid creates a grid where every tile is passable.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %d x %d", ErrInvalidDimensions, rows, cols)
	}
	return &Grid{rows: rows, cols: cols, tiles: make([]Tile, rows*cols)}, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Size() int { return g.rows * g.cols }

// Contains checks the bounds explicitly on both sides, so a point produced
// by a move off the top or left edge is rejected.
func (g *Grid) Contains(p geo.Point) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Index returns the row-major offset of p. p must be contained in the grid.
func (g *Grid) Index(p geo.Point) int {
	return p.Row*g.cols + p.Col
}

func (g *Grid) Get(row, col int) (Tile, error) {
	p := geo.MakePoint(row, col)
	if !g.Contains(p) {
		return Blocked, fmt.Errorf("%w: %v in %d x %d grid", ErrOutOfBounds, p, g.rows, g.cols)
	}
	return g.tiles[g.Index(p)], nil
}

func (g *Grid) Set(row, col int, tile Tile) error {
	p := geo.MakePoint(row, col)
	if !g.Contains(p) {
		return fmt.Errorf("%w: %v in %d x %d grid", ErrOutOfBounds, p, g.rows, g.cols)
	}
	g.tiles[g.Index(p)] = tile
	return nil
}

// IsBlocked reports whether p is blocked. Points outside the grid count as blocked.
func (g *Grid) IsBlocked(p geo.Point) bool {
	if !g.Contains(p) {
		return true
	}
	return g.tiles[g.Index(p)] == Blocked
}

// Count returns how many tiles of the given kind the grid holds.
func (g *Grid) Count(tile Tile) int {
	count := 0
	for _, t := range g.tiles {
		if t == tile {
			count++
		}
	}
	return count
}

// Fill sets every tile of the rectangle spanned by the two corners (inclusive).
// Parts of the rectangle outside the grid are ignored.
func (g *Grid) Fill(from, to geo.Point, tile Tile) {
	minRow, maxRow := from.Row, to.Row
	if minRow > maxRow {
		minRow, maxRow = maxRow, minRow
	}
	minCol, maxCol := from.Col, to.Col
	if minCol > maxCol {
		minCol, maxCol = maxCol, minCol
	}
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if p := geo.MakePoint(row, col); g.Contains(p) {
				g.tiles[g.Index(p)] = tile
			}
		}
	}
}
