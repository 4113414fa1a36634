package geometry

import (
	"fmt"
	"math"
)

// Unit move costs. The diagonal cost must stay above the parallel cost
// for the octile estimate to remain admissible.
const (
	ParallelCost float64 = 1
	DiagonalCost float64 = math.Sqrt2
)

// Point is a cell position on a grid. Components are signed so that a move
// off the top or left edge yields a negative value instead of wrapping.
type Point struct {
	Row int
	Col int
}

func MakePoint(row, col int) Point {
	return Point{Row: row, Col: col}
}

// Move returns the neighbour of p in direction d. The result may lie outside
// any grid; callers check bounds before using it.
func (p Point) Move(d Direction) Point {
	dr, dc := d.Delta()
	return Point{Row: p.Row + dr, Col: p.Col + dc}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Octile returns the octile distance between a and b: the cost of the
// cheapest 8-connected walk when no tile is blocked.
func Octile(a, b Point) float64 {
	rowDiff := abs(a.Row - b.Row)
	colDiff := abs(a.Col - b.Col)
	diagonal := rowDiff
	if colDiff < diagonal {
		diagonal = colDiff
	}
	parallel := rowDiff + colDiff - 2*diagonal
	return float64(diagonal)*DiagonalCost + float64(parallel)*ParallelCost
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
