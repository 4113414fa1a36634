package geometry

// Direction is one of the 8 compass moves on a grid.
type Direction uint8

const (
	East Direction = iota
	South
	West
	North
	NorthEast
	SouthEast
	SouthWest
	NorthWest
)

// Directions lists every direction in the fixed enumeration order used for
// neighbour expansion. Searches rely on this order for reproducible tie-breaks.
var Directions = [8]Direction{East, South, West, North, NorthEast, SouthEast, SouthWest, NorthWest}

var directionDeltas = [8][2]int{
	East:      {0, 1},
	South:     {1, 0},
	West:      {0, -1},
	North:     {-1, 0},
	NorthEast: {-1, 1},
	SouthEast: {1, 1},
	SouthWest: {1, -1},
	NorthWest: {-1, -1},
}

var reverseDirections = [8]Direction{
	East:      West,
	South:     North,
	West:      East,
	North:     South,
	NorthEast: SouthWest,
	SouthEast: NorthWest,
	SouthWest: NorthEast,
	NorthWest: SouthEast,
}

var directionGlyphs = [8]string{
	East:      "→",
	South:     "↓",
	West:      "←",
	North:     "↑",
	NorthEast: "↗",
	SouthEast: "↘",
	SouthWest: "↙",
	NorthWest: "↖",
}

// Delta returns the (row, col) offset of a single move.
func (d Direction) Delta() (int, int) {
	delta := directionDeltas[d%8]
	return delta[0], delta[1]
}

func (d Direction) Reverse() Direction {
	return reverseDirections[d%8]
}

func (d Direction) IsDiagonal() bool {
	dr, dc := d.Delta()
	return dr != 0 && dc != 0
}

// Cost of a single move in this direction.
func (d Direction) Cost() float64 {
	if d.IsDiagonal() {
		return DiagonalCost
	}
	return ParallelCost
}

func (d Direction) String() string {
	return directionGlyphs[d%8]
}

// DirectionBetween returns the direction leading from one point to an
// adjacent one. ok is false if the points are equal or not adjacent.
func DirectionBetween(from, to Point) (d Direction, ok bool) {
	dr, dc := to.Row-from.Row, to.Col-from.Col
	for _, candidate := range Directions {
		cr, cc := candidate.Delta()
		if cr == dr && cc == dc {
			return candidate, true
		}
	}
	return East, false
}
