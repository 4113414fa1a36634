package mapgen

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	geo "github.com/natevvv/grid-astar/pkg/geometry"
	"github.com/natevvv/grid-astar/pkg/grid"
)

const (
	DefaultEmptyRatio = 0.54321
	maxTries          = 1000 // attempts to find a passable cell before giving up
)

var (
	ErrInvalidRatio = errors.New("empty ratio must be in [0, 1]")
	ErrNoEmptyPoint = errors.New("no empty point found")
)

// Generator draws random maps and points from its own source, so a fixed seed
// reproduces the same maps.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator uses rng, or a time-seeded source if rng is nil.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// NewSeededGenerator is a shorthand for a generator on rand.NewSource(seed).
// A seed of 0 picks a time-based one.
func NewSeededGenerator(seed int64) *Generator {
	if seed == 0 {
		return NewGenerator(nil)
	}
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

// Generate marks every tile Passable with probability emptyRatio, Blocked otherwise.
func (gen *Generator) Generate(rows, cols int, emptyRatio float64) (*grid.Grid, error) {
	if emptyRatio < 0 || emptyRatio > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRatio, emptyRatio)
	}
	g, err := grid.NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if gen.rng.Float64() >= emptyRatio {
				if err := g.Set(row, col, grid.Blocked); err != nil {
					return nil, err
				}
			}
		}
	}
	return g, nil
}

// EmptyPoint returns a random Passable cell other than except.
func (gen *Generator) EmptyPoint(g *grid.Grid, except geo.Point) (geo.Point, error) {
	for i := 0; i < maxTries; i++ {
		p := geo.MakePoint(gen.rng.Intn(g.Rows()), gen.rng.Intn(g.Cols()))
		if p != except && !g.IsBlocked(p) {
			return p, nil
		}
	}
	return geo.Point{}, fmt.Errorf("%w after %v tries", ErrNoEmptyPoint, maxTries)
}

// Target is a start/goal pair.
type Target struct {
	Origin      geo.Point
	Destination geo.Point
}

// Targets draws n start/goal pairs of distinct Passable cells.
func (gen *Generator) Targets(g *grid.Grid, n int) ([]Target, error) {
	targets := make([]Target, 0, n)
	outside := geo.MakePoint(-1, -1)
	for i := 0; i < n; i++ {
		origin, err := gen.EmptyPoint(g, outside)
		if err != nil {
			return nil, err
		}
		destination, err := gen.EmptyPoint(g, origin)
		if err != nil {
			return nil, err
		}
		targets = append(targets, Target{Origin: origin, Destination: destination})
	}
	return targets, nil
}
