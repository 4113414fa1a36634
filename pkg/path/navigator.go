package path

import (
	geo "github.com/natevvv/grid-astar/pkg/geometry"
	"github.com/natevvv/grid-astar/pkg/grid"
)

type Navigator interface {
	ComputeShortestPath(origin, destination geo.Point) (float64, error) // Compute the shortest path from the origin to the destination. Returns -1 if no path exists
	GetPath(origin, destination geo.Point) []geo.Point                  // Get the path of a previous computation, from origin to destination. Empty if there was none
	GetPqPops() int                                                     // Returns the amount of priority queue/heap pops which were performed during the search
	GetPqUpdates() int                                                  // Get the number of pq pushes and updates
	GetRelaxationAttempts() int                                         // Get the number of neighbour cost evaluations
	GetGrid() *grid.Grid                                                // Get the used grid
}

// AStarNavigator runs a fresh AStar for every query on the same grid.
type AStarNavigator struct {
	g          *grid.Grid
	costFactor float64
	debugLevel int
	last       *AStar
}

func NewAStarNavigator(g *grid.Grid) *AStarNavigator {
	return &AStarNavigator{g: g, costFactor: DefaultCostFactor}
}

func (n *AStarNavigator) SetCostFactor(factor float64) error {
	if !(factor > 0 && factor < MaxCostFactor) {
		return ErrInvalidCostFactor
	}
	n.costFactor = factor
	return nil
}

func (n *AStarNavigator) SetDebugLevel(level int) {
	n.debugLevel = level
}

func (n *AStarNavigator) ComputeShortestPath(origin, destination geo.Point) (float64, error) {
	a, err := NewAStar(n.g, origin, destination)
	if err != nil {
		return -1, err
	}
	if err := a.SetCostFactor(n.costFactor); err != nil {
		return -1, err
	}
	a.SetDebugLevel(n.debugLevel)
	n.last = a
	a.Resolve()
	return a.PathCost(), nil
}

func (n *AStarNavigator) GetPath(origin, destination geo.Point) []geo.Point {
	if n.last == nil || n.last.Start() != origin || n.last.Goal() != destination {
		return make([]geo.Point, 0)
	}
	return n.last.Path()
}

// Search returns the engine of the last computation, nil before the first one.
func (n *AStarNavigator) Search() *AStar { return n.last }

func (n *AStarNavigator) GetPqPops() int             { return n.kpi((*AStar).GetPqPops) }
func (n *AStarNavigator) GetPqUpdates() int          { return n.kpi((*AStar).GetPqUpdates) }
func (n *AStarNavigator) GetRelaxationAttempts() int { return n.kpi((*AStar).GetRelaxationAttempts) }
func (n *AStarNavigator) GetGrid() *grid.Grid        { return n.g }

func (n *AStarNavigator) kpi(get func(*AStar) int) int {
	if n.last == nil {
		return 0
	}
	return get(n.last)
}
