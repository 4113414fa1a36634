package path

import (
	"errors"
	"fmt"
	"log"

	geo "github.com/natevvv/grid-astar/pkg/geometry"
	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/queue"
	"github.com/natevvv/grid-astar/pkg/slice"
)

var (
	ErrInvalidStart      = errors.New("invalid start")
	ErrInvalidGoal       = errors.New("invalid goal")
	ErrInvalidCostFactor = errors.New("cost factor must be in (0, 10)")
	ErrSearchStarted     = errors.New("search already started")
)

const (
	DefaultCostFactor = 1.0
	MaxCostFactor     = 10.0
)

// State of a search. Transitions only move forward:
// Init -> Running -> Succeeded | Failed.
type State int

const (
	Init State = iota
	Running
	Succeeded
	Failed
)

func (s State) String() string {
	return [...]string{"INIT", "RUNNING", "SUCCEEDED", "FAILED"}[s%4]
}

// Settled reports whether the search reached a terminal state.
func (s State) Settled() bool {
	return s == Succeeded || s == Failed
}

type SearchKPIs struct {
	pqPops             int // number of expanded cells (equals the iteration count)
	pqUpdates          int // pushes and re-sifts on the open set
	relaxationAttempts int // neighbour cost evaluations
}

// AStar searches a least-cost 8-connected path on a borrowed grid.
// One instance handles exactly one start/goal pair; Resolve runs it to completion.
type AStar struct {
	g     *grid.Grid
	start geo.Point
	goal  geo.Point

	state      State
	current    *CellState  // last expanded cell, nil before the first expansion
	cells      []CellState // one entry per grid cell, indexed row-major
	openSet    *queue.MinHeap[*CellState]
	sequence   int
	costFactor float64

	pathLength int
	pathCost   float64
	path       []geo.Point

	searchKPIs SearchKPIs
	debugLevel int // debug level for logging purpose
}

// NewAStar binds a search to the grid, start and goal. Both points must lie
// on passable tiles.
func NewAStar(g *grid.Grid, start, goal geo.Point) (*AStar, error) {
	if !g.Contains(start) || g.IsBlocked(start) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStart, start)
	}
	if !g.Contains(goal) || g.IsBlocked(goal) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoal, goal)
	}

	cells := make([]CellState, g.Size())
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			p := geo.MakePoint(row, col)
			cells[g.Index(p)] = CellState{point: p, index: -1}
		}
	}

	return &AStar{
		g:          g,
		start:      start,
		goal:       goal,
		state:      Init,
		cells:      cells,
		openSet:    queue.NewMinHeap[*CellState](g.Size()),
		costFactor: DefaultCostFactor,
		pathCost:   -1,
	}, nil
}

// SetCostFactor scales the heuristic. Values above 1 make the search greedier
// and may yield more expensive paths. Out-of-range values are rejected and the
// previous factor is kept. The factor is fixed once the first Step ran.
func (a *AStar) SetCostFactor(factor float64) error {
	if a.state != Init {
		return fmt.Errorf("%w: state %v", ErrSearchStarted, a.state)
	}
	if !(factor > 0 && factor < MaxCostFactor) {
		return fmt.Errorf("%w: %v", ErrInvalidCostFactor, factor)
	}
	a.costFactor = factor
	return nil
}

func (a *AStar) SetDebugLevel(level int) {
	a.debugLevel = level
}

// Resolve runs the search until it succeeds or fails. Calling it on a
// settled search returns the settled state without side effects.
func (a *AStar) Resolve() State {
	for a.Step() == Running {
	}
	return a.state
}

// Step advances the search by one expansion. The first call only seeds the
// open set with the start cell.
func (a *AStar) Step() State {
	switch a.state {
	case Init:
		a.initializeSearch()
	case Running:
		a.iterate()
	}
	return a.state
}

func (a *AStar) initializeSearch() {
	if a.debugLevel >= 1 {
		log.Printf("New search: %v -> %v\n", a.start, a.goal)
	}
	a.state = Running
	startCell := a.cell(a.start)
	a.evaluate(startCell)
	a.enqueue(startCell)
	a.checkGoal()
}

func (a *AStar) iterate() {
	if a.openSet.Len() == 0 {
		a.state = Failed
		if a.debugLevel >= 1 {
			log.Printf("Finished search, no path found after %v iterations\n", a.searchKPIs.pqPops)
		}
		return
	}

	current := a.openSet.Pop()
	a.current = current
	a.searchKPIs.pqPops++
	current.visited = true
	if a.debugLevel >= 2 {
		log.Printf("Expanding %v, paid cost %v, predicted cost %v\n", current.point, current.paidCost, current.predictedCost)
	}

	for _, d := range geo.Directions {
		a.pushNext(current.point.Move(d))
	}

	a.checkGoal()
}

// checkGoal finishes the search as soon as the goal is queued, not when it is popped.
func (a *AStar) checkGoal() {
	if !a.cell(a.goal).InOpenSet() {
		return
	}
	a.resolvePath()
	a.state = Succeeded
	if a.debugLevel >= 1 {
		log.Printf("Found path %v -> %v with cost %v and length %v\n", a.start, a.goal, a.pathCost, a.pathLength)
	}
}

func (a *AStar) pushNext(p geo.Point) {
	if !a.g.Contains(p) || a.g.IsBlocked(p) {
		return
	}
	c := a.cell(p)
	if c.visited {
		return
	}
	a.evaluate(c)
	if c.InOpenSet() {
		a.openSet.Update(c)
		a.searchKPIs.pqUpdates++
	} else {
		a.enqueue(c)
	}
}

func (a *AStar) enqueue(c *CellState) {
	c.sequence = a.sequence
	a.sequence++
	a.openSet.Push(c)
	a.searchKPIs.pqUpdates++
	if a.debugLevel >= 2 {
		log.Printf("Enqueue %v\n", c.point)
	}
}

// evaluate recomputes the cost of c from every neighbour that already has a
// cost, so a cell reached from several sides always carries its cheapest arrival.
func (a *AStar) evaluate(c *CellState) {
	initialized := false
	for _, d := range geo.Directions {
		previous := c.point.Move(d.Reverse())
		if !a.g.Contains(previous) {
			continue
		}
		prev := a.cell(previous)
		if !prev.frontier {
			continue
		}
		a.searchKPIs.relaxationAttempts++
		if cost := prev.paidCost + d.Cost(); !initialized || cost < c.paidCost {
			initialized = true
			c.paidCost = cost
			c.direction = d
		}
	}
	c.predictedCost = c.paidCost + geo.Octile(c.point, a.goal)*a.costFactor
	c.frontier = true
	if a.debugLevel >= 3 {
		log.Printf("Evaluated %v %v, paid cost: %v, predicted cost: %v\n", c.direction, c.point, c.paidCost, c.predictedCost)
	}
}

// resolvePath walks the arrival directions back from the goal. Every step
// visits a distinct cell, so more steps than cells means the directions are corrupt.
func (a *AStar) resolvePath() {
	limit := a.g.Size()
	path := make([]geo.Point, 0)
	for p := a.goal; p != a.start; {
		if limit == 0 {
			panic(fmt.Sprintf("path reconstruction from %v exceeded %v cells", a.goal, a.g.Size()))
		}
		limit--
		c := a.cell(p)
		c.onPath = true
		path = append(path, p)
		p = p.Move(c.direction.Reverse())
		if !a.g.Contains(p) {
			panic(fmt.Sprintf("path reconstruction left the grid at %v", p))
		}
	}
	a.cell(a.start).onPath = true
	path = append(path, a.start)

	// reverse path (to create the correct direction)
	slice.ReverseInPlace(path)
	a.path = path
	a.pathLength = len(path)
	a.pathCost = a.cell(a.goal).paidCost
}

func (a *AStar) cell(p geo.Point) *CellState {
	return &a.cells[a.g.Index(p)]
}

// Cell returns a copy of the bookkeeping for p.
func (a *AStar) Cell(p geo.Point) (CellState, error) {
	if !a.g.Contains(p) {
		return CellState{}, fmt.Errorf("%w: %v", grid.ErrOutOfBounds, p)
	}
	return *a.cell(p), nil
}

// Current returns the cell expanded by the last Step, if any.
func (a *AStar) Current() (geo.Point, bool) {
	if a.current == nil {
		return geo.Point{}, false
	}
	return a.current.point, true
}

func (a *AStar) State() State        { return a.state }
func (a *AStar) Iterations() int     { return a.searchKPIs.pqPops }
func (a *AStar) Start() geo.Point    { return a.start }
func (a *AStar) Goal() geo.Point     { return a.goal }
func (a *AStar) Grid() *grid.Grid    { return a.g }
func (a *AStar) CostFactor() float64 { return a.costFactor }
func (a *AStar) OpenSetSize() int    { return a.openSet.Len() }

// PathLength is the number of cells on the path, 0 unless the search succeeded.
func (a *AStar) PathLength() int { return a.pathLength }

// PathCost is the cost of the found path, -1 unless the search succeeded.
func (a *AStar) PathCost() float64 { return a.pathCost }

// Path returns the cells from start to goal, empty unless the search succeeded.
func (a *AStar) Path() []geo.Point {
	path := make([]geo.Point, len(a.path))
	copy(path, a.path)
	return path
}

func (a *AStar) GetPqPops() int             { return a.searchKPIs.pqPops }
func (a *AStar) GetPqUpdates() int          { return a.searchKPIs.pqUpdates }
func (a *AStar) GetRelaxationAttempts() int { return a.searchKPIs.relaxationAttempts }
