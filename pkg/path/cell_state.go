package path

import (
	"fmt"

	geo "github.com/natevvv/grid-astar/pkg/geometry"
)

// CellState is the per-cell bookkeeping of an A* search.
// implements queue.Priorizable
type CellState struct {
	point         geo.Point
	frontier      bool          // cost was evaluated at least once; stays set after expansion
	visited       bool          // expanded, never queued again
	onPath        bool          // part of the reconstructed path
	direction     geo.Direction // direction of the cheapest known arrival
	paidCost      float64       // g-score
	predictedCost float64       // f-score
	sequence      int           // insertion order into the open set
	index         int           // internal usage, -1 if not queued
}

func (c *CellState) Point() geo.Point                { return c.point }
func (c *CellState) Frontier() bool                  { return c.frontier }
func (c *CellState) Visited() bool                   { return c.visited }
func (c *CellState) OnPath() bool                    { return c.onPath }
func (c *CellState) ArrivalDirection() geo.Direction { return c.direction }
func (c *CellState) PaidCost() float64               { return c.paidCost }
func (c *CellState) PredictedCost() float64          { return c.predictedCost }
func (c *CellState) InOpenSet() bool                 { return c.index >= 0 }

func (c *CellState) Priority() float64  { return c.predictedCost }
func (c *CellState) Tiebreak() float64  { return c.paidCost }
func (c *CellState) Sequence() int      { return c.sequence }
func (c *CellState) Index() int         { return c.index }
func (c *CellState) SetIndex(index int) { c.index = index }
func (c *CellState) String() string {
	return fmt.Sprintf("%v: %v %v, %v\n", c.index, c.point, c.direction, c.predictedCost)
}
