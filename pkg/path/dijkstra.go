package path

import (
	"container/heap"
	"fmt"

	geo "github.com/natevvv/grid-astar/pkg/geometry"
	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/queue"
	"github.com/natevvv/grid-astar/pkg/slice"
)

// Dijkstra is the uninformed reference search over the same 8-connected grid
// and step costs as AStar.
type Dijkstra struct {
	g                  *grid.Grid
	dijkstraItems      []*queue.Item
	pqPops             int
	pqUpdates          int
	relaxationAttempts int
}

func NewDijkstra(g *grid.Grid) *Dijkstra {
	return &Dijkstra{g: g}
}

func (d *Dijkstra) ComputeShortestPath(origin, destination geo.Point) (float64, error) {
	if !d.g.Contains(origin) || d.g.IsBlocked(origin) {
		return -1, fmt.Errorf("%w: %v", ErrInvalidStart, origin)
	}
	if !d.g.Contains(destination) || d.g.IsBlocked(destination) {
		return -1, fmt.Errorf("%w: %v", ErrInvalidGoal, destination)
	}

	d.dijkstraItems = make([]*queue.Item, d.g.Size())
	originId := d.g.Index(origin)
	destinationId := d.g.Index(destination)
	d.dijkstraItems[originId] = queue.NewQueueItem(originId, 0, -1)

	pq := queue.NewQueue(d.dijkstraItems[originId])

	d.pqPops = 0
	d.pqUpdates = 1
	d.relaxationAttempts = 0

	settled := make([]bool, d.g.Size())
	for pq.Len() > 0 {
		currentPqItem := heap.Pop(pq).(*queue.Item)
		currentId := currentPqItem.ItemId
		settled[currentId] = true
		d.pqPops++

		if currentId == destinationId {
			break
		}

		current := d.point(currentId)
		for _, dir := range geo.Directions {
			next := current.Move(dir)
			if !d.g.Contains(next) || d.g.IsBlocked(next) {
				continue
			}
			successor := d.g.Index(next)
			if settled[successor] {
				continue
			}
			d.relaxationAttempts++
			newPriority := currentPqItem.Priority + dir.Cost()

			if d.dijkstraItems[successor] == nil {
				pqItem := queue.NewQueueItem(successor, newPriority, currentId)
				d.dijkstraItems[successor] = pqItem
				heap.Push(pq, pqItem)
				d.pqUpdates++
			} else if newPriority < d.dijkstraItems[successor].Priority {
				pq.Update(d.dijkstraItems[successor], newPriority)
				d.pqUpdates++
				d.dijkstraItems[successor].Predecessor = currentId
			}
		}
	}

	length := -1.0 // by default a non-existing path has length -1
	if settled[destinationId] {
		length = d.dijkstraItems[destinationId].Priority
	}
	return length, nil
}

func (d *Dijkstra) GetPath(origin, destination geo.Point) []geo.Point {
	path := make([]geo.Point, 0) // by default, a non-existing path is an empty slice
	if d.dijkstraItems == nil || !d.g.Contains(origin) || !d.g.Contains(destination) {
		return path
	}
	originId := d.g.Index(origin)
	item := d.dijkstraItems[d.g.Index(destination)]
	if item == nil || d.dijkstraItems[originId] == nil || d.dijkstraItems[originId].Predecessor != -1 {
		return path
	}
	for id := item.ItemId; id != -1; id = d.dijkstraItems[id].Predecessor {
		path = append(path, d.point(id))
	}
	slice.ReverseInPlace(path)
	return path
}

func (d *Dijkstra) point(id int) geo.Point {
	return geo.MakePoint(id/d.g.Cols(), id%d.g.Cols())
}

func (d *Dijkstra) GetPqPops() int             { return d.pqPops }
func (d *Dijkstra) GetPqUpdates() int          { return d.pqUpdates }
func (d *Dijkstra) GetRelaxationAttempts() int { return d.relaxationAttempts }
func (d *Dijkstra) GetGrid() *grid.Grid        { return d.g }
