package queue

import (
	"container/heap"
	"strings"
)

// MinHeap keeps Priorizable items ordered by priority, then by tiebreak,
// then by insertion sequence. All three keys are ascending, which makes the
// pop order fully deterministic.
type MinHeap[T Priorizable] struct {
	Queue PriorityQueue // hold the priority queue
}

// NewMinHeap returns an empty heap able to hold capacity items without growing.
func NewMinHeap[T Priorizable](capacity int) *MinHeap[T] {
	h := &MinHeap[T]{Queue: make(PriorityQueue, 0, capacity)}
	heap.Init(&h.Queue)
	return h
}

type Priorizable interface {
	Priority() float64
	Tiebreak() float64
	Sequence() int
	Index() int // position in the heap, -1 if not queued
	SetIndex(index int)
	String() string
}

// Implements heap.Interface
type PriorityQueue []Priorizable

func (q PriorityQueue) Len() int { return len(q) }
func (q PriorityQueue) Less(i, j int) bool {
	if pi, pj := q[i].Priority(), q[j].Priority(); pi != pj {
		return pi < pj
	}
	if ti, tj := q[i].Tiebreak(), q[j].Tiebreak(); ti != tj {
		return ti < tj
	}
	return q[i].Sequence() < q[j].Sequence()
}
func (q PriorityQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].SetIndex(i)
	q[j].SetIndex(j)
}
func (q *PriorityQueue) Push(item any) {
	n := len(*q)
	pqItem := item.(Priorizable)
	pqItem.SetIndex(n)
	*q = append(*q, pqItem)
}
func (q *PriorityQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.SetIndex(-1) // for safety
	*q = old[:n-1]
	return item
}

func (h *MinHeap[T]) Len() int      { return h.Queue.Len() }
func (h *MinHeap[T]) Push(item T)   { heap.Push(&h.Queue, item) }
func (h *MinHeap[T]) Pop() T        { return heap.Pop(&h.Queue).(T) }
func (h *MinHeap[T]) Update(item T) { heap.Fix(&h.Queue, item.Index()) }
func (h *MinHeap[T]) Peek() T       { return h.Queue[0].(T) }
func (h *MinHeap[T]) PeekAt(index int) T {
	if index >= h.Len() {
		panic("index out of bounds")
	}
	return h.Queue[index].(T)
}
func (h *MinHeap[T]) Remove(index int) { heap.Remove(&h.Queue, index) }

// Contains relies on the index bookkeeping: queued items carry their heap position.
func (h *MinHeap[T]) Contains(item T) bool {
	index := item.Index()
	return index >= 0 && index < h.Len() && h.Queue[index] == Priorizable(item)
}

func (h *MinHeap[T]) String() string {
	var sb strings.Builder
	for i := 0; i < h.Len(); i++ {
		item := h.PeekAt(i)
		sb.WriteString(item.String())
	}
	return sb.String()
}
