package queue

import (
	"container/heap"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	name     string
	priority float64
	tiebreak float64
	sequence int
	index    int
}

func (i *testItem) Priority() float64  { return i.priority }
func (i *testItem) Tiebreak() float64  { return i.tiebreak }
func (i *testItem) Sequence() int      { return i.sequence }
func (i *testItem) Index() int         { return i.index }
func (i *testItem) SetIndex(index int) { i.index = index }
func (i *testItem) String() string     { return fmt.Sprintf("%v: %v\n", i.index, i.name) }

func newTestItem(name string, priority, tiebreak float64, sequence int) *testItem {
	return &testItem{name: name, priority: priority, tiebreak: tiebreak, sequence: sequence, index: -1}
}

func popAll(h *MinHeap[*testItem]) []string {
	names := make([]string, 0, h.Len())
	for h.Len() > 0 {
		names = append(names, h.Pop().name)
	}
	return names
}

func TestMinHeapOrder(t *testing.T) {
	h := NewMinHeap[*testItem](8)
	h.Push(newTestItem("c", 3, 0, 0))
	h.Push(newTestItem("a", 1, 0, 1))
	h.Push(newTestItem("b", 2, 0, 2))

	assert.Equal(t, "a", h.Peek().name)
	assert.Equal(t, []string{"a", "b", "c"}, popAll(h))
}

func TestMinHeapTiebreak(t *testing.T) {
	h := NewMinHeap[*testItem](8)
	h.Push(newTestItem("late", 5, 1, 3))
	h.Push(newTestItem("cheap", 5, 0.5, 4))
	h.Push(newTestItem("early", 5, 1, 1))
	h.Push(newTestItem("first", 4, 9, 9))

	assert.Equal(t, []string{"first", "cheap", "early", "late"}, popAll(h))
}

func TestMinHeapUpdateAndContains(t *testing.T) {
	h := NewMinHeap[*testItem](8)
	a := newTestItem("a", 1, 0, 0)
	b := newTestItem("b", 2, 0, 1)
	c := newTestItem("c", 3, 0, 2)
	outside := newTestItem("outside", 0, 0, 3)
	h.Push(a)
	h.Push(b)
	h.Push(c)

	assert.True(t, h.Contains(c))
	assert.False(t, h.Contains(outside))

	c.priority = 0.5
	h.Update(c)
	require.Equal(t, "c", h.Peek().name)

	popped := h.Pop()
	assert.Equal(t, -1, popped.Index())
	assert.False(t, h.Contains(popped))
	assert.Equal(t, []string{"a", "b"}, popAll(h))
}

func TestMinHeapRemove(t *testing.T) {
	h := NewMinHeap[*testItem](4)
	a := newTestItem("a", 1, 0, 0)
	b := newTestItem("b", 2, 0, 1)
	h.Push(a)
	h.Push(b)
	h.Remove(a.Index())
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, "b", h.Peek().name)
	assert.Panics(t, func() { h.PeekAt(5) })
}

func TestQueue(t *testing.T) {
	pq := NewQueue(NewQueueItem(7, 2, -1))
	far := NewQueueItem(3, 5, 7)
	heap.Push(pq, far)
	heap.Push(pq, NewQueueItem(1, 2, 7))

	pq.Update(far, 1)

	order := make([]int, 0, 3)
	for pq.Len() > 0 {
		order = append(order, heap.Pop(pq).(*Item).ItemId)
	}
	assert.Equal(t, []int{3, 1, 7}, order)
}
