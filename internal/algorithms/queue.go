package algorithms

import (
	"container/heap"

	"github.com/fangj99/gifmaze/internal/grid"
)

// Refresher is the animation side of an algorithm run.
type Refresher interface {
	Refresh() error
	Flush() error
}

type edge struct {
	priority float64
	seq      int // insertion order breaks ties
	from, to grid.Cell
}

type edgeQueue struct {
	items []edge
	seq   int
}

func (q *edgeQueue) Len() int { return len(q.items) }

func (q *edgeQueue) Less(i, j int) bool {
	if q.items[i].priority != q.items[j].priority {
		return q.items[i].priority < q.items[j].priority
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *edgeQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *edgeQueue) Push(x any) { q.items = append(q.items, x.(edge)) }

func (q *edgeQueue) Pop() any {
	n := len(q.items)
	it := q.items[n-1]
	q.items = q.items[:n-1]
	return it
}

func (q *edgeQueue) push(priority float64, from, to grid.Cell) {
	q.seq++
	heap.Push(q, edge{priority: priority, seq: q.seq, from: from, to: to})
}

func (q *edgeQueue) pop() edge {
	return heap.Pop(q).(edge)
}
