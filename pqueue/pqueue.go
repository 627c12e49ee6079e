package pqueue

import "container/heap"

// Edge is a weighted candidate contraction between vertices U and V.
// Stamp is an optional per-pair version counter; the adjacency-matrix
// solver uses it to invalidate superseded entries, the ANN-backed
// solvers leave it zero.
type Edge struct {
	U, V  int64
	W     float32
	Stamp uint32
}

// Queue is a max-heap of Edges keyed by weight. The zero value is ready
// to use.
type Queue struct {
	h edgeHeap
}

// New returns a queue with capacity pre-allocated for hint edges.
func New(hint int) *Queue {
	q := &Queue{h: make(edgeHeap, 0, hint)}

	return q
}

// Push inserts e into the queue.
func (q *Queue) Push(e Edge) {
	heap.Push(&q.h, e)
}

// Pop removes and returns the highest-weight edge. The boolean is false
// when the queue is empty.
func (q *Queue) Pop() (Edge, bool) {
	if len(q.h) == 0 {
		return Edge{}, false
	}

	return heap.Pop(&q.h).(Edge), true
}

// Len reports the number of queued edges, stale ones included.
func (q *Queue) Len() int { return len(q.h) }

// Prune drops every entry for which live returns false on either
// endpoint and re-heapifies the remainder in place.
func (q *Queue) Prune(live func(int64) bool) {
	kept := q.h[:0]
	for _, e := range q.h {
		if live(e.U) && live(e.V) {
			kept = append(kept, e)
		}
	}
	q.h = kept
	heap.Init(&q.h)
}

// edgeHeap implements heap.Interface with inverted ordering so that the
// highest weight surfaces first.
type edgeHeap []Edge

func (h edgeHeap) Len() int           { return len(h) }
func (h edgeHeap) Less(i, j int) bool { return h[i].W > h[j].W }
func (h edgeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *edgeHeap) Push(x interface{}) {
	*h = append(*h, x.(Edge))
}

func (h *edgeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]

	return e
}
