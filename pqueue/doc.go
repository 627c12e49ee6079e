// Package pqueue implements the max-heap of candidate contraction edges
// used by the GAEC drivers.
//
// Entries are (weight, vertex pair) tuples. The queue is deliberately
// lazy: an entry is allowed to outlive its endpoints — drivers detect
// staleness at pop time by checking the endpoints' active flags, the
// same lazy decrease-key strategy the classic heap-based shortest-path
// loop uses. Prune rebuilds the heap from only the entries whose
// endpoints are still live, bounding memory when the queue grows far
// past its initial size.
//
// Complexity:
//
//   - Push/Pop: O(log n)
//   - Prune:    O(n) (filter + re-heapify)
//
// Ties in weight are broken by pop order of the underlying heap;
// insertion-order stability is not guaranteed and not required.
package pqueue
