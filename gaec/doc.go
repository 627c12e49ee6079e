// Package gaec implements Greedy Additive Edge Contraction for the
// dense multicut problem: repeatedly contract the highest-weight
// positive edge of the complete similarity graph, summing the feature
// vectors of the endpoints so that all edge weights to the merged
// vertex equal the sums of the prior two.
//
// Five driver variants trade exactness for speed:
//
//   - AdjacencyMatrix — exact, O(n²) memory; materializes all pairwise
//     weights and updates them per contraction. The reference.
//   - Sequential(Flat) — exact; a priority queue fed by brute-force
//     1-NN queries, never materializing the full matrix.
//   - Sequential(HNSW) — approximate; same loop over a hierarchical
//     small-world index.
//   - IncrementalNN — maintains a sparse k-NN graph patched locally on
//     each contraction, avoiding most index queries; a global recheck
//     sweep after the queue drains catches late-emerging edges.
//   - Parallel — contracts a whole vertex-disjoint batch per round,
//     selected by greedy maximum matching over everyone's 1-NN.
//
// Every variant performs at most n−1 contractions, never reverses one,
// and only contracts strictly positive edges, so the objective strictly
// decreases and termination is guaranteed. Ties in weight are broken by
// queue pop order. The returned labels are raw disjoint-set roots; they
// partition [0, n) but are otherwise arbitrary — normalize with
// multicut.NormalizeLabels before comparing runs.
//
// All state lives for the duration of one solve call; drivers are
// single-goroutine except for read-only batched index queries.
package gaec
