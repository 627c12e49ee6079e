// Package densemulticut solves the dense multicut problem on complete
// similarity graphs via Greedy Additive Edge Contraction (GAEC).
//
// 🚀 What is dense-multicut?
//
//	Given n points in d-dimensional space, every pair (i,j) carries an
//	implicit edge of weight ⟨f_i, f_j⟩. The goal is a partition of the
//	points maximizing the total intra-cluster weight. The graph is
//	complete — Θ(n²) edges — so the solvers never materialize it;
//	instead they maintain a live nearest-neighbor view over an evolving
//	point set whose features are summed on every contraction.
//
// ✨ Solver variants (package gaec):
//
//   - AdjacencyMatrix — O(n²) memory reference implementation, exact
//   - Sequential      — exact (Flat) or approximate (HNSW) NN-driven loop
//   - IncrementalNN   — sparse k-NN graph updated locally per contraction
//   - Parallel        — batch contraction via greedy maximum matching
//
// Everything is organized under small focused packages:
//
//	unionfind/ — disjoint-set forest tracking cluster membership
//	feature/   — feature store + ANN index (Flat brute force or HNSW)
//	knngraph/  — incremental k-NN graph for the IncrementalNN solver
//	pqueue/    — max-heap of candidate edges with lazy staleness
//	matching/  — greedy maximum matching for the Parallel solver
//	multicut/  — cost accounting, offset preprocessing, text I/O
//	gaec/      — the contraction drivers and their options
//
// A command-line front end lives in cmd/densemulticut.
//
//	go get github.com/pawelswoboda/dense-multicut
package densemulticut
