// Package knngraph maintains the sparse k-nearest-neighbor graph that
// drives the incremental GAEC solver.
//
// The graph is symmetric by construction: whenever adjacency[a] holds b
// with weight w, adjacency[b] holds a with the same w, and both sides
// are updated within the same call. Only strictly positive weights are
// ever inserted — this keeps the per-vertex minimum-inserted weight
// U(v) a sound lower bound for the outside-neighborhood argument below.
//
// On a contraction of (i, j) the graph is patched locally instead of
// re-querying the ANN index: neighbors common to both endpoints get the
// exact summed weight, neighbors of only one endpoint get one fresh
// inner product, and both retired vertices are unlinked everywhere.
// Any vertex outside kNN(i) ∪ kNN(j) has combined weight at most
// U(i) + U(j), so candidates at or above that threshold certifiably
// contain the argmax; when no candidate reaches the threshold the
// merge falls back to a global k-NN query for the new vertex.
//
// Local patching can still miss edges that only turn positive through
// later merges; RecheckPossibleContractions runs one global sweep after
// the driver's queue drains and reports anything positive it finds.
package knngraph
