// Package feature owns the evolving feature matrix of a dense multicut
// instance and answers nearest-neighbor queries over its active rows.
//
// The Store keeps one float32 row per vertex id. Ids 0..n−1 are the
// input points; every Merge(i, j) retires both arguments and appends a
// fresh row holding f_i + f_j. This additive update is the algebraic
// heart of GAEC: ⟨f_i + f_j, f_k⟩ = ⟨f_i, f_k⟩ + ⟨f_j, f_k⟩, so the
// stored inner product of two active rows always equals the total
// weight of the original edges between the two underlying point sets.
//
// Two ANN backends answer similarity queries, selected by IndexKind:
//
//   - IndexFlat — exact brute force over all stored rows.
//   - IndexHNSW — approximate, a hierarchical navigable small-world
//     graph (github.com/TFMV/hnsw) searched with a negated-dot-product
//     distance.
//
// Neither backend removes rows: retired vertices stay physically
// present and are filtered out by the Store's active bitmap at query
// time. Nearest and NearestK therefore run an expanding search — ask
// for 2 (or k+1) candidates, double until every query has enough
// active non-self neighbors or the whole index has been scanned. A
// query that exhausts the index without a hit is an invariant
// violation (fewer than two active vertices) and surfaces as
// ErrNoActiveNeighbor rather than a sentinel value.
//
// Offset tracking: with WithDistOffsetTracking the last feature
// dimension encodes √offset and contributes with a negated sign to
// every inner product, biasing all pairwise weights by −offset. The
// backends only compute positive-sign dot products, so queries negate
// the last coordinate of the query vector before searching — the
// resulting ordering matches the true biased weights exactly.
package feature
