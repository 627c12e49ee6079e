// Package unionfind provides a disjoint-set forest (union-find) over a
// fixed universe of integer ids.
//
// The forest tracks equivalence classes under iterative Union calls.
// The index-backed GAEC drivers allocate the universe [0, 2n) up front
// (the adjacency-matrix driver uses [0, n)) — ids 0..n−1 are
// input points, ids n..2n−1 are merged clusters created as contraction
// proceeds — and read the final labeling through Find.
//
// Complexity:
//
//   - Time:  O(α(n)) amortized per Find/Union (union by rank + path
//     compression), effectively constant.
//   - Space: O(n) for parent and rank slices.
//
// There are no error conditions: ids outside [0, n) are programmer
// errors and panic via slice bounds.
package unionfind
