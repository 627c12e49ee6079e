// Package matching provides the greedy maximum matching used by the
// parallel GAEC solver to pick a vertex-disjoint batch of contractions
// per round.
//
// Greedy walks candidate edges in descending weight order and takes an
// edge whenever neither endpoint has been taken before. The result is a
// maximal (not maximum) matching; the contraction algebra only needs
// vertex-disjointness, and greedy selection keeps the heaviest edges —
// exactly the ones sequential GAEC would contract first.
//
// Complexity: O(m log m) for the sort, O(m) for the sweep.
// Determinism: ties in weight are resolved by input order (stable sort).
package matching
