// Package multicut provides the pieces around the GAEC core: objective
// accounting, the offset feature preprocessor, and the plain-text
// instance format.
//
// Objective convention: the initial ("all singleton") multicut cost is
// the total weight of all cut edges, i.e. the sum of pairwise inner
// products over distinct point pairs. Every contraction of an edge with
// weight w moves w from "cut" to "joined", decrementing the running
// objective by w. Accumulation is float64 even though vectors are
// float32 — repeated additive merges drift otherwise.
//
// Offset biasing: AppendDistOffset appends one √offset column to every
// row. Consumed with a negated sign (feature.WithDistOffsetTracking),
// the extra column shifts every pairwise weight by −offset, moving the
// contraction threshold.
//
// Instance format: two whitespace-separated integers n and d, followed
// by exactly n·d whitespace-separated floats, row-major.
package multicut
