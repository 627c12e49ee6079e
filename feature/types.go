// Package feature: index kinds, sentinel errors and functional options
// for the Store.
package feature

import "errors"

// IndexKind selects the ANN backend mirroring the feature store.
type IndexKind string

const (
	// IndexFlat is exact brute force over all stored vectors.
	IndexFlat IndexKind = "Flat"

	// IndexHNSW is an approximate hierarchical small-world graph.
	// It never removes rows; retired ids are filtered at query time.
	IndexHNSW IndexKind = "HNSW"
)

// Sentinel errors returned by the Store.
var (
	// ErrDimension indicates a non-positive feature dimension.
	ErrDimension = errors.New("feature: dimension must be positive")

	// ErrNodeCount indicates a negative number of input points.
	ErrNodeCount = errors.New("feature: number of points must be non-negative")

	// ErrFeatureCount indicates len(features) != n*d.
	ErrFeatureCount = errors.New("feature: feature slice length must equal n*d")

	// ErrUnknownIndexKind indicates an IndexKind other than Flat or HNSW.
	ErrUnknownIndexKind = errors.New("feature: unknown index kind")

	// ErrInactiveNode indicates a Merge or Remove operand that has
	// already been retired — a driver bug, not a recoverable state.
	ErrInactiveNode = errors.New("feature: operand node is not active")

	// ErrSelfEdge indicates Merge(i, i).
	ErrSelfEdge = errors.New("feature: cannot merge a node with itself")

	// ErrNodeRange names an id outside the stored row range. No Store
	// method returns it: out-of-range ids panic instead.
	ErrNodeRange = errors.New("feature: node id out of range")

	// ErrBadNeighborCount indicates a NearestK call with k < 1.
	ErrBadNeighborCount = errors.New("feature: neighbor count must be positive")

	// ErrNoActiveNeighbor indicates an expanding search that scanned the
	// whole index without finding an active non-self neighbor. This can
	// only happen when fewer than two active vertices remain and marks
	// an invariant violation in the calling driver.
	ErrNoActiveNeighbor = errors.New("feature: no active neighbor found")
)

// Defaults for the HNSW backend. M and EfSearch follow the library's
// recommended settings for low-dimensional data.
const (
	// DefaultHNSWM is the maximum neighbor count per HNSW node.
	DefaultHNSWM = 16

	// DefaultHNSWLevelFactor is the layer shrink factor Ml.
	DefaultHNSWLevelFactor = 0.25

	// DefaultHNSWEfSearch is the search-time candidate list size.
	DefaultHNSWEfSearch = 50

	// DefaultSeed seeds HNSW level generation; a fixed default keeps
	// repeated solves on the same input reproducible.
	DefaultSeed = 1
)

// Options configures a Store. Fields are unexported; use the With*
// constructors.
type Options struct {
	trackDistOffset bool
	seed            int64
	hnswM           int
	hnswEfSearch    int
}

// DefaultOptions returns the documented defaults: no offset tracking,
// DefaultSeed, DefaultHNSWM, DefaultHNSWEfSearch.
func DefaultOptions() Options {
	return Options{
		trackDistOffset: false,
		seed:            DefaultSeed,
		hnswM:           DefaultHNSWM,
		hnswEfSearch:    DefaultHNSWEfSearch,
	}
}

// Option mutates Options; invalid parameters panic (programmer error).
type Option func(*Options)

// WithDistOffsetTracking interprets the last feature dimension as
// √offset and subtracts it in every inner product.
func WithDistOffsetTracking() Option {
	return func(o *Options) { o.trackDistOffset = true }
}

// WithSeed fixes the HNSW level-generation seed for reproducible graph
// construction. Ignored by the Flat backend.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.seed = seed }
}

// WithHNSWParams overrides the HNSW connectivity (m) and search width
// (efSearch). Panics if either is not positive.
func WithHNSWParams(m, efSearch int) Option {
	if m <= 0 {
		panic("feature: WithHNSWParams requires m > 0")
	}
	if efSearch <= 0 {
		panic("feature: WithHNSWParams requires efSearch > 0")
	}

	return func(o *Options) {
		o.hnswM = m
		o.hnswEfSearch = efSearch
	}
}
