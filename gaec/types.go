// Package gaec: result type, sentinel errors and functional options
// shared by the solver variants.
package gaec

import (
	"errors"

	"github.com/pawelswoboda/dense-multicut/feature"
)

// Sentinel errors for input validation.
var (
	// ErrDimension indicates d <= 0.
	ErrDimension = errors.New("gaec: feature dimension must be positive")

	// ErrNodeCount indicates n < 0.
	ErrNodeCount = errors.New("gaec: number of points must be non-negative")

	// ErrFeatureCount indicates len(features) != n*d.
	ErrFeatureCount = errors.New("gaec: feature slice length must equal n*d")

	// ErrBadK indicates a non-positive neighbor count for the
	// incremental solver.
	ErrBadK = errors.New("gaec: k must be positive")
)

// DefaultK is the incremental solver's default number of initial
// nearest neighbors per vertex.
const DefaultK = 10

// pruneFactor: the drivers rebuild their queue once it exceeds
// pruneFactor times its initial size.
const pruneFactor = 10

// Result carries the outcome of one solve.
type Result struct {
	// Labels holds one cluster label per input point. Labels are raw
	// disjoint-set roots in [0, 2n); they partition [0, n) but carry no
	// further meaning.
	Labels []int64

	// InitialObjective is the all-singleton multicut cost.
	InitialObjective float64

	// Objective is the final multicut cost: InitialObjective minus the
	// weights of all contracted edges.
	Objective float64

	// Contractions counts performed merges (≤ n−1).
	Contractions int

	// Rounds counts outer iterations of the parallel solver; zero for
	// the sequential variants.
	Rounds int
}

// NrClusters reports the number of distinct labels.
func (r Result) NrClusters() int {
	seen := make(map[int64]struct{}, len(r.Labels))
	for _, l := range r.Labels {
		seen[l] = struct{}{}
	}

	return len(seen)
}

// Options configures a solve. Fields are unexported; use the With*
// constructors.
type Options struct {
	k               int
	trackDistOffset bool
	seed            int64
	hnswM           int
	hnswEfSearch    int
}

// DefaultOptions returns the documented defaults: k=DefaultK, no
// offset tracking, feature.DefaultSeed, the feature package's HNSW
// parameters.
func DefaultOptions() Options {
	return Options{
		k:            DefaultK,
		seed:         feature.DefaultSeed,
		hnswM:        feature.DefaultHNSWM,
		hnswEfSearch: feature.DefaultHNSWEfSearch,
	}
}

// Option mutates Options; invalid parameters panic (programmer error),
// matching the constructor conventions of the feature package.
type Option func(*Options)

// WithK sets the incremental solver's initial neighbor count. Panics
// if k <= 0. Ignored by the other variants.
func WithK(k int) Option {
	if k <= 0 {
		panic("gaec: WithK requires k > 0")
	}

	return func(o *Options) { o.k = k }
}

// WithDistOffsetTracking treats the last feature dimension as √offset,
// biasing every pairwise weight by −offset.
func WithDistOffsetTracking() Option {
	return func(o *Options) { o.trackDistOffset = true }
}

// WithSeed fixes the HNSW construction seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.seed = seed }
}

// WithHNSWParams overrides HNSW connectivity and search width. Panics
// if either is not positive.
func WithHNSWParams(m, efSearch int) Option {
	if m <= 0 || efSearch <= 0 {
		panic("gaec: WithHNSWParams requires positive m and efSearch")
	}

	return func(o *Options) {
		o.hnswM = m
		o.hnswEfSearch = efSearch
	}
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// featureOptions translates solver options into store options.
func (o Options) featureOptions() []feature.Option {
	fopts := []feature.Option{
		feature.WithSeed(o.seed),
		feature.WithHNSWParams(o.hnswM, o.hnswEfSearch),
	}
	if o.trackDistOffset {
		fopts = append(fopts, feature.WithDistOffsetTracking())
	}

	return fopts
}

// validateInstance checks the shared (n, d, features) contract.
func validateInstance(n, d int, features []float32) error {
	if d <= 0 {
		return ErrDimension
	}
	if n < 0 {
		return ErrNodeCount
	}
	if len(features) != n*d {
		return ErrFeatureCount
	}

	return nil
}
