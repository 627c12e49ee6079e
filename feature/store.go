package feature

import (
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// annIndex is the backend contract: append-only inserts and top-k
// retrieval ordered by descending inner product with the query vector.
// Backends never filter by activity; that is the Store's job.
type annIndex interface {
	add(id int64, vec []float32) error
	search(query []float32, k int) ([]int64, error)
	size() int
}

// Store is the feature matrix plus its mirroring ANN index and the
// active bitmap over vertex ids. All methods are single-goroutine;
// batched queries fan out internally but never mutate.
type Store struct {
	d           int
	features    []float32
	active      []bool
	nrActive    int
	trackOffset bool
	index       annIndex
}

// NewStore builds a store over n input rows of dimension d, laid out
// row-major in features, and indexes them under the given kind.
func NewStore(d, n int, features []float32, kind IndexKind, opts ...Option) (*Store, error) {
	// 1) Validate shape.
	if d <= 0 {
		return nil, ErrDimension
	}
	if n < 0 {
		return nil, ErrNodeCount
	}
	if len(features) != n*d {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(features), n*d)
	}

	// 2) Gather options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 3) Pick the backend.
	var index annIndex
	switch kind {
	case IndexFlat:
		index = newFlatIndex(d, n)
	case IndexHNSW:
		var err error
		index, err = newHNSWIndex(d, cfg)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownIndexKind, kind)
	}

	// 4) Copy the rows (the store owns and grows this memory) and feed
	//    the index.
	s := &Store{
		d:           d,
		features:    append(make([]float32, 0, 2*n*d), features...),
		active:      make([]bool, n, 2*n),
		nrActive:    n,
		trackOffset: cfg.trackDistOffset,
		index:       index,
	}
	for id := int64(0); id < int64(n); id++ {
		s.active[id] = true
		if err := s.index.add(id, s.vec(id)); err != nil {
			return nil, fmt.Errorf("feature: indexing row %d: %w", id, err)
		}
	}

	return s, nil
}

// Dim reports the feature dimension d.
func (s *Store) Dim() int { return s.d }

// NrNodes reports the number of currently active vertices.
func (s *Store) NrNodes() int { return s.nrActive }

// MaxID reports the highest allocated vertex id, or -1 when empty.
func (s *Store) MaxID() int64 { return int64(len(s.active)) - 1 }

// Active reports whether id is allocated and not retired.
func (s *Store) Active(id int64) bool {
	return id >= 0 && id < int64(len(s.active)) && s.active[id]
}

// ActiveIDs returns all active vertex ids in ascending order.
func (s *Store) ActiveIDs() []int64 {
	ids := make([]int64, 0, s.nrActive)
	for id := int64(0); id < int64(len(s.active)); id++ {
		if s.active[id] {
			ids = append(ids, id)
		}
	}

	return ids
}

// vec returns the stored row of id. The slice aliases store memory and
// must not be mutated.
func (s *Store) vec(id int64) []float32 {
	return s.features[id*int64(s.d) : (id+1)*int64(s.d)]
}

// queryVec returns the vector to hand to the ANN backend for id.
// Under offset tracking the last coordinate is negated, so the
// backend's positive-sign dot product realizes the subtraction.
func (s *Store) queryVec(id int64) []float32 {
	v := s.vec(id)
	if !s.trackOffset {
		return v
	}
	q := make([]float32, s.d)
	copy(q, v)
	q[s.d-1] = -q[s.d-1]

	return q
}

// InnerProduct computes ⟨f_i, f_j⟩ from the stored rows. Under offset
// tracking the last dimension contributes with a negated sign.
// Retired rows remain readable: the incremental k-NN merge evaluates
// edges whose endpoint was retired in the same step. Out-of-range ids
// panic (programmer error).
func (s *Store) InnerProduct(i, j int64) float32 {
	vi, vj := s.vec(i), s.vec(j)
	var x float32
	for l := 0; l < s.d-1; l++ {
		x += vi[l] * vj[l]
	}
	last := vi[s.d-1] * vj[s.d-1]
	if s.trackOffset {
		x -= last
	} else {
		x += last
	}

	return x
}

// Merge retires i and j, appends a row holding f_i + f_j, indexes it
// and returns the fresh id. Fails with ErrInactiveNode if either
// argument was already retired.
func (s *Store) Merge(i, j int64) (int64, error) {
	if i == j {
		return 0, fmt.Errorf("%w: id %d", ErrSelfEdge, i)
	}
	if !s.Active(i) {
		return 0, fmt.Errorf("%w: merge operand %d", ErrInactiveNode, i)
	}
	if !s.Active(j) {
		return 0, fmt.Errorf("%w: merge operand %d", ErrInactiveNode, j)
	}

	s.active[i] = false
	s.active[j] = false

	newID := int64(len(s.active))
	vi, vj := s.vec(i), s.vec(j)
	for l := 0; l < s.d; l++ {
		s.features = append(s.features, vi[l]+vj[l])
	}
	s.active = append(s.active, true)
	s.nrActive-- // two retired, one added

	if err := s.index.add(newID, s.vec(newID)); err != nil {
		return 0, fmt.Errorf("feature: indexing merged row %d: %w", newID, err)
	}

	return newID, nil
}

// Remove retires id without creating a successor.
func (s *Store) Remove(id int64) error {
	if !s.Active(id) {
		return fmt.Errorf("%w: remove operand %d", ErrInactiveNode, id)
	}
	s.active[id] = false
	s.nrActive--

	return nil
}

// Nearest returns the active neighbor j ≠ id maximizing ⟨f_id, f_j⟩
// and that inner product.
func (s *Store) Nearest(id int64) (int64, float32, error) {
	if !s.Active(id) {
		return 0, 0, fmt.Errorf("%w: query node %d", ErrInactiveNode, id)
	}

	return s.nearestOne(id)
}

// NearestBatch answers Nearest for every id in queries. Queries fan
// out across CPUs; slot c of the results always belongs to queries[c],
// so the output is independent of scheduling.
func (s *Store) NearestBatch(queries []int64) ([]int64, []float32, error) {
	nns := make([]int64, len(queries))
	ws := make([]float32, len(queries))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for c, id := range queries {
		g.Go(func() error {
			nn, w, err := s.nearestOne(id)
			if err != nil {
				return err
			}
			nns[c], ws[c] = nn, w

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return nns, ws, nil
}

// NearestK answers, for every query id, its k nearest active distinct
// neighbors in descending weight order.
func (s *Store) NearestK(queries []int64, k int) ([][]int64, [][]float32, error) {
	if k < 1 {
		return nil, nil, fmt.Errorf("%w: k=%d", ErrBadNeighborCount, k)
	}

	nns := make([][]int64, len(queries))
	ws := make([][]float32, len(queries))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for c, id := range queries {
		g.Go(func() error {
			nn, w, err := s.nearestKOne(id, k)
			if err != nil {
				return err
			}
			nns[c], ws[c] = nn, w

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return nns, ws, nil
}

// nearestOne runs the expanding search for a single query: ask the
// backend for 2 candidates, double until an active non-self id shows
// up or the whole index has been scanned.
func (s *Store) nearestOne(id int64) (int64, float32, error) {
	total := s.index.size()
	if total == 0 {
		return 0, 0, fmt.Errorf("%w: query node %d", ErrNoActiveNeighbor, id)
	}
	q := s.queryVec(id)
	for lookups := 2; ; lookups *= 2 {
		if lookups > total {
			lookups = total
		}
		cands, err := s.index.search(q, lookups)
		if err != nil {
			return 0, 0, fmt.Errorf("feature: nearest(%d): %w", id, err)
		}
		for _, cand := range cands {
			if cand != id && s.Active(cand) {
				return cand, s.InnerProduct(id, cand), nil
			}
		}
		if lookups >= total {
			break
		}
	}

	return 0, 0, fmt.Errorf("%w: query node %d", ErrNoActiveNeighbor, id)
}

// nearestKOne expands from k+1 lookups until k active distinct
// neighbors are found. Results are re-sorted by exact weight so the
// descending-order contract holds for the approximate backend too.
func (s *Store) nearestKOne(id int64, k int) ([]int64, []float32, error) {
	total := s.index.size()
	if total == 0 {
		return nil, nil, fmt.Errorf("%w: query node %d", ErrNoActiveNeighbor, id)
	}
	q := s.queryVec(id)
	for lookups := k + 1; ; lookups *= 2 {
		if lookups > total {
			lookups = total
		}
		cands, err := s.index.search(q, lookups)
		if err != nil {
			return nil, nil, fmt.Errorf("feature: nearestK(%d): %w", id, err)
		}

		found := make([]int64, 0, k)
		seen := make(map[int64]struct{}, k)
		for _, cand := range cands {
			if cand == id || !s.Active(cand) {
				continue
			}
			if _, dup := seen[cand]; dup {
				continue
			}
			seen[cand] = struct{}{}
			found = append(found, cand)
			if len(found) == k {
				break
			}
		}

		if len(found) == k || lookups >= total {
			if len(found) < k {
				break
			}
			ws := make([]float32, len(found))
			for c, nn := range found {
				ws[c] = s.InnerProduct(id, nn)
			}
			sortByWeight(found, ws)

			return found, ws, nil
		}
	}

	return nil, nil, fmt.Errorf("%w: query node %d wants %d neighbors", ErrNoActiveNeighbor, id, k)
}

// sortByWeight orders the parallel (ids, ws) slices by descending
// weight, ascending id on ties.
func sortByWeight(ids []int64, ws []float32) {
	order := make([]int, len(ids))
	for c := range order {
		order[c] = c
	}
	sort.SliceStable(order, func(a, b int) bool {
		if ws[order[a]] != ws[order[b]] {
			return ws[order[a]] > ws[order[b]]
		}

		return ids[order[a]] < ids[order[b]]
	})

	outIDs := make([]int64, len(ids))
	outWs := make([]float32, len(ws))
	for c, o := range order {
		outIDs[c], outWs[c] = ids[o], ws[o]
	}
	copy(ids, outIDs)
	copy(ws, outWs)
}
