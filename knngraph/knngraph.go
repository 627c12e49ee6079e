package knngraph

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/pawelswoboda/dense-multicut/feature"
)

// capFactor bounds the adjacency of a freshly merged vertex to
// capFactor·k candidates, jointly-seen neighbors first.
const capFactor = 10

// Sentinel errors.
var (
	// ErrBadNeighborCount indicates k < 1 at construction.
	ErrBadNeighborCount = errors.New("knngraph: k must be positive")

	// ErrShapeMismatch indicates query/nns/weights slices of unequal length.
	ErrShapeMismatch = errors.New("knngraph: queries, neighbors and weights must align")
)

// Candidate is a positive-weight contraction edge surfaced by the
// post-drain recheck.
type Candidate struct {
	A, B int64
	W    float32
}

// Graph is the incremental k-NN graph over the id universe [0, 2n).
type Graph struct {
	adj []map[int64]float32
	// minInserted[v] is the smallest weight ever inserted into v's
	// adjacency — the monotone outside bound U(v). +Inf until the first
	// insertion.
	minInserted []float32
	k           int
}

// New builds the graph from the initial k-NN query results: queries[c]
// is a vertex, nns[c] and ws[c] its neighbors and weights. Only
// strictly positive weights are inserted. The id universe is [0, 2n).
func New(queries []int64, nns [][]int64, ws [][]float32, n, k int) (*Graph, error) {
	if k < 1 {
		return nil, ErrBadNeighborCount
	}
	if len(nns) != len(queries) || len(ws) != len(queries) {
		return nil, ErrShapeMismatch
	}

	g := &Graph{
		adj:         make([]map[int64]float32, 2*n),
		minInserted: make([]float32, 2*n),
		k:           k,
	}
	for v := range g.minInserted {
		g.minInserted[v] = float32(math.Inf(1))
	}

	for c, a := range queries {
		if len(nns[c]) != len(ws[c]) {
			return nil, ErrShapeMismatch
		}
		for r, b := range nns[c] {
			if w := ws[c][r]; w > 0 {
				g.insert(a, b, w)
			}
		}
	}

	return g, nil
}

// Neighbors returns the current adjacency of v. The map aliases
// internal state and must not be mutated.
func (g *Graph) Neighbors(v int64) map[int64]float32 { return g.adj[v] }

// insert records the undirected edge (a, b; w) unless already present,
// updating both minimum-inserted bounds.
func (g *Graph) insert(a, b int64, w float32) {
	if g.adj[a] == nil {
		g.adj[a] = make(map[int64]float32, g.k)
	}
	if g.adj[b] == nil {
		g.adj[b] = make(map[int64]float32, g.k)
	}
	if _, ok := g.adj[a][b]; ok {
		return
	}
	g.adj[a][b] = w
	g.adj[b][a] = w
	if w < g.minInserted[a] {
		g.minInserted[a] = w
	}
	if w < g.minInserted[b] {
		g.minInserted[b] = w
	}
}

// MergeNodes patches the graph for the contraction of (i, j) into
// newID and returns newID's adjacency with combined edge weights.
// The store must already hold newID's merged row; rows i and j stay
// readable after retirement.
func (g *Graph) MergeNodes(i, j, newID int64, store *feature.Store) (map[int64]float32, error) {
	// 1) Iterate the larger adjacency first: common neighbors get the
	//    exact sum, exclusive ones cost a single inner product.
	root, other := i, j
	if len(g.adj[other]) > len(g.adj[root]) {
		root, other = other, root
	}

	cand := make(map[int64]float32, len(g.adj[root])+len(g.adj[other]))
	joint := make(map[int64]struct{})

	for nn, wRoot := range g.adj[root] {
		if nn == other {
			continue
		}
		if wOther, ok := g.adj[other][nn]; ok {
			cand[nn] = wRoot + wOther
			joint[nn] = struct{}{}
		} else if w := wRoot + store.InnerProduct(nn, other); w > 0 {
			cand[nn] = w
		}
		delete(g.adj[nn], root)
	}
	for nn, wOther := range g.adj[other] {
		if nn == root {
			continue
		}
		if _, ok := g.adj[root][nn]; !ok {
			if w := wOther + store.InnerProduct(nn, root); w > 0 {
				cand[nn] = w
			}
		}
		delete(g.adj[nn], other)
	}
	g.adj[root] = nil
	g.adj[other] = nil

	// 2) Outside bound: anything beyond kNN(i) ∪ kNN(j) weighs at most
	//    U(i)+U(j). Candidates at or above that threshold dominate all
	//    outside vertices; below-threshold ones cannot be certified as
	//    the argmax and are dropped.
	thr := g.minInserted[i] + g.minInserted[j]
	kept := make(map[int64]float32, len(cand))
	for nn, w := range cand {
		if w >= thr {
			kept[nn] = w
		}
	}

	// 3) No certified candidate: the true maximum may lie outside the
	//    local neighborhood — ask the index globally.
	if len(kept) == 0 {
		k := g.k
		if limit := store.NrNodes() - 1; k > limit {
			k = limit
		}
		if k >= 1 {
			nns, ws, err := store.NearestK([]int64{newID}, k)
			if err != nil {
				return nil, fmt.Errorf("knngraph: global fallback for %d: %w", newID, err)
			}
			for r, nn := range nns[0] {
				if w := ws[0][r]; w > 0 {
					kept[nn] = w
				}
			}
		}
	} else if len(kept) > capFactor*g.k {
		kept = g.truncate(kept, joint)
	}

	// 4) Publish newID's adjacency symmetrically.
	for nn, w := range kept {
		g.insert(newID, nn, w)
	}

	return kept, nil
}

// truncate keeps the capFactor·k best candidates, preferring jointly
// seen neighbors (their sums are exact) before single-sided ones, and
// higher weights within each class.
func (g *Graph) truncate(cand map[int64]float32, joint map[int64]struct{}) map[int64]float32 {
	type entry struct {
		nn int64
		w  float32
	}
	entries := make([]entry, 0, len(cand))
	for nn, w := range cand {
		entries = append(entries, entry{nn, w})
	}
	sort.Slice(entries, func(a, b int) bool {
		_, ja := joint[entries[a].nn]
		_, jb := joint[entries[b].nn]
		if ja != jb {
			return ja
		}
		if entries[a].w != entries[b].w {
			return entries[a].w > entries[b].w
		}

		return entries[a].nn < entries[b].nn
	})

	limit := capFactor * g.k
	out := make(map[int64]float32, limit)
	for _, e := range entries[:limit] {
		out[e.nn] = e.w
	}

	return out
}

// RecheckPossibleContractions runs a fresh global k-NN sweep over all
// active vertices, folds the results into the graph and reports every
// positive-weight edge discovered. The driver resumes contraction if
// the result is non-empty.
func (g *Graph) RecheckPossibleContractions(store *feature.Store) ([]Candidate, error) {
	active := store.ActiveIDs()
	if len(active) < 2 {
		return nil, nil
	}
	k := g.k
	if limit := len(active) - 1; k > limit {
		k = limit
	}

	nns, ws, err := store.NearestK(active, k)
	if err != nil {
		return nil, fmt.Errorf("knngraph: recheck sweep: %w", err)
	}

	var found []Candidate
	for c, a := range active {
		for r, b := range nns[c] {
			if w := ws[c][r]; w > 0 {
				g.insert(a, b, w)
				found = append(found, Candidate{A: a, B: b, W: w})
			}
		}
	}

	return found, nil
}
