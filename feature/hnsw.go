package feature

import (
	"fmt"
	"math/rand"

	"github.com/TFMV/hnsw"
)

// hnswIndex wraps a hierarchical navigable small-world graph. Inner
// product is turned into a distance by negation: the nearest node under
// negDot is the highest-weight neighbor. The graph supports no removal;
// retired ids stay in and are filtered by the Store.
type hnswIndex struct {
	graph *hnsw.Graph[int64]
}

func newHNSWIndex(_ int, cfg Options) (*hnswIndex, error) {
	g, err := hnsw.NewGraphWithConfig[int64](cfg.hnswM, DefaultHNSWLevelFactor, cfg.hnswEfSearch, negDot)
	if err != nil {
		return nil, fmt.Errorf("feature: hnsw config: %w", err)
	}
	// Deterministic level generation: same input, same graph.
	g.Rng = rand.New(rand.NewSource(cfg.seed))

	return &hnswIndex{graph: g}, nil
}

func (h *hnswIndex) add(id int64, vec []float32) error {
	if err := h.graph.Add(hnsw.MakeNode(id, vec)); err != nil {
		return fmt.Errorf("feature: hnsw add: %w", err)
	}

	return nil
}

func (h *hnswIndex) size() int { return h.graph.Len() }

func (h *hnswIndex) search(query []float32, k int) ([]int64, error) {
	if k <= 0 {
		return nil, nil
	}
	nodes, err := h.graph.Search(query, k)
	if err != nil {
		return nil, fmt.Errorf("feature: hnsw search: %w", err)
	}

	ids := make([]int64, len(nodes))
	for c, node := range nodes {
		ids[c] = node.Key
	}

	return ids, nil
}

// negDot makes a higher inner product a smaller distance.
func negDot(a, b hnsw.Vector) float32 {
	var x float32
	for l := range a {
		x += a[l] * b[l]
	}

	return -x
}
