package gaec

import (
	"fmt"

	"github.com/pawelswoboda/dense-multicut/feature"
	"github.com/pawelswoboda/dense-multicut/knngraph"
	"github.com/pawelswoboda/dense-multicut/multicut"
	"github.com/pawelswoboda/dense-multicut/pqueue"
	"github.com/pawelswoboda/dense-multicut/unionfind"
)

// IncrementalNN drives GAEC off a sparse k-NN graph instead of
// per-contraction index queries: the initial top-k lists seed both the
// queue and the graph, each contraction patches the graph locally
// (knngraph.MergeNodes), and only when the queue drains does a global
// sweep look for edges the local patching could not see. The effective
// k is clamped to n−1.
func IncrementalNN(n, d int, features []float32, kind feature.IndexKind, opts ...Option) (Result, error) {
	cfg := gatherOptions(opts)
	if err := validateInstance(n, d, features); err != nil {
		return Result{}, err
	}
	if cfg.k <= 0 {
		return Result{}, ErrBadK
	}

	store, err := feature.NewStore(d, n, features, kind, cfg.featureOptions()...)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		InitialObjective: multicut.CostDisconnected(n, d, features, cfg.trackDistOffset),
	}
	res.Objective = res.InitialObjective

	uf := unionfind.New(2 * n)
	if n >= 2 {
		k := cfg.k
		if k > n-1 {
			k = n - 1
		}
		if err := contractIncremental(store, uf, k, &res); err != nil {
			return Result{}, err
		}
	}
	res.Labels = inputLabels(uf, n)

	return res, nil
}

func contractIncremental(store *feature.Store, uf *unionfind.Forest, k int, res *Result) error {
	n := store.NrNodes()

	// 1) One top-k sweep seeds the graph and the queue.
	all := make([]int64, n)
	for i := range all {
		all[i] = int64(i)
	}
	nns, ws, err := store.NearestK(all, k)
	if err != nil {
		return fmt.Errorf("gaec: initial k-NN sweep: %w", err)
	}
	graph, err := knngraph.New(all, nns, ws, n, k)
	if err != nil {
		return err
	}

	pq := pqueue.New(n * k)
	for c, id := range all {
		for r, nn := range nns[c] {
			if w := ws[c][r]; w > 0 {
				pq.Push(pqueue.Edge{U: id, V: nn, W: w})
			}
		}
	}
	maxPQ := pruneFactor * pq.Len()

	// 2) Contract; on a drained queue run the global recheck and only
	//    stop once it comes back empty.
	completed := false
	for pq.Len() > 0 || !completed {
		if pq.Len() == 0 {
			found, err := graph.RecheckPossibleContractions(store)
			if err != nil {
				return err
			}
			for _, c := range found {
				pq.Push(pqueue.Edge{U: c.A, V: c.B, W: c.W})
			}
			completed = len(found) == 0

			continue
		}

		e, _ := pq.Pop()
		if !store.Active(e.U) || !store.Active(e.V) {
			continue
		}

		newID, err := store.Merge(e.U, e.V)
		if err != nil {
			return err
		}
		uf.Union(e.U, newID)
		uf.Union(e.V, newID)
		res.Objective -= float64(e.W)
		res.Contractions++

		neighbors, err := graph.MergeNodes(e.U, e.V, newID, store)
		if err != nil {
			return err
		}
		if store.NrNodes() > 1 {
			for nn, w := range neighbors {
				pq.Push(pqueue.Edge{U: newID, V: nn, W: w})
			}
		}

		if maxPQ > 0 && pq.Len() > maxPQ {
			pq.Prune(store.Active)
		}
	}

	return nil
}
