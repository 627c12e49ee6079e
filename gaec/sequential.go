package gaec

import (
	"fmt"

	"github.com/pawelswoboda/dense-multicut/feature"
	"github.com/pawelswoboda/dense-multicut/multicut"
	"github.com/pawelswoboda/dense-multicut/pqueue"
	"github.com/pawelswoboda/dense-multicut/unionfind"
)

// Sequential runs the classic GAEC loop over an ANN index of the given
// kind: pop the heaviest positive candidate edge, contract it, and
// re-query 1-NN for the merged vertex plus every vertex whose queued
// candidate pointed at a retired endpoint.
//
// With feature.IndexFlat the nearest-neighbor answers are exact and the
// solve contracts a globally maximum positive edge at every step; with
// feature.IndexHNSW the answers — and hence the partition — are
// approximate.
func Sequential(n, d int, features []float32, kind feature.IndexKind, opts ...Option) (Result, error) {
	cfg := gatherOptions(opts)
	if err := validateInstance(n, d, features); err != nil {
		return Result{}, err
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
		if err := contractSequential(store, uf, &res); err != nil {
			return Result{}, err
		}
	}
	res.Labels = inputLabels(uf, n)

	return res, nil
}

// contractSequential owns the priority-queue loop.
func contractSequential(store *feature.Store, uf *unionfind.Forest, res *Result) error {
	n := store.NrNodes()

	// 1) Seed: 1-NN for every input vertex, positive edges only.
	// pqPair[v] lists the vertices whose queued candidate points at v;
	// they are re-queried once v retires.
	all := make([]int64, n)
	for i := range all {
		all[i] = int64(i)
	}
	nns, ws, err := store.NearestBatch(all)
	if err != nil {
		return fmt.Errorf("gaec: seeding nearest neighbors: %w", err)
	}

	pq := pqueue.New(n)
	pqPair := make([][]int64, 2*n)
	for i, nn := range nns {
		if ws[i] > 0 {
			pq.Push(pqueue.Edge{U: all[i], V: nn, W: ws[i]})
			pqPair[nn] = append(pqPair[nn], all[i])
		}
	}
	maxPQ := pruneFactor * pq.Len()

	// 2) Contract until no positive candidate remains.
	for {
		e, ok := pq.Pop()
		if !ok || e.W <= 0 {
			break
		}
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

		// 3) Re-query the merged vertex and every still-active vertex
		//    whose candidate edge lost an endpoint.
		if store.NrNodes() > 1 {
			queries := append(make([]int64, 0, 1+len(pqPair[e.U])+len(pqPair[e.V])), newID)
			for _, v := range pqPair[e.U] {
				if store.Active(v) {
					queries = append(queries, v)
				}
			}
			for _, v := range pqPair[e.V] {
				if store.Active(v) {
					queries = append(queries, v)
				}
			}
			pqPair[e.U] = nil
			pqPair[e.V] = nil

			nns, ws, err := store.NearestBatch(queries)
			if err != nil {
				return fmt.Errorf("gaec: re-querying after contraction: %w", err)
			}
			for c, nn := range nns {
				if ws[c] > 0 {
					pq.Push(pqueue.Edge{U: nn, V: queries[c], W: ws[c]})
					pqPair[nn] = append(pqPair[nn], queries[c])
				}
			}
		}

		if maxPQ > 0 && pq.Len() > maxPQ {
			pq.Prune(store.Active)
		}
	}

	return nil
}

// inputLabels reads the final labeling of the n input points.
func inputLabels(uf *unionfind.Forest, n int) []int64 {
	labels := make([]int64, n)
	for i := 0; i < n; i++ {
		labels[i] = uf.Find(int64(i))
	}

	return labels
}
