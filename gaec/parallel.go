package gaec

import (
	"fmt"

	"github.com/pawelswoboda/dense-multicut/feature"
	"github.com/pawelswoboda/dense-multicut/matching"
	"github.com/pawelswoboda/dense-multicut/multicut"
	"github.com/pawelswoboda/dense-multicut/unionfind"
)

// Parallel contracts a whole batch of edges per round: every active
// vertex proposes its 1-NN, greedy maximum matching picks a
// vertex-disjoint subset, and all selected edges contract before the
// next round of queries. Disjointness is what keeps the additive
// feature update sound — two merges sharing a vertex would race on the
// summed row.
//
// The matching is applied to the full candidate list of the round, not
// a stream; rounds repeat until no proposal has positive weight.
func Parallel(n, d int, features []float32, kind feature.IndexKind, opts ...Option) (Result, error) {
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
	for store.NrNodes() > 1 {
		// 1) Everyone proposes its nearest neighbor.
		active := store.ActiveIDs()
		nns, ws, err := store.NearestBatch(active)
		if err != nil {
			return Result{}, fmt.Errorf("gaec: parallel round %d: %w", res.Rounds, err)
		}

		us := make([]int64, 0, len(active))
		vs := make([]int64, 0, len(active))
		pos := make([]float32, 0, len(active))
		for c, id := range active {
			if ws[c] > 0 {
				us = append(us, id)
				vs = append(vs, nns[c])
				pos = append(pos, ws[c])
			}
		}
		if len(us) == 0 {
			break
		}

		// 2) Select a vertex-disjoint batch, heaviest first.
		pairs, err := matching.Greedy(us, vs, pos)
		if err != nil {
			return Result{}, fmt.Errorf("gaec: parallel matching: %w", err)
		}

		// 3) Contract the whole batch.
		for _, p := range pairs {
			w := store.InnerProduct(p.U, p.V)
			newID, err := store.Merge(p.U, p.V)
			if err != nil {
				return Result{}, err
			}
			uf.Union(p.U, newID)
			uf.Union(p.V, newID)
			res.Objective -= float64(w)
			res.Contractions++
		}
		res.Rounds++
	}
	res.Labels = inputLabels(uf, n)

	return res, nil
}
