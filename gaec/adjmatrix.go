package gaec

import (
	"gonum.org/v1/gonum/mat"

	"github.com/pawelswoboda/dense-multicut/multicut"
	"github.com/pawelswoboda/dense-multicut/pqueue"
	"github.com/pawelswoboda/dense-multicut/unionfind"
)

// AdjacencyMatrix is the exact O(n²)-memory reference solver. It
// materializes every pairwise weight in a dense symmetric matrix and,
// on contracting (i, j), folds row j into row i instead of re-summing
// features. A per-pair stamp counter invalidates queue entries that
// were superseded by such folds.
//
// The matrix and objective run in float64; results can differ from the
// float32 index-backed variants only through tie reordering.
func AdjacencyMatrix(n, d int, features []float32, opts ...Option) (Result, error) {
	cfg := gatherOptions(opts)
	if err := validateInstance(n, d, features); err != nil {
		return Result{}, err
	}

	res := Result{
		InitialObjective: multicut.CostDisconnected(n, d, features, cfg.trackDistOffset),
	}
	res.Objective = res.InitialObjective

	uf := unionfind.New(n)
	if n >= 2 {
		contractAdjacency(n, d, features, cfg.trackDistOffset, uf, &res)
	}
	res.Labels = inputLabels(uf, n)

	return res, nil
}

func contractAdjacency(n, d int, features []float32, trackOffset bool, uf *unionfind.Forest, res *Result) {
	// 1) Materialize all pairwise weights.
	inner := func(i, j int) float64 {
		vi := features[i*d : (i+1)*d]
		vj := features[j*d : (j+1)*d]
		var x float64
		for l := 0; l < d-1; l++ {
			x += float64(vi[l]) * float64(vj[l])
		}
		last := float64(vi[d-1]) * float64(vj[d-1])
		if trackOffset {
			return x - last
		}

		return x + last
	}

	weights := mat.NewSymDense(n, nil)
	stamps := make([]uint32, n*n)
	stamp := func(i, j int) *uint32 {
		if i > j {
			i, j = j, i
		}

		return &stamps[i*n+j]
	}

	pq := pqueue.New(n * (n - 1) / 2)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			w := inner(i, j)
			weights.SetSym(i, j, w)
			if w > 0 {
				pq.Push(pqueue.Edge{U: int64(i), V: int64(j), W: float32(w)})
			}
		}
	}

	// 2) Contract, folding the retired row into the survivor.
	active := make([]bool, n)
	for i := range active {
		active[i] = true
	}

	for {
		e, ok := pq.Pop()
		if !ok {
			break
		}
		i, j := int(e.U), int(e.V)
		if e.Stamp < *stamp(i, j) || !active[i] || !active[j] {
			continue
		}

		w := weights.At(i, j)
		if w <= 0 {
			break
		}
		uf.Union(e.U, e.V)
		active[j] = false
		res.Objective -= w
		res.Contractions++

		for k := 0; k < n; k++ {
			if k == i || k == j || !active[k] {
				continue
			}
			combined := weights.At(i, k) + weights.At(j, k)
			weights.SetSym(i, k, combined)
			*stamp(i, k)++
			if combined > 0 {
				pq.Push(pqueue.Edge{U: int64(i), V: int64(k), W: float32(combined), Stamp: *stamp(i, k)})
			}
		}
	}
}
