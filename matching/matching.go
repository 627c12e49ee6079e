package matching

import (
	"errors"
	"sort"
)

// Sentinel errors returned by Greedy.
var (
	// ErrLengthMismatch indicates the three parallel edge slices differ
	// in length.
	ErrLengthMismatch = errors.New("matching: us, vs and ws must have equal length")

	// ErrSelfLoop indicates a candidate edge with identical endpoints.
	ErrSelfLoop = errors.New("matching: self-loop in candidate edges")
)

// Pair is one matched edge, endpoints in input order.
type Pair struct {
	U, V int64
}

// Greedy selects a maximal vertex-disjoint subset of the candidate
// edges (us[e], vs[e]) with weights ws[e], preferring higher weights.
// Edges tied in weight are considered in input order.
func Greedy(us, vs []int64, ws []float32) ([]Pair, error) {
	m := len(us)
	if len(vs) != m || len(ws) != m {
		return nil, ErrLengthMismatch
	}
	if m == 0 {
		return nil, nil
	}

	// 1) Sort edge indices by descending weight, input order on ties.
	order := make([]int, m)
	for e := range order {
		order[e] = e
	}
	sort.SliceStable(order, func(a, b int) bool { return ws[order[a]] > ws[order[b]] })

	// 2) Sweep in that order, taking an edge iff both endpoints are free.
	taken := make(map[int64]struct{}, 2*m)
	matched := make([]Pair, 0, m/2+1)
	for _, e := range order {
		u, v := us[e], vs[e]
		if u == v {
			return nil, ErrSelfLoop
		}
		if _, ok := taken[u]; ok {
			continue
		}
		if _, ok := taken[v]; ok {
			continue
		}
		taken[u] = struct{}{}
		taken[v] = struct{}{}
		matched = append(matched, Pair{U: u, V: v})
	}

	return matched, nil
}
