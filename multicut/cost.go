package multicut

import "gonum.org/v1/gonum/floats"

// CostDisconnected computes the objective of the all-singleton
// partition: the sum of ⟨f_i, f_j⟩ over all distinct unordered pairs,
// via (Σ_l s_l² − Σ_i Σ_l f_{i,l}²) / 2 with s the per-dimension
// column sum. With trackDistOffset the last dimension contributes with
// a negated sign throughout, which works out to subtracting
// offset·n(n−1)/2 from the unbiased total.
func CostDisconnected(n, d int, features []float32, trackDistOffset bool) float64 {
	if n == 0 {
		return 0
	}

	colSum := make([]float64, d)
	var diag float64
	for i := 0; i < n; i++ {
		row := features[i*d : (i+1)*d]
		for l, v := range row {
			sign := 1.0
			if trackDistOffset && l == d-1 {
				sign = -1.0
			}
			colSum[l] += float64(v)
			diag += sign * float64(v) * float64(v)
		}
	}

	cost := floats.Dot(colSum, colSum)
	if trackDistOffset {
		// the squared column sum added the last dimension positively;
		// flip it to negative
		cost -= 2 * colSum[d-1] * colSum[d-1]
	}

	return (cost - diag) / 2
}
