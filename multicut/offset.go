package multicut

import (
	"errors"
	"math"
)

// ErrNegativeOffset indicates an offset below zero; only non-negative
// biases are expressible through the √offset column.
var ErrNegativeOffset = errors.New("multicut: dist offset must be non-negative")

// AppendDistOffset returns an n×(d+1) copy of the n×d feature matrix
// whose extra column holds √offset in every row. Solving on the result
// with offset tracking enabled biases every pairwise weight by −offset.
func AppendDistOffset(features []float32, offset float64, n, d int) ([]float32, error) {
	if offset < 0 {
		return nil, ErrNegativeOffset
	}

	root := float32(math.Sqrt(offset))
	out := make([]float32, 0, n*(d+1))
	for i := 0; i < n; i++ {
		out = append(out, features[i*d:(i+1)*d]...)
		out = append(out, root)
	}

	return out, nil
}
