package feature

import (
	"fmt"
	"sort"
)

// flatIndex is the exact backend: every search scores all stored rows.
// Rows arrive in id order, so the row slice doubles as the id space.
type flatIndex struct {
	d    int
	rows [][]float32
}

func newFlatIndex(d, hint int) *flatIndex {
	return &flatIndex{d: d, rows: make([][]float32, 0, 2*hint)}
}

func (f *flatIndex) add(id int64, vec []float32) error {
	if id != int64(len(f.rows)) {
		return fmt.Errorf("feature: flat index expects sequential ids, got %d want %d", id, len(f.rows))
	}
	f.rows = append(f.rows, vec)

	return nil
}

func (f *flatIndex) size() int { return len(f.rows) }

// search returns the k ids with the highest dot product against query,
// descending, ascending id on exact ties.
func (f *flatIndex) search(query []float32, k int) ([]int64, error) {
	m := len(f.rows)
	if k > m {
		k = m
	}
	if k <= 0 {
		return nil, nil
	}

	scores := make([]float32, m)
	for id, row := range f.rows {
		var x float32
		for l := 0; l < f.d; l++ {
			x += query[l] * row[l]
		}
		scores[id] = x
	}

	order := make([]int64, m)
	for id := range order {
		order[id] = int64(id)
	}
	sort.Slice(order, func(a, b int) bool {
		if scores[order[a]] != scores[order[b]] {
			return scores[order[a]] > scores[order[b]]
		}

		return order[a] < order[b]
	})

	return order[:k], nil
}
