package gaec_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawelswoboda/dense-multicut/feature"
	"github.com/pawelswoboda/dense-multicut/gaec"
	"github.com/pawelswoboda/dense-multicut/multicut"
)

// solver abstracts one variant so every scenario runs against all of
// them.
type solver struct {
	name string
	run  func(n, d int, features []float32, opts ...gaec.Option) (gaec.Result, error)
}

func allSolvers() []solver {
	return []solver{
		{"adj_matrix", func(n, d int, f []float32, o ...gaec.Option) (gaec.Result, error) {
			return gaec.AdjacencyMatrix(n, d, f, o...)
		}},
		{"flat_index", func(n, d int, f []float32, o ...gaec.Option) (gaec.Result, error) {
			return gaec.Sequential(n, d, f, feature.IndexFlat, o...)
		}},
		{"hnsw", func(n, d int, f []float32, o ...gaec.Option) (gaec.Result, error) {
			return gaec.Sequential(n, d, f, feature.IndexHNSW, o...)
		}},
		{"parallel_flat_index", func(n, d int, f []float32, o ...gaec.Option) (gaec.Result, error) {
			return gaec.Parallel(n, d, f, feature.IndexFlat, o...)
		}},
		{"inc_nn_flat", func(n, d int, f []float32, o ...gaec.Option) (gaec.Result, error) {
			return gaec.IncrementalNN(n, d, f, feature.IndexFlat, o...)
		}},
	}
}

// pairCutCost recomputes the multicut objective of a labeling by brute
// force: the summed weight of all pairs whose endpoints ended up in
// different clusters.
func pairCutCost(n, d int, features []float32, labels []int64, trackOffset bool) float64 {
	ip := func(i, j int) float64 {
		var x float64
		for l := 0; l < d; l++ {
			v := float64(features[i*d+l]) * float64(features[j*d+l])
			if trackOffset && l == d-1 {
				x -= v
			} else {
				x += v
			}
		}

		return x
	}

	var cost float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if labels[i] != labels[j] {
				cost += ip(i, j)
			}
		}
	}

	return cost
}

// checkResult asserts the invariants every solve must satisfy.
func checkResult(t *testing.T, res gaec.Result, n, d int, features []float32, trackOffset bool) {
	t.Helper()
	require.Len(t, res.Labels, n)
	for _, l := range res.Labels {
		assert.GreaterOrEqual(t, l, int64(0))
		assert.Less(t, l, int64(2*n))
	}
	// final objective must match the cut cost of the returned partition
	assert.InDelta(t, pairCutCost(n, d, features, res.Labels, trackOffset), res.Objective,
		1e-3+1e-6*float64(n)*float64(d), "objective accounting out of sync with labeling")
	assert.LessOrEqual(t, res.Contractions, n-1)
}

// TestSolvers_Validation exercises the shared input checks.
func TestSolvers_Validation(t *testing.T) {
	for _, s := range allSolvers() {
		s := s
		t.Run(s.name, func(t *testing.T) {
			_, err := s.run(2, 0, nil)
			assert.ErrorIs(t, err, gaec.ErrDimension)
			_, err = s.run(-1, 2, nil)
			assert.ErrorIs(t, err, gaec.ErrNodeCount)
			_, err = s.run(2, 2, []float32{1, 2, 3})
			assert.ErrorIs(t, err, gaec.ErrFeatureCount)
		})
	}
}

// TestOptions_PanicOnInvalid checks the eager option validation.
func TestOptions_PanicOnInvalid(t *testing.T) {
	assert.Panics(t, func() { gaec.WithK(0) })
	assert.Panics(t, func() { gaec.WithHNSWParams(0, 20) })
	assert.Panics(t, func() { gaec.WithHNSWParams(16, 0) })
	assert.NotPanics(t, func() { gaec.WithK(3) })
}

// TestSolvers_Boundary covers n=0, n=1 and the two n=2 cases.
func TestSolvers_Boundary(t *testing.T) {
	for _, s := range allSolvers() {
		s := s
		t.Run(s.name, func(t *testing.T) {
			res, err := s.run(0, 2, nil)
			require.NoError(t, err)
			assert.Empty(t, res.Labels)

			res, err = s.run(1, 2, []float32{3, 4})
			require.NoError(t, err)
			assert.Equal(t, []int64{0}, res.Labels)
			assert.Zero(t, res.Contractions)

			// positive pair joins
			res, err = s.run(2, 2, []float32{1, 0, 1, 0})
			require.NoError(t, err)
			assert.Equal(t, 1, res.NrClusters())
			assert.Equal(t, 1, res.Contractions)

			// orthogonal pair stays apart
			res, err = s.run(2, 2, []float32{1, 0, 0, 1})
			require.NoError(t, err)
			assert.Equal(t, 2, res.NrClusters())
			assert.Zero(t, res.Contractions)
		})
	}
}

// TestSolvers_TwoPairs is the canonical scenario: [[1,0],[1,0],[0,1],[0,1]]
// must split into {{0,1},{2,3}} under every variant.
func TestSolvers_TwoPairs(t *testing.T) {
	features := []float32{1, 0, 1, 0, 0, 1, 0, 1}
	for _, s := range allSolvers() {
		s := s
		t.Run(s.name, func(t *testing.T) {
			res, err := s.run(4, 2, features)
			require.NoError(t, err)
			checkResult(t, res, 4, 2, features, false)
			assert.Equal(t, []int64{0, 0, 1, 1}, multicut.NormalizeLabels(res.Labels))
		})
	}
}

// TestSolvers_AllNonPositive keeps every point a singleton.
func TestSolvers_AllNonPositive(t *testing.T) {
	features := []float32{1, 0, 0, 1, -1, 0}
	for _, s := range allSolvers() {
		s := s
		t.Run(s.name, func(t *testing.T) {
			res, err := s.run(3, 2, features)
			require.NoError(t, err)
			checkResult(t, res, 3, 2, features, false)
			assert.Equal(t, []int64{0, 1, 2}, multicut.NormalizeLabels(res.Labels))
			assert.Equal(t, res.InitialObjective, res.Objective)
		})
	}
}

// TestSolvers_AllIdentical collapses identical positive points into
// one cluster.
func TestSolvers_AllIdentical(t *testing.T) {
	features := []float32{2, 1, 2, 1, 2, 1, 2, 1, 2, 1}
	for _, s := range allSolvers() {
		s := s
		t.Run(s.name, func(t *testing.T) {
			res, err := s.run(5, 2, features)
			require.NoError(t, err)
			checkResult(t, res, 5, 2, features, false)
			assert.Equal(t, 1, res.NrClusters())
			assert.Equal(t, 4, res.Contractions)
		})
	}
}

// TestSolvers_ObjectiveAccounting replays the documented scenario
// [[2,0],[1,0],[0,2],[0,1]]: initial objective 4, both intra pairs
// contract (2 each), final objective 0.
func TestSolvers_ObjectiveAccounting(t *testing.T) {
	features := []float32{2, 0, 1, 0, 0, 2, 0, 1}
	for _, s := range allSolvers() {
		s := s
		t.Run(s.name, func(t *testing.T) {
			res, err := s.run(4, 2, features)
			require.NoError(t, err)
			checkResult(t, res, 4, 2, features, false)
			assert.Equal(t, []int64{0, 0, 1, 1}, multicut.NormalizeLabels(res.Labels))
			assert.InDelta(t, 4.0, res.InitialObjective, 1e-6)
			assert.InDelta(t, 0.0, res.Objective, 1e-6)
			assert.Equal(t, 2, res.Contractions)
		})
	}
}

// TestSolvers_DistOffset biases the previous scenario by 0.5: the
// intra-pair weights stay positive (1.5), the cross pairs turn
// negative, and the partition is unchanged.
func TestSolvers_DistOffset(t *testing.T) {
	const offset = 0.5
	base := []float32{2, 0, 1, 0, 0, 2, 0, 1}
	features, err := multicut.AppendDistOffset(base, offset, 4, 2)
	require.NoError(t, err)

	for _, s := range allSolvers() {
		s := s
		t.Run(s.name, func(t *testing.T) {
			res, err := s.run(4, 3, features, gaec.WithDistOffsetTracking())
			require.NoError(t, err)
			checkResult(t, res, 4, 3, features, true)
			assert.Equal(t, []int64{0, 0, 1, 1}, multicut.NormalizeLabels(res.Labels))
			assert.InDelta(t, 4.0-offset*6, res.InitialObjective, 1e-6)
		})
	}
}

// TestSolvers_ZeroOffsetEquivalence: appending a zero offset column
// and tracking it must reproduce the untracked solve.
func TestSolvers_ZeroOffsetEquivalence(t *testing.T) {
	base := []float32{2, 0, 1, 0, 0, 2, 0, 1}
	padded, err := multicut.AppendDistOffset(base, 0, 4, 2)
	require.NoError(t, err)

	plain, err := gaec.Sequential(4, 2, base, feature.IndexFlat)
	require.NoError(t, err)
	tracked, err := gaec.Sequential(4, 3, padded, feature.IndexFlat, gaec.WithDistOffsetTracking())
	require.NoError(t, err)

	assert.Equal(t, multicut.NormalizeLabels(plain.Labels), multicut.NormalizeLabels(tracked.Labels))
	assert.InDelta(t, plain.Objective, tracked.Objective, 1e-6)
}

// clusteredInstance builds n points around four pairwise-repelling
// tetrahedron centers in the first three dimensions, with mild noise
// everywhere. Intra-cluster weights sit near +12, cross-cluster near
// −4, so every variant must recover the planted partition.
func clusteredInstance(n, d int, seed int64) ([]float32, []int64) {
	centers := [4][3]float32{
		{2, 2, 2},
		{2, -2, -2},
		{-2, 2, -2},
		{-2, -2, 2},
	}
	rng := rand.New(rand.NewSource(seed))
	features := make([]float32, n*d)
	truth := make([]int64, n)
	for i := 0; i < n; i++ {
		c := i % 4
		truth[i] = int64(c)
		for l := 0; l < d; l++ {
			v := float32(rng.NormFloat64()) * 0.05
			if l < 3 {
				v += centers[c][l]
			}
			features[i*d+l] = v
		}
	}

	return features, truth
}

// samePartition reports whether two labelings induce the same
// partition of [0, n).
func samePartition(a, b []int64) bool {
	na, nb := multicut.NormalizeLabels(a), multicut.NormalizeLabels(b)
	for i := range na {
		if na[i] != nb[i] {
			return false
		}
	}

	return true
}

// TestSolvers_PlantedClusters runs all variants on a 100×64 planted
// instance: the exact variants must agree with the reference exactly,
// the approximate one within the documented 5% objective tolerance.
func TestSolvers_PlantedClusters(t *testing.T) {
	const n, d = 100, 64
	features, truth := clusteredInstance(n, d, 17)

	ref, err := gaec.AdjacencyMatrix(n, d, features)
	require.NoError(t, err)
	checkResult(t, ref, n, d, features, false)
	require.True(t, samePartition(ref.Labels, truth), "reference must recover the planted clusters")

	flat, err := gaec.Sequential(n, d, features, feature.IndexFlat)
	require.NoError(t, err)
	checkResult(t, flat, n, d, features, false)
	assert.True(t, samePartition(ref.Labels, flat.Labels), "adj_matrix and flat_index must agree")

	par, err := gaec.Parallel(n, d, features, feature.IndexFlat)
	require.NoError(t, err)
	checkResult(t, par, n, d, features, false)
	assert.True(t, samePartition(ref.Labels, par.Labels))
	assert.Positive(t, par.Rounds)

	inc, err := gaec.IncrementalNN(n, d, features, feature.IndexFlat, gaec.WithK(5))
	require.NoError(t, err)
	checkResult(t, inc, n, d, features, false)
	assert.True(t, samePartition(ref.Labels, inc.Labels))

	hnsw, err := gaec.Sequential(n, d, features, feature.IndexHNSW, gaec.WithSeed(99))
	require.NoError(t, err)
	checkResult(t, hnsw, n, d, features, false)
	assert.InEpsilon(t, ref.Objective, hnsw.Objective, 0.05,
		"approximate objective must stay within 5%% of the exact one")
}

// TestSolvers_Deterministic runs the same solve twice and expects the
// same labeling, HNSW included (fixed seed).
func TestSolvers_Deterministic(t *testing.T) {
	const n, d = 40, 8
	features, _ := clusteredInstance(n, d, 23)

	for _, s := range allSolvers() {
		s := s
		t.Run(s.name, func(t *testing.T) {
			a, err := s.run(n, d, features, gaec.WithSeed(5))
			require.NoError(t, err)
			b, err := s.run(n, d, features, gaec.WithSeed(5))
			require.NoError(t, err)
			assert.Equal(t, a.Labels, b.Labels)
			assert.Equal(t, a.Objective, b.Objective)
		})
	}
}

// TestIncrementalNN_LargeK clamps k beyond n−1 instead of failing.
func TestIncrementalNN_LargeK(t *testing.T) {
	features := []float32{1, 0, 1, 0, 0, 1, 0, 1}
	res, err := gaec.IncrementalNN(4, 2, features, feature.IndexFlat, gaec.WithK(50))
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 0, 1, 1}, multicut.NormalizeLabels(res.Labels))
}
