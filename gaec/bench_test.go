package gaec_test

import (
	"testing"

	"github.com/pawelswoboda/dense-multicut/feature"
	"github.com/pawelswoboda/dense-multicut/gaec"
)

func benchInstance(b *testing.B) ([]float32, int, int) {
	b.Helper()
	const n, d = 256, 32
	features, _ := clusteredInstance(n, d, 41)

	return features, n, d
}

func BenchmarkSequentialFlat(b *testing.B) {
	features, n, d := benchInstance(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gaec.Sequential(n, d, features, feature.IndexFlat); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkIncrementalNNFlat(b *testing.B) {
	features, n, d := benchInstance(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gaec.IncrementalNN(n, d, features, feature.IndexFlat, gaec.WithK(8)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParallelFlat(b *testing.B) {
	features, n, d := benchInstance(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gaec.Parallel(n, d, features, feature.IndexFlat); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAdjacencyMatrix(b *testing.B) {
	features, n, d := benchInstance(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gaec.AdjacencyMatrix(n, d, features); err != nil {
			b.Fatal(err)
		}
	}
}
