package benchmark_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/clustercore/cmeans"
	"github.com/clustercore/cmeans/model"
	"github.com/clustercore/cmeans/rng"
	"github.com/clustercore/cmeans/testutil"
)

// ============================================================================
// ENGINE BENCHMARKS
// ============================================================================
//
// Run: go test -bench=. -run=^$ ./benchmark_test/...
//
// Objects are drawn around fixed blob centers with a seeded generator, so
// every run clusters the same data.

var blobs = []model.Point{
	{X: 0.2, Y: 0.2}, {X: 0.8, Y: 0.2}, {X: 0.5, Y: 0.8}, {X: 0.2, Y: 0.8},
}

func fixture(n int) model.ObjectSet {
	return testutil.NewRNG(42).ClusteredPoints(n, blobs, 0.05)
}

func BenchmarkFuzzyCMeans(b *testing.B) {
	ctx := context.Background()

	sizes := []int{100, 1000, 10000}
	if testing.Short() {
		sizes = sizes[:2]
	}

	for _, n := range sizes {
		for _, c := range []int{2, 4} {
			b.Run(fmt.Sprintf("n=%d/c=%d", n, c), func(b *testing.B) {
				objects := fixture(n)
				fcm, err := cmeans.NewFuzzyCMeans(objects, c, cmeans.WithRandomSource(rng.New(1)))
				if err != nil {
					b.Fatal(err)
				}

				var iterations int
				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					if _, err := fcm.DetermineClusterCenters(ctx, true, false); err != nil {
						b.Fatal(err)
					}
					iterations += fcm.Iterations()
				}

				b.StopTimer()
				b.ReportMetric(float64(iterations)/float64(b.N), "iters/op")
			})
		}
	}
}

func BenchmarkPossibilisticCMeans(b *testing.B) {
	ctx := context.Background()

	for _, n := range []int{100, 1000} {
		for _, passes := range []int{1, 2} {
			b.Run(fmt.Sprintf("n=%d/passes=%d", n, passes), func(b *testing.B) {
				objects := fixture(n)
				pcm, err := cmeans.NewPossibilisticCMeans(objects, len(blobs), passes, cmeans.WithRandomSource(rng.New(1)))
				if err != nil {
					b.Fatal(err)
				}

				var iterations int
				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					pcm.ResetPasses()
					if _, err := pcm.DetermineClusterCenters(ctx, true, false); err != nil {
						b.Fatal(err)
					}
					iterations += pcm.Iterations()
				}

				b.StopTimer()
				b.ReportMetric(float64(iterations)/float64(b.N), "iters/op")
			})
		}
	}
}

func BenchmarkPathRecording(b *testing.B) {
	ctx := context.Background()
	objects := fixture(1000)

	for _, record := range []bool{false, true} {
		b.Run(fmt.Sprintf("path=%t", record), func(b *testing.B) {
			fcm, err := cmeans.NewFuzzyCMeans(objects, len(blobs), cmeans.WithRandomSource(rng.New(1)))
			if err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := fcm.DetermineClusterCenters(ctx, true, record); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
