package main

import (
	"context"
	"fmt"
	"io"

	"github.com/clustercore/cmeans"
	"github.com/clustercore/cmeans/model"
	"github.com/clustercore/cmeans/pixel"
	"github.com/clustercore/cmeans/testutil"
	"golang.org/x/sync/errgroup"
)

// selftest runs the reference scenarios and reports one ok/error line per
// scenario. It returns false if any scenario fails.
func selftest(ctx context.Context, w io.Writer, opts []cmeans.Option) bool {
	point := model.Point{X: 0.5, Y: 0.5}
	b, err := pixel.ToBucket(point, 100)
	if err != nil {
		fmt.Fprintf(w, "Pixel Test error: %v\n", err)
		return false
	}
	fmt.Fprintf(w, "%g %g -> %s\n", point.X, point.Y, b)

	objects := testutil.CanonicalObjects()
	scenarios := []struct {
		name string
		want []model.Point
		new  func() (cmeans.Clusterer, error)
	}{
		{"FCM Test", testutil.FCMReference, func() (cmeans.Clusterer, error) {
			return cmeans.NewFuzzyCMeans(objects, 2, opts...)
		}},
		{"PCM Test 1", testutil.PCM1Reference, func() (cmeans.Clusterer, error) {
			return cmeans.NewPossibilisticCMeans(objects, 2, 1, opts...)
		}},
		{"PCM Test 2", testutil.PCM2Reference, func() (cmeans.Clusterer, error) {
			return cmeans.NewPossibilisticCMeans(objects, 2, 2, opts...)
		}},
	}

	// Scenarios own their engines and run concurrently; results are
	// reported in scenario order.
	passed := make([]bool, len(scenarios))
	var g errgroup.Group
	for i, s := range scenarios {
		g.Go(func() error {
			passed[i] = checkScenario(ctx, s.new, s.want)
			return nil
		})
	}
	_ = g.Wait()

	ok := true
	for i, s := range scenarios {
		if passed[i] {
			fmt.Fprintf(w, "%s ok\n", s.name)
		} else {
			fmt.Fprintf(w, "%s error\n", s.name)
			ok = false
		}
	}
	return ok
}

func checkScenario(ctx context.Context, newEngine func() (cmeans.Clusterer, error), want []model.Point) bool {
	engine, err := newEngine()
	if err != nil {
		return false
	}
	centers, err := engine.DetermineClusterCenters(ctx, true, false)
	if err != nil {
		return false
	}
	return testutil.MatchCenters(centers, want, testutil.ReferenceDelta)
}
