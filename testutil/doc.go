// Package testutil provides fixtures and helpers for testing the clustering
// engines.
//
// # Reference Scenarios
//
//	objects := testutil.CanonicalObjects()
//	ok := testutil.MatchCenters(centers, testutil.FCMReference, testutil.ReferenceDelta)
//
// # Random Point Sets
//
//	points := testutil.NewRNG(seed).ClusteredPoints(100, centers, 0.05)
package testutil
