// Package distance provides planar distance calculations for the clustering
// engines.
//
// # Supported Metrics
//
//   - MetricEuclidean: planar Euclidean distance (the only supported metric)
//
// Other metric values are representable so configuration can be validated,
// but Provider rejects them.
//
// # Usage
//
//	fn, err := distance.Provider(distance.MetricEuclidean)
//	d := fn(a, b)
package distance
