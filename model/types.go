package model

import (
	"fmt"
	"math"
	"slices"
)

// Dimension is the number of coordinates of a Point.
const Dimension = 2

// Point is a planar coordinate pair.
type Point struct {
	X float64
	Y float64
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Coord returns the coordinate on axis d (0 = X, 1 = Y).
func (p Point) Coord(d int) float64 {
	if d == 0 {
		return p.X
	}
	return p.Y
}

// Slice returns the point as a two-element slice.
func (p Point) Slice() []float64 {
	return []float64{p.X, p.Y}
}

// IsFinite reports whether neither coordinate is NaN or infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// ObjectSet is an ordered, fixed-size sequence of points to be clustered.
type ObjectSet []Point

// Len returns the number of objects.
func (s ObjectSet) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s ObjectSet) Clone() ObjectSet {
	return slices.Clone(s)
}

// FromPairs builds an ObjectSet from [x, y] pairs.
// It returns an error if a pair does not hold exactly two values.
func FromPairs(pairs [][]float64) (ObjectSet, error) {
	set := make(ObjectSet, len(pairs))
	for i, p := range pairs {
		if len(p) != Dimension {
			return nil, fmt.Errorf("object %d: expected %d coordinates, got %d", i, Dimension, len(p))
		}
		set[i] = Point{X: p[0], Y: p[1]}
	}
	return set, nil
}

// Path is the ordered history of cluster centers. Each iteration appends
// one snapshot of every center in center-index order.
type Path []Point

// Snapshots splits the path into per-iteration snapshots of clusterCount
// centers. A trailing partial snapshot is dropped.
func (p Path) Snapshots(clusterCount int) [][]Point {
	if clusterCount < 1 {
		return nil
	}
	n := len(p) / clusterCount
	out := make([][]Point, n)
	for i := range n {
		out[i] = p[i*clusterCount : (i+1)*clusterCount]
	}
	return out
}
