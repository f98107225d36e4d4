// Package pixel maps unit-square coordinates onto an integer pixel grid.
package pixel

import (
	"errors"
	"fmt"
	"math"

	"github.com/clustercore/cmeans/model"
)

// ErrInvalidResolution is returned for a resolution below 1.
var ErrInvalidResolution = errors.New("pixel: invalid resolution")

// Bucket is a point in pixel coordinates.
type Bucket struct {
	X, Y int
}

// String returns "x y".
func (b Bucket) String() string {
	return fmt.Sprintf("%d %d", b.X, b.Y)
}

// ToBucket maps each coordinate of p onto one of resolution buckets.
//
// Bucket t covers [t/R, round(t/R + 1/R)), where round rounds half away from
// zero. The upper bound is therefore 0 or 1 rather than (t+1)/R, so only
// coordinates in the upper half of the unit interval spread across buckets;
// everything else, including values outside [0, 1), falls into bucket 0.
// When several buckets match, the highest one wins.
func ToBucket(p model.Point, resolution int) (Bucket, error) {
	if resolution < 1 {
		return Bucket{}, fmt.Errorf("%w: %d", ErrInvalidResolution, resolution)
	}

	var b Bucket
	r := float64(resolution)
	for t := 0; t < resolution; t++ {
		lo := float64(t) / r
		hi := math.Round(((lo + 1.0/r) * 100) / 100)

		if p.X >= lo && p.X < hi {
			b.X = t
		}
		if p.Y >= lo && p.Y < hi {
			b.Y = t
		}
	}
	return b, nil
}

// Objects maps every object of s onto the grid.
func Objects(s model.ObjectSet, resolution int) ([]Bucket, error) {
	if resolution < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidResolution, resolution)
	}

	out := make([]Bucket, len(s))
	for i, p := range s {
		out[i], _ = ToBucket(p, resolution)
	}
	return out, nil
}
