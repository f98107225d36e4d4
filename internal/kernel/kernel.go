package kernel

import (
	"math"

	"github.com/clustercore/cmeans/distance"
	"github.com/clustercore/cmeans/model"
	"github.com/clustercore/cmeans/rng"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// FallbackMembership replaces a membership value that evaluates to NaN.
// That happens when an object coincides with a center.
const FallbackMembership = 1.0

// InitRandom fills every entry of mik independently from src.
// Rows are not normalized unless normalize is set.
func InitRandom(mik *mat.Dense, src rng.Source, normalize bool) {
	n, c := mik.Dims()
	for i := 0; i < n; i++ {
		row := mik.RawRowView(i)
		if f, ok := src.(interface{ FillUniform([]float64) }); ok {
			f.FillUniform(row)
		} else {
			for k := 0; k < c; k++ {
				row[k] = src.Float64()
			}
		}
		if normalize {
			if s := floats.Sum(row); s > 0 {
				floats.Scale(1/s, row)
			}
		}
	}
}

// InitCrisp assigns object i fully to cluster i mod C (round-robin one-hot).
func InitCrisp(mik *mat.Dense) {
	n, c := mik.Dims()
	mik.Zero()
	s := 0
	for i := 0; i < n; i++ {
		mik.Set(i, s, 1)
		s++
		if s == c {
			s = 0
		}
	}
}

// UpdateCenters recomputes every center as the membership-weighted centroid
// of the objects, with weights mik^m. A cluster with zero total weight
// yields NaN coordinates.
func UpdateCenters(objects model.ObjectSet, mik *mat.Dense, m float64, centers []model.Point) {
	for k := range centers {
		var sx, sy, sw float64
		for i, obj := range objects {
			w := math.Pow(mik.At(i, k), m)
			sx += w * obj.X
			sy += w * obj.Y
			sw += w
		}
		centers[k] = model.Point{X: sx / sw, Y: sy / sw}
	}
}

// UpdateFuzzyMembership applies the fuzzy c-means membership rule:
//
//	mik = d_ik^(-1/(m-1)) / Σ_j d_ij^(-1/(m-1))
//
// Rows sum to 1 afterwards.
func UpdateFuzzyMembership(objects model.ObjectSet, centers []model.Point, mik *mat.Dense, m float64, dist distance.Func) {
	exp := 1.0 / (m - 1.0)
	raw := make([]float64, len(centers))
	for i, obj := range objects {
		for k, v := range centers {
			raw[k] = math.Pow(1.0/dist(obj, v), exp)
		}
		sum := floats.Sum(raw)
		for k := range centers {
			u := raw[k] / sum
			if math.IsNaN(u) {
				u = FallbackMembership
			}
			mik.Set(i, k, u)
		}
	}
}

// Typicality calibrates the per-cluster distance scale of the
// possibilistic rule:
//
//	ni[k] = Σ_i mik^4 · d_ik² / Σ_i mik²
func Typicality(objects model.ObjectSet, centers []model.Point, mik *mat.Dense, dist distance.Func, ni []float64) {
	sums := make([]float64, len(centers))
	for k := range ni {
		ni[k] = 0
	}
	for i, obj := range objects {
		for k, v := range centers {
			d := dist(obj, v)
			u2 := mik.At(i, k) * mik.At(i, k)
			ni[k] += u2 * u2 * d * d
			sums[k] += u2
		}
	}
	for k := range ni {
		ni[k] /= sums[k]
	}
}

// UpdatePossibilisticMembership applies the possibilistic rule
//
//	mik = 1 / (1 + d_ik² / ni[k])
//
// independently per entry, without row normalization.
func UpdatePossibilisticMembership(objects model.ObjectSet, centers []model.Point, mik *mat.Dense, ni []float64, dist distance.Func) {
	for i, obj := range objects {
		for k, v := range centers {
			d := dist(obj, v)
			u := 1 / (1 + (d*d)/ni[k])
			if math.IsNaN(u) {
				u = FallbackMembership
			}
			mik.Set(i, k, u)
		}
	}
}

// Change returns sqrt(Σ (a - b)²) over all entries of two equally shaped
// matrices.
func Change(a, b *mat.Dense) float64 {
	return floats.Distance(a.RawMatrix().Data, b.RawMatrix().Data, 2)
}

// RowSums returns the sum of every row of mik.
func RowSums(mik *mat.Dense) []float64 {
	n, _ := mik.Dims()
	sums := make([]float64, n)
	for i := range sums {
		sums[i] = floats.Sum(mik.RawRowView(i))
	}
	return sums
}

// IsFinite reports whether every entry of mik is neither NaN nor infinite.
func IsFinite(mik *mat.Dense) bool {
	for _, v := range mik.RawMatrix().Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
