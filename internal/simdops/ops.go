// Package simdops wraps the float64 SIMD kernels used by the DC tracker and
// the capture analysis.
package simdops

import "github.com/tphakala/simd/f64"

// Scale multiplies each element by s: dst[i] = a[i] * s
func Scale(dst, a []float64, s float64) {
	f64.Scale(dst, a, s)
}

// Mean returns the arithmetic mean of a, or zero for an empty slice.
func Mean(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return f64.Sum(a) / float64(len(a))
}

// MeanSquare returns the mean of the squared elements of a.
func MeanSquare(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return f64.DotProductUnsafe(a, a) / float64(len(a))
}
