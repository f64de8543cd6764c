package simdops

import (
	"testing"

	"github.com/tphakala/simd/f64"
)

// BenchmarkDirectF64Sum measures direct SIMD call overhead on a capture slot.
func BenchmarkDirectF64Sum(b *testing.B) {
	a := make([]float64, 4096)
	for i := range a {
		a[i] = float64(i % 4096)
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = f64.Sum(a)
	}
}

// BenchmarkIndirectF64Sum measures indirect call through Ops struct.
func BenchmarkIndirectF64Sum(b *testing.B) {
	ops := For[float64]()
	a := make([]float64, 4096)
	for i := range a {
		a[i] = float64(i % 4096)
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = ops.Sum(a)
	}
}
