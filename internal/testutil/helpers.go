// Package testutil provides reusable test helper functions for the capture
// and playback pipelines.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Ramp returns n samples counting up from start.
func Ramp(n int, start uint16) []uint16 {
	s := make([]uint16, n)
	for i := range s {
		s[i] = start + uint16(i)
	}
	return s
}

// Fill returns n copies of v.
func Fill(n int, v uint16) []uint16 {
	s := make([]uint16, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// Concat joins sample blocks in order.
func Concat(blocks ...[]uint16) []uint16 {
	var out []uint16
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}

// AssertAllInDelta verifies that every element of s is within tolerance of want.
func AssertAllInDelta(t *testing.T, s []int16, want, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		d := float64(v) - want
		if d > tolerance || d < -tolerance {
			return assert.Fail(t, "sample out of tolerance",
				"s[%d]=%d is more than %g from %g", i, v, tolerance, want)
		}
	}
	return true
}

// AssertCorrected verifies that got equals raw minus offset, element by element.
func AssertCorrected(t *testing.T, raw []uint16, offset int32, got []int16, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, got, len(raw), msgAndArgs...) {
		return false
	}
	for i := range raw {
		want := int32(raw[i]) - offset
		if int32(got[i]) != want {
			return assert.Fail(t, "wrong corrected sample",
				"got[%d]=%d, want %d (raw %d, offset %d)", i, got[i], want, raw[i], offset)
		}
	}
	return true
}
