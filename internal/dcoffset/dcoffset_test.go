package dcoffset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantBlock(n int, v uint16) []uint16 {
	b := make([]uint16, n)
	for i := range b {
		b[i] = v
	}
	return b
}

func TestTracker_ConvergesOnConstantInput(t *testing.T) {
	const k = 2048
	tr := New(256, 3)
	src := constantBlock(256, k)
	dst := make([]int16, len(src))

	tr.Correct(dst, src)
	first := dst[0]
	assert.Greater(t, first, int16(1000), "first block should still carry most of the bias")

	for range 100 {
		tr.Correct(dst, src)
	}
	assert.InDelta(t, k, tr.Level(), 0.5)
	for i, v := range dst {
		require.InDelta(t, 0, v, 1, "sample %d", i)
	}
}

func TestTracker_ResidualShrinksMonotonically(t *testing.T) {
	tr := New(64, 2)
	src := constantBlock(64, 3000)

	prev := 3000.0
	for range 20 {
		level := tr.Update(src)
		residual := 3000 - level
		assert.Less(t, residual, prev)
		prev = residual
	}
}

func TestTracker_PreservesSignalAroundBias(t *testing.T) {
	tr := New(4, 0)
	dst := make([]int16, 4)

	// With shift 0 the estimate jumps straight to the block mean.
	tr.Correct(dst, []uint16{1000, 3000, 1000, 3000})
	assert.Equal(t, []int16{-1000, 1000, -1000, 1000}, dst)
	assert.Equal(t, int32(2000), tr.Offset())
}

func TestTracker_Saturates(t *testing.T) {
	tr := New(4, 0)
	dst := make([]int16, 4)

	// Mean 16383.75, so the full-scale sample overflows upwards.
	tr.Correct(dst, []uint16{65535, 0, 0, 0})
	assert.Equal(t, []int16{32767, -16384, -16384, -16384}, dst)

	// Mean 49151.25, so the zero sample overflows downwards.
	tr.Correct(dst, []uint16{65535, 65535, 65535, 0})
	assert.Equal(t, []int16{16384, 16384, 16384, -32768}, dst)
}

func TestTracker_EmptyBlockKeepsEstimate(t *testing.T) {
	tr := New(8, 0)
	tr.Update(constantBlock(8, 100))

	assert.InDelta(t, 100, tr.Update(nil), 1e-12)
}

func TestTracker_GrowsForLargerBlocks(t *testing.T) {
	tr := New(2, 0)
	assert.InDelta(t, 7, tr.Update(constantBlock(16, 7)), 1e-12)
}

func TestTracker_Reset(t *testing.T) {
	tr := New(8, 1)
	tr.Update(constantBlock(8, 500))
	require.NotZero(t, tr.Level())

	tr.Reset(0)
	assert.Zero(t, tr.Level())
	assert.InDelta(t, 42, tr.Update(constantBlock(8, 42)), 1e-12)
}
