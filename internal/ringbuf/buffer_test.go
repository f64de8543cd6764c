package ringbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_WriteRead(t *testing.T) {
	b := NewBuffer[float64](4)
	b.Write([]float64{1, 2, 3})
	assert.Equal(t, 3, b.Available())

	dst := make([]float64, 2)
	require.Equal(t, 2, b.ReadInto(dst))
	assert.Equal(t, []float64{1, 2}, dst)

	dst = make([]float64, 5)
	require.Equal(t, 1, b.ReadInto(dst))
	assert.Equal(t, 3.0, dst[0])
	assert.Zero(t, b.ReadInto(dst))
	assert.Zero(t, b.Available())
}

func TestBuffer_GrowsPreservingOrder(t *testing.T) {
	b := NewBuffer[uint16](4)
	b.Write([]uint16{1, 2, 3})
	b.ReadInto(make([]uint16, 2))
	b.Write([]uint16{4, 5, 6}) // wraps

	b.Write([]uint16{7, 8, 9}) // grows while wrapped
	require.Equal(t, 7, b.Available())

	out := make([]uint16, 10)
	n := b.ReadInto(out)
	assert.Equal(t, []uint16{3, 4, 5, 6, 7, 8, 9}, out[:n])
}

func TestBuffer_ReadInto(t *testing.T) {
	b := NewBuffer[uint16](2)
	b.Write([]uint16{5, 6, 7})

	dst := make([]uint16, 2)
	require.Equal(t, 2, b.ReadInto(dst))
	assert.Equal(t, []uint16{5, 6}, dst)
	require.Equal(t, 1, b.ReadInto(dst))
	assert.Equal(t, uint16(7), dst[0])
}

func TestBuffer_ZeroCapacityGrows(t *testing.T) {
	b := NewBuffer[int](0)
	b.Write(nil)
	assert.Zero(t, b.Available())

	b.Write([]int{1, 2, 3})
	out := make([]int, 3)
	require.Equal(t, 3, b.ReadInto(out))
	assert.Equal(t, []int{1, 2, 3}, out)
}
