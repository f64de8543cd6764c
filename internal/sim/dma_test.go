package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter() Source {
	var n uint16
	return SourceFunc(func() uint16 {
		n++
		return n
	})
}

func TestDMA_PingPongOrder(t *testing.T) {
	d := NewDMA(counter())
	dst := [2][]uint16{make([]uint16, 3), make([]uint16, 3)}
	var done []int
	require.NoError(t, d.Start(dst, func(slot int) { done = append(done, slot) }))

	assert.Equal(t, 2, d.Transfer(2))
	assert.Empty(t, done)
	assert.Equal(t, 0, d.Filling())

	d.FillSlot()
	assert.Equal(t, []int{0}, done)
	assert.Equal(t, 1, d.Filling())
	assert.Equal(t, []uint16{1, 2, 3}, dst[0])

	d.FillSlot()
	d.FillSlot()
	assert.Equal(t, []int{0, 1, 0}, done)
	assert.Equal(t, []uint16{7, 8, 9}, dst[0])
	assert.Equal(t, []uint16{4, 5, 6}, dst[1])
	assert.Equal(t, uint64(9), d.Moved())
}

func TestDMA_StopAbandonsSlot(t *testing.T) {
	d := NewDMA(Constant(5))
	dst := [2][]uint16{make([]uint16, 4), make([]uint16, 4)}
	completions := 0
	require.NoError(t, d.Start(dst, func(int) { completions++ }))

	d.Transfer(2)
	d.Stop()
	assert.Zero(t, d.Transfer(10))
	d.FillSlot()
	assert.Zero(t, completions)
	assert.Equal(t, []uint16{5, 5, 0, 0}, dst[0])
}

func TestDMA_RejectsBadSlots(t *testing.T) {
	d := NewDMA(Constant(0))
	noop := func(int) {}

	assert.Error(t, d.Start([2][]uint16{nil, nil}, noop))
	assert.Error(t, d.Start([2][]uint16{make([]uint16, 2), make([]uint16, 3)}, noop))
	assert.Error(t, d.Start([2][]uint16{make([]uint16, 2), make([]uint16, 2)}, nil))
}

func TestDMA_SpinMovesBurst(t *testing.T) {
	d := NewDMA(Constant(1))
	d.Burst = 4
	dst := [2][]uint16{make([]uint16, 8), make([]uint16, 8)}
	require.NoError(t, d.Start(dst, func(int) {}))

	d.Spin()
	d.Spin()
	assert.Equal(t, uint64(8), d.Moved())
	assert.Equal(t, 1, d.Filling())
}

func TestPacedDMA_CompletesSlots(t *testing.T) {
	d := NewPacedDMA(Constant(3), 100_000, time.Millisecond)
	dst := [2][]uint16{make([]uint16, 100), make([]uint16, 100)}
	done := make(chan int, 1024)
	require.NoError(t, d.Start(dst, func(slot int) {
		select {
		case done <- slot:
		default:
		}
	}))

	select {
	case slot := <-done:
		assert.Equal(t, 0, slot)
	case <-time.After(time.Second):
		t.Fatal("paced DMA never completed a slot")
	}
	d.Stop()
	assert.False(t, d.Running())
}
