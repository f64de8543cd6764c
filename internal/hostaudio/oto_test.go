package hostaudio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests exercise the sample path only; they never open a device.

func TestNewOtoDAC_RingSize(t *testing.T) {
	d := NewOtoDAC(48000, 100*time.Millisecond)
	assert.GreaterOrEqual(t, d.ring.Capacity(), 4800)

	small := NewOtoDAC(8000, time.Millisecond)
	assert.GreaterOrEqual(t, small.ring.Capacity(), minRingSamples)
}

func TestOtoDAC_WriteConvertsCodes(t *testing.T) {
	d := NewOtoDAC(8000, 0)
	d.SetResolution(12)

	d.Write(0, 2048)
	d.Write(0, 4095)
	d.Write(0, 0)
	require.Equal(t, 3, d.Buffered())

	p := make([]byte, 6)
	n, err := d.reader.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	// 0, 32752, -32768 little-endian
	assert.Equal(t, []byte{0x00, 0x00, 0xF0, 0x7F, 0x00, 0x80}, p)
}

func TestOtoDAC_DropsWhenFull(t *testing.T) {
	d := NewOtoDAC(8000, time.Millisecond)
	capacity := d.ring.Capacity()

	for range capacity + 10 {
		d.Write(0, 2048)
	}
	assert.Equal(t, capacity, d.Buffered())
	assert.Equal(t, uint64(10), d.Dropped())
}

func TestOtoDAC_StarvedCountsSilence(t *testing.T) {
	d := NewOtoDAC(8000, 0)
	_, err := d.reader.Read(make([]byte, 8))
	require.NoError(t, err)
	assert.Equal(t, uint64(4), d.Starved())
}

func TestOtoDAC_NotOpen(t *testing.T) {
	d := NewOtoDAC(8000, 0)
	assert.ErrorIs(t, d.Drain(time.Millisecond), errNotOpen)
	assert.NoError(t, d.Close())
}
