package ringbuf

import (
	"encoding/binary"
	"sync/atomic"
)

// PCMReader streams a Ring of signed 16-bit samples as little-endian bytes.
// When the ring runs dry it pads with silence instead of blocking, which is
// what a device pulling at its own pace expects. Read must be called from
// the ring's consumer goroutine only.
type PCMReader struct {
	ring    *Ring[int16]
	scratch []int16
	starved atomic.Uint64
}

// NewPCMReader wraps ring.
func NewPCMReader(ring *Ring[int16]) *PCMReader {
	return &PCMReader{ring: ring}
}

// Read fills p with whole samples. It always returns len(p) rounded down
// to an even count and a nil error.
func (r *PCMReader) Read(p []byte) (int, error) {
	n := len(p) / bytesPerSample
	if cap(r.scratch) < n {
		r.scratch = make([]int16, n)
	}
	s := r.scratch[:n]

	got := r.ring.Read(s)
	clear(s[got:])
	if got < n {
		r.starved.Add(uint64(n - got))
	}

	for i, v := range s {
		binary.LittleEndian.PutUint16(p[i*bytesPerSample:], uint16(v))
	}
	return n * bytesPerSample, nil
}

// Starved returns how many silent samples were inserted.
func (r *PCMReader) Starved() uint64 {
	return r.starved.Load()
}
