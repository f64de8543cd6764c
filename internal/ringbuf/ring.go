// Package ringbuf provides sample FIFOs: a lock-free single-producer,
// single-consumer Ring for handing samples from an interrupt-style callback
// to a host audio device, and a growable Buffer for staging decoded audio.
package ringbuf

import "sync/atomic"

// Ring is a fixed-size lock-free FIFO for exactly one producer and one
// consumer goroutine. Capacity is a power of two.
//
// Push belongs to the producer; Read and Available to the consumer.
type Ring[T any] struct {
	writePos atomic.Uint64
	_        [cacheLinePad]byte
	readPos  atomic.Uint64
	_        [cacheLinePad]byte

	buf  []T
	mask uint64
}

// NewRing creates a ring holding at least minSize values.
func NewRing[T any](minSize int) *Ring[T] {
	size := 1
	for size < minSize {
		size <<= 1
	}
	return &Ring[T]{
		buf:  make([]T, size),
		mask: uint64(size - 1),
	}
}

// Push appends v and reports whether there was room.
func (r *Ring[T]) Push(v T) bool {
	w := r.writePos.Load()
	if w-r.readPos.Load() == uint64(len(r.buf)) {
		return false
	}
	r.buf[w&r.mask] = v
	r.writePos.Store(w + 1)
	return true
}



// Read copies up to len(p) values out and returns the count.
func (r *Ring[T]) Read(p []T) int {
	rd := r.readPos.Load()
	n := min(uint64(len(p)), r.writePos.Load()-rd)
	if n == 0 {
		return 0
	}

	pos := rd & r.mask
	first := uint64(len(r.buf)) - pos
	if first >= n {
		copy(p[:n], r.buf[pos:pos+n])
	} else {
		copy(p[:first], r.buf[pos:])
		copy(p[first:n], r.buf[:n-first])
	}

	r.readPos.Store(rd + n)
	return int(n)
}

// Available returns the number of values ready to read.
func (r *Ring[T]) Available() int {
	return int(r.writePos.Load() - r.readPos.Load())
}


// Capacity returns the ring size.
func (r *Ring[T]) Capacity() int {
	return len(r.buf)
}
