package ringbuf

import "sync"

// Buffer is a growable circular FIFO for staging samples between decode,
// rate conversion and block assembly. It is safe for concurrent use.
type Buffer[T any] struct {
	data     []T
	capacity int
	size     int
	readPos  int
	writePos int
	mu       sync.Mutex
}

// NewBuffer creates a buffer with the specified initial capacity.
func NewBuffer[T any](capacity int) *Buffer[T] {
	capacity = max(capacity, 1)
	return &Buffer[T]{
		data:     make([]T, capacity),
		capacity: capacity,
	}
}

// Write adds samples, growing the buffer if they do not fit.
func (b *Buffer[T]) Write(samples []T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(samples) == 0 {
		return
	}
	if b.size+len(samples) > b.capacity {
		b.grow(b.size + len(samples))
	}

	for _, s := range samples {
		b.data[b.writePos] = s
		b.writePos = (b.writePos + 1) % b.capacity
	}
	b.size += len(samples)
}

// ReadInto moves up to len(dst) samples into dst and returns the count.
func (b *Buffer[T]) ReadInto(dst []T) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := min(len(dst), b.size)
	for i := range n {
		dst[i] = b.data[b.readPos]
		b.readPos = (b.readPos + 1) % b.capacity
	}
	b.size -= n
	return n
}



// Available returns the number of samples ready to read.
func (b *Buffer[T]) Available() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}




// grow increases capacity to at least minCapacity, keeping order.
func (b *Buffer[T]) grow(minCapacity int) {
	newCapacity := b.capacity
	for newCapacity < minCapacity {
		newCapacity *= bufferGrowthFactor
	}

	data := make([]T, newCapacity)
	if b.size > 0 {
		if b.readPos < b.writePos {
			copy(data, b.data[b.readPos:b.writePos])
		} else {
			n := copy(data, b.data[b.readPos:])
			copy(data[n:], b.data[:b.writePos])
		}
	}

	b.data = data
	b.capacity = newCapacity
	b.readPos = 0
	b.writePos = b.size % newCapacity
}
