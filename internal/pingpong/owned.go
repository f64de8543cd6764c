package pingpong

import "sync/atomic"

// Owned is a capture pair over memory owned by the component, filled in a
// ping-pong pattern by a DMA engine. Complete runs in DMA-completion context;
// Acquire runs in the application loop and never waits.
type Owned[T any] struct {
	bufs      [2][]T
	filling   Selector
	completed atomic.Uint64

	// application side only
	acquired uint64
}

// NewOwned pairs two equally sized slots.
func NewOwned[T any](a, b []T) *Owned[T] {
	return &Owned[T]{bufs: [2][]T{a, b}}
}

// Buffers returns both slots in fill order.
func (o *Owned[T]) Buffers() [2][]T {
	return o.bufs
}

// Slot returns the memory of s.
func (o *Owned[T]) Slot(s Slot) []T {
	return o.bufs[s]
}

// Reset marks slot A as the one being filled and forgets all completions.
// Contents are left as they are.
func (o *Owned[T]) Reset() {
	o.filling.Reset(SlotA)
	o.completed.Store(0)
	o.acquired = 0
}

// Complete records that the engine finished slot s and moved on to the other.
func (o *Owned[T]) Complete(s Slot) {
	o.filling.Set(s.Other())
	o.completed.Add(1)
}

// Filling returns the slot the engine is writing.
func (o *Owned[T]) Filling() Slot {
	return o.filling.Active()
}

// Completed returns the number of slots filled since Reset.
func (o *Owned[T]) Completed() uint64 {
	return o.completed.Load()
}

// Pending reports whether a slot completed since the last Acquire.
func (o *Owned[T]) Pending() bool {
	return o.completed.Load() > o.acquired
}

// Acquire returns the most recently completed slot, which is never the one
// being filled. fresh reports whether it completed since the previous
// Acquire; missed counts completed slots that were never acquired.
func (o *Owned[T]) Acquire() (s Slot, fresh bool, missed uint64) {
	done := o.completed.Load()
	s = o.filling.Active().Other()
	if done > o.acquired {
		fresh = true
		missed = done - o.acquired - 1
		o.acquired = done
	}
	return s, fresh, missed
}
