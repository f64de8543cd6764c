package pingpong

import "sync/atomic"

// Slot descriptor states. A descriptor is written by the application only in
// descWriting and read by the hardware side only in descLatching.
const (
	descEmpty uint32 = iota
	descWriting
	descReady
	descLatching
)

type descriptor[T any] struct {
	state atomic.Uint32
	block []T
}

// Borrowed is a playback pair over caller-owned blocks. Blocks are referenced,
// never copied: a block handed to Put must stay untouched until the Put after
// next returns.
//
// Next is the hardware-side entry point and must only be called from the
// periodic callback. Put is the application-side entry point. Reset must only
// be called while nothing drives Next.
type Borrowed[T any] struct {
	sel       Selector
	cursor    atomic.Uint32
	underruns atomic.Uint64
	pending   [2]descriptor[T]

	// hardware side only
	hot [2][]T

	// application side only: the flip count the next Put waits for
	due uint64
}

// Reset discards queued blocks and makes initial the hot slot with the
// cursor at zero. The first Put after Reset does not wait.
func (b *Borrowed[T]) Reset(initial Slot) {
	b.sel.Reset(initial)
	b.cursor.Store(0)
	b.underruns.Store(0)
	for i := range b.pending {
		b.pending[i].state.Store(descEmpty)
		b.pending[i].block = nil
		b.hot[i] = nil
	}
	b.due = 0
}

// Next returns the sample at the cursor of the hot block and advances.
// When the cursor reaches the end of the hot block it wraps to zero and the
// other slot becomes hot. An idle hot slot (nothing ever queued) hands over
// at once; ok is false only when both slots are idle.
func (b *Borrowed[T]) Next() (v T, ok bool) {
	s := b.sel.Active()
	if len(b.hot[s]) == 0 {
		s = b.flip()
		if len(b.hot[s]) == 0 {
			return v, false
		}
	}

	block := b.hot[s]
	cur := int(b.cursor.Load())
	v = block[cur]
	cur++
	if cur >= len(block) {
		b.cursor.Store(0)
		b.flip()
		return v, true
	}
	b.cursor.Store(uint32(cur))
	return v, true
}

// flip hands the hot role over and latches the new hot slot.
func (b *Borrowed[T]) flip() Slot {
	s := b.sel.Flip()
	b.latch(s)
	return s
}

// latch adopts the block queued for s, or keeps replaying the previous one.
func (b *Borrowed[T]) latch(s Slot) {
	d := &b.pending[s]
	if d.state.CompareAndSwap(descReady, descLatching) {
		b.hot[s] = d.block
		d.state.Store(descEmpty)
		return
	}
	if len(b.hot[s]) > 0 {
		b.underruns.Add(1)
	}
}

// Put queues block into the cold slot. It first spins until the hardware
// side has crossed at least one slot boundary since the previous Put
// returned, so the slot it writes is one the hardware side has finished
// with. The wait counts flips rather than comparing the selector bit, which
// reads unchanged after an even number of flips. spin is called once per
// wait iteration; returning false aborts the wait with ErrAborted.
func (b *Borrowed[T]) Put(block []T, spin func() bool) error {
	for b.sel.Flips() < b.due {
		if !spin() {
			return ErrAborted
		}
	}

	d := &b.pending[b.sel.Active().Other()]
	for !d.state.CompareAndSwap(descEmpty, descWriting) &&
		!d.state.CompareAndSwap(descReady, descWriting) {
		if !spin() {
			return ErrAborted
		}
	}
	d.block = block
	d.state.Store(descReady)

	b.due = b.sel.Flips() + 1
	return nil
}

// Active returns the hot slot.
func (b *Borrowed[T]) Active() Slot {
	return b.sel.Active()
}

// Position returns the cursor within the hot block.
func (b *Borrowed[T]) Position() int {
	return int(b.cursor.Load())
}

// Flips returns the number of slot boundary crossings since Reset.
func (b *Borrowed[T]) Flips() uint64 {
	return b.sel.Flips()
}

// Underruns counts flips that replayed a block the application had not
// refreshed in time.
func (b *Borrowed[T]) Underruns() uint64 {
	return b.underruns.Load()
}
