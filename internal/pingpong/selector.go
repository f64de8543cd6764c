// Package pingpong implements the two-slot buffer handoff shared by the
// capture and playback pipelines.
//
// One side of every pair runs in interrupt or DMA-completion context and owns
// the "hot" slot; the other side runs in the application loop and owns the
// "cold" slot. Ownership moves only when the hardware-driven side crosses a
// slot boundary. Nothing here locks, allocates or blocks in the kernel sense;
// the only waiting is an explicit application-side spin.
package pingpong

import (
	"errors"
	"sync/atomic"
)

// ErrAborted is returned when an application-side wait is cancelled by its
// spin hook.
var ErrAborted = errors.New("pingpong: handoff aborted")

// Slot identifies one half of a buffer pair.
type Slot uint32

// The two halves of a pair.
const (
	SlotA Slot = 0
	SlotB Slot = 1
)

// Other returns the opposite slot.
func (s Slot) Other() Slot {
	return s ^ 1
}

// Selector is the single-bit indicator of which slot is hot.
// Only the hardware-driven side may call Flip or Set while the pair is armed.
type Selector struct {
	active atomic.Uint32
	flips  atomic.Uint64
}

// Active returns the hot slot.
func (s *Selector) Active() Slot {
	return Slot(s.active.Load())
}

// Flip hands the hot role to the other slot and returns it.
func (s *Selector) Flip() Slot {
	next := s.Active().Other()
	s.active.Store(uint32(next))
	s.flips.Add(1)
	return next
}

// Set marks slot as hot without counting a flip.
func (s *Selector) Set(slot Slot) {
	s.active.Store(uint32(slot))
}

// Reset marks slot as hot and clears the flip counter.
func (s *Selector) Reset(slot Slot) {
	s.active.Store(uint32(slot))
	s.flips.Store(0)
}

// Flips returns how many times Flip has been called since the last Reset.
func (s *Selector) Flips() uint64 {
	return s.flips.Load()
}
