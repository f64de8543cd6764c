// Package dcoffset tracks and removes the DC bias of unsigned converter
// samples.
package dcoffset

import (
	"math"

	"github.com/tphakala/go-mcu-audio/internal/simdops"
)

// Tracker keeps an exponential average of block means. Each Update moves
// the estimate 1/2^shift of the way towards the mean of the new block.
type Tracker struct {
	shift   uint8
	level   float64
	scratch []float64
}

// New creates a tracker for blocks of up to blockSize samples.
func New(blockSize int, shift uint8) *Tracker {
	return &Tracker{
		shift:   shift,
		scratch: make([]float64, blockSize),
	}
}

// Reset forgets the estimate and sets a new smoothing shift.
func (t *Tracker) Reset(shift uint8) {
	t.shift = shift
	t.level = 0
}

// Update folds the mean of block into the estimate and returns it.
func (t *Tracker) Update(block []uint16) float64 {
	if len(block) == 0 {
		return t.level
	}
	if len(block) > len(t.scratch) {
		t.scratch = make([]float64, len(block))
	}
	buf := t.scratch[:len(block)]
	for i, v := range block {
		buf[i] = float64(v)
	}
	mean := simdops.Mean(buf)
	t.level += (mean - t.level) / float64(uint32(1)<<t.shift)
	return t.level
}

// Level returns the current estimate.
func (t *Tracker) Level() float64 {
	return t.level
}

// Offset returns the estimate rounded to a whole converter step.
func (t *Tracker) Offset() int32 {
	return int32(math.Round(t.level))
}

// Correct updates the estimate from src and writes src minus the offset to
// dst, saturating at the int16 range. dst must be at least as long as src.
func (t *Tracker) Correct(dst []int16, src []uint16) {
	t.Update(src)
	off := t.Offset()
	for i, v := range src {
		d := int32(v) - off
		switch {
		case d > math.MaxInt16:
			d = math.MaxInt16
		case d < math.MinInt16:
			d = math.MinInt16
		}
		dst[i] = int16(d)
	}
}
