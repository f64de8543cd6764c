package pingpong

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlot_Other(t *testing.T) {
	assert.Equal(t, SlotB, SlotA.Other())
	assert.Equal(t, SlotA, SlotB.Other())
}

func TestSelector_FlipAlternates(t *testing.T) {
	var s Selector
	s.Reset(SlotA)

	assert.Equal(t, SlotB, s.Flip())
	assert.Equal(t, SlotA, s.Flip())
	assert.Equal(t, SlotB, s.Flip())
	assert.Equal(t, SlotB, s.Active())
	assert.Equal(t, uint64(3), s.Flips())
}

func TestSelector_SetDoesNotCount(t *testing.T) {
	var s Selector
	s.Reset(SlotB)
	s.Set(SlotA)

	assert.Equal(t, SlotA, s.Active())
	assert.Zero(t, s.Flips())

	s.Flip()
	s.Reset(SlotA)
	assert.Equal(t, SlotA, s.Active())
	assert.Zero(t, s.Flips())
}
