package mcuaudio

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/tphakala/go-mcu-audio/internal/pingpong"
)

// SampleOutput plays blocks of samples through a DAC, one sample per timer
// period, alternating between two caller-owned blocks.
//
// The application hands blocks over with OutputSamples, which waits until
// the slot it is about to fill has been fully played. Blocks are referenced,
// not copied: a block must stay unchanged until the second OutputSamples
// call after the one that queued it returns, so a producer that fills each
// block just before queuing it needs three of them in rotation. If the
// application falls behind, the last block queued in the idle slot is played
// again.
type SampleOutput struct {
	dac     DAC
	timer   Timer
	spinner Spinner

	pair    pingpong.Borrowed[Sample]
	running atomic.Bool

	// written before the timer starts, read from the callback
	pin    uint8
	period time.Duration

	update func()
	wait   func() bool
}

// OutputStats reports playback counters since the last Begin.
type OutputStats struct {
	// Flips counts completed block traversals.
	Flips uint64

	// Underruns counts traversals that replayed a block because the
	// application had not queued a new one in time.
	Underruns uint64

	// Period is the armed callback period.
	Period time.Duration
}

// NewSampleOutput creates a playback pipeline writing to dac, paced by timer.
func NewSampleOutput(dac DAC, timer Timer) *SampleOutput {
	o := &SampleOutput{dac: dac, timer: timer}
	o.spinner, _ = timer.(Spinner)
	o.update = o.Update
	o.wait = o.spin
	o.pair.Reset(pingpong.SlotA)
	return o
}

// Begin arms playback on pin at sampleRate with the default resolution.
// Calling Begin on a running pipeline re-arms it with the new parameters.
func (o *SampleOutput) Begin(pin uint8, sampleRate uint32) error {
	return o.Configure(&OutputConfig{Pin: pin, SampleRate: sampleRate})
}

// Configure arms playback with cfg. Any queued blocks are discarded.
func (o *SampleOutput) Configure(cfg *OutputConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c := cfg.withDefaults()

	o.End()

	o.dac.SetResolution(c.Resolution)
	o.pin = c.Pin
	o.period = c.Period()
	o.pair.Reset(pingpong.SlotA)

	if err := o.timer.Start(o.period, o.update); err != nil {
		return fmt.Errorf("start sample timer: %w", err)
	}
	o.running.Store(true)
	return nil
}

// End disarms the timer. Queued blocks are left in place.
func (o *SampleOutput) End() {
	if o.running.Swap(false) {
		o.timer.Stop()
	}
}

// Running reports whether the timer is armed.
func (o *SampleOutput) Running() bool {
	return o.running.Load()
}

// Period returns the armed callback period.
func (o *SampleOutput) Period() time.Duration {
	return o.period
}

// OutputSamples queues samples for playback after the block currently
// playing. It busy-waits until the previously queued block has started
// playing, which takes at most one block duration.
func (o *SampleOutput) OutputSamples(samples []Sample) error {
	if len(samples) == 0 {
		return ErrEmptyBuffer
	}
	if !o.running.Load() {
		return ErrNotRunning
	}
	if err := o.pair.Put(samples, o.wait); err != nil {
		return ErrStopped
	}
	return nil
}

// Update emits the next sample. Begin registers it with the timer; it is
// exported for targets where the interrupt handler must be bound statically.
func (o *SampleOutput) Update() {
	if v, ok := o.pair.Next(); ok {
		o.dac.Write(o.pin, v)
	}
}

// Stats returns playback counters.
func (o *SampleOutput) Stats() OutputStats {
	return OutputStats{
		Flips:     o.pair.Flips(),
		Underruns: o.pair.Underruns(),
		Period:    o.period,
	}
}

func (o *SampleOutput) spin() bool {
	if !o.running.Load() {
		return false
	}
	if o.spinner != nil {
		o.spinner.Spin()
	} else {
		runtime.Gosched()
	}
	return true
}
