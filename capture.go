package mcuaudio

import (
	"fmt"
	"sync/atomic"

	"github.com/tphakala/go-mcu-audio/internal/dcoffset"
	"github.com/tphakala/go-mcu-audio/internal/pingpong"
)

// SampleCapture records converter samples through a DMA engine into two
// embedded slots of CaptureSlotSize samples and hands the most recently
// completed slot to the application with its DC bias removed.
//
// InputSamples never waits. It must be called at least once per slot fill
// period (see CaptureConfig.SlotDuration); slower callers skip slots, which
// Stats reports as overruns.
type SampleCapture struct {
	adc ADC
	dma DMA

	raw       [2][CaptureSlotSize]Sample
	corrected [2][CaptureSlotSize]int16

	pair     *pingpong.Owned[Sample]
	dc       *dcoffset.Tracker
	running  atomic.Bool
	overruns uint64
	rate     uint32

	complete func(slot int)
}

// CaptureStats reports capture counters since the last Begin.
type CaptureStats struct {
	// Completed counts slots filled by the DMA engine.
	Completed uint64

	// Overruns counts completed slots the application never read.
	Overruns uint64

	// DCOffset is the current DC estimate in converter steps.
	DCOffset float64
}

// NewSampleCapture creates a capture pipeline sampling through adc, with
// samples moved by dma.
func NewSampleCapture(adc ADC, dma DMA) *SampleCapture {
	c := &SampleCapture{adc: adc, dma: dma}
	c.pair = pingpong.NewOwned(c.raw[0][:], c.raw[1][:])
	c.dc = dcoffset.New(CaptureSlotSize, DefaultDCShift)
	c.complete = c.slotComplete
	return c
}

// Begin starts continuous capture on pin at sampleRate with the default
// resolution. Calling Begin on a running pipeline restarts it.
func (c *SampleCapture) Begin(pin uint8, sampleRate uint32) error {
	return c.Configure(&CaptureConfig{Pin: pin, SampleRate: sampleRate})
}

// Configure starts continuous capture with cfg. The DC estimate is reset;
// slot contents are not.
func (c *SampleCapture) Configure(cfg *CaptureConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	conf := cfg.withDefaults()

	c.End()

	if err := c.adc.ConfigureInput(conf.Pin, conf.SampleRate, conf.Resolution); err != nil {
		return fmt.Errorf("configure converter input: %w", err)
	}
	c.dc.Reset(conf.DCShift)
	c.pair.Reset()
	c.overruns = 0
	c.rate = conf.SampleRate

	if err := c.dma.Start(c.pair.Buffers(), c.complete); err != nil {
		return fmt.Errorf("start capture DMA: %w", err)
	}
	c.running.Store(true)
	return nil
}

// End stops the DMA engine. Slot contents are left in place.
func (c *SampleCapture) End() {
	if c.running.Swap(false) {
		c.dma.Stop()
	}
}

// Running reports whether the DMA engine is armed.
func (c *SampleCapture) Running() bool {
	return c.running.Load()
}

// SampleRate returns the armed sampling rate.
func (c *SampleCapture) SampleRate() uint32 {
	return c.rate
}

// Ready reports whether a slot has completed since the last InputSamples.
func (c *SampleCapture) Ready() bool {
	return c.pair.Pending()
}

// InputSamples returns the most recently completed slot, DC corrected. The
// slot being filled is never returned. Before the first completion it
// returns the idle slot's previous contents.
//
// The returned slice aliases internal memory and stays valid until a later
// call returns the same slot.
func (c *SampleCapture) InputSamples() []int16 {
	slot, _, missed := c.pair.Acquire()
	c.overruns += missed

	out := c.corrected[slot][:]
	c.dc.Correct(out, c.pair.Slot(slot))
	return out
}

// Stats returns capture counters.
func (c *SampleCapture) Stats() CaptureStats {
	return CaptureStats{
		Completed: c.pair.Completed(),
		Overruns:  c.overruns,
		DCOffset:  c.dc.Level(),
	}
}

func (c *SampleCapture) slotComplete(slot int) {
	c.pair.Complete(pingpong.Slot(slot & 1))
}
