// Package mcuaudio provides glitch-free real-time audio input and output for
// microcontroller-class targets.
//
// Playback runs from a periodic timer interrupt that writes one sample to a
// DAC per period. Capture runs from a DMA engine that fills two fixed slots
// in ping-pong order. In both directions the application loop and the
// interrupt side share a pair of buffers through a one-bit selector: there
// are no locks, no allocation on the real-time paths and no blocking calls.
//
// # Quick Start
//
// Playback, with a target-specific DAC and timer:
//
//	out := mcuaudio.NewSampleOutput(dac, timer)
//	if err := out.Begin(pin, 22050); err != nil {
//	    log.Fatal(err)
//	}
//	defer out.End()
//
//	for i := 0; ; i = (i + 1) % len(blocks) {
//	    fill(blocks[i])
//	    if err := out.OutputSamples(blocks[i]); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// Capture:
//
//	in := mcuaudio.NewSampleCapture(adc, dma)
//	if err := in.Begin(pin, 16000); err != nil {
//	    log.Fatal(err)
//	}
//	for {
//	    process(in.InputSamples())
//	}
//
// # Playback Handoff
//
// [SampleOutput.OutputSamples] references the caller's block instead of
// copying it. The timer side plays one slot while the other holds the next
// block; when the cursor reaches the end of the hot slot the selector flips
// and the queued block starts. OutputSamples busy-waits until the block it
// queued last time has started playing, which means the block queued before
// that one has finished. A block is therefore free for reuse once the second
// call after the one that queued it returns; rotating through three blocks
// satisfies this.
//
// If the application falls behind, the previous block in the idle slot is
// played again. This is counted in [OutputStats.Underruns] and is never a
// memory fault.
//
// # Capture Handoff
//
// [SampleCapture.InputSamples] never waits. It returns the slot the DMA
// engine finished most recently, with the running DC estimate subtracted.
// Callers must read at least once per [CaptureConfig.SlotDuration]; skipped
// slots are counted in [CaptureStats.Overruns].
//
// # Hardware Interfaces
//
// The package drives hardware only through [DAC], [Timer], [ADC] and [DMA].
// Collaborators that need to make progress while the application spins,
// such as simulated peripherals in tests, also implement [Spinner].
package mcuaudio
