package main

import (
	"fmt"
	"log"
	"math"

	mcuaudio "github.com/tphakala/go-mcu-audio"
	"github.com/tphakala/go-mcu-audio/internal/rateconv"
	"github.com/tphakala/go-mcu-audio/internal/ringbuf"
	"github.com/tphakala/go-mcu-audio/internal/wavio"
)

// source is decoded audio ready for conversion.
type source struct {
	samples []float64
	rate    uint32
	label   string
}

// loadSource reads path, or synthesizes a tone when toneHz is positive.
func loadSource(path string, toneHz float64, rate uint32, seconds float64) (*source, error) {
	if toneHz > 0 {
		return &source{
			samples: tone(toneHz, rate, seconds, defaultToneAmp),
			rate:    rate,
			label:   fmt.Sprintf("%g Hz tone", toneHz),
		}, nil
	}
	d, err := wavio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &source{
		samples: d.Samples,
		rate:    d.SampleRate,
		label:   fmt.Sprintf("%s (%d Hz, %d ch, %d-bit)", path, d.SampleRate, d.Channels, d.BitDepth),
	}, nil
}

// tone returns seconds of a sine at freq Hz sampled at rate.
func tone(freq float64, rate uint32, seconds, amplitude float64) []float64 {
	n := int(seconds * float64(rate))
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return out
}

// player converts float audio to DAC codes and feeds it to a SampleOutput
// in fixed blocks. A block is refilled only after the second OutputSamples
// call following its own has returned, hence the rotation of three.
type player struct {
	out     *mcuaudio.SampleOutput
	bits    uint8
	blocks  [rotation][]mcuaudio.Sample
	next    int
	staging *ringbuf.Buffer[float64]
	scratch []float64

	played int
}

func newPlayer(out *mcuaudio.SampleOutput, blockLen int, bits uint8) *player {
	p := &player{
		out:     out,
		bits:    bits,
		staging: ringbuf.NewBuffer[float64](blockLen * 2),
		scratch: make([]float64, blockLen),
	}
	for i := range p.blocks {
		p.blocks[i] = make([]mcuaudio.Sample, blockLen)
	}
	return p
}

// feed stages samples and queues every complete block.
func (p *player) feed(samples []float64) error {
	p.staging.Write(samples)
	for p.staging.Available() >= len(p.scratch) {
		if err := p.queue(p.staging.ReadInto(p.scratch)); err != nil {
			return err
		}
	}
	return nil
}

// finish queues the remainder and enough silence that the last real sample
// has been played when it returns.
func (p *player) finish() error {
	if n := p.staging.ReadInto(p.scratch); n > 0 {
		if err := p.queue(n); err != nil {
			return err
		}
	}
	clear(p.scratch)
	for range trailingBlocks {
		if err := p.queueSilence(); err != nil {
			return err
		}
	}
	return nil
}

func (p *player) queue(n int) error {
	block := p.blocks[p.next][:n]
	wavio.ToCodes(block, p.scratch[:n], p.bits)
	if err := p.out.OutputSamples(block); err != nil {
		return fmt.Errorf("queue block: %w", err)
	}
	p.next = (p.next + 1) % rotation
	p.played += n
	return nil
}

func (p *player) queueSilence() error {
	block := p.blocks[p.next]
	wavio.ToCodes(block, p.scratch, p.bits)
	if err := p.out.OutputSamples(block); err != nil {
		return fmt.Errorf("queue silence: %w", err)
	}
	p.next = (p.next + 1) % rotation
	return nil
}

// play converts src to rate in chunks and feeds it to p.
func play(p *player, src *source, rate uint32, method rateconv.Method, verbose bool) error {
	stage, err := rateconv.New(src.rate, rate, method)
	if err != nil {
		return err
	}
	progress := newProgressTracker(len(src.samples), verbose)

	for start := 0; start < len(src.samples); start += chunkSize {
		chunk := src.samples[start:min(start+chunkSize, len(src.samples))]
		converted, err := stage.Process(chunk)
		if err != nil {
			return fmt.Errorf("rate conversion failed: %w", err)
		}
		if err := p.feed(converted); err != nil {
			return err
		}
		progress.reportIfNeeded(start + len(chunk))
	}
	return p.finish()
}

// progressTracker handles progress reporting.
type progressTracker struct {
	total        int
	lastProgress int
	verbose      bool
}

func newProgressTracker(total int, verbose bool) *progressTracker {
	return &progressTracker{total: total, verbose: verbose}
}

// reportIfNeeded reports progress if a threshold was crossed.
func (p *progressTracker) reportIfNeeded(current int) {
	if !p.verbose || p.total == 0 {
		return
	}
	progress := current * percentScale / p.total
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// sampleRate narrows the -rate flag, rejecting values the timers cannot run
// at before they are truncated to 32 bits.
func sampleRate(v uint) (uint32, error) {
	if v == 0 || v > mcuaudio.MaxSampleRate {
		return 0, fmt.Errorf("rate must be between 1 and %d Hz, got %d", mcuaudio.MaxSampleRate, v)
	}
	return uint32(v), nil
}
