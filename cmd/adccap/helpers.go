package main

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	mcuaudio "github.com/tphakala/go-mcu-audio"
	"github.com/tphakala/go-mcu-audio/internal/analysis"
	"github.com/tphakala/go-mcu-audio/internal/rateconv"
	"github.com/tphakala/go-mcu-audio/internal/sim"
	"github.com/tphakala/go-mcu-audio/internal/wavio"
)

var errCaptureStalled = errors.New("capture stalled: no slot completed in time")

// input is a simulated converter input.
type input struct {
	src   sim.Source
	label string
}

// loadInput builds the converter input: a biased sine when toneHz is
// positive, otherwise path converted to rate and quantized to bits. A file
// input loops.
func loadInput(path string, toneHz float64, rate uint32, bits uint8, bias int) (*input, error) {
	if toneHz > 0 {
		return &input{
			src:   sim.Sine(toneHz, rate, bits, defaultToneAmp, bias),
			label: fmt.Sprintf("%g Hz tone, bias %+d", toneHz, bias),
		}, nil
	}

	d, err := wavio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	samples, err := rateconv.Convert(d.Samples, d.SampleRate, rate, rateconv.Cubic)
	if err != nil {
		return nil, fmt.Errorf("rate conversion failed: %w", err)
	}
	codes := make([]uint16, len(samples))
	wavio.ToCodes(codes, samples, bits)
	offsetCodes(codes, bias, bits)

	return &input{
		src:   sim.Loop(codes),
		label: fmt.Sprintf("%s (%d Hz, %d ch, %d-bit)", path, d.SampleRate, d.Channels, d.BitDepth),
	}, nil
}

// offsetCodes adds bias to every code, saturating at the converter range.
func offsetCodes(codes []uint16, bias int, bits uint8) {
	if bias == 0 {
		return
	}
	top := int(1)<<bits - 1
	if bits == 0 || bits >= maxBits {
		top = math.MaxUint16
	}
	for i, c := range codes {
		codes[i] = uint16(min(max(int(c)+bias, 0), top))
	}
}

// slotCount returns how many capture slots cover d at rate, at least one.
func slotCount(d time.Duration, rate uint32) int {
	n := int(math.Ceil(d.Seconds() * float64(rate) / mcuaudio.CaptureSlotSize))
	return max(n, 1)
}

// summary accumulates per-slot reports.
type summary struct {
	slots    int
	samples  int
	sumSq    float64
	peak     int
	clipped  int
	lastFreq float64
}

// add folds one report in.
func (s *summary) add(r analysis.Report) {
	s.slots++
	s.samples += r.Samples
	s.sumSq += r.RMS * r.RMS * float64(r.Samples)
	s.peak = max(s.peak, r.Peak)
	s.clipped += r.Clipped
	if r.PeakFrequency > 0 {
		s.lastFreq = r.PeakFrequency
	}
}

// DBFS returns the overall RMS level in decibels relative to full scale.
func (s *summary) DBFS() float64 {
	if s.samples == 0 || s.sumSq == 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(s.sumSq/float64(s.samples))
}

// recorder scales corrected slots to 16 bits, analyzes them and optionally
// writes them to a WAV file.
type recorder struct {
	bits     uint8
	rate     uint32
	writer   *wavio.Writer
	analyzer *analysis.Analyzer
	scaled   []int16
	verbose  bool

	summary summary
}

func newRecorder(rate uint32, bits uint8, w *wavio.Writer, verbose bool) *recorder {
	return &recorder{
		bits:     bits,
		rate:     rate,
		writer:   w,
		analyzer: analysis.NewAnalyzer(analysis.DefaultFFTSize),
		scaled:   make([]int16, mcuaudio.CaptureSlotSize),
		verbose:  verbose,
	}
}

// record handles one corrected slot.
func (r *recorder) record(samples []int16) error {
	scaled := r.scaled[:len(samples)]
	for i, v := range samples {
		scaled[i] = wavio.ScaleInt16(v, r.bits)
	}
	if r.writer != nil {
		if err := r.writer.WriteInt16(scaled); err != nil {
			return err
		}
	}

	rep := r.analyzer.Analyze(scaled, r.rate)
	r.summary.add(rep)
	if r.verbose {
		log.Printf("Slot %d: mean %.1f, %.1f dBFS, peak %d, %.0f Hz",
			r.summary.slots, rep.Mean, rep.DBFS(), rep.Peak, rep.PeakFrequency)
	}
	return nil
}

// captureOffline drives a manual DMA one slot at a time.
func captureOffline(c *mcuaudio.SampleCapture, dma *sim.DMA, slots int, r *recorder) error {
	for range slots {
		dma.FillSlot()
		if err := r.record(c.InputSamples()); err != nil {
			return err
		}
	}
	return nil
}

// captureRealtime polls a running capture until slots have been recorded.
func captureRealtime(c *mcuaudio.SampleCapture, slots int, slotDuration time.Duration, r *recorder) error {
	deadline := time.Now().Add(time.Duration(slots*slotTimeoutFactor) * slotDuration)
	for done := 0; done < slots; {
		if !c.Ready() {
			if time.Now().After(deadline) {
				return fmt.Errorf("%w after %d of %d slots", errCaptureStalled, done, slots)
			}
			time.Sleep(pollInterval)
			continue
		}
		if err := r.record(c.InputSamples()); err != nil {
			return err
		}
		done++
	}
	return nil
}

// sampleRate narrows the -rate flag, rejecting values the timers cannot run
// at before they are truncated to 32 bits.
func sampleRate(v uint) (uint32, error) {
	if v == 0 || v > mcuaudio.MaxSampleRate {
		return 0, fmt.Errorf("rate must be between 1 and %d Hz, got %d", mcuaudio.MaxSampleRate, v)
	}
	return uint32(v), nil
}
