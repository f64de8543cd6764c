// Command adccap records through SampleCapture, the DMA ping-pong capture
// buffer with running DC removal, and reports what it received.
//
// The converter input is a file, a biased test tone or, when built with
// -tags portaudio, the default microphone. The DC-corrected slots can be
// saved as a 16-bit WAV file with -out.
//
// Usage:
//
//	adccap -out mic.wav -duration 5s -mic
//	adccap -tone 1000 -bias 400 -v
//	adccap -rate 8000 -bits 10 -out speech.wav speech.mp3
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	mcuaudio "github.com/tphakala/go-mcu-audio"
	"github.com/tphakala/go-mcu-audio/internal/hostaudio"
	"github.com/tphakala/go-mcu-audio/internal/sim"
	"github.com/tphakala/go-mcu-audio/internal/wavio"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rate := flag.Uint("rate", defaultRate, "ADC sample rate in Hz")
	bits := flag.Uint("bits", defaultBits, "ADC resolution in bits (1-16)")
	shift := flag.Uint("shift", mcuaudio.DefaultDCShift, "DC tracker shift; larger is slower")
	pin := flag.Uint("pin", defaultPin, "ADC input pin")
	duration := flag.Duration("duration", defaultDuration, "Capture length")
	toneHz := flag.Float64("tone", 0, "Capture a sine of this frequency instead of a file")
	bias := flag.Int("bias", defaultBias, "DC bias added to the simulated input, in converter steps")
	mic := flag.Bool("mic", false, "Capture from the default input device")
	realtime := flag.Bool("realtime", false, "Pace the simulated DMA in real time")
	outPath := flag.String("out", "", "Write the corrected capture to this WAV file")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	args := flag.Args()
	if !*mic && *toneHz <= 0 && len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav|input.mp3\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -tone 440 -bias 500 -v         # Watch the DC tracker settle\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -out rec.wav -mic -duration 5s  # Record the microphone\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -bits 8 -out low.wav music.wav  # Hear an 8-bit converter\n", os.Args[0])
		return errors.New("insufficient arguments")
	}
	if *bits > maxBits || *pin > maxPin {
		return fmt.Errorf("bits must be at most %d and pin at most %d", maxBits, maxPin)
	}
	sr, err := sampleRate(*rate)
	if err != nil {
		return err
	}

	cfg := &mcuaudio.CaptureConfig{
		Pin:        uint8(*pin),
		SampleRate: sr,
		Resolution: uint8(*bits),
		DCShift:    uint8(min(*shift, 255)),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	resolution := cfg.Resolution
	if resolution == 0 {
		resolution = mcuaudio.DefaultResolution
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var (
		dma   *sim.DMA
		label string
		micIn *hostaudio.MicSource
	)
	switch {
	case *mic:
		m, err := hostaudio.OpenMic(cfg.SampleRate, resolution, micFrames)
		if err != nil {
			return err
		}
		defer func() { _ = m.Close() }()
		micIn = m
		dma = sim.NewFreeRunningDMA(m)
		label = "default input device"
	default:
		inputPath := ""
		if len(args) > 0 {
			inputPath = args[0]
		}
		in, err := loadInput(inputPath, *toneHz, cfg.SampleRate, resolution, *bias)
		if err != nil {
			return err
		}
		label = in.label
		if *realtime {
			dma = sim.NewPacedDMA(in.src, cfg.SampleRate, sim.DefaultPaceInterval)
		} else {
			dma = sim.NewDMA(in.src)
		}
	}
	live := *mic || *realtime

	var w *wavio.Writer
	if *outPath != "" {
		var err error
		if w, err = wavio.Create(*outPath, cfg.SampleRate); err != nil {
			return err
		}
	}

	slots := slotCount(*duration, cfg.SampleRate)
	if *verbose {
		log.Printf("Input: %s", label)
		log.Printf("ADC: pin %d, %d Hz, %d-bit, DC shift %d", cfg.Pin, cfg.SampleRate, resolution, cfg.DCShift)
		log.Printf("Capturing %d slots of %d samples (%v each)", slots, mcuaudio.CaptureSlotSize, cfg.SlotDuration())
	}

	c := mcuaudio.NewSampleCapture(&sim.ADC{}, dma)
	if err := c.Configure(cfg); err != nil {
		if w != nil {
			_ = w.Close()
		}
		return err
	}

	start := time.Now()
	rec := newRecorder(cfg.SampleRate, resolution, w, *verbose)
	if live {
		err = captureRealtime(c, slots, cfg.SlotDuration(), rec)
	} else {
		err = captureOffline(c, dma, slots, rec)
	}
	c.End()
	elapsed := time.Since(start)

	if w != nil {
		if closeErr := w.Close(); err == nil {
			err = closeErr
		}
	}
	if err != nil {
		return err
	}
	if micIn != nil {
		if err := micIn.Err(); err != nil {
			return fmt.Errorf("input device failed: %w", err)
		}
	}

	stats := c.Stats()
	sum := rec.summary
	fmt.Printf("Captured %s\n", label)
	fmt.Printf("  %d slots, %d samples at %d Hz, %d-bit\n", sum.slots, sum.samples, cfg.SampleRate, resolution)
	fmt.Printf("  %d completed, %d overruns, DC estimate %.1f steps\n", stats.Completed, stats.Overruns, stats.DCOffset)
	fmt.Printf("  Level: %.1f dBFS RMS, peak %d, %d clipped\n", sum.DBFS(), sum.peak, sum.clipped)
	if sum.lastFreq > 0 {
		fmt.Printf("  Dominant frequency: %.0f Hz\n", sum.lastFreq)
	}
	fmt.Printf("  Duration: %.2fs\n", elapsed.Seconds())
	if micIn != nil && micIn.Overflows() > 0 {
		fmt.Printf("  Input device: %d overflows\n", micIn.Overflows())
	}
	return nil
}
