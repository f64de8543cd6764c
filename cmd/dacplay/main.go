// Command dacplay plays an audio file or a test tone through SampleOutput,
// the timer-driven DAC double buffer.
//
// Without -sound the DAC and its timer are simulated: playback runs as fast
// as the CPU allows and the codes written to the DAC can be saved with -out.
// With -sound the timer runs in real time and the DAC is the sound card.
//
// Usage:
//
//	dacplay -out dac.wav input.wav
//	dacplay -rate 16000 -bits 8 -sound input.mp3
//	dacplay -tone 440 -duration 3s -sound
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"runtime/pprof"
	"time"

	mcuaudio "github.com/tphakala/go-mcu-audio"
	"github.com/tphakala/go-mcu-audio/internal/hostaudio"
	"github.com/tphakala/go-mcu-audio/internal/rateconv"
	"github.com/tphakala/go-mcu-audio/internal/sim"
	"github.com/tphakala/go-mcu-audio/internal/wavio"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rate := flag.Uint("rate", defaultRate, "DAC sample rate in Hz")
	bits := flag.Uint("bits", defaultBits, "DAC resolution in bits (1-16)")
	block := flag.Int("block", defaultBlock, "Samples per OutputSamples call")
	pin := flag.Uint("pin", defaultPin, "DAC output pin")
	clock := flag.Uint("clock", 0, "Timer clock in Hz for period quantization (0 = exact)")
	interp := flag.String("interp", "cubic", "Rate conversion: cubic, linear")
	toneHz := flag.Float64("tone", 0, "Play a sine of this frequency instead of a file")
	duration := flag.Duration("duration", defaultDuration, "Tone length")
	outPath := flag.String("out", "", "Write the DAC output to this WAV file")
	sound := flag.Bool("sound", false, "Play in real time through the sound card")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	args := flag.Args()
	if *toneHz <= 0 && len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav|input.mp3\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -out dac.wav music.wav        # Simulated DAC, save output\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -bits 8 -sound speech.mp3     # Hear 8-bit playback\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -tone 1000 -sound             # 1 kHz test tone\n", os.Args[0])
		return errors.New("insufficient arguments")
	}
	if *bits > maxBits || *pin > maxPin {
		return fmt.Errorf("bits must be at most %d and pin at most %d", maxBits, maxPin)
	}
	sr, err := sampleRate(*rate)
	if err != nil {
		return err
	}
	if *clock > math.MaxUint32 {
		return fmt.Errorf("clock must be at most %d Hz, got %d", uint64(math.MaxUint32), *clock)
	}
	if *block <= 0 {
		return fmt.Errorf("block size must be positive, got %d", *block)
	}
	if !*sound && *outPath == "" {
		log.Printf("Neither -sound nor -out given; output is only counted")
	}

	method, err := rateconv.ParseMethod(*interp)
	if err != nil {
		return err
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

	inputPath := ""
	if len(args) > 0 {
		inputPath = args[0]
	}
	src, err := loadSource(inputPath, *toneHz, sr, duration.Seconds())
	if err != nil {
		return err
	}

	cfg := &mcuaudio.OutputConfig{
		Pin:        uint8(*pin),
		SampleRate: sr,
		Resolution: uint8(*bits),
		ClockHz:    uint32(*clock),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	resolution := cfg.Resolution
	if resolution == 0 {
		resolution = mcuaudio.DefaultResolution
	}

	if *verbose {
		log.Printf("Input: %s, %d samples", src.label, len(src.samples))
		log.Printf("DAC: pin %d, %d Hz, %d-bit, period %v", cfg.Pin, cfg.SampleRate, resolution, cfg.Period())
		log.Printf("Blocks: %d samples, %s interpolation", *block, method)
	}

	recorder := sim.NewDAC(0)
	var dac mcuaudio.DAC = recorder
	var timer mcuaudio.Timer = sim.NewTimer(sim.DefaultBurst)
	var host *hostaudio.OtoDAC
	if *sound {
		host = hostaudio.NewOtoDAC(cfg.SampleRate, hostaudio.DefaultLatency)
		if err := host.Open(); err != nil {
			return err
		}
		defer func() { _ = host.Close() }()
		dac = sim.Tee{recorder, host}
		timer = sim.NewPacedTimer(sim.DefaultPaceInterval)
	}

	out := mcuaudio.NewSampleOutput(dac, timer)
	if err := out.Configure(cfg); err != nil {
		return err
	}

	start := time.Now()
	p := newPlayer(out, *block, resolution)
	err = play(p, src, cfg.SampleRate, method, *verbose)
	out.End()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if host != nil {
		if err := host.Drain(drainTimeout); err != nil {
			return err
		}
	}

	if *outPath != "" {
		if err := writeRecording(*outPath, cfg.SampleRate, recorder.Writes(), resolution); err != nil {
			return err
		}
	}

	stats := out.Stats()
	fmt.Printf("Played %s\n", src.label)
	fmt.Printf("  %d samples at %d Hz, %d-bit, period %v\n", p.played, cfg.SampleRate, resolution, stats.Period)
	fmt.Printf("  %d DAC writes, %d flips, %d underruns\n", recorder.Len(), stats.Flips, stats.Underruns)
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(), float64(p.played)/float64(cfg.SampleRate)/elapsed.Seconds())
	if host != nil {
		fmt.Printf("  Sound card: %d dropped, %d silent samples\n", host.Dropped(), host.Starved())
	}
	return nil
}

// writeRecording saves DAC codes as a 16-bit WAV file.
func writeRecording(path string, rate uint32, codes []uint16, bits uint8) (err error) {
	w, err := wavio.Create(path, rate)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := w.Close(); err == nil {
			err = closeErr
		}
	}()
	return w.WriteCodes(codes, bits)
}
