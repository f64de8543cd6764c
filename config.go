package mcuaudio

import (
	"errors"
	"fmt"
	"time"
)

// Errors returned at the pipeline boundary. The real-time paths never
// return errors.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid audio configuration")

	// ErrEmptyBuffer indicates a zero-length block was offered for playback.
	ErrEmptyBuffer = errors.New("empty sample buffer")

	// ErrNotRunning indicates the pipeline has not been started with Begin.
	ErrNotRunning = errors.New("audio pipeline not running")

	// ErrStopped indicates End was called while a caller was waiting.
	ErrStopped = errors.New("audio pipeline stopped")
)

// OutputConfig configures a SampleOutput.
type OutputConfig struct {
	// Pin is the analog output pin.
	Pin uint8

	// SampleRate is the playback rate in Hz.
	SampleRate uint32

	// Resolution is the DAC word width in bits. Zero selects
	// DefaultResolution.
	Resolution uint8

	// ClockHz is the timer input clock. When set, the callback period is
	// rounded down to a whole number of timer clock cycles, which is what the
	// hardware actually produces. Zero uses the exact reciprocal of
	// SampleRate.
	ClockHz uint32
}

// Validate checks if the configuration is valid.
func (c *OutputConfig) Validate() error {
	if err := validateRate(c.SampleRate); err != nil {
		return err
	}
	if err := validateResolution(c.Resolution); err != nil {
		return err
	}
	if c.ClockHz != 0 && c.ClockHz < c.SampleRate {
		return fmt.Errorf("%w: timer clock %d Hz is slower than sample rate %d Hz",
			ErrInvalidConfig, c.ClockHz, c.SampleRate)
	}
	return nil
}

// Period returns the callback period for this configuration.
func (c *OutputConfig) Period() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	if c.ClockHz == 0 {
		return time.Second / time.Duration(c.SampleRate)
	}
	cycles := uint64(c.ClockHz / c.SampleRate)
	return time.Duration(cycles * uint64(time.Second) / uint64(c.ClockHz))
}

func (c *OutputConfig) withDefaults() OutputConfig {
	out := *c
	if out.Resolution == 0 {
		out.Resolution = DefaultResolution
	}
	return out
}

// CaptureConfig configures a SampleCapture.
type CaptureConfig struct {
	// Pin is the analog input pin.
	Pin uint8

	// SampleRate is the converter sampling rate in Hz.
	SampleRate uint32

	// Resolution is the ADC word width in bits. Zero selects
	// DefaultResolution.
	Resolution uint8

	// DCShift sets how quickly the DC estimate follows the input; each slot
	// moves it 1/2^DCShift of the way to the slot mean. Zero selects
	// DefaultDCShift.
	DCShift uint8
}

// Validate checks if the configuration is valid.
func (c *CaptureConfig) Validate() error {
	if err := validateRate(c.SampleRate); err != nil {
		return err
	}
	if err := validateResolution(c.Resolution); err != nil {
		return err
	}
	if c.DCShift > maxDCShift {
		return fmt.Errorf("%w: DC shift must be at most %d", ErrInvalidConfig, maxDCShift)
	}
	return nil
}

// SlotDuration returns how long the converter takes to fill one slot. The
// application must call InputSamples at least this often.
func (c *CaptureConfig) SlotDuration() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	return time.Duration(CaptureSlotSize) * time.Second / time.Duration(c.SampleRate)
}

func (c *CaptureConfig) withDefaults() CaptureConfig {
	out := *c
	if out.Resolution == 0 {
		out.Resolution = DefaultResolution
	}
	if out.DCShift == 0 {
		out.DCShift = DefaultDCShift
	}
	return out
}

func validateRate(rate uint32) error {
	if rate == 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}
	if rate > MaxSampleRate {
		return fmt.Errorf("%w: sample rate %d Hz exceeds %d Hz", ErrInvalidConfig, rate, MaxSampleRate)
	}
	return nil
}

func validateResolution(bits uint8) error {
	if bits == 0 {
		return nil
	}
	if bits < minResolution || bits > maxResolution {
		return fmt.Errorf("%w: resolution must be %d-%d bits", ErrInvalidConfig, minResolution, maxResolution)
	}
	return nil
}
