package mcuaudio

import "time"

// Sample is one quantized converter value, right-aligned in 16 bits.
type Sample = uint16

// DAC is the analog output capability consumed by SampleOutput.
// Write is called from timer-interrupt context and must complete well
// within one sample period.
type DAC interface {
	// SetResolution sets the output word width in bits.
	SetResolution(bits uint8)

	// Write drives pin to value.
	Write(pin uint8, value Sample)
}

// Timer invokes a callback at a fixed period until stopped.
type Timer interface {
	// Start arms the timer. fn runs once per period, never concurrently
	// with itself.
	Start(period time.Duration, fn func()) error

	// Stop disarms the timer. No callback runs after Stop returns.
	Stop()
}

// ADC is the analog input capability consumed by SampleCapture.
type ADC interface {
	// ConfigureInput prepares pin for continuous sampling at sampleRate
	// with the given word width.
	ConfigureInput(pin uint8, sampleRate uint32, bits uint8) error
}

// DMA moves converter samples into memory, looping over two equally sized
// destination slots: dst[0], dst[1], dst[0], ...
type DMA interface {
	// Start begins the transfer. complete is called from transfer-complete
	// context with the index of the slot just filled.
	Start(dst [2][]Sample, complete func(slot int)) error

	// Stop halts the transfer. No completion runs after Stop returns. An
	// in-flight slot is abandoned, not flushed.
	Stop()
}

// Spinner is implemented by collaborators that need to make progress while
// the application busy-waits, such as simulated hardware driven from the
// caller's goroutine. SampleOutput calls Spin once per wait iteration when
// its Timer implements it.
type Spinner interface {
	Spin()
}
