package mcuaudio

// Converter constants
const (
	// DefaultResolution is the converter word width used when a config leaves
	// Resolution unset. Matches the 12-bit DAC/ADC of SAMD51-class parts.
	DefaultResolution = 12

	minResolution = 1  // Narrowest converter word
	maxResolution = 16 // Widest word that fits a Sample
)

// Timing constants
const (
	// MaxSampleRate is the fastest supported callback rate. Periodic timers
	// on the supported parts are programmed in microseconds.
	MaxSampleRate = 1_000_000
)

// Capture constants
const (
	// CaptureSlotSize is the number of samples in each capture slot.
	CaptureSlotSize = 4096

	// DefaultDCShift sets the DC tracker smoothing: each slot moves the
	// estimate 1/2^DefaultDCShift of the way towards the slot mean.
	DefaultDCShift = 3

	maxDCShift = 15 // Beyond this the tracker effectively never moves
)
