package analysis

// Spectrum constants
const (
	// DefaultFFTSize is the transform length used when NewAnalyzer is given
	// zero. Matches one capture slot.
	DefaultFFTSize = 4096

	// minFFTSize is the shortest transform that still resolves a tone.
	minFFTSize = 16

	// fullScale is the magnitude of the most negative int16 sample.
	fullScale = 32768.0

	// clipLevel is the absolute sample value counted as clipped.
	clipLevel = 32767
)
