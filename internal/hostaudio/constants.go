package hostaudio

import "time"

const (
	// DefaultLatency is how much audio OtoDAC buffers between the sample
	// timer and the sound card.
	DefaultLatency = 200 * time.Millisecond

	// DefaultFramesPerBuffer is how many samples MicSource reads per device
	// transfer.
	DefaultFramesPerBuffer = 512

	// minRingSamples keeps tiny latencies from starving the device.
	minRingSamples = 1024

	// otoBufferDivisor sets the device-side buffer to a fraction of the ring.
	otoBufferDivisor = 4

	// defaultResolution matches the converter default of the root package.
	defaultResolution = 12
)
