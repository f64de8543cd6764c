package sim

import "time"

const (
	// DefaultBurst is how many ticks or samples a manual peripheral advances
	// per Spin.
	DefaultBurst = 1

	// DefaultPaceInterval is how often paced peripherals catch up with
	// wall-clock time.
	DefaultPaceInterval = 2 * time.Millisecond

	// defaultFreeRunChunk is how many samples a free-running DMA moves per
	// step when its source paces itself.
	defaultFreeRunChunk = 256
)
