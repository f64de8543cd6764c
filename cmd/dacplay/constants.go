package main

import "time"

// Default command-line flag values
const (
	defaultRate     = 22050 // Hz, a common DAC timer rate for 12-bit parts
	defaultBits     = 12
	defaultBlock    = 512 // Samples per OutputSamples call
	defaultPin      = 25
	defaultDuration = 2 * time.Second
	defaultToneAmp  = 0.8

	maxBits = 16
	maxPin  = 255
)

// Processing constants
const (
	// chunkSize is how many source samples are converted per step.
	chunkSize = 8192

	// trailingBlocks of silence are queued after the input so the last real
	// block is known to have played when feeding returns.
	trailingBlocks = 2

	// rotation is the number of block buffers the player cycles through.
	rotation = 3

	// drainTimeout bounds the wait for the sound card to empty its buffer.
	drainTimeout = 2 * time.Second

	progressInterval = 10 // Print progress every N%
	percentScale     = 100
	minRequiredArgs  = 1
)
