package main

import "time"

// Default command-line flag values
const (
	defaultRate     = 16000 // Hz, typical for speech capture on small ADCs
	defaultBits     = 12
	defaultPin      = 4
	defaultDuration = 2 * time.Second
	defaultToneAmp  = 0.5
	defaultBias     = 300 // Converter steps above mid-scale for -tone

	maxBits = 16
	maxPin  = 255
)

// Processing constants
const (
	// pollInterval is how long the realtime loop sleeps when no slot is
	// ready. It must stay well under one slot duration.
	pollInterval = time.Millisecond

	// slotTimeoutFactor bounds a realtime capture at this many slot
	// durations per slot before giving up on the source.
	slotTimeoutFactor = 4

	// micFrames is the PortAudio buffer size for -mic.
	micFrames = 512

	minRequiredArgs = 1
)
