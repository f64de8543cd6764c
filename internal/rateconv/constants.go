package rateconv

// Cubic interpolation constants
const (
	// Number of points used in cubic interpolation
	cubicInterpolationPoints = 4

	// Latency in samples for cubic interpolation
	cubicLatencySamples = 2

	// Hermite interpolation coefficients
	hermiteCoeff0_5 = 0.5
	hermiteCoeff1_5 = 1.5
	hermiteCoeff2_5 = 2.5
)

// Linear interpolation constants
const (
	// Number of points used in linear interpolation
	linearInterpolationPoints = 2

	// Latency in samples for linear interpolation
	linearLatencySamples = 1
)

// maxRatio bounds how far a single stage may stretch its input.
const maxRatio = 1024
