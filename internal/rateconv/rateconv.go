// Package rateconv converts decoded audio to the fixed rate a DAC timer is
// armed at, with short cubic or linear interpolators. A 12-bit converter
// gains nothing from a long anti-aliasing filter.
package rateconv

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRate indicates a zero or out-of-range conversion ratio.
var ErrInvalidRate = errors.New("invalid conversion rate")

// Method selects the interpolation used by a Stage.
type Method int

const (
	// Cubic is 4-point Hermite interpolation.
	Cubic Method = iota
	// Linear is 2-point interpolation.
	Linear
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case Cubic:
		return "cubic"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a name accepted by String back to its Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "cubic":
		return Cubic, nil
	case "linear":
		return Linear, nil
	default:
		return 0, fmt.Errorf("unknown interpolation %q (use cubic or linear)", s)
	}
}

// Stage is a streaming rate converter. Process may be called repeatedly
// with consecutive chunks; state carries over between calls.
type Stage interface {
	Process(input []float64) ([]float64, error)
	Reset()
	Ratio() float64
	Latency() int
}

// New creates a stage converting from inRate to outRate Hz.
func New(inRate, outRate uint32, m Method) (Stage, error) {
	if inRate == 0 || outRate == 0 {
		return nil, fmt.Errorf("%w: rates must be positive (got %d -> %d)", ErrInvalidRate, inRate, outRate)
	}
	ratio := float64(outRate) / float64(inRate)
	if ratio > maxRatio || ratio < 1.0/maxRatio {
		return nil, fmt.Errorf("%w: ratio %.4g out of range", ErrInvalidRate, ratio)
	}
	switch m {
	case Cubic:
		return NewCubicStage(ratio), nil
	case Linear:
		return NewLinearStage(ratio), nil
	default:
		return nil, fmt.Errorf("%w: unknown method %v", ErrInvalidRate, m)
	}
}

// Convert resamples a whole signal in one call. Equal rates return a copy.
func Convert(input []float64, inRate, outRate uint32, m Method) ([]float64, error) {
	if inRate == outRate && inRate != 0 {
		out := make([]float64, len(input))
		copy(out, input)
		return out, nil
	}
	s, err := New(inRate, outRate, m)
	if err != nil {
		return nil, err
	}
	return s.Process(input)
}

// CubicStage implements cubic (4-point, 3rd order) Hermite interpolation.
type CubicStage struct {
	ratio   float64
	step    float64
	phase   float64
	history [4]float64 // 4-point window for interpolation
}

// NewCubicStage creates a cubic stage producing ratio output samples per
// input sample.
func NewCubicStage(ratio float64) *CubicStage {
	return &CubicStage{ratio: ratio, step: 1 / ratio}
}

// Process resamples input using cubic interpolation.
func (c *CubicStage) Process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return []float64{}, nil
	}

	output := make([]float64, 0, int(math.Ceil(float64(len(input))*c.ratio)))
	for _, sample := range input {
		c.history[3] = c.history[2]
		c.history[2] = c.history[1]
		c.history[1] = c.history[0]
		c.history[0] = sample

		for c.phase < 1.0 {
			output = append(output, c.interpolate(c.phase))
			c.phase += c.step
		}
		c.phase -= 1.0
	}
	return output, nil
}

// interpolate evaluates the Hermite polynomial between history[2] and
// history[1] at fractional position x.
func (c *CubicStage) interpolate(x float64) float64 {
	y0 := c.history[3] // oldest
	y1 := c.history[2]
	y2 := c.history[1]
	y3 := c.history[0] // newest

	coefA := -hermiteCoeff0_5*y0 + hermiteCoeff1_5*y1 - hermiteCoeff1_5*y2 + hermiteCoeff0_5*y3
	coefB := y0 - hermiteCoeff2_5*y1 + 2*y2 - hermiteCoeff0_5*y3
	coefC := -hermiteCoeff0_5*y0 + hermiteCoeff0_5*y2
	coefD := y1

	return ((coefA*x+coefB)*x+coefC)*x + coefD
}

// Reset clears internal state.
func (c *CubicStage) Reset() {
	c.phase = 0
	c.history = [cubicInterpolationPoints]float64{}
}

// Ratio returns the output/input rate ratio.
func (c *CubicStage) Ratio() float64 {
	return c.ratio
}

// Latency returns the stage delay in input samples.
func (c *CubicStage) Latency() int {
	return cubicLatencySamples
}

// LinearStage implements linear (2-point, 1st order) interpolation.
type LinearStage struct {
	ratio float64
	step  float64
	phase float64
	prev  float64
}

// NewLinearStage creates a linear stage producing ratio output samples per
// input sample.
func NewLinearStage(ratio float64) *LinearStage {
	return &LinearStage{ratio: ratio, step: 1 / ratio}
}

// Process resamples input using linear interpolation.
func (l *LinearStage) Process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return []float64{}, nil
	}

	output := make([]float64, 0, int(math.Ceil(float64(len(input))*l.ratio)))
	for _, sample := range input {
		for l.phase < 1.0 {
			output = append(output, (1-l.phase)*l.prev+l.phase*sample)
			l.phase += l.step
		}
		l.prev = sample
		l.phase -= 1.0
	}
	return output, nil
}

// Reset clears internal state.
func (l *LinearStage) Reset() {
	l.phase = 0
	l.prev = 0
}

// Ratio returns the output/input rate ratio.
func (l *LinearStage) Ratio() float64 {
	return l.ratio
}

// Latency returns the stage delay in input samples.
func (l *LinearStage) Latency() int {
	return linearLatencySamples
}

// Points returns how many input samples m looks at per output sample.
func (m Method) Points() int {
	if m == Linear {
		return linearInterpolationPoints
	}
	return cubicInterpolationPoints
}
