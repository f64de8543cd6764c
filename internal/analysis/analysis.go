// Package analysis summarizes blocks of DC-corrected capture samples: level
// statistics, clipping and the dominant frequency.
package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"github.com/tphakala/go-mcu-audio/internal/simdops"
)

// Report describes one block of samples.
type Report struct {
	Samples int

	// Mean and StdDev are in converter steps. After DC correction the mean
	// should sit near zero.
	Mean   float64
	StdDev float64

	// RMS is relative to int16 full scale, in [0, 1].
	RMS float64

	// Peak is the largest absolute sample value.
	Peak int

	// Clipped counts samples at the int16 limits.
	Clipped int

	// PeakFrequency is the centre of the strongest non-DC spectrum bin in
	// Hz, or zero when the block is silent or shorter than the transform.
	PeakFrequency float64
}

// DBFS returns the RMS level in decibels relative to full scale.
func (r Report) DBFS() float64 {
	if r.RMS <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(r.RMS)
}

// Analyzer computes reports with preallocated transform buffers. An
// Analyzer is not safe for concurrent use.
type Analyzer struct {
	size   int
	fft    *fourier.FFT
	window []float64
	frame  []float64
	coeffs []complex128
	values []float64
}

// NewAnalyzer creates an analyzer with an FFT of size points. Zero selects
// DefaultFFTSize; sizes below the minimum are raised to it.
func NewAnalyzer(size int) *Analyzer {
	if size == 0 {
		size = DefaultFFTSize
	}
	size = max(size, minFFTSize)

	window := make([]float64, size)
	for i := range window {
		window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size-1))
	}

	return &Analyzer{
		size:   size,
		fft:    fourier.NewFFT(size),
		window: window,
		frame:  make([]float64, size),
		coeffs: make([]complex128, size/2+1),
	}
}

// Size returns the transform length.
func (a *Analyzer) Size() int {
	return a.size
}

// Analyze reports on samples captured at sampleRate.
func (a *Analyzer) Analyze(samples []int16, sampleRate uint32) Report {
	r := Report{Samples: len(samples)}
	if len(samples) == 0 {
		return r
	}

	if cap(a.values) < len(samples) {
		a.values = make([]float64, len(samples))
	}
	x := a.values[:len(samples)]
	for i, v := range samples {
		x[i] = float64(v)
		av := abs(int(v))
		r.Peak = max(r.Peak, av)
		if av >= clipLevel {
			r.Clipped++
		}
	}

	r.Mean, r.StdDev = stat.MeanStdDev(x, nil)
	simdops.Scale(x, x, 1/fullScale)
	r.RMS = math.Sqrt(simdops.MeanSquare(x))
	r.PeakFrequency = a.peakFrequency(x, sampleRate)
	return r
}

// peakFrequency windows the first Size values of x, removes their mean and
// returns the frequency of the largest bin.
func (a *Analyzer) peakFrequency(x []float64, sampleRate uint32) float64 {
	if len(x) < a.size || sampleRate == 0 {
		return 0
	}
	head := x[:a.size]
	mean := simdops.Mean(head)
	for i, v := range head {
		a.frame[i] = (v - mean) * a.window[i]
	}
	a.coeffs = a.fft.Coefficients(a.coeffs, a.frame)

	best, bestMag := 0, 0.0
	for k := 1; k < len(a.coeffs); k++ {
		if m := cmplx.Abs(a.coeffs[k]); m > bestMag {
			best, bestMag = k, m
		}
	}
	if best == 0 {
		return 0
	}
	return a.fft.Freq(best) * float64(sampleRate)
}

// Analyze reports on samples with a one-off analyzer sized to the largest
// power of two that fits the block.
func Analyze(samples []int16, sampleRate uint32) Report {
	size := minFFTSize
	for size*2 <= len(samples) {
		size *= 2
	}
	return NewAnalyzer(size).Analyze(samples, sampleRate)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
