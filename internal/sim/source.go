package sim

import "math"

// Source yields raw converter samples, one per call.
type Source interface {
	Next() uint16
}

// SourceFunc adapts a function to Source.
type SourceFunc func() uint16

// Next calls f.
func (f SourceFunc) Next() uint16 {
	return f()
}

// Constant yields v forever.
func Constant(v uint16) Source {
	return SourceFunc(func() uint16 { return v })
}

// Loop yields samples in order, starting over at the end. An empty slice
// yields zeros.
func Loop(samples []uint16) Source {
	i := 0
	return SourceFunc(func() uint16 {
		if len(samples) == 0 {
			return 0
		}
		v := samples[i]
		i++
		if i == len(samples) {
			i = 0
		}
		return v
	})
}

// Sine yields a sine of freq Hz sampled at rate Hz, quantized to bits and
// centred on mid-scale plus bias. amplitude is a fraction of half scale.
func Sine(freq float64, rate uint32, bits uint8, amplitude float64, bias int) Source {
	half := float64(mask(bits)) / 2
	step := 2 * math.Pi * freq / float64(rate)
	var phase float64
	return SourceFunc(func() uint16 {
		v := half + float64(bias) + amplitude*half*math.Sin(phase)
		phase += step
		if phase >= 2*math.Pi {
			phase -= 2 * math.Pi
		}
		return clampUnsigned(v, bits)
	})
}

func clampUnsigned(v float64, bits uint8) uint16 {
	top := float64(mask(bits))
	switch {
	case v < 0:
		return 0
	case v > top:
		return uint16(top)
	default:
		return uint16(math.Round(v))
	}
}
