package wavio

import "math"

// ToCodes maps normalized samples in [-1, 1] to unsigned converter codes of
// the given resolution, with 0 at mid-scale. Out-of-range input saturates.
// dst must be at least as long as src.
func ToCodes(dst []uint16, src []float64, bits uint8) {
	top := float64(codeMask(bits))
	half := top / 2
	for i, v := range src {
		c := math.Round(half + v*half)
		switch {
		case c < 0:
			c = 0
		case c > top:
			c = top
		}
		dst[i] = uint16(c)
	}
}

// CodeToInt16 re-centres an unsigned converter code on zero and scales it to
// the int16 range.
func CodeToInt16(code uint16, bits uint8) int16 {
	code &= codeMask(bits)
	if bits == 0 || bits >= BitDepth16 {
		return int16(int32(code) - 1<<15)
	}
	shift := BitDepth16 - bits
	return int16((int32(code) - int32(1)<<(bits-1)) << shift)
}

// Int16ToCode maps a signed 16-bit sample to an unsigned converter code of
// the given resolution, as an ADC sampling the same waveform would report.
func Int16ToCode(v int16, bits uint8) uint16 {
	u := uint16(int32(v) + 1<<15)
	if bits == 0 || bits >= BitDepth16 {
		return u
	}
	return u >> (BitDepth16 - bits)
}

// ScaleInt16 converts a corrected capture sample of the given resolution to
// the int16 range, saturating.
func ScaleInt16(v int16, bits uint8) int16 {
	if bits == 0 || bits >= BitDepth16 {
		return v
	}
	s := int32(v) << (BitDepth16 - bits)
	switch {
	case s > math.MaxInt16:
		return math.MaxInt16
	case s < math.MinInt16:
		return math.MinInt16
	}
	return int16(s)
}

func codeMask(bits uint8) uint16 {
	if bits == 0 || bits >= BitDepth16 {
		return math.MaxUint16
	}
	return uint16(1)<<bits - 1
}
