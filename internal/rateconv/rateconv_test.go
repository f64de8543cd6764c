package rateconv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sineInput(n int, period float64) []float64 {
	in := make([]float64, n)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * float64(i) / period)
	}
	return in
}

// =============================================================================
// Constructor Tests
// =============================================================================

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		in, out uint32
		method  Method
		ratio   float64
		wantErr bool
	}{
		{"upsample cubic", 22050, 44100, Cubic, 2, false},
		{"downsample linear", 48000, 16000, Linear, 1.0 / 3, false},
		{"zero input rate", 0, 44100, Cubic, 0, true},
		{"zero output rate", 44100, 0, Cubic, 0, true},
		{"ratio too large", 8, 1_000_000, Cubic, 0, true},
		{"unknown method", 8000, 16000, Method(9), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.in, tt.out, tt.method)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRate)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.ratio, s.Ratio(), 1e-12)
		})
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range []Method{Cubic, Linear} {
		got, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMethod("sinc")
	assert.Error(t, err)
	assert.Equal(t, "Method(7)", Method(7).String())
}

func TestMethod_Points(t *testing.T) {
	assert.Equal(t, 4, Cubic.Points())
	assert.Equal(t, 2, Linear.Points())
}

// =============================================================================
// Processing Tests
// =============================================================================

func TestStages_EmptyInput(t *testing.T) {
	for _, s := range []Stage{NewCubicStage(2), NewLinearStage(2)} {
		out, err := s.Process([]float64{})
		require.NoError(t, err)
		assert.Empty(t, out)
	}
}

func TestStages_OutputLength(t *testing.T) {
	in := sineInput(1000, 50)
	for _, ratio := range []float64{0.5, 1.5, 2, 44100.0 / 8000} {
		for _, s := range []Stage{NewCubicStage(ratio), NewLinearStage(ratio)} {
			out, err := s.Process(in)
			require.NoError(t, err)
			assert.InDelta(t, float64(len(in))*ratio, float64(len(out)), 2, "ratio %g", ratio)
		}
	}
}

func TestCubicStage_ReproducesSine(t *testing.T) {
	const period = 64.0
	s := NewCubicStage(2)
	out, err := s.Process(sineInput(512, period))
	require.NoError(t, err)

	// Output lags by the interpolation latency; compare after the warmup.
	lag := float64(s.Latency())
	for i := 16; i < len(out)-16; i++ {
		pos := float64(i)/2 - lag
		want := math.Sin(2 * math.Pi * pos / period)
		require.InDelta(t, want, out[i], 2e-3, "sample %d", i)
	}
}

func TestLinearStage_Midpoints(t *testing.T) {
	s := NewLinearStage(2)
	out, err := s.Process([]float64{2, 4, 6})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1, 2, 3, 4, 5}, out, 1e-12)
}

func TestStages_ChunkedMatchesWhole(t *testing.T) {
	in := sineInput(600, 37)
	for _, m := range []Method{Cubic, Linear} {
		whole, err := New(8000, 11025, m)
		require.NoError(t, err)
		chunked, err := New(8000, 11025, m)
		require.NoError(t, err)

		want, err := whole.Process(in)
		require.NoError(t, err)

		var got []float64
		for start := 0; start < len(in); start += 77 {
			part, err := chunked.Process(in[start:min(start+77, len(in))])
			require.NoError(t, err)
			got = append(got, part...)
		}
		assert.InDeltaSlice(t, want, got, 1e-12, "method %v", m)
	}
}

func TestStages_Reset(t *testing.T) {
	in := sineInput(100, 10)
	for _, s := range []Stage{NewCubicStage(1.5), NewLinearStage(1.5)} {
		first, err := s.Process(in)
		require.NoError(t, err)
		s.Reset()
		second, err := s.Process(in)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

// TestCubicStage_BufferIntegrity verifies earlier output is not reused.
func TestCubicStage_BufferIntegrity(t *testing.T) {
	s := NewCubicStage(2)
	out1, err := s.Process(sineInput(1000, 100))
	require.NoError(t, err)
	saved := append([]float64(nil), out1...)

	_, err = s.Process(sineInput(500, 50))
	require.NoError(t, err)
	assert.Equal(t, saved, out1)
}

func TestConvert(t *testing.T) {
	in := []float64{1, 2, 3}
	same, err := Convert(in, 8000, 8000, Cubic)
	require.NoError(t, err)
	assert.Equal(t, in, same)
	same[0] = 9
	assert.InDelta(t, 1, in[0], 0, "equal rates must copy")

	up, err := Convert(sineInput(100, 20), 8000, 16000, Linear)
	require.NoError(t, err)
	assert.Len(t, up, 200)

	_, err = Convert(in, 0, 0, Cubic)
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func BenchmarkCubicStage(b *testing.B) {
	in := sineInput(4096, 100)
	s := NewCubicStage(44100.0 / 22050)

	for b.Loop() {
		_, _ = s.Process(in)
	}
}
