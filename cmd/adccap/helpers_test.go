package main

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcuaudio "github.com/tphakala/go-mcu-audio"
	"github.com/tphakala/go-mcu-audio/internal/analysis"
	"github.com/tphakala/go-mcu-audio/internal/sim"
	"github.com/tphakala/go-mcu-audio/internal/wavio"
)

func newSimCapture(t *testing.T, src sim.Source, rate uint32, shift uint8) (*mcuaudio.SampleCapture, *sim.DMA) {
	t.Helper()
	dma := sim.NewDMA(src)
	c := mcuaudio.NewSampleCapture(&sim.ADC{}, dma)
	require.NoError(t, c.Configure(&mcuaudio.CaptureConfig{SampleRate: rate, DCShift: shift}))
	return c, dma
}

func TestLoadInput_Tone(t *testing.T) {
	in, err := loadInput("", 1000, 16000, 12, 200)
	require.NoError(t, err)
	assert.Contains(t, in.label, "1000 Hz")
	assert.Contains(t, in.label, "+200")

	// First sample is mid-scale plus bias.
	assert.Equal(t, uint16(2048+200), in.src.Next())
}

func TestLoadInput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.wav")
	w, err := wavio.Create(path, 8000)
	require.NoError(t, err)
	require.NoError(t, w.WriteInt16([]int16{0, 0, 0, 0}))
	require.NoError(t, w.Close())

	in, err := loadInput(path, 0, 16000, 12, 0)
	require.NoError(t, err)
	assert.Contains(t, in.label, "in.wav")
	for range 20 {
		assert.InDelta(t, 2048, int(in.src.Next()), 1)
	}
}

func TestLoadInput_FileNotFound(t *testing.T) {
	_, err := loadInput("/nonexistent/file.wav", 0, 16000, 12, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestOffsetCodes(t *testing.T) {
	codes := []uint16{0, 100, 4000, 4095}
	offsetCodes(codes, 200, 12)
	assert.Equal(t, []uint16{200, 300, 4095, 4095}, codes)

	codes = []uint16{0, 100, 65535}
	offsetCodes(codes, -150, 16)
	assert.Equal(t, []uint16{0, 0, 65385}, codes)
}

func TestSlotCount(t *testing.T) {
	assert.Equal(t, 1, slotCount(0, 16000))
	assert.Equal(t, 1, slotCount(100*time.Millisecond, 16000))
	assert.Equal(t, 4, slotCount(time.Second, 16000))
	assert.Equal(t, 8, slotCount(2*time.Second, 16000))
}

func TestSummary(t *testing.T) {
	var s summary
	assert.True(t, math.IsInf(s.DBFS(), -1))

	s.add(analysis.Report{Samples: 100, RMS: 0.5, Peak: 9000, Clipped: 1, PeakFrequency: 440})
	s.add(analysis.Report{Samples: 100, RMS: 0.5, Peak: 7000})

	assert.Equal(t, 2, s.slots)
	assert.Equal(t, 200, s.samples)
	assert.Equal(t, 9000, s.peak)
	assert.Equal(t, 1, s.clipped)
	assert.InDelta(t, 440, s.lastFreq, 0)
	assert.InDelta(t, 20*math.Log10(0.5), s.DBFS(), 1e-9)
}

func TestCaptureOffline_ToneAndDC(t *testing.T) {
	const (
		rate  = 16000
		bias  = 300
		slots = 20
	)
	c, dma := newSimCapture(t, sim.Sine(1000, rate, 12, 0.5, bias), rate, 1)
	path := filepath.Join(t.TempDir(), "cap.wav")
	w, err := wavio.Create(path, rate)
	require.NoError(t, err)

	rec := newRecorder(rate, 12, w, false)
	require.NoError(t, captureOffline(c, dma, slots, rec))
	require.NoError(t, w.Close())

	// 4096 samples hold whole cycles of 1 kHz at 16 kHz, so the slot mean
	// is the bias above mid-scale.
	assert.InDelta(t, 2047.5+bias, c.Stats().DCOffset, 1)
	assert.Zero(t, c.Stats().Overruns)
	assert.Equal(t, slots, rec.summary.slots)
	assert.InDelta(t, 1000, rec.summary.lastFreq, 4)

	d, err := wavio.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, d.Samples, slots*mcuaudio.CaptureSlotSize)
}

func TestCaptureRealtime_Stalls(t *testing.T) {
	c, _ := newSimCapture(t, sim.Constant(0), 16000, 3)
	rec := newRecorder(16000, 12, nil, false)

	err := captureRealtime(c, 1, time.Millisecond, rec)
	assert.ErrorIs(t, err, errCaptureStalled)
	assert.Zero(t, rec.summary.slots)
}

func TestCaptureRealtime_PacedDMA(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping wall-clock test in short mode")
	}
	const rate = 256000 // 16 ms per slot
	dma := sim.NewPacedDMA(sim.Constant(1000), rate, time.Millisecond)
	c := mcuaudio.NewSampleCapture(&sim.ADC{}, dma)
	cfg := &mcuaudio.CaptureConfig{SampleRate: rate}
	require.NoError(t, c.Configure(cfg))
	defer c.End()

	rec := newRecorder(rate, 12, nil, false)
	require.NoError(t, captureRealtime(c, 3, cfg.SlotDuration(), rec))
	assert.Equal(t, 3, rec.summary.slots)
	assert.GreaterOrEqual(t, c.Stats().Completed, uint64(3))
}

func TestSampleRate(t *testing.T) {
	tests := []struct {
		name    string
		in      uint
		want    uint32
		wantErr bool
	}{
		{"default", defaultRate, defaultRate, false},
		{"max", mcuaudio.MaxSampleRate, mcuaudio.MaxSampleRate, false},
		{"zero", 0, 0, true},
		{"above max", mcuaudio.MaxSampleRate + 1, 0, true},
		{"wraps to a valid rate", 1<<32 + 8000, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sampleRate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
