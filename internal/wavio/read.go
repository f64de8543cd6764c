// Package wavio loads audio files as mono float samples and writes mono
// 16-bit WAV files, converting to and from DAC/ADC codes.
package wavio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// ErrUnsupportedFormat indicates a file type this package cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decoded is a file mixed down to one channel, normalized to [-1, 1].
type Decoded struct {
	Samples    []float64
	SampleRate uint32

	// Channels and BitDepth describe the source file.
	Channels int
	BitDepth int
}

// ReadFile decodes a .wav or .mp3 file.
func ReadFile(path string) (*Decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav", ".wave":
		return ReadWAV(f)
	case ".mp3":
		return ReadMP3(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ReadWAV decodes an integer PCM WAV stream.
func ReadWAV(r io.ReadSeeker) (*Decoded, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, errors.New("invalid WAV file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode WAV data: %w", err)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)
	if bitDepth == 0 {
		bitDepth = BitDepth16
	}
	full := float64(int64(1) << (bitDepth - 1))
	bias := 0.0
	if bitDepth == unsignedBitDepth {
		bias = full
	}

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = (float64(v) - bias) / full
	}

	return &Decoded{
		Samples:    downmix(samples, format.NumChannels),
		SampleRate: uint32(format.SampleRate),
		Channels:   format.NumChannels,
		BitDepth:   bitDepth,
	}, nil
}

// ReadMP3 decodes an MP3 stream.
func ReadMP3(r io.Reader) (*Decoded, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	n := len(pcm) / bytesPerSample16
	samples := make([]float64, n)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(pcm[i*bytesPerSample16:]))
		samples[i] = float64(v) / (maxInt16 + 1)
	}

	return &Decoded{
		Samples:    downmix(samples, mp3Channels),
		SampleRate: uint32(decoder.SampleRate()),
		Channels:   mp3Channels,
		BitDepth:   BitDepth16,
	}, nil
}

// downmix averages interleaved channels into one.
func downmix(interleaved []float64, channels int) []float64 {
	if channels <= monoChannels {
		return interleaved
	}
	frames := len(interleaved) / channels
	out := make([]float64, frames)
	for i := range frames {
		var sum float64
		for ch := range channels {
			sum += interleaved[i*channels+ch]
		}
		out[i] = sum / float64(channels)
	}
	return out
}
