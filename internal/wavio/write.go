package wavio

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Writer writes a mono 16-bit WAV file.
type Writer struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
	written int
}

// Create creates path and writes a WAV header for sampleRate.
func Create(path string, sampleRate uint32) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &Writer{
		file:    f,
		encoder: wav.NewEncoder(f, int(sampleRate), BitDepth16, monoChannels, pcmFormat),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: monoChannels, SampleRate: int(sampleRate)},
			Data:           make([]int, 0, writeChunk),
			SourceBitDepth: BitDepth16,
		},
	}, nil
}

// WriteInt16 appends signed samples, such as DC-corrected capture output.
func (w *Writer) WriteInt16(samples []int16) error {
	for len(samples) > 0 {
		n := min(len(samples), writeChunk)
		w.buf.Data = w.buf.Data[:n]
		for i, v := range samples[:n] {
			w.buf.Data[i] = int(v)
		}
		if err := w.flush(); err != nil {
			return err
		}
		samples = samples[n:]
	}
	return nil
}

// WriteCodes appends unsigned converter codes of the given resolution,
// re-centred on zero and scaled to 16 bits.
func (w *Writer) WriteCodes(codes []uint16, bits uint8) error {
	for len(codes) > 0 {
		n := min(len(codes), writeChunk)
		w.buf.Data = w.buf.Data[:n]
		for i, c := range codes[:n] {
			w.buf.Data[i] = int(CodeToInt16(c, bits))
		}
		if err := w.flush(); err != nil {
			return err
		}
		codes = codes[n:]
	}
	return nil
}

// Written returns the number of samples written.
func (w *Writer) Written() int {
	return w.written
}

// Close finalizes the header and closes the file.
func (w *Writer) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return w.file.Close()
}

func (w *Writer) flush() error {
	if err := w.encoder.Write(w.buf); err != nil {
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	w.written += len(w.buf.Data)
	return nil
}
