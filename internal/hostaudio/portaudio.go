//go:build portaudio

package hostaudio

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/tphakala/go-mcu-audio/internal/wavio"
)

// MicSource yields converter codes sampled from the default input device.
// Next blocks on the device, so it suits a free-running DMA.
type MicSource struct {
	stream *portaudio.Stream
	buf    []int16
	pos    int
	bits   uint8

	overflows int
	err       error
}

// OpenMic opens the default input device in mono at sampleRate, producing
// codes of the given resolution.
func OpenMic(sampleRate uint32, bits uint8, frames int) (*MicSource, error) {
	if frames <= 0 {
		frames = DefaultFramesPerBuffer
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	m := &MicSource{buf: make([]int16, frames), bits: bits}
	m.pos = len(m.buf)

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), frames, m.buf)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("failed to open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("failed to start input stream: %w", err)
	}
	m.stream = stream
	return m, nil
}

// Next returns the next sample, reading a new frame from the device when
// the current one is used up. After a read error it yields mid-scale.
func (m *MicSource) Next() uint16 {
	if m.pos == len(m.buf) {
		if err := m.stream.Read(); err != nil {
			if !errors.Is(err, portaudio.InputOverflowed) {
				m.err = err
				return wavio.Int16ToCode(0, m.bits)
			}
			m.overflows++
		}
		m.pos = 0
	}
	v := m.buf[m.pos]
	m.pos++
	return wavio.Int16ToCode(v, m.bits)
}

// Overflows returns how many device reads reported lost input.
func (m *MicSource) Overflows() int {
	return m.overflows
}

// Err returns the last fatal read error.
func (m *MicSource) Err() error {
	return m.err
}

// Close stops the stream and releases PortAudio.
func (m *MicSource) Close() error {
	if m.stream == nil {
		return nil
	}
	if err := m.stream.Stop(); err != nil {
		return err
	}
	if err := m.stream.Close(); err != nil {
		return err
	}
	m.stream = nil
	return portaudio.Terminate()
}
