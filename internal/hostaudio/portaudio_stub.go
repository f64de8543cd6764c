//go:build !portaudio

package hostaudio

import "errors"

// ErrNoPortAudio is returned when microphone capture is not compiled in.
var ErrNoPortAudio = errors.New("PortAudio support not enabled (build with -tags portaudio)")

// MicSource is a placeholder when PortAudio is not compiled in.
type MicSource struct{}

// OpenMic always fails without the portaudio build tag.
func OpenMic(uint32, uint8, int) (*MicSource, error) {
	return nil, ErrNoPortAudio
}

// Next returns zero.
func (m *MicSource) Next() uint16 { return 0 }

// Overflows returns zero.
func (m *MicSource) Overflows() int { return 0 }

// Err returns ErrNoPortAudio.
func (m *MicSource) Err() error { return ErrNoPortAudio }

// Close does nothing.
func (m *MicSource) Close() error { return nil }
