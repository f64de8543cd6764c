//go:build !portaudio

package hostaudio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenMic_Disabled(t *testing.T) {
	m, err := OpenMic(16000, 12, 0)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrNoPortAudio)
}
