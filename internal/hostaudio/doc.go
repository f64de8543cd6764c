// Package hostaudio connects the converter interfaces to the host's sound
// hardware, so a pipeline built for a microcontroller can be heard, or fed
// from a microphone, on a development machine.
//
// OtoDAC plays through ebitengine/oto. MicSource records through PortAudio
// and is only functional when built with -tags portaudio.
package hostaudio
