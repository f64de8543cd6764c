package hostaudio

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/tphakala/go-mcu-audio/internal/ringbuf"
	"github.com/tphakala/go-mcu-audio/internal/wavio"
)

var errNotOpen = errors.New("hostaudio: output not open")

// OtoDAC is a DAC backed by the host sound card. Write is cheap and never
// blocks: samples go into a lock-free ring that the oto player drains at
// the device rate. A full ring drops samples; an empty one plays silence.
type OtoDAC struct {
	ring   *ringbuf.Ring[int16]
	reader *ringbuf.PCMReader
	bits   atomic.Uint32

	ctx    *oto.Context
	player *oto.Player
	rate   int

	dropped atomic.Uint64
}

// NewOtoDAC creates a DAC buffering latency worth of audio at sampleRate.
// Call Open before the sample timer starts.
func NewOtoDAC(sampleRate uint32, latency time.Duration) *OtoDAC {
	if latency <= 0 {
		latency = DefaultLatency
	}
	n := max(int(latency*time.Duration(sampleRate)/time.Second), minRingSamples)
	ring := ringbuf.NewRing[int16](n)
	d := &OtoDAC{
		ring:   ring,
		reader: ringbuf.NewPCMReader(ring),
		rate:   int(sampleRate),
	}
	d.bits.Store(defaultResolution)
	return d
}

// Open starts the sound card. oto allows one context per process, so Open
// must be called at most once.
func (d *OtoDAC) Open() error {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   d.rate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   time.Duration(d.ring.Capacity()/otoBufferDivisor) * time.Second / time.Duration(d.rate),
	})
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	d.ctx = ctx
	d.player = ctx.NewPlayer(d.reader)
	d.player.Play()
	return nil
}

// SetResolution sets the width of the codes passed to Write.
func (d *OtoDAC) SetResolution(bits uint8) {
	d.bits.Store(uint32(bits))
}

// Write queues one converter code for playback. pin is ignored: the host
// output is mono.
func (d *OtoDAC) Write(_ uint8, value uint16) {
	if !d.ring.Push(wavio.CodeToInt16(value, uint8(d.bits.Load()))) {
		d.dropped.Add(1)
	}
}

// Buffered returns the number of samples waiting for the device.
func (d *OtoDAC) Buffered() int {
	return d.ring.Available()
}

// Dropped returns how many samples were discarded because the ring was full.
func (d *OtoDAC) Dropped() uint64 {
	return d.dropped.Load()
}

// Starved returns how many silent samples the device played because the
// ring was empty.
func (d *OtoDAC) Starved() uint64 {
	return d.reader.Starved()
}

// Drain waits until the ring is empty or timeout passes.
func (d *OtoDAC) Drain(timeout time.Duration) error {
	if d.player == nil {
		return errNotOpen
	}
	deadline := time.Now().Add(timeout)
	for d.ring.Available() > 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	return nil
}

// Close stops playback and suspends the device.
func (d *OtoDAC) Close() error {
	if d.player == nil {
		return nil
	}
	err := d.player.Close()
	d.player = nil
	if serr := d.ctx.Suspend(); serr != nil && err == nil {
		err = serr
	}
	return err
}
