package sim

import (
	"errors"
	"time"
)

var (
	errSlotSize    = errors.New("sim: DMA slots must be equally sized and non-empty")
	errNilComplete = errors.New("sim: nil completion callback")
	errNoRate      = errors.New("sim: paced DMA needs a sample rate")
)

// ADC records the input configuration it was given.
type ADC struct {
	Pin        uint8
	SampleRate uint32
	Resolution uint8

	// Err, when set, is returned by ConfigureInput.
	Err error
}

// ConfigureInput records the configuration.
func (a *ADC) ConfigureInput(pin uint8, sampleRate uint32, bits uint8) error {
	if a.Err != nil {
		return a.Err
	}
	a.Pin = pin
	a.SampleRate = sampleRate
	a.Resolution = bits
	return nil
}

type dmaMode int

const (
	dmaManual dmaMode = iota
	dmaPaced
	dmaFreeRun
)

// DMA moves samples from a Source into two slots in ping-pong order and
// reports each completed slot.
//
// A manual DMA moves Burst samples per Spin and otherwise only on
// Transfer. Paced and free-running DMAs move samples from a background
// goroutine between Start and Stop.
type DMA struct {
	// Burst is the number of samples moved per Spin.
	Burst int

	src      Source
	dst      [2][]uint16
	complete func(slot int)
	slot     int
	pos      int
	running  bool
	moved    uint64

	mode     dmaMode
	rate     uint32
	interval time.Duration
	chunk    int
	p        *pacer
}

// NewDMA creates a manually driven DMA reading from src.
func NewDMA(src Source) *DMA {
	return &DMA{Burst: DefaultBurst, src: src}
}

// NewPacedDMA creates a DMA that moves sampleRate samples per second of
// wall-clock time, catching up every interval.
func NewPacedDMA(src Source, sampleRate uint32, interval time.Duration) *DMA {
	if interval <= 0 {
		interval = DefaultPaceInterval
	}
	d := NewDMA(src)
	d.mode = dmaPaced
	d.rate = sampleRate
	d.interval = interval
	return d
}

// NewFreeRunningDMA creates a DMA that moves samples as fast as src yields
// them. Use it with sources that block, such as a live input device.
func NewFreeRunningDMA(src Source) *DMA {
	d := NewDMA(src)
	d.mode = dmaFreeRun
	d.chunk = defaultFreeRunChunk
	return d
}

// Start begins transferring into dst[0].
func (d *DMA) Start(dst [2][]uint16, complete func(slot int)) error {
	if len(dst[0]) == 0 || len(dst[0]) != len(dst[1]) {
		return errSlotSize
	}
	if complete == nil {
		return errNilComplete
	}
	if d.mode == dmaPaced && d.rate == 0 {
		return errNoRate
	}
	d.Stop()

	d.dst = dst
	d.complete = complete
	d.slot = 0
	d.pos = 0
	d.running = true

	switch d.mode {
	case dmaPaced:
		period := time.Second / time.Duration(d.rate)
		d.p = startPacer(period, d.interval, func(n uint64) { d.Transfer(int(n)) })
	case dmaFreeRun:
		d.p = startLoop(func() { d.Transfer(d.chunk) })
	}
	return nil
}

// Stop halts the transfer, abandoning a partly filled slot.
func (d *DMA) Stop() {
	if d.p != nil {
		d.p.halt()
		d.p = nil
	}
	d.running = false
}

// Transfer moves up to n samples and returns how many moved.
func (d *DMA) Transfer(n int) int {
	moved := 0
	for ; moved < n && d.running; moved++ {
		buf := d.dst[d.slot]
		buf[d.pos] = d.src.Next()
		d.pos++
		d.moved++
		if d.pos == len(buf) {
			done := d.slot
			d.pos = 0
			d.slot ^= 1
			d.complete(done)
		}
	}
	return moved
}

// FillSlot completes the slot being filled.
func (d *DMA) FillSlot() {
	if !d.running {
		return
	}
	d.Transfer(len(d.dst[d.slot]) - d.pos)
}

// Spin moves Burst samples.
func (d *DMA) Spin() {
	d.Transfer(d.Burst)
}

// Filling returns the slot currently being written.
func (d *DMA) Filling() int {
	return d.slot
}

// Running reports whether the transfer is armed.
func (d *DMA) Running() bool {
	return d.running
}

// Moved returns the total number of samples transferred.
func (d *DMA) Moved() uint64 {
	return d.moved
}
