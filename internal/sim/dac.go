package sim

import "sync"

// DAC records every value written to it, masked to the configured
// resolution.
type DAC struct {
	mu         sync.Mutex
	resolution uint8
	pin        uint8
	writes     []uint16
}

// NewDAC creates a recording DAC with room for capacity writes before it
// grows.
func NewDAC(capacity int) *DAC {
	return &DAC{
		resolution: 16,
		writes:     make([]uint16, 0, capacity),
	}
}

// SetResolution sets the output word width.
func (d *DAC) SetResolution(bits uint8) {
	d.mu.Lock()
	d.resolution = bits
	d.mu.Unlock()
}

// Write records value.
func (d *DAC) Write(pin uint8, value uint16) {
	d.mu.Lock()
	d.pin = pin
	d.writes = append(d.writes, value&mask(d.resolution))
	d.mu.Unlock()
}

// Resolution returns the configured word width.
func (d *DAC) Resolution() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resolution
}

// Pin returns the pin of the last write.
func (d *DAC) Pin() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pin
}

// Writes returns a copy of all recorded values.
func (d *DAC) Writes() []uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]uint16, len(d.writes))
	copy(out, d.writes)
	return out
}

// Len returns the number of recorded values.
func (d *DAC) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.writes)
}

// Reset discards recorded values.
func (d *DAC) Reset() {
	d.mu.Lock()
	d.writes = d.writes[:0]
	d.mu.Unlock()
}

// OutputDAC is the converter surface shared by DAC and host backends.
type OutputDAC interface {
	SetResolution(bits uint8)
	Write(pin uint8, value uint16)
}

// Tee forwards every call to all of its DACs.
type Tee []OutputDAC

// SetResolution forwards to every DAC.
func (t Tee) SetResolution(bits uint8) {
	for _, d := range t {
		d.SetResolution(bits)
	}
}

// Write forwards to every DAC.
func (t Tee) Write(pin uint8, value uint16) {
	for _, d := range t {
		d.Write(pin, value)
	}
}

func mask(bits uint8) uint16 {
	if bits >= 16 {
		return 0xFFFF
	}
	return uint16(1)<<bits - 1
}
