package sim

import (
	"errors"
	"time"
)

var errNilCallback = errors.New("sim: nil timer callback")

// Timer is a periodic timer driven from the caller's goroutine. Each Spin
// fires the callback Burst times, so a pipeline busy-waiting on it sees the
// hardware side run faster than the application refills.
type Timer struct {
	// Burst is the number of ticks per Spin.
	Burst int

	period  time.Duration
	fn      func()
	running bool
	ticks   uint64
}

// NewTimer creates a manual timer firing burst ticks per Spin.
func NewTimer(burst int) *Timer {
	if burst < 1 {
		burst = DefaultBurst
	}
	return &Timer{Burst: burst}
}

// Start arms the timer.
func (t *Timer) Start(period time.Duration, fn func()) error {
	if fn == nil {
		return errNilCallback
	}
	t.period = period
	t.fn = fn
	t.running = true
	return nil
}

// Stop disarms the timer.
func (t *Timer) Stop() {
	t.running = false
}

// Tick fires the callback up to n times and returns how many fired. It
// stops early if the callback stops the timer.
func (t *Timer) Tick(n int) int {
	fired := 0
	for ; fired < n && t.running; fired++ {
		t.fn()
		t.ticks++
	}
	return fired
}

// Advance fires the callback once for every whole period in d.
func (t *Timer) Advance(d time.Duration) int {
	if t.period <= 0 {
		return 0
	}
	return t.Tick(int(d / t.period))
}

// Spin fires Burst ticks.
func (t *Timer) Spin() {
	t.Tick(t.Burst)
}

// Running reports whether the timer is armed.
func (t *Timer) Running() bool {
	return t.running
}

// Period returns the armed period.
func (t *Timer) Period() time.Duration {
	return t.period
}

// Ticks returns the total number of callbacks fired.
func (t *Timer) Ticks() uint64 {
	return t.ticks
}

// PacedTimer fires its callback from a background goroutine at the armed
// period on average, in bursts every Interval.
type PacedTimer struct {
	// Interval is how often the goroutine catches up.
	Interval time.Duration

	p      *pacer
	period time.Duration
}

// NewPacedTimer creates a wall-clock timer that catches up every interval.
func NewPacedTimer(interval time.Duration) *PacedTimer {
	if interval <= 0 {
		interval = DefaultPaceInterval
	}
	return &PacedTimer{Interval: interval}
}

// Start arms the timer, stopping any previous run first.
func (t *PacedTimer) Start(period time.Duration, fn func()) error {
	if fn == nil {
		return errNilCallback
	}
	if period <= 0 {
		return errors.New("sim: timer period must be positive")
	}
	t.Stop()
	t.period = period
	t.p = startPacer(period, t.Interval, func(n uint64) {
		for range n {
			fn()
		}
	})
	return nil
}

// Stop disarms the timer and waits for the callback goroutine to exit.
func (t *PacedTimer) Stop() {
	if t.p != nil {
		t.p.halt()
		t.p = nil
	}
}

// Period returns the armed period.
func (t *PacedTimer) Period() time.Duration {
	return t.period
}
