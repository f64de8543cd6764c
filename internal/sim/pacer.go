package sim

import "time"

// pacer runs step on its own goroutine with the number of events due since
// the previous call, one event per period.
type pacer struct {
	stop chan struct{}
	done chan struct{}
}

func startPacer(period, interval time.Duration, step func(n uint64)) *pacer {
	p := &pacer{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go func() {
		defer close(p.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		start := time.Now()
		var fired uint64
		for {
			select {
			case <-p.stop:
				return
			case now := <-ticker.C:
				due := uint64(now.Sub(start) / period)
				if due > fired {
					step(due - fired)
					fired = due
				}
			}
		}
	}()
	return p
}

// startLoop runs step back to back until halted. step is expected to block
// on its own source.
func startLoop(step func()) *pacer {
	p := &pacer{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go func() {
		defer close(p.done)
		for {
			select {
			case <-p.stop:
				return
			default:
				step()
			}
		}
	}()
	return p
}

// halt stops the goroutine and waits for it to exit.
func (p *pacer) halt() {
	close(p.stop)
	<-p.done
}
