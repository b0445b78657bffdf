package emu

import (
	"runtime"
	"time"
)

// Clock abstracts time for the pacer.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// spinThreshold is the part of the wait that is spun rather than slept, to
// absorb the scheduler's sleep granularity.
const spinThreshold = 2 * time.Millisecond

// Pacer holds a loop to a fixed period. Each deadline is the previous one
// plus the period, so that lateness doesn't accumulate into drift.
type Pacer struct {
	period   time.Duration
	clock    Clock
	deadline time.Time
}

// NewPacer returns a pacer for fps frames per second. fps 0 disables pacing.
func NewPacer(fps int) *Pacer {
	return NewPacerWithClock(fps, systemClock{})
}

func NewPacerWithClock(fps int, clock Clock) *Pacer {
	var period time.Duration
	if fps > 0 {
		period = time.Second / time.Duration(fps)
	}
	return &Pacer{period: period, clock: clock}
}

func (p *Pacer) Period() time.Duration { return p.period }

// Deadline returns the last deadline reached.
func (p *Pacer) Deadline() time.Time { return p.deadline }

// Reset restarts pacing from now.
func (p *Pacer) Reset() { p.deadline = p.clock.Now() }

// Wait blocks until the next deadline, then advances it by one period. It
// reports whether the deadline had already passed when called.
func (p *Pacer) Wait() (late bool) {
	if p.period == 0 {
		return false
	}
	if p.deadline.IsZero() {
		p.Reset()
	}

	next := p.deadline.Add(p.period)
	now := p.clock.Now()
	late = now.After(next)

	if remain := next.Sub(now); remain > spinThreshold {
		p.clock.Sleep(remain - spinThreshold)
	}
	for p.clock.Now().Before(next) {
		runtime.Gosched()
	}

	p.deadline = next
	return late
}
