package emu

import (
	"testing"
	"time"
)

// fakeClock advances by tick at each call to Now, and by d when sleeping.
type fakeClock struct {
	now    time.Time
	tick   time.Duration
	slept  time.Duration
	sleeps int
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(c.tick)
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.now = c.now.Add(d)
	c.slept += d
	c.sleeps++
}

func TestPacerNoDrift(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0), tick: 100 * time.Microsecond}
	p := NewPacerWithClock(50, clock) // 20ms
	p.Reset()
	start := p.Deadline()

	for i := 1; i <= 10; i++ {
		clock.now = clock.now.Add(3 * time.Millisecond) // frame work

		if late := p.Wait(); late {
			t.Fatalf("frame %d reported late", i)
		}
		want := start.Add(time.Duration(i) * 20 * time.Millisecond)
		if !p.Deadline().Equal(want) {
			t.Fatalf("frame %d: deadline = %v, want %v", i, p.Deadline().Sub(start), want.Sub(start))
		}
		if clock.now.Before(want) || clock.now.Sub(want) > time.Millisecond {
			t.Fatalf("frame %d: woke up at %v, want %v", i, clock.now.Sub(start), want.Sub(start))
		}
	}
	if clock.sleeps != 10 {
		t.Errorf("slept %d times, want 10", clock.sleeps)
	}
}

func TestPacerLateFrame(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0), tick: 100 * time.Microsecond}
	p := NewPacerWithClock(100, clock) // 10ms
	p.Reset()
	start := p.Deadline()

	clock.now = clock.now.Add(25 * time.Millisecond)
	if !p.Wait() {
		t.Fatalf("25ms frame not reported late")
	}
	if clock.sleeps != 0 {
		t.Errorf("late frame slept")
	}
	// The deadline only moves by one period.
	if got := p.Deadline().Sub(start); got != 10*time.Millisecond {
		t.Errorf("deadline advanced by %v, want 10ms", got)
	}

	// Catching up: the next deadline (20ms) has passed too.
	if !p.Wait() {
		t.Errorf("second frame should still be late")
	}
	// The third one (30ms) is in the future.
	if p.Wait() {
		t.Errorf("third frame should be on time")
	}
	if got := p.Deadline().Sub(start); got != 30*time.Millisecond {
		t.Errorf("deadline at %v, want 30ms", got)
	}
}

func TestPacerShortWaitSpins(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0), tick: 100 * time.Microsecond}
	p := NewPacerWithClock(100, clock)
	p.Reset()

	clock.now = clock.now.Add(9 * time.Millisecond)
	p.Wait()
	if clock.sleeps != 0 {
		t.Errorf("slept with only 1ms left, want spinning")
	}
}

func TestPacerDisabled(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0), tick: time.Microsecond}
	p := NewPacerWithClock(0, clock)
	for range 100 {
		if p.Wait() {
			t.Fatal("disabled pacer reported a late frame")
		}
	}
	if clock.sleeps != 0 || p.Period() != 0 {
		t.Errorf("disabled pacer waited")
	}
}

func TestPacerRealClock(t *testing.T) {
	p := NewPacer(200) // 5ms
	p.Reset()
	start := time.Now()
	for range 4 {
		p.Wait()
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("4 frames at 200Hz took %v, want at least 20ms", elapsed)
	}
}
