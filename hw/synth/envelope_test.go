package synth

import (
	"math"
	"testing"
)

func stepN(e *Envelope, n int) float64 {
	var v float64
	for range n {
		v = e.Next()
	}
	return v
}

func TestEnvelopeAttack(t *testing.T) {
	tests := []struct {
		attack float64
		rate   int
	}{
		{0.01, 1000},
		{0.1, 44100},
		{0.02, 22050},
		{1, 48000},
	}
	for _, tt := range tests {
		e := NewEnvelope(tt.attack, 0.1, 0.5, 0.1, tt.rate)
		e.NoteOn()

		n := int(math.Round(tt.attack * float64(tt.rate)))
		v := stepN(e, n-1)
		if e.Stage() != Attack || v >= 1 {
			t.Errorf("attack=%g rate=%d: after %d samples stage=%s value=%g, want still attacking", tt.attack, tt.rate, n-1, e.Stage(), v)
		}
		v = e.Next()
		if e.Stage() != Decay || math.Abs(v-1) > 1e-9 {
			t.Errorf("attack=%g rate=%d: after %d samples stage=%s value=%g, want Decay at 1", tt.attack, tt.rate, n, e.Stage(), v)
		}
	}
}

func TestEnvelopeCycle(t *testing.T) {
	const rate = 1000
	e := NewEnvelope(0.01, 0.02, 0.6, 0.05, rate)

	if got := e.Next(); got != 0 || e.Stage() != Idle {
		t.Fatalf("idle envelope: value=%g stage=%s", got, e.Stage())
	}

	e.NoteOn()
	stepN(e, 10)
	if e.Stage() != Decay {
		t.Fatalf("stage = %s after attack, want Decay", e.Stage())
	}

	// Decay goes down by 1/20 per sample, from 1 to 0.6 in 8 samples.
	stepN(e, 8)
	if e.Stage() != Sustain || math.Abs(e.Value()-0.6) > 1e-12 {
		t.Fatalf("stage=%s value=%g, want Sustain at 0.6", e.Stage(), e.Value())
	}

	if v := stepN(e, 1000); v != 0.6 || e.Stage() != Sustain {
		t.Fatalf("sustain not held: stage=%s value=%g", e.Stage(), v)
	}

	e.NoteOff()
	if e.Stage() != Release {
		t.Fatalf("stage = %s after NoteOff, want Release", e.Stage())
	}
	v := stepN(e, 49)
	if e.Stage() != Release || v <= 0 {
		t.Fatalf("release ended early: stage=%s value=%g", e.Stage(), v)
	}
	v = e.Next()
	if e.Stage() != Idle || v != 0 {
		t.Fatalf("stage=%s value=%g after release time, want Idle at 0", e.Stage(), v)
	}
}

func TestEnvelopeRetrigger(t *testing.T) {
	const rate = 1000
	e := NewEnvelope(0.1, 0.1, 0.8, 0.1, rate)
	e.NoteOn()
	stepN(e, 50) // halfway through attack
	e.NoteOff()
	stepN(e, 20)
	before := e.Value()

	e.NoteOn()
	if e.Stage() != Attack {
		t.Fatalf("stage = %s after retrigger, want Attack", e.Stage())
	}
	after := e.Next()
	if d := after - before; d <= 0 || d > 0.011 {
		t.Errorf("retrigger jumped from %g to %g, want a click-free restart", before, after)
	}
}

func TestEnvelopeReleaseProportional(t *testing.T) {
	const rate = 1000
	e := NewEnvelope(0.01, 0.1, 1, 0.1, rate)
	e.NoteOn()
	stepN(e, 5) // value 0.5
	e.NoteOff()

	// Release from 0.5 takes the full release time, 100 samples.
	v := stepN(e, 50)
	if math.Abs(v-0.25) > 1e-9 {
		t.Errorf("value halfway through release = %g, want 0.25", v)
	}
	stepN(e, 50)
	if e.Stage() != Idle {
		t.Errorf("stage = %s after release time, want Idle", e.Stage())
	}
}

func TestEnvelopeZeroTimes(t *testing.T) {
	e := NewEnvelope(0, 0, 0.3, 0, 44100)
	e.NoteOn()

	if v := e.Next(); v != 1 || e.Stage() != Decay {
		t.Fatalf("zero attack: value=%g stage=%s", v, e.Stage())
	}
	if v := e.Next(); v != 0.3 || e.Stage() != Sustain {
		t.Fatalf("zero decay: value=%g stage=%s", v, e.Stage())
	}
	e.NoteOff()
	if v := e.Next(); v != 0 || e.Stage() != Idle {
		t.Fatalf("zero release: value=%g stage=%s", v, e.Stage())
	}
}

func TestEnvelopeNoteOffIdle(t *testing.T) {
	e := NewEnvelope(0.01, 0.01, 0.5, 0.01, 1000)
	e.NoteOff()
	if e.Stage() != Idle {
		t.Errorf("NoteOff on idle envelope moved to %s", e.Stage())
	}

	e.NoteOn()
	stepN(e, 3)
	e.Reset()
	if e.Stage() != Idle || e.Value() != 0 {
		t.Errorf("after reset: stage=%s value=%g, want Idle at 0", e.Stage(), e.Value())
	}
}

func TestEnvelopeBounded(t *testing.T) {
	e := NewEnvelope(0.0013, 0.0007, 1.7, 0.0021, 44100)
	for i := range 5000 {
		switch i % 400 {
		case 0:
			e.NoteOn()
		case 150:
			e.NoteOff()
		}
		if v := e.Next(); v < 0 || v > 1 {
			t.Fatalf("sample %d: value %g out of [0, 1]", i, v)
		}
	}
}
