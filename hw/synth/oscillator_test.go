package synth

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSinePeriodic(t *testing.T) {
	tests := []struct {
		freq float64
		rate int
	}{
		{441, 44100},
		{1000, 48000},
		{250, 8000},
		{110, 22000},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			period := tt.rate / int(tt.freq)
			osc := NewOscillator(Sine, tt.freq, tt.rate)

			first := make([]float64, period)
			for i := range first {
				first[i] = osc.Next()
			}
			second := make([]float64, period)
			for i := range second {
				second[i] = osc.Next()
			}

			opt := cmpopts.EquateApprox(0, 1e-9)
			if diff := cmp.Diff(first, second, opt); diff != "" {
				t.Errorf("sine not periodic (-first +second):\n%s", diff)
			}

			var sum float64
			for _, s := range first {
				sum += s
			}
			if mean := sum / float64(period); math.Abs(mean) > 1e-9 {
				t.Errorf("mean over a period = %g, want 0", mean)
			}
		})
	}
}

func TestWaveforms(t *testing.T) {
	// 125Hz at 1kHz: phase steps of exactly 1/8.
	tests := []struct {
		wave Waveform
		want []float64
	}{
		{Square, []float64{1, 1, 1, 1, -1, -1, -1, -1, 1}},
		{Sawtooth, []float64{-1, -0.75, -0.5, -0.25, 0, 0.25, 0.5, 0.75, -1}},
		{Triangle, []float64{-1, -0.5, 0, 0.5, 1, 0.5, 0, -0.5, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.wave.String(), func(t *testing.T) {
			osc := NewOscillator(tt.wave, 125, 1000)
			got := make([]float64, len(tt.want))
			for i := range got {
				got[i] = osc.Next()
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("samples mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNoiseHeldPerCycle(t *testing.T) {
	osc := NewOscillator(Noise, 125, 1000)
	osc.Seed(1, 2)

	var cycles [][]float64
	for range 20 {
		cycle := make([]float64, 8)
		for i := range cycle {
			cycle[i] = osc.Next()
		}
		cycles = append(cycles, cycle)
	}

	distinct := make(map[float64]bool)
	for n, cycle := range cycles {
		for i, s := range cycle {
			if s != cycle[0] {
				t.Fatalf("cycle %d sample %d = %g, want %g held for the whole cycle", n, i, s, cycle[0])
			}
			if s < -1 || s >= 1 {
				t.Fatalf("noise sample %g out of [-1, 1)", s)
			}
		}
		distinct[cycle[0]] = true
	}
	if len(distinct) < 15 {
		t.Errorf("only %d distinct values over 20 cycles", len(distinct))
	}

	// Same seed, same sequence.
	other := NewOscillator(Noise, 125, 1000)
	other.Seed(1, 2)
	for n := range cycles {
		for range 8 {
			if got := other.Next(); got != cycles[n][0] {
				t.Fatalf("seeded noise differs at cycle %d: got %g, want %g", n, got, cycles[n][0])
			}
		}
	}
}

func TestDetune(t *testing.T) {
	osc := NewOscillator(Sawtooth, 120, 48000)
	osc.Detune = 100 // +1/12 of the frequency

	osc.Next()
	want := 130.0 / 48000
	if got := osc.Phase(); math.Abs(got-want) > 1e-12 {
		t.Errorf("phase after one sample = %g, want %g", got, want)
	}
}

func TestOscillatorReset(t *testing.T) {
	osc := NewOscillator(Sawtooth, 440, 44100)
	for range 37 {
		osc.Next()
	}
	osc.Reset()
	if got := osc.Next(); got != -1 {
		t.Errorf("first sample after reset = %g, want -1", got)
	}
}

func TestMidiToFrequency(t *testing.T) {
	tests := []struct {
		note int
		want float64
	}{
		{69, 440},
		{81, 880},
		{57, 220},
		{60, 261.6255653005986},
		{0, 8.175798915643707},
	}
	for _, tt := range tests {
		osc := NewOscillator(Sine, 0, 44100)
		osc.SetMidiNote(tt.note)
		if math.Abs(osc.Frequency-tt.want) > 1e-9 {
			t.Errorf("note %d: freq = %g, want %g", tt.note, osc.Frequency, tt.want)
		}
	}
}

func TestPhaseWraps(t *testing.T) {
	osc := NewOscillator(Sine, 3000, 8000)
	for range 10000 {
		osc.Next()
		if p := osc.Phase(); p < 0 || p >= 1 {
			t.Fatalf("phase %g out of [0, 1)", p)
		}
	}

	osc.Frequency = -500
	for range 1000 {
		osc.Next()
		if p := osc.Phase(); p < 0 || p >= 1 {
			t.Fatalf("phase %g out of [0, 1) with a negative frequency", p)
		}
	}
}

func BenchmarkOscillator(b *testing.B) {
	for _, w := range []Waveform{Sine, Square, Sawtooth, Triangle, Noise} {
		b.Run(w.String(), func(b *testing.B) {
			osc := NewOscillator(w, 440, 44100)
			for b.Loop() {
				osc.Next()
			}
		})
	}
}
