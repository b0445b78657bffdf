package audio

import (
	"math"
	"slices"
	"testing"
)

// sine produces a sine wave and counts produced samples.
type sine struct {
	freq, rate float64
	n          int
	amp        float64
}

func (s *sine) FillAudio(buf []int16) error {
	for i := range buf {
		buf[i] = int16(s.amp * math.Sin(2*math.Pi*s.freq*float64(s.n)/s.rate))
		s.n++
	}
	return nil
}

func TestResampler(t *testing.T) {
	tests := []struct {
		srcRate, dstRate, chunk, read int
	}{
		{11025, 44100, 512, 512},
		{22050, 22050, 256, 100},
		{44100, 22050, 1024, 1024},
		{TimeConstantRate(165), 44100, 512, 333},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			src := &sine{freq: 220, rate: float64(tt.srcRate), amp: 16000}
			r := NewResampler(src, tt.srcRate, tt.dstRate, tt.chunk)

			// One second of output.
			out := make([]int16, tt.dstRate)
			for off := 0; off < len(out); off += tt.read {
				end := min(off+tt.read, len(out))
				if err := r.FillAudio(out[off:end]); err != nil {
					t.Fatal(err)
				}
			}

			// Source consumption follows the rate ratio.
			if diff := src.n - tt.srcRate; diff < -16 || diff > 16+tt.chunk*tt.srcRate/tt.dstRate {
				t.Errorf("consumed %d source samples for 1s of output, want ~%d", src.n, tt.srcRate)
			}

			// Frequency and amplitude are preserved, once the filter settled.
			steady := out[tt.dstRate/4:]
			crossings := zeroCrossings(steady, 1000)
			peak := slices.Max(steady)
			wantCrossings := 2 * 220 * 3 / 4
			if crossings < wantCrossings-4 || crossings > wantCrossings+4 {
				t.Errorf("got %d zero crossings, want ~%d", crossings, wantCrossings)
			}
			if peak < 14000 || peak > 18000 {
				t.Errorf("peak = %d, want ~16000", peak)
			}
		})
	}
}

// zeroCrossings counts the sign changes of a signal, with hysteresis: the
// signal has to swing past ±threshold for a change to count, so that the
// ripple of band-limited steps around zero doesn't.
func zeroCrossings(samples []int16, threshold int16) int {
	n, sign := 0, 0
	for _, s := range samples {
		cur := 0
		switch {
		case s > threshold:
			cur = 1
		case s < -threshold:
			cur = -1
		default:
			continue
		}
		if sign != 0 && cur != sign {
			n++
		}
		sign = cur
	}
	return n
}

func TestZeroCrossings(t *testing.T) {
	tests := []struct {
		samples []int16
		want    int
	}{
		{[]int16{2000, -2000, 2000}, 2},
		{[]int16{-348, 101, -24, 427, 3000, -3000}, 1},
		{[]int16{-2000, 100, -100, 120, 2000}, 1},
		{[]int16{500, -500, 500}, 0},
	}
	for _, tt := range tests {
		if got := zeroCrossings(tt.samples, 1000); got != tt.want {
			t.Errorf("zeroCrossings(%v) = %d, want %d", tt.samples, got, tt.want)
		}
	}
}

func TestResamplerError(t *testing.T) {
	r := NewResampler(ProducerFunc(func([]int16) error { return errBroken }), 11025, 44100, 256)
	if err := r.FillAudio(make([]int16, 64)); err != errBroken {
		t.Errorf("FillAudio() = %v, want %v", err, errBroken)
	}
}
