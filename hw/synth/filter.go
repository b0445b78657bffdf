package synth

import "math"

const minResonance = 0.01

// BiquadFilter is a 2nd order IIR filter using the RBJ audio EQ cookbook
// coefficients. Changing the type, cutoff or resonance only marks the
// coefficients as stale, they're recomputed on the next call to Process.
type BiquadFilter struct {
	typ    FilterType
	cutoff float64 // Hz, clamped to [1, rate/2-1]
	q      float64 // >= minResonance
	rate   float64

	dirty              bool
	b0, b1, b2, a1, a2 float64 // normalized by a0

	x1, x2, y1, y2 float64
}

func NewBiquad(typ FilterType, cutoff, q float64, sampleRate int) *BiquadFilter {
	f := &BiquadFilter{typ: typ, rate: float64(sampleRate)}
	f.SetCutoff(cutoff)
	f.SetResonance(q)
	return f
}

func NewLowpass(cutoff, q float64, sampleRate int) *BiquadFilter {
	return NewBiquad(Lowpass, cutoff, q, sampleRate)
}

func NewHighpass(cutoff, q float64, sampleRate int) *BiquadFilter {
	return NewBiquad(Highpass, cutoff, q, sampleRate)
}

func NewBandpass(cutoff, q float64, sampleRate int) *BiquadFilter {
	return NewBiquad(Bandpass, cutoff, q, sampleRate)
}

func (f *BiquadFilter) Type() FilterType     { return f.typ }
func (f *BiquadFilter) Cutoff() float64      { return f.cutoff }
func (f *BiquadFilter) Resonance() float64   { return f.q }
func (f *BiquadFilter) SetType(t FilterType) { f.typ = t; f.dirty = true }

// SetCutoff sets the cutoff (or center) frequency. Values outside of
// [1, Nyquist-1] are clamped.
func (f *BiquadFilter) SetCutoff(hz float64) {
	f.cutoff = max(1, min(hz, f.rate/2-1))
	f.dirty = true
}

// SetResonance sets Q. Values under 0.01 are raised to 0.01.
func (f *BiquadFilter) SetResonance(q float64) {
	f.q = max(q, minResonance)
	f.dirty = true
}

func (f *BiquadFilter) compute() {
	w0 := 2 * math.Pi * f.cutoff / f.rate
	cosw0, sinw0 := math.Cos(w0), math.Sin(w0)
	alpha := sinw0 / (2 * f.q)

	var b0, b1, b2 float64
	switch f.typ {
	case Lowpass:
		b0 = (1 - cosw0) / 2
		b1 = 1 - cosw0
		b2 = (1 - cosw0) / 2
	case Highpass:
		b0 = (1 + cosw0) / 2
		b1 = -(1 + cosw0)
		b2 = (1 + cosw0) / 2
	case Bandpass:
		// constant skirt gain, peak gain = Q
		b0 = sinw0 / 2
		b1 = 0
		b2 = -sinw0 / 2
	}
	a0 := 1 + alpha
	f.b0 = b0 / a0
	f.b1 = b1 / a0
	f.b2 = b2 / a0
	f.a1 = -2 * cosw0 / a0
	f.a2 = (1 - alpha) / a0
	f.dirty = false
}

// Process filters one sample.
func (f *BiquadFilter) Process(x float64) float64 {
	if f.dirty {
		f.compute()
	}
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// Reset clears the delay line. Coefficients are kept.
func (f *BiquadFilter) Reset() {
	f.x1, f.x2, f.y1, f.y2 = 0, 0, 0, 0
}
