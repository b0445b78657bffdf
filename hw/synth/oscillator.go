package synth

import (
	"math"
	"math/rand/v2"
)

// Oscillator is a phase accumulator producing one sample of a fixed waveform
// per call to Next. Frequency and Detune may be changed between samples.
type Oscillator struct {
	Waveform  Waveform
	Frequency float64 // Hz
	Detune    float64 // cents

	rate  float64
	phase float64 // [0, 1)

	rng   *rand.Rand
	noise float64 // held for a whole cycle
}

func NewOscillator(w Waveform, freq float64, sampleRate int) *Oscillator {
	o := &Oscillator{
		Waveform:  w,
		Frequency: freq,
		rate:      float64(sampleRate),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	o.roll()
	return o
}

// Seed makes the noise sequence deterministic.
func (o *Oscillator) Seed(seed1, seed2 uint64) {
	o.rng = rand.New(rand.NewPCG(seed1, seed2))
	o.roll()
}

func (o *Oscillator) SampleRate() int { return int(o.rate) }

// Phase returns the current phase, in [0, 1).
func (o *Oscillator) Phase() float64 { return o.phase }

// SetMidiNote sets the frequency from a MIDI note number, A4 (69) being 440Hz.
func (o *Oscillator) SetMidiNote(note int) {
	o.Frequency = MidiToFrequency(note)
}

func MidiToFrequency(note int) float64 {
	return 440 * math.Pow(2, float64(note-69)/12)
}

// Reset restarts the cycle, for hard sync.
func (o *Oscillator) Reset() {
	o.phase = 0
	o.roll()
}

func (o *Oscillator) roll() {
	o.noise = o.rng.Float64()*2 - 1
}

// Next returns the current sample and advances the phase.
func (o *Oscillator) Next() float64 {
	var s float64
	switch o.Waveform {
	case Sine:
		s = math.Sin(2 * math.Pi * o.phase)
	case Square:
		if o.phase < 0.5 {
			s = 1
		} else {
			s = -1
		}
	case Sawtooth:
		s = 2*o.phase - 1
	case Triangle:
		if o.phase < 0.5 {
			s = 4*o.phase - 1
		} else {
			s = 3 - 4*o.phase
		}
	case Noise:
		s = o.noise
	}

	// Cents to ratio, linear approximation.
	freq := o.Frequency + o.Detune/100*o.Frequency/12

	o.phase += freq / o.rate
	if o.phase >= 1 || o.phase < 0 {
		o.phase -= math.Floor(o.phase)
		o.roll()
	}
	return s
}
