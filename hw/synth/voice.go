package synth

import (
	"math"

	"modex/emu/log"
)

// Voice chains an oscillator, a filter and an amplitude envelope.
type Voice struct {
	Osc    *Oscillator
	Filter *BiquadFilter // optional
	Env    *Envelope     // optional, full amplitude when nil
	Gain   float64       // output gain in [0, 1]
}

// VoiceConfig describes a voice.
type VoiceConfig struct {
	Waveform  Waveform
	Frequency float64
	Detune    float64

	Filter    FilterType
	Cutoff    float64 // 0 disables the filter
	Resonance float64

	Attack, Decay, Sustain, Release float64

	Gain float64
}

func NewVoice(cfg VoiceConfig, sampleRate int) *Voice {
	v := &Voice{
		Osc:  NewOscillator(cfg.Waveform, cfg.Frequency, sampleRate),
		Env:  NewEnvelope(cfg.Attack, cfg.Decay, cfg.Sustain, cfg.Release, sampleRate),
		Gain: cfg.Gain,
	}
	v.Osc.Detune = cfg.Detune
	if cfg.Cutoff > 0 {
		v.Filter = NewBiquad(cfg.Filter, cfg.Cutoff, cfg.Resonance, sampleRate)
	}

	log.ModSynth.DebugZ("new voice").
		Stringer("wave", cfg.Waveform).
		Float("freq", cfg.Frequency).
		Float("cutoff", cfg.Cutoff).
		Int("rate", sampleRate).
		End()
	return v
}

// NoteOn sets the oscillator pitch and triggers the envelope.
func (v *Voice) NoteOn(note int) {
	v.Osc.SetMidiNote(note)
	if v.Env != nil {
		v.Env.NoteOn()
	}
}

func (v *Voice) NoteOff() {
	if v.Env != nil {
		v.Env.NoteOff()
	}
}

// Next returns the next sample, in [-1, 1] for a non resonant filter.
func (v *Voice) Next() float64 {
	s := v.Osc.Next()
	if v.Filter != nil {
		s = v.Filter.Process(s)
	}
	if v.Env != nil {
		s *= v.Env.Next()
	}
	return s * v.Gain
}

// FillAudio renders len(buf) samples. It never fails and doesn't allocate.
func (v *Voice) FillAudio(buf []int16) error {
	for i := range buf {
		buf[i] = ToInt16(v.Next())
	}
	return nil
}

// ToInt16 converts a sample in [-1, 1] to 16 bits, clamping out of range
// values.
func ToInt16(s float64) int16 {
	s = math.Round(s * math.MaxInt16)
	switch {
	case s > math.MaxInt16:
		return math.MaxInt16
	case s < math.MinInt16:
		return math.MinInt16
	}
	return int16(s)
}
