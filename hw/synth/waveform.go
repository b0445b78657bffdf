package synth

//go:generate go tool stringer -type=Waveform,FilterType,Stage -output=enums_string.go

// Waveform selects the oscillator wave shape.
type Waveform uint8

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
	Noise
)

// FilterType selects the biquad topology.
type FilterType uint8

const (
	Lowpass FilterType = iota
	Highpass
	Bandpass
)

// Stage is the current segment of an ADSR envelope.
type Stage uint8

const (
	Idle Stage = iota
	Attack
	Decay
	Sustain
	Release
)
