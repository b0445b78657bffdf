package demos

import (
	"sync/atomic"

	"modex/emu"
	"modex/hw/synth"
	"modex/hw/vga"
)

const (
	scopeBackground = 0
	scopeGrid       = 1
	scopeTrace      = 2
)

// notes of the arpeggio, as MIDI note numbers.
var arpeggio = []int{45, 52, 57, 60, 64, 60, 57, 52}

// Synth plays an arpeggio on a sawtooth voice whose lowpass filter opens
// during each note, and draws the output waveform as an oscilloscope.
//
// The audio callback and the video loop share the scope samples through
// atomics.
type Synth struct {
	width, height int
	audio         bool

	voice    *synth.Voice
	noteLen  int // in samples
	pos      int // position in the current note
	note     int // index in arpeggio
	cutoff   float64
	maxOpen  float64
	openRate float64

	scope []atomic.Int32
}

func (s *Synth) Load(m *emu.Machine) error {
	s.width, s.height = m.Width, m.Height
	s.scope = make([]atomic.Int32, m.Width)

	s.audio = m.Audio.Enabled()
	if !s.audio {
		modDemo.WarnZ("audio is disabled, the synth scene will be silent").End()
		return nil
	}

	rate := m.SampleRate()
	s.voice = synth.NewVoice(synth.VoiceConfig{
		Waveform:  synth.Sawtooth,
		Filter:    synth.Lowpass,
		Cutoff:    200,
		Resonance: 1.5,
		Attack:    0.005,
		Decay:     0.1,
		Sustain:   0.6,
		Release:   0.08,
		Gain:      0.4,
	}, rate)

	s.noteLen = rate / 5
	s.maxOpen = min(5000, float64(rate)/2-1)
	s.openRate = 1 + 4/float64(s.noteLen) // about e^4 over a note
	return nil
}

// FillAudio renders the arpeggio, one sample at a time: notes and the filter
// cutoff change on sample boundaries, not buffer boundaries.
func (s *Synth) FillAudio(buf []int16) error {
	if s.voice == nil {
		clear(buf)
		return nil
	}

	for i := range buf {
		switch s.pos {
		case 0:
			s.voice.NoteOn(arpeggio[s.note])
			s.note = (s.note + 1) % len(arpeggio)
			s.cutoff = 200
		case s.noteLen * 3 / 4:
			s.voice.NoteOff()
		}
		if s.cutoff < s.maxOpen {
			s.cutoff = min(s.cutoff*s.openRate, s.maxOpen)
			s.voice.Filter.SetCutoff(s.cutoff)
		}

		buf[i] = synth.ToInt16(s.voice.Next())
		if s.pos++; s.pos == s.noteLen {
			s.pos = 0
		}
	}

	// Keep the most recent samples for the scope.
	n := min(len(buf), len(s.scope))
	for i, v := range buf[len(buf)-n:] {
		s.scope[i].Store(int32(v))
	}
	return nil
}

func (s *Synth) VerticalRetrace(fb vga.Canvas, pal vga.PaletteRegs) {
	pal.Set(scopeBackground, vga.FromVGA6(0, 6, 0))
	pal.Set(scopeGrid, vga.FromVGA6(0, 16, 0))
	pal.Set(scopeTrace, vga.FromVGA6(20, 63, 20))

	fb.Clear(scopeBackground)
	for y := 0; y < s.height; y += s.height / 8 {
		fb.HLine(0, y, s.width, scopeGrid)
	}
	for x := 0; x < s.width; x += s.width / 10 {
		fb.VLine(x, 0, s.height, scopeGrid)
	}

	mid := s.height / 2
	prev := mid
	for x := range s.width {
		v := int(s.scope[x].Load())
		y := mid - v*(s.height/2-1)/32768
		// Join consecutive points so that steep edges stay visible.
		lo, hi := min(prev, y), max(prev, y)
		fb.VLine(x, lo, hi-lo+1, scopeTrace)
		prev = y
	}
}
