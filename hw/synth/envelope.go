package synth

// snap is how close to its target a value must be to be considered there.
const snap = 1e-9

// Envelope is a linear ADSR amplitude envelope, advanced once per sample.
// Attack, Decay and Release are in seconds, Sustain is a level in [0, 1].
type Envelope struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64

	step         float64 // 1/sampleRate
	stage        Stage
	value        float64
	releaseStart float64
}

func NewEnvelope(attack, decay, sustain, release float64, sampleRate int) *Envelope {
	return &Envelope{
		Attack:  attack,
		Decay:   decay,
		Sustain: sustain,
		Release: release,
		step:    1 / float64(sampleRate),
	}
}

func (e *Envelope) Stage() Stage   { return e.stage }
func (e *Envelope) Value() float64 { return e.value }

// NoteOn (re)starts the attack from the current value.
func (e *Envelope) NoteOn() {
	e.stage = Attack
}

// NoteOff starts the release from the current value. No-op when idle.
func (e *Envelope) NoteOff() {
	if e.stage == Idle {
		return
	}
	e.releaseStart = e.value
	e.stage = Release
}

func (e *Envelope) Reset() {
	e.stage = Idle
	e.value = 0
	e.releaseStart = 0
}

func (e *Envelope) sustainLevel() float64 {
	return max(0, min(e.Sustain, 1))
}

// Next advances the envelope by one sample and returns its value.
func (e *Envelope) Next() float64 {
	switch e.stage {
	case Idle:
		e.value = 0

	case Attack:
		if e.Attack <= 0 {
			e.value = 1
			e.stage = Decay
			break
		}
		e.value += e.step / e.Attack
		if e.value >= 1-snap {
			e.value = 1
			e.stage = Decay
		}

	case Decay:
		lvl := e.sustainLevel()
		if e.Decay <= 0 {
			e.value = lvl
			e.stage = Sustain
			break
		}
		e.value -= e.step / e.Decay
		if e.value <= lvl+snap {
			e.value = lvl
			e.stage = Sustain
		}

	case Sustain:
		e.value = e.sustainLevel()

	case Release:
		if e.Release <= 0 {
			e.value = 0
			e.stage = Idle
			break
		}
		e.value -= e.releaseStart * e.step / e.Release
		if e.value <= snap {
			e.value = 0
			e.stage = Idle
		}
	}
	return e.value
}
