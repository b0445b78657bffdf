package audio

// Device is an open audio output. It calls back into the session Callback
// from its own goroutine once started, until closed.
type Device interface {
	Start() error
	Close() error
}

// A Pauser is a device that can be paused without being closed.
type Pauser interface {
	SetPaused(paused bool)
}

// A VirtualDevice has no hardware deadline to meet, so producers may take
// their time. It can be clocked by video frames: StepFrame is called once per
// presented frame, and is a no-op for devices running on their own clock.
type VirtualDevice interface {
	Device
	StepFrame(fps int)
}

// Opener opens an audio device for a session.
type Opener func(cfg Config, cb *Callback) (Device, error)
