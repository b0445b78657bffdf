package audio

import (
	"errors"
	"sync/atomic"
)

// A Producer generates mono signed 16-bit samples, at the session source
// rate. It must fill the whole buffer.
type Producer interface {
	FillAudio(buf []int16) error
}

// ProducerFunc adapts a function to the Producer interface.
type ProducerFunc func(buf []int16) error

func (f ProducerFunc) FillAudio(buf []int16) error { return f(buf) }

// ErrUnderrun is returned by producers that have no sample ready.
var ErrUnderrun = errors.New("audio underrun")

var errPanic = errors.New("audio producer panicked")

// Callback adapts a Producer to the pull model of audio devices. Devices call
// Fill from their own goroutine whenever a hardware buffer needs samples.
//
// Fill never blocks, allocates or logs: a failing (or panicking) producer
// results in a buffer of silence, and the failure is only counted.
type Callback struct {
	producer Producer

	fills     atomic.Uint64
	failures  atomic.Uint64
	underruns atomic.Uint64
}

// NewCallback returns a Callback for p. A nil producer always plays silence.
func NewCallback(p Producer) *Callback {
	return &Callback{producer: p}
}

// Fill fills out entirely, with silence on failure.
func (cb *Callback) Fill(out []int16) {
	cb.fills.Add(1)
	if cb.producer == nil {
		clear(out)
		return
	}
	if err := cb.call(out); err != nil {
		if errors.Is(err, ErrUnderrun) {
			cb.underruns.Add(1)
		} else {
			cb.failures.Add(1)
		}
		clear(out)
	}
}

func (cb *Callback) call(out []int16) (err error) {
	defer func() {
		if recover() != nil {
			err = errPanic
		}
	}()
	return cb.producer.FillAudio(out)
}

// Fills returns the number of times Fill has been called.
func (cb *Callback) Fills() uint64 { return cb.fills.Load() }

// Failures returns the number of buffers replaced by silence because the
// producer failed.
func (cb *Callback) Failures() uint64 { return cb.failures.Load() }

// Underruns returns the number of buffers replaced by silence because the
// producer had nothing ready.
func (cb *Callback) Underruns() uint64 { return cb.underruns.Load() }
