package audio

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// HeadlessClock selects what drives a headless device.
type HeadlessClock uint8

const (
	// ManualClock devices only play buffers on explicit Pull calls.
	ManualClock HeadlessClock = iota

	// RealtimeClock devices pull one buffer per hardware period, from their
	// own goroutine.
	RealtimeClock

	// FrameClock devices are stepped by the video frames (see VirtualDevice),
	// so that audio keeps in step with video however fast frames are run.
	FrameClock
)

// Headless is a device without audio output.
type Headless struct {
	cfg     Config
	cb      *Callback
	enc     Encoder
	samples []int16
	out     []byte
	clock   HeadlessClock

	// Device samples owed to the frame clock, in 1/fps units.
	owed int

	paused atomic.Bool
	pulled atomic.Uint64

	cancel context.CancelFunc
	g      errgroup.Group
}

// NewHeadless returns a headless device driven by clock.
func NewHeadless(cfg Config, cb *Callback, clock HeadlessClock) *Headless {
	enc := NewEncoder(cfg)
	return &Headless{
		cfg:     cfg,
		cb:      cb,
		enc:     enc,
		samples: make([]int16, cfg.BufferSize),
		out:     make([]byte, cfg.BufferSize*enc.FrameSize()),
		clock:   clock,
	}
}

// HeadlessOpener returns an Opener for headless devices.
func HeadlessOpener(clock HeadlessClock) Opener {
	return func(cfg Config, cb *Callback) (Device, error) {
		return NewHeadless(cfg, cb, clock), nil
	}
}

func (h *Headless) Start() error {
	if h.clock != RealtimeClock {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.g.Go(func() error {
		tick := time.NewTicker(h.cfg.Period())
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-tick.C:
				h.Pull()
			}
		}
	})
	return nil
}

// Pull simulates the hardware draining one buffer and returns the encoded
// bytes, which are only valid until the next call. A paused device plays
// silence without calling back.
func (h *Headless) Pull() []byte {
	if h.paused.Load() {
		for i := range h.out {
			h.out[i] = h.enc.Silence()
		}
		return h.out
	}
	h.cb.Fill(h.samples)
	n := h.enc.Encode(h.out, h.samples)
	h.pulled.Add(1)
	return h.out[:n]
}

// StepFrame plays the buffers due after one more video frame at fps frames
// per second. Devices on another clock ignore it.
func (h *Headless) StepFrame(fps int) {
	if h.clock != FrameClock || fps <= 0 {
		return
	}
	h.owed += h.cfg.SampleRate
	for per := h.cfg.BufferSize * fps; h.owed >= per; h.owed -= per {
		h.Pull()
	}
}

// Pulled returns the number of buffers pulled from the callback.
func (h *Headless) Pulled() uint64 { return h.pulled.Load() }

func (h *Headless) SetPaused(paused bool) { h.paused.Store(paused) }

func (h *Headless) Close() error {
	if h.cancel != nil {
		h.cancel()
	}
	return h.g.Wait()
}
