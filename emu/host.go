package emu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"modex/emu/log"
	"modex/hw/audio"
	"modex/hw/vga"
)

// Host runs a scene: it owns the video hardware (framebuffer, palette, CRTC),
// the raster driving them, and the audio session feeding the scene's samples
// to an audio device. Video and audio sessions share nothing.
type Host struct {
	cfg     Config
	scene   Scene
	machine Machine
	out     Output
	raster  *Raster

	cb       *audio.Callback
	dev      audio.Device
	streamer *audio.Streamer
	rec      *audio.Recorder
	paused   bool

	elapsed time.Duration
	closed  bool
}

// NewHost sets up the hardware for scene, loads it and opens the audio
// device. Audio is disabled if openAudio is nil, if the configured sample
// rate is 0, or if the scene doesn't produce samples.
func NewHost(cfg Config, scene Scene, out Output, openAudio audio.Opener) (*Host, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	w, h := cfg.Video.Mode.Dimensions()
	acfg := cfg.Audio.Device()
	if openAudio == nil {
		acfg.SampleRate = 0
	}
	if _, ok := scene.(audio.Producer); !ok {
		acfg.SampleRate = 0
	}

	host := &Host{
		cfg:   cfg,
		scene: scene,
		out:   out,
		machine: Machine{
			Width:  w,
			Height: h,
			FPS:    cfg.Video.FPS,
			CRTC:   vga.NewCRTC(),
			Audio:  acfg,
		},
	}

	if l, ok := scene.(Loader); ok {
		if err := l.Load(&host.machine); err != nil {
			return nil, fmt.Errorf("failed to load scene: %w", err)
		}
	}

	if err := host.setupAudio(openAudio); err != nil {
		host.unload()
		return nil, err
	}

	// Virtual audio devices follow the video frames.
	rout := out
	if dev, ok := host.dev.(audio.VirtualDevice); ok {
		rout = &clockedOutput{Output: out, dev: dev, fps: cfg.Video.FPS}
	}

	fps := cfg.Video.FPS
	if cfg.Video.Unthrottled {
		fps = 0
	}
	host.raster = NewRaster(
		vga.NewFrameBuffer(w, h),
		vga.NewPalette(),
		host.machine.CRTC,
		rout,
		NewPacer(fps),
		cfg.Video.Latch,
	)
	return host, nil
}

// clockedOutput steps a virtual audio device after each presented frame.
type clockedOutput struct {
	Output
	dev audio.VirtualDevice
	fps int
}

func (o *clockedOutput) Present(frame *vga.Frame) error {
	if err := o.Output.Present(frame); err != nil {
		return err
	}
	o.dev.StepFrame(o.fps)
	return nil
}

func (h *Host) setupAudio(open audio.Opener) error {
	acfg := h.machine.Audio
	if !acfg.Enabled() {
		log.ModAudio.InfoZ("audio disabled").End()
		return nil
	}

	var p audio.Producer = h.scene.(audio.Producer)
	if acfg.Rate() != acfg.SampleRate {
		p = audio.NewResampler(p, acfg.Rate(), acfg.SampleRate, acfg.BufferSize)
	}
	if h.cfg.Audio.WavPath != "" {
		rec, err := audio.CreateRecorder(h.cfg.Audio.WavPath, p, acfg.SampleRate, acfg.BufferSize)
		if err != nil {
			return err
		}
		h.rec = rec
		p = rec
	}
	if h.cfg.Audio.Prefetch {
		h.streamer = audio.NewStreamer(p, acfg.BufferSize)
		p = h.streamer
	}
	h.cb = audio.NewCallback(p)

	dev, err := open(acfg, h.cb)
	if err != nil {
		if h.rec != nil {
			h.rec.Close()
		}
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	h.dev = dev
	if _, ok := dev.(audio.VirtualDevice); ok && h.rec != nil {
		h.rec.SetLossless(true)
	}

	log.ModAudio.InfoZ("audio enabled").
		Int("rate", acfg.SampleRate).
		Int("source_rate", acfg.Rate()).
		Stringer("format", acfg.Format).
		Int("channels", acfg.Channels).
		Int("buffer", acfg.BufferSize).
		Bool("prefetch", h.streamer != nil).
		End()
	return nil
}

// Machine returns the hardware description handed to the scene.
func (h *Host) Machine() *Machine { return &h.machine }

// Run starts audio and runs the video loop until the output reports a quit
// request or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	if h.streamer != nil {
		h.streamer.Start(ctx)
	}
	if h.dev != nil {
		if err := h.dev.Start(); err != nil {
			return fmt.Errorf("failed to start audio device: %w", err)
		}
	}

	start := time.Now()
	err := h.raster.Run(ctx, h.scene, h)
	h.elapsed += time.Since(start)
	return err
}

// KeyDown handles host keys (P pauses audio) and forwards every key to the
// scene.
func (h *Host) KeyDown(key string) {
	log.ModInput.DebugZ("key down").String("key", key).End()
	if key == "P" {
		h.SetAudioPaused(!h.paused)
	}
	if input, ok := h.scene.(InputHandler); ok {
		input.KeyDown(key)
	}
}

// SetAudioPaused pauses or resumes the audio device, if it supports it.
func (h *Host) SetAudioPaused(paused bool) {
	if p, ok := h.dev.(audio.Pauser); ok {
		p.SetPaused(paused)
		h.paused = paused
		log.ModAudio.InfoZ("audio paused").Bool("paused", paused).End()
	}
}

// Stats returns statistics about the session.
func (h *Host) Stats() Stats {
	s := Stats{
		Mode:       h.cfg.Video.Mode.String(),
		Frames:     h.raster.Frames(),
		LateFrames: h.raster.LateFrames(),
		Elapsed:    h.elapsed,
	}
	if h.cb != nil {
		s.AudioEnabled = true
		s.AudioBuffers = h.cb.Fills()
		s.AudioFailures = h.cb.Failures()
		s.AudioUnderruns = h.cb.Underruns()
	}
	if h.rec != nil {
		s.RecordedSamples = h.rec.Written()
		s.DroppedSamples = h.rec.Dropped()
	}
	return s
}

// Close stops the audio device first, so that nothing calls into the
// producers anymore, then releases the scene and the output.
func (h *Host) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true

	var errs []error
	if h.dev != nil {
		errs = append(errs, h.dev.Close())
	}
	if h.streamer != nil {
		errs = append(errs, h.streamer.Stop())
	}
	if h.rec != nil {
		errs = append(errs, h.rec.Close())
	}
	if h.cb != nil {
		if n := h.cb.Failures(); n > 0 {
			log.ModAudio.WarnZ("audio producer failed, silence was played").Uint64("buffers", n).End()
		}
		if n := h.cb.Underruns(); n > 0 {
			log.ModAudio.WarnZ("audio underruns").Uint64("buffers", n).End()
		}
	}

	h.unload()
	errs = append(errs, h.out.Close())
	return errors.Join(errs...)
}

func (h *Host) unload() {
	if u, ok := h.scene.(Unloader); ok {
		u.Unload()
	}
}
