package hw

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/sync/errgroup"

	"modex/emu/log"
	"modex/hw/audio"
)

// queuedBuffers is the number of hardware buffers kept queued on the SDL
// device.
const queuedBuffers = 2

// SDLAudio plays the callback output on an SDL audio device. A pump goroutine
// keeps the device queue filled with whole hardware buffers.
type SDLAudio struct {
	cfg audio.Config
	cb  *audio.Callback
	enc audio.Encoder
	dev sdl.AudioDeviceID

	samples []int16
	buf     []byte

	paused atomic.Bool
	cancel context.CancelFunc
	g      errgroup.Group
}

func sdlFormat(f audio.Format) sdl.AudioFormat {
	if f == audio.U8 {
		return sdl.AUDIO_U8
	}
	return sdl.AUDIO_S16LSB
}

// OpenSDLAudio is an audio.Opener for SDL devices. The device starts paused.
func OpenSDLAudio(cfg audio.Config, cb *audio.Callback) (audio.Device, error) {
	spec := sdl.AudioSpec{
		Freq:     int32(cfg.SampleRate),
		Format:   sdlFormat(cfg.Format),
		Channels: uint8(cfg.Channels),
		Samples:  uint16(cfg.BufferSize),
	}

	var (
		dev sdl.AudioDeviceID
		err error
	)
	sdl.Do(func() {
		if err = sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
			return
		}
		dev, err = sdl.OpenAudioDevice("", false, &spec, nil, 0)
		if err != nil {
			sdl.QuitSubSystem(sdl.INIT_AUDIO)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	enc := audio.NewEncoder(cfg)
	return &SDLAudio{
		cfg:     cfg,
		cb:      cb,
		enc:     enc,
		dev:     dev,
		samples: make([]int16, cfg.BufferSize),
		buf:     make([]byte, cfg.BufferSize*enc.FrameSize()),
	}, nil
}

func (a *SDLAudio) Start() error {
	a.pump()
	sdl.PauseAudioDevice(a.dev, a.paused.Load())

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.g.Go(func() error {
		tick := time.NewTicker(a.cfg.Period() / 4)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-tick.C:
				a.pump()
			}
		}
	})
	return nil
}

// pump queues buffers until the device holds queuedBuffers of them.
func (a *SDLAudio) pump() {
	if a.paused.Load() {
		return
	}
	for sdl.GetQueuedAudioSize(a.dev) < uint32(queuedBuffers*len(a.buf)) {
		a.cb.Fill(a.samples)
		n := a.enc.Encode(a.buf, a.samples)
		if err := sdl.QueueAudio(a.dev, a.buf[:n]); err != nil {
			log.ModAudio.DebugZ("failed to queue audio buffer").Error("err", err).End()
			return
		}
	}
}

func (a *SDLAudio) SetPaused(paused bool) {
	a.paused.Store(paused)
	sdl.PauseAudioDevice(a.dev, paused)
	if paused {
		sdl.ClearQueuedAudio(a.dev)
	}
}

func (a *SDLAudio) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	err := a.g.Wait()
	sdl.Do(func() {
		sdl.CloseAudioDevice(a.dev)
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
	})
	return err
}
