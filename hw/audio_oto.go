package hw

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"

	"modex/hw/audio"
)

// oto only supports one context per process.
var otoContext struct {
	sync.Mutex
	ctx *oto.Context
	cfg audio.Config
}

func otoFormat(f audio.Format) oto.Format {
	if f == audio.U8 {
		return oto.FormatUnsignedInt8
	}
	return oto.FormatSignedInt16LE
}

// OtoAudio plays the callback output with oto. oto pulls bytes from its own
// goroutine, through an audio.Reader.
type OtoAudio struct {
	player *oto.Player
}

// OpenOtoAudio is an audio.Opener for oto players.
func OpenOtoAudio(cfg audio.Config, cb *audio.Callback) (audio.Device, error) {
	otoContext.Lock()
	defer otoContext.Unlock()

	if otoContext.ctx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   cfg.SampleRate,
			ChannelCount: cfg.Channels,
			Format:       otoFormat(cfg.Format),
			BufferSize:   cfg.Period(),
		})
		if err != nil {
			return nil, fmt.Errorf("oto: %w", err)
		}
		<-ready
		otoContext.ctx = ctx
		otoContext.cfg = cfg
	} else if c := otoContext.cfg; c.SampleRate != cfg.SampleRate || c.Channels != cfg.Channels || c.Format != cfg.Format {
		return nil, fmt.Errorf("oto: already opened at %dHz %s with %d channels", c.SampleRate, c.Format, c.Channels)
	}

	player := otoContext.ctx.NewPlayer(audio.NewReader(cfg, cb))
	player.SetBufferSize(cfg.BufferSize * cfg.FrameSize())
	return &OtoAudio{player: player}, nil
}

func (a *OtoAudio) Start() error {
	a.player.Play()
	return nil
}

func (a *OtoAudio) SetPaused(paused bool) {
	if paused {
		a.player.Pause()
	} else {
		a.player.Play()
	}
}

func (a *OtoAudio) Close() error {
	a.player.Pause()
	return a.player.Close()
}

// AudioOpener returns the audio.Opener of a backend.
func AudioOpener(backend string) (audio.Opener, error) {
	switch backend {
	case "sdl":
		return OpenSDLAudio, nil
	case "oto":
		return OpenOtoAudio, nil
	}
	return nil, fmt.Errorf("unknown audio backend %q", backend)
}
