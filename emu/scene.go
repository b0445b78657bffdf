package emu

import (
	"modex/hw/audio"
	"modex/hw/vga"
)

// A Scene draws frames. VerticalRetrace is called once per frame, before any
// scanline, with views of the back framebuffer and back palette: scenes draw
// and program colors, the raster alone flips and commits.
//
// A Scene may also implement ScanlineHook, Loader, Unloader, InputHandler and
// audio.Producer.
type Scene interface {
	VerticalRetrace(fb vga.Canvas, pal vga.PaletteRegs)
}

// ScanlineHook is called once per scanline, in ascending order, after
// VerticalRetrace. Palette writes are cumulative over the frame.
type ScanlineHook interface {
	HorizontalRetrace(line int, pal vga.PaletteRegs)
}

// Loader is implemented by scenes that need to be set up before the first
// frame.
type Loader interface {
	Load(m *Machine) error
}

// Unloader is implemented by scenes that hold resources.
type Unloader interface {
	Unload()
}

// InputHandler receives key presses, by key name.
type InputHandler interface {
	KeyDown(key string)
}

// Machine describes the emulated hardware a scene runs on.
type Machine struct {
	Width, Height int
	FPS           int

	// CRTC registers, latched by the raster once per frame.
	CRTC *vga.CRTC

	// Audio is the session audio configuration. Producers are called at
	// Audio.Rate(). Audio is disabled when Audio.SampleRate is 0.
	Audio audio.Config
}

// SampleRate returns the rate at which the scene produces samples.
func (m *Machine) SampleRate() int { return m.Audio.Rate() }
