package hw

import (
	"github.com/veandco/go-sdl2/sdl"

	"modex/emu"
	"modex/emu/log"
	"modex/hw/vga"
)

// Output presents frames in an OpenGL window. It must be used from within
// sdl.Main.
type Output struct {
	win  *window
	pix  []byte
	keys []string
}

func NewOutput(cfg WindowConfig) (*Output, error) {
	win, err := newWindow(cfg)
	if err != nil {
		return nil, err
	}
	log.ModVideo.InfoZ("window created").
		String("title", cfg.Title).
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Int("scale", cfg.Scale).
		String("shader", cfg.Shader).
		Bool("vsync", !cfg.DisableVSync).
		End()

	return &Output{
		win: win,
		pix: make([]byte, cfg.Width*cfg.Height*4),
	}, nil
}

// Present converts the frame on the caller goroutine, then draws it on the
// main thread.
func (o *Output) Present(frame *vga.Frame) error {
	frame.ToRGBA(o.pix)
	border := frame.OverscanColor()
	sdl.Do(func() {
		o.win.render(o.pix, border)
	})
	return nil
}

// Poll processes window events. Escape and closing the window are quit
// requests, other key presses are reported to input by name ("A", "Space",
// "Left"...).
func (o *Output) Poll(input emu.InputHandler) bool {
	running := true
	o.keys = o.keys[:0]
	sdl.Do(func() {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case sdl.QuitEvent:
				running = false
			case sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
					break
				}
				if e.Keysym.Sym == sdl.K_ESCAPE {
					running = false
					break
				}
				o.keys = append(o.keys, sdl.GetKeyName(e.Keysym.Sym))
			}
		}
	})

	if input != nil {
		for _, key := range o.keys {
			input.KeyDown(key)
		}
	}
	return running
}

func (o *Output) Close() error {
	return o.win.Close()
}
