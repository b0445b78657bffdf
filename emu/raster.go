package emu

import (
	"context"
	"fmt"

	"modex/emu/log"
	"modex/hw/vga"
)

// LatchMode tells when the palette seen by the presentation backend is
// sampled.
type LatchMode uint8

const (
	// LatchScanline samples the back palette after each scanline hook, so
	// that palette changes made from HorizontalRetrace show on the lines
	// that follow (copper bars).
	LatchScanline LatchMode = iota

	// LatchFrame only presents the palette committed at the end of the
	// frame: the last write to an entry wins for the whole frame.
	LatchFrame
)

func (m LatchMode) String() string {
	switch m {
	case LatchScanline:
		return "scanline"
	case LatchFrame:
		return "frame"
	}
	return fmt.Sprintf("LatchMode(%d)", uint8(m))
}

func (m LatchMode) MarshalText() ([]byte, error) {
	if m > LatchFrame {
		return nil, fmt.Errorf("invalid latch mode %d", m)
	}
	return []byte(m.String()), nil
}

func (m *LatchMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "scanline":
		*m = LatchScanline
	case "frame":
		*m = LatchFrame
	default:
		return fmt.Errorf("invalid latch mode %q (want scanline or frame)", text)
	}
	return nil
}

// Raster sequences video frames. It's the only owner of the framebuffer and
// palette roles: nothing else flips or commits them.
//
// Each frame runs, in this order: the scene vertical retrace, the scanline
// hook for lines 0 to H-1, framebuffer flip, palette commit, presentation
// and pacing.
type Raster struct {
	fb    *vga.FrameBuffer
	pal   *vga.Palette
	crtc  *vga.CRTC
	out   Output
	pacer *Pacer
	latch LatchMode

	// Scene side views: drawing and palette programming only.
	canvas vga.Canvas
	regs   vga.PaletteRegs

	lines [][vga.NumColors]vga.RGB
	frame vga.Frame

	frames uint64
	late   uint64
}

func NewRaster(fb *vga.FrameBuffer, pal *vga.Palette, crtc *vga.CRTC, out Output, pacer *Pacer, latch LatchMode) *Raster {
	r := &Raster{
		fb:    fb,
		pal:   pal,
		crtc:  crtc,
		out:   out,
		pacer: pacer,
		latch: latch,

		canvas: fb.Canvas(),
		regs:   pal.Regs(),
	}
	if latch == LatchScanline {
		r.lines = make([][vga.NumColors]vga.RGB, fb.Height())
	}
	return r
}

// RunFrame runs a single frame.
func (r *Raster) RunFrame(scene Scene) error {
	scene.VerticalRetrace(r.canvas, r.regs)

	// End of vertical retrace: the CRTC latches its registers for the
	// whole active display.
	crtc := r.crtc.Latch()

	var lines [][vga.NumColors]vga.RGB
	if hook, ok := scene.(ScanlineHook); ok {
		for line := range r.fb.Height() {
			hook.HorizontalRetrace(line, r.regs)
			if r.lines != nil {
				r.lines[line] = *r.pal.Back()
			}
		}
		lines = r.lines
	}

	r.fb.Flip()
	r.pal.Commit()

	r.frame = vga.Frame{
		Width:   r.fb.Width(),
		Height:  r.fb.Height(),
		Pixels:  r.fb.Front(),
		Palette: r.pal.Front(),
		Lines:   lines,
		CRTC:    crtc,
	}
	if err := r.out.Present(&r.frame); err != nil {
		return fmt.Errorf("failed to present frame %d: %w", r.frames, err)
	}
	r.frames++

	if r.pacer.Wait() {
		r.late++
	}
	return nil
}

// Run runs frames until the output reports a quit request, ctx is done, or
// presentation fails. Key presses are forwarded to input, if not nil.
func (r *Raster) Run(ctx context.Context, scene Scene, input InputHandler) error {
	r.pacer.Reset()

	log.ModRaster.InfoZ("raster started").
		Int("width", r.fb.Width()).
		Int("height", r.fb.Height()).
		Duration("period", r.pacer.Period()).
		Stringer("latch", r.latch).
		End()

	for r.out.Poll(input) {
		if ctx.Err() != nil {
			break
		}
		if err := r.RunFrame(scene); err != nil {
			return err
		}
	}

	log.ModRaster.InfoZ("raster stopped").
		Uint64("frames", r.frames).
		Uint64("late", r.late).
		End()
	return nil
}

// Frames returns the number of frames presented so far.
func (r *Raster) Frames() uint64 { return r.frames }

// LateFrames returns the number of frames that missed their deadline.
func (r *Raster) LateFrames() uint64 { return r.late }
