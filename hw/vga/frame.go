package vga

import (
	"image"
	"image/color"
)

// Frame is what the raster hands to the presentation backend once per video
// frame. All slices are borrowed: they are only valid until the next frame.
type Frame struct {
	Width, Height int

	// Pixels is the front framebuffer.
	Pixels []byte

	// Palette is the front palette.
	Palette *[NumColors]RGB

	// Lines optionally holds one palette per scanline, latched as the beam
	// reached it. When nil, Palette is used for every line.
	Lines [][NumColors]RGB

	// CRTC holds the registers latched at the start of the frame.
	CRTC CRTCState
}

// LinePalette returns the palette to use for scanline y.
func (f *Frame) LinePalette(y int) *[NumColors]RGB {
	if y < len(f.Lines) {
		return &f.Lines[y]
	}
	return f.Palette
}

// rowOffset returns the framebuffer offset of the first pixel shown on
// scanline y, applying the display start address and the split screen.
func (f *Frame) rowOffset(y int) int {
	// A negative split line behaves like a split at line 0.
	if split := max(f.CRTC.SplitScreen, 0); y >= split {
		return (y - split) * f.Width
	}
	size := f.Width * f.Height
	off := (f.CRTC.DisplayStart + y*f.Width) % size
	if off < 0 {
		off += size
	}
	return off
}

// ToRGBA converts indexed pixels into dst, 4 bytes per pixel (R, G, B, A),
// with display = palette[pixel]. dst must hold at least Width*Height*4 bytes.
func (f *Frame) ToRGBA(dst []byte) {
	size := f.Width * f.Height
	di := 0
	for y := range f.Height {
		pal := f.LinePalette(y)
		off := f.rowOffset(y)
		for x := 0; x < f.Width; x++ {
			c := pal[f.Pixels[off]]
			dst[di+0] = c.R
			dst[di+1] = c.G
			dst[di+2] = c.B
			dst[di+3] = 0xff
			di += 4
			if off++; off == size {
				off = 0
			}
		}
	}
}

// OverscanColor returns the border color, from the palette of the last line.
func (f *Frame) OverscanColor() RGB {
	return f.LinePalette(f.Height - 1)[f.CRTC.Overscan]
}

// Image returns a copy of the frame as an RGBA image.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	f.ToRGBA(img.Pix)
	return img
}

// At returns the color displayed at (x, y).
func (f *Frame) At(x, y int) color.RGBA {
	off := f.rowOffset(y) + x
	if size := f.Width * f.Height; off >= size {
		off -= size
	}
	c := f.LinePalette(y)[f.Pixels[off]]
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
