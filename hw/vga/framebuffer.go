package vga

// FrameBuffer is a double-buffered 8-bit indexed framebuffer. All drawing
// primitives target the back buffer; Flip exchanges the roles of the two
// buffers without copying.
//
// After a Flip the new back buffer holds whatever was drawn two frames ago:
// callers that need deterministic content must clear or repaint it.
type FrameBuffer struct {
	width, height int

	bufs [2][]byte
	back uint8 // slot index of the back buffer
}

func NewFrameBuffer(width, height int) *FrameBuffer {
	size := width * height
	return &FrameBuffer{
		width:  width,
		height: height,
		bufs:   [2][]byte{make([]byte, size), make([]byte, size)},
	}
}

func (fb *FrameBuffer) Width() int  { return fb.width }
func (fb *FrameBuffer) Height() int { return fb.height }
func (fb *FrameBuffer) Size() int   { return fb.width * fb.height }

// Back returns the writable buffer.
func (fb *FrameBuffer) Back() []byte { return fb.bufs[fb.back] }

// Front returns the displayed buffer, read-only by convention.
func (fb *FrameBuffer) Front() []byte { return fb.bufs[fb.back^1] }

// Flip swaps front and back buffers.
func (fb *FrameBuffer) Flip() { fb.back ^= 1 }

// PutPixel writes a single pixel. There's no bounds checking, the caller
// must guarantee (x, y) lies within the buffer.
func (fb *FrameBuffer) PutPixel(x, y int, c uint8) {
	fb.bufs[fb.back][y*fb.width+x] = c
}

// Pixel reads a pixel from the back buffer, no bounds checking.
func (fb *FrameBuffer) Pixel(x, y int) uint8 {
	return fb.bufs[fb.back][y*fb.width+x]
}

// Clear fills the whole back buffer with color index c.
func (fb *FrameBuffer) Clear(c uint8) {
	fill(fb.bufs[fb.back], c)
}

// HLine draws a horizontal span, clipped to the buffer.
func (fb *FrameBuffer) HLine(x, y, length int, c uint8) {
	if y < 0 || y >= fb.height {
		return
	}
	x0 := max(x, 0)
	x1 := min(x+length, fb.width)
	if x1 <= x0 {
		return
	}
	row := y * fb.width
	fill(fb.bufs[fb.back][row+x0:row+x1], c)
}

// VLine draws a vertical span, clipped to the buffer.
func (fb *FrameBuffer) VLine(x, y, length int, c uint8) {
	if x < 0 || x >= fb.width {
		return
	}
	y0 := max(y, 0)
	y1 := min(y+length, fb.height)
	buf := fb.bufs[fb.back]
	for row := y0; row < y1; row++ {
		buf[row*fb.width+x] = c
	}
}

// FillRect draws a solid rectangle, clipped to the buffer.
func (fb *FrameBuffer) FillRect(x, y, w, h int, c uint8) {
	if y >= fb.height {
		return
	}
	// Clip the top first, so that y+h can't overflow.
	if y < 0 {
		h += y
		y = 0
	}
	h = min(h, fb.height-y)
	for row := y; row < y+h; row++ {
		fb.HLine(x, row, w, c)
	}
}

// Blit copies raw color indices from src, laid out in rows of srcWidth bytes,
// to (dx, dy). Rows and columns falling outside the buffer are clipped.
// Trailing bytes of an incomplete last row are ignored.
func (fb *FrameBuffer) Blit(src []byte, dx, dy, srcWidth int) {
	if srcWidth <= 0 {
		return
	}
	x0 := max(dx, 0)
	x1 := min(dx+srcWidth, fb.width)
	if x1 <= x0 {
		return
	}

	buf := fb.bufs[fb.back]
	rows := len(src) / srcWidth
	for row := range rows {
		y := dy + row
		if y < 0 || y >= fb.height {
			continue
		}
		s := row*srcWidth + (x0 - dx)
		copy(buf[y*fb.width+x0:y*fb.width+x1], src[s:s+(x1-x0)])
	}
}

func fill(buf []byte, c uint8) {
	if len(buf) == 0 {
		return
	}
	buf[0] = c
	for i := 1; i < len(buf); i *= 2 {
		copy(buf[i:], buf[:i])
	}
}
