package vga

// Canvas is the drawing side of a FrameBuffer, as handed to scenes. It only
// reaches the back buffer: it can neither flip nor read what is displayed.
type Canvas struct {
	fb *FrameBuffer
}

// Canvas returns the drawing view of fb.
func (fb *FrameBuffer) Canvas() Canvas { return Canvas{fb: fb} }

func (c Canvas) Width() int  { return c.fb.width }
func (c Canvas) Height() int { return c.fb.height }
func (c Canvas) Size() int   { return c.fb.Size() }

// Pixels returns the back buffer.
func (c Canvas) Pixels() []byte { return c.fb.Back() }

func (c Canvas) PutPixel(x, y int, col uint8) { c.fb.PutPixel(x, y, col) }
func (c Canvas) Pixel(x, y int) uint8         { return c.fb.Pixel(x, y) }
func (c Canvas) Clear(col uint8)              { c.fb.Clear(col) }

func (c Canvas) HLine(x, y, length int, col uint8) { c.fb.HLine(x, y, length, col) }
func (c Canvas) VLine(x, y, length int, col uint8) { c.fb.VLine(x, y, length, col) }
func (c Canvas) FillRect(x, y, w, h int, col uint8) {
	c.fb.FillRect(x, y, w, h, col)
}

func (c Canvas) Blit(src []byte, dx, dy, srcWidth int) { c.fb.Blit(src, dx, dy, srcWidth) }

// PaletteRegs is the programmable side of a Palette: the back table only.
// Changes show up once the raster commits the palette.
type PaletteRegs struct {
	p *Palette
}

// Regs returns the back table view of p.
func (p *Palette) Regs() PaletteRegs { return PaletteRegs{p: p} }

func (r PaletteRegs) At(i uint8) RGB     { return r.p.At(i) }
func (r PaletteRegs) Set(i uint8, c RGB) { r.p.Set(i, c) }

// Table returns the back table.
func (r PaletteRegs) Table() *[NumColors]RGB { return r.p.Back() }

func (r PaletteRegs) SetGradient(first, count int, from, to RGB) {
	r.p.SetGradient(first, count, from, to)
}

func (r PaletteRegs) Rotate(first, count int, reverse bool) { r.p.Rotate(first, count, reverse) }

// PullFrontToBack restarts the back table from the displayed colors.
func (r PaletteRegs) PullFrontToBack() { r.p.PullFrontToBack() }
