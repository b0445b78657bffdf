package demos

import (
	"math"

	"modex/emu"
	"modex/hw/vga"
)

const (
	copperIndex = 1 // palette entry rewritten on every scanline
	barHeight   = 16
)

var barColors = []vga.RGB{
	{R: 255, G: 40, B: 40},
	{R: 255, G: 160, B: 0},
	{R: 255, G: 255, B: 60},
	{R: 40, G: 220, B: 80},
	{R: 40, G: 120, B: 255},
}

// Copper draws a screen filled with a single palette index, and changes the
// color of that index from the scanline hook, drawing horizontal bars without
// touching a single pixel.
type Copper struct {
	height  int
	centers []float64
	t       float64
	sky     vga.RGB
}

func (c *Copper) Load(m *emu.Machine) error {
	c.height = m.Height
	c.centers = make([]float64, len(barColors))
	c.sky = vga.FromVGA6(0, 0, 12)
	return nil
}

func (c *Copper) VerticalRetrace(fb vga.Canvas, pal vga.PaletteRegs) {
	fb.Clear(copperIndex)
	pal.Set(0, vga.Black)
	pal.Set(copperIndex, c.sky)

	amp := float64(c.height-barHeight) / 2
	for i := range c.centers {
		c.centers[i] = amp + amp*math.Sin(c.t+float64(i)*0.45)
	}
	c.t += 0.04
}

func (c *Copper) HorizontalRetrace(line int, pal vga.PaletteRegs) {
	color := c.sky
	y := float64(line)
	// Later bars are drawn over earlier ones.
	for i, center := range c.centers {
		d := math.Abs(y - center - barHeight/2)
		if d >= barHeight/2 {
			continue
		}
		color = c.sky.Lerp(barColors[i], 1-d/(barHeight/2))
	}
	pal.Set(copperIndex, color)
}
