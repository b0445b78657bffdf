package demos

import (
	"math"

	"modex/emu"
	"modex/hw/vga"
)

const (
	cycleFirst = 16
	cycleCount = 64
)

// Cycling draws a tunnel of concentric rings once, then animates it only by
// rotating palette entries [cycleFirst, cycleFirst+cycleCount).
type Cycling struct {
	picture []uint8
	frame   int
	reverse bool
}

func (c *Cycling) Load(m *emu.Machine) error {
	c.picture = make([]uint8, m.Width*m.Height)
	cx, cy := float64(m.Width)/2, float64(m.Height)/2
	for y := range m.Height {
		for x := range m.Width {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			c.picture[y*m.Width+x] = cycleFirst + uint8(int(d/2)%cycleCount)
		}
	}
	return nil
}

func (c *Cycling) VerticalRetrace(fb vga.Canvas, pal vga.PaletteRegs) {
	// Flipping doesn't copy: both buffers need the picture.
	if c.frame < 2 {
		fb.Blit(c.picture, 0, 0, fb.Width())
	}

	if c.frame == 0 {
		half := cycleCount / 2
		pal.SetGradient(cycleFirst, half, vga.FromVGA6(0, 0, 16), vga.FromVGA6(63, 48, 0))
		pal.SetGradient(cycleFirst+half, half, vga.FromVGA6(63, 48, 0), vga.FromVGA6(0, 0, 16))
	} else {
		pal.PullFrontToBack()
		pal.Rotate(cycleFirst, cycleCount, c.reverse)
	}
	c.frame++
}

// KeyDown reverses the cycling direction on Space.
func (c *Cycling) KeyDown(key string) {
	if key == "Space" {
		c.reverse = !c.reverse
		modDemo.DebugZ("cycling").
			Hex8("first", cycleFirst).
			Int("count", cycleCount).
			Bool("reverse", c.reverse).
			End()
	}
}
