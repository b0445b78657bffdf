package demos

import (
	"math"

	"modex/emu"
	"modex/hw/vga"
)

// Plasma is the sum of a static sine pattern and two moving waves, drawn
// with a palette whose hue slowly rotates.
type Plasma struct {
	width, height int

	base []uint8    // static pattern, one entry per pixel
	wave [256]uint8 // one period of a sine wave
	t    int
}

func (p *Plasma) Load(m *emu.Machine) error {
	p.width, p.height = m.Width, m.Height
	p.base = make([]uint8, m.Width*m.Height)

	for i := range p.wave {
		p.wave[i] = uint8(64 + 63*math.Sin(2*math.Pi*float64(i)/256))
	}

	cx, cy := float64(m.Width)/2, float64(m.Height)/2
	for y := range m.Height {
		for x := range m.Width {
			fx, fy := float64(x), float64(y)
			v := math.Sin(fx/16) +
				math.Sin((fx+fy)/24) +
				math.Sin(math.Hypot(fx-cx, fy-cy)/12)
			p.base[y*m.Width+x] = uint8((v + 3) * 42)
		}
	}
	return nil
}

func (p *Plasma) VerticalRetrace(fb vga.Canvas, pal vga.PaletteRegs) {
	hue := float64(p.t) * 0.5
	for i := range vga.NumColors {
		pal.Set(uint8(i), vga.FromHSV(hue+float64(i)*360/256, 0.8, 0.75+0.25*math.Sin(float64(i)*math.Pi/128)))
	}

	pix := fb.Pixels()
	for y := range p.height {
		wy := p.wave[uint8(y+p.t)]
		row := pix[y*p.width : (y+1)*p.width]
		base := p.base[y*p.width : (y+1)*p.width]
		for x := range row {
			row[x] = base[x] + wy + p.wave[uint8(2*x-3*p.t)]
		}
	}
	p.t++
}
