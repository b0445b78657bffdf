package demos

import (
	"math"

	"modex/emu"
	"modex/hw/vga"
)

const (
	statusHeight = 24
	tileSize     = 16

	borderIndex = 255
	statusFirst = 200 // status bar gradient
	tileFirst   = 32  // tile gradient
	tileColors  = 64
)

// Scroller scrolls a tiled picture with the CRTC display start register
// while the bottom of the screen stays still, showing the top of video
// memory after the split screen line. Up and Down change the scrolling
// speed, Space toggles the split screen.
type Scroller struct {
	crtc          *vga.CRTC
	width, height int
	picture       []uint8

	frame int
	y     int
	speed int
	split bool
}

func (s *Scroller) Load(m *emu.Machine) error {
	s.crtc = m.CRTC
	s.width, s.height = m.Width, m.Height
	s.speed = 1
	s.split = true

	s.picture = make([]uint8, m.Width*m.Height)
	for y := range m.Height {
		for x := range m.Width {
			var c uint8
			if y < statusHeight {
				c = statusFirst + uint8(y*32/statusHeight)
			} else {
				tx, ty := x/tileSize, y/tileSize
				c = tileFirst + uint8((tx*7+ty*3+(x+y)%tileSize)%tileColors)
				if (tx+ty)%2 == 0 {
					c = tileFirst + tileColors - 1 - (c - tileFirst)
				}
			}
			s.picture[y*m.Width+x] = c
		}
	}
	return nil
}

func (s *Scroller) VerticalRetrace(fb vga.Canvas, pal vga.PaletteRegs) {
	if s.frame < 2 {
		fb.Blit(s.picture, 0, 0, fb.Width())
	}

	pal.SetGradient(tileFirst, tileColors, vga.FromVGA6(8, 0, 20), vga.FromVGA6(20, 60, 63))
	pal.SetGradient(statusFirst, 32, vga.FromVGA6(40, 0, 0), vga.FromVGA6(63, 63, 20))
	pal.Set(borderIndex, vga.FromHSV(float64(s.frame), 1, 0.6))

	s.y = (s.y + s.speed) % s.height
	if s.y < 0 {
		s.y += s.height
	}
	wobble := int(8 * math.Sin(float64(s.frame)/20))
	s.crtc.SetDisplayStart(s.y*s.width + wobble)

	if s.split {
		s.crtc.SetSplitScreen(s.height - statusHeight)
	} else {
		s.crtc.SetSplitScreen(vga.NoSplit)
	}
	s.crtc.SetOverscan(borderIndex)
	s.frame++
}

func (s *Scroller) KeyDown(key string) {
	switch key {
	case "Up":
		s.speed = min(s.speed+1, 8)
	case "Down":
		s.speed = max(s.speed-1, -8)
	case "Space":
		s.split = !s.split
	}
	modDemo.DebugZ("scroller").Int("speed", s.speed).Bool("split", s.split).End()
}
