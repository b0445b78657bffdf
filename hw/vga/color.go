package vga

import (
	"fmt"
	"math"
)

// RGB is a palette DAC entry, 8 bits per channel.
type RGB struct {
	R, G, B uint8
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
	Red   = RGB{255, 0, 0}
	Green = RGB{0, 255, 0}
	Blue  = RGB{0, 0, 255}
)

// FromVGA6 builds a color from 6-bit DAC register values (0-63), as written
// to port 3C9h. Values above 63 are masked.
func FromVGA6(r, g, b uint8) RGB {
	return RGB{
		R: uint8(uint(r&0x3f) * 255 / 63),
		G: uint8(uint(g&0x3f) * 255 / 63),
		B: uint8(uint(b&0x3f) * 255 / 63),
	}
}

// FromHSV converts hue (degrees), saturation and value (0-1) to RGB.
func FromHSV(h, s, v float64) RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return RGB{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
	}
}

// Lerp interpolates each channel from c to to, t in [0,1]. Results are
// truncated toward zero.
func (c RGB) Lerp(to RGB, t float64) RGB {
	return RGB{
		R: lerp8(c.R, to.R, t),
		G: lerp8(c.G, to.G, t),
		B: lerp8(c.B, to.B, t),
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
