package vga

import (
	"fmt"
)

// Mode is one of the supported 256-color video modes.
type Mode uint8

const (
	Mode320x200 Mode = iota // Mode 13h
	Mode320x240             // Mode X
	Mode640x480             // extended Mode X
)

var modeDims = [...][2]int{
	Mode320x200: {320, 200},
	Mode320x240: {320, 240},
	Mode640x480: {640, 480},
}

// Modes lists all supported modes.
func Modes() []Mode {
	return []Mode{Mode320x200, Mode320x240, Mode640x480}
}

// Dimensions returns the width and height in pixels.
func (m Mode) Dimensions() (w, h int) {
	if int(m) >= len(modeDims) {
		panic(fmt.Sprintf("invalid video mode %d", m))
	}
	return modeDims[m][0], modeDims[m][1]
}

func (m Mode) String() string {
	if int(m) >= len(modeDims) {
		return fmt.Sprintf("Mode(%d)", m)
	}
	return fmt.Sprintf("%dx%d", modeDims[m][0], modeDims[m][1])
}

func (m Mode) MarshalText() ([]byte, error) {
	if int(m) >= len(modeDims) {
		return nil, fmt.Errorf("invalid video mode %d", m)
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	for _, mode := range Modes() {
		if mode.String() == string(text) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unsupported video mode %q (want one of 320x200, 320x240, 640x480)", text)
}
