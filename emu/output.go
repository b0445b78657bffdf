package emu

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"modex/hw/vga"
)

// Output is a presentation backend.
type Output interface {
	// Present displays a frame. The frame is only valid during the call.
	Present(frame *vga.Frame) error

	// Poll processes pending events, forwarding key presses to input (which
	// may be nil). It returns false once the user asked to quit.
	Poll(input InputHandler) bool

	Close() error
}

// SavePNG saves img as a PNG file.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create png file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}
