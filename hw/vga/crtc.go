package vga

import "math"

// NoSplit disables the split screen.
const NoSplit = math.MaxInt32

// CRTC holds the CRT controller registers used for hardware tricks. Writes
// take effect when the raster latches them, once per frame at the end of the
// vertical retrace.
type CRTC struct {
	state CRTCState
}

// CRTCState is a snapshot of the CRTC registers.
type CRTCState struct {
	// DisplayStart is the framebuffer offset (in pixels) of the first
	// displayed pixel: hardware scrolling.
	DisplayStart int

	// SplitScreen is the scanline at which the display address counter is
	// reset to 0. NoSplit disables it.
	SplitScreen int

	// Overscan is the palette index of the border around the active area.
	Overscan uint8
}

func NewCRTC() *CRTC {
	return &CRTC{state: CRTCState{SplitScreen: NoSplit}}
}

func (c *CRTC) SetDisplayStart(offset int) { c.state.DisplayStart = offset }
func (c *CRTC) SetSplitScreen(line int)    { c.state.SplitScreen = line }
func (c *CRTC) SetOverscan(index uint8)    { c.state.Overscan = index }

func (c *CRTC) DisplayStart() int { return c.state.DisplayStart }
func (c *CRTC) SplitScreen() int  { return c.state.SplitScreen }
func (c *CRTC) Overscan() uint8   { return c.state.Overscan }

// Latch returns the current register values.
func (c *CRTC) Latch() CRTCState { return c.state }
