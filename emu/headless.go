package emu

import (
	"image"
	"math"

	"modex/emu/log"
	"modex/hw/vga"
)

type HeadlessConfig struct {
	// MaxFrames is the number of frames after which Poll reports a quit
	// request. 0 runs forever.
	MaxFrames int64

	// ScreenshotPath, if set, is where the last presented frame is saved as
	// PNG on Close.
	ScreenshotPath string

	// Keys are fed to the input handler by Poll, indexed by frame number.
	Keys map[int64][]string
}

// HeadlessOutput is an output without a window. It converts frames to RGBA
// like a real backend would, but displays nothing.
type HeadlessOutput struct {
	cfg    HeadlessConfig
	img    *image.RGBA
	frames int64
}

func NewHeadlessOutput(cfg HeadlessConfig) *HeadlessOutput {
	if cfg.MaxFrames == 0 {
		cfg.MaxFrames = math.MaxInt64
	}
	return &HeadlessOutput{cfg: cfg}
}

func (ho *HeadlessOutput) Present(frame *vga.Frame) error {
	if ho.img == nil || ho.img.Rect.Dx() != frame.Width || ho.img.Rect.Dy() != frame.Height {
		ho.img = image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	}
	frame.ToRGBA(ho.img.Pix)
	ho.frames++
	return nil
}

func (ho *HeadlessOutput) Poll(input InputHandler) bool {
	if input != nil {
		for _, key := range ho.cfg.Keys[ho.frames] {
			input.KeyDown(key)
		}
	}
	return ho.frames < ho.cfg.MaxFrames
}

// Frames returns the number of presented frames.
func (ho *HeadlessOutput) Frames() int64 { return ho.frames }

// Screenshot returns the last presented frame, or nil.
func (ho *HeadlessOutput) Screenshot() *image.RGBA { return ho.img }

func (ho *HeadlessOutput) Close() error {
	if ho.cfg.ScreenshotPath == "" || ho.img == nil {
		return nil
	}
	if err := SavePNG(ho.img, ho.cfg.ScreenshotPath); err != nil {
		return err
	}
	log.ModVideo.InfoZ("screenshot saved").String("path", ho.cfg.ScreenshotPath).Int64("frame", ho.frames).End()
	return nil
}
