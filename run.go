package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/veandco/go-sdl2/sdl"

	"modex/demos"
	"modex/emu"
	"modex/hw"
	"modex/hw/audio"
	"modex/hw/vga"
)

// loadConfig returns the configuration file overridden by the command line.
// A missing file is only an error if it was explicitly given.
func loadConfig(args Run) (emu.Config, error) {
	path := args.configPath()
	cfg, err := emu.LoadConfig(path)
	if err != nil {
		if args.Config != "" || !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = emu.DefaultConfig()
	}
	if err := args.apply(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// runMain runs a scene and returns the process exit code.
func runMain(args Run) int {
	cfg, err := loadConfig(args)
	check(err)

	if args.SaveConfig {
		path := args.configPath()
		checkf(emu.SaveConfig(cfg, path), "failed to save config")
		fmt.Println("configuration written to", path)
		return 0
	}

	scene, err := demos.ByName(args.Scene)
	check(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if args.Headless {
		out := emu.NewHeadlessOutput(emu.HeadlessConfig{
			MaxFrames:      args.Frames,
			ScreenshotPath: args.Screenshot,
		})
		// A headless device pulls buffers at the hardware rate. Unthrottled,
		// it follows the video frames instead, so that recordings keep in
		// step with the picture.
		clock := audio.RealtimeClock
		if cfg.Video.Unthrottled {
			clock = audio.FrameClock
		}
		return session(ctx, args, cfg, scene, out, audio.HeadlessOpener(clock))
	}

	opener, err := hw.AudioOpener(cfg.Audio.Backend)
	check(err)

	var exitcode int
	sdl.Main(func() {
		w, h := cfg.Video.Mode.Dimensions()
		out, err := hw.NewOutput(hw.WindowConfig{
			Title:        cfg.Video.Title,
			Width:        w,
			Height:       h,
			Scale:        cfg.Video.Scale,
			Shader:       cfg.Video.Shader,
			DisableVSync: cfg.Video.DisableVSync,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create output: %v\n", err)
			exitcode = 1
			return
		}
		exitcode = session(ctx, args, cfg, scene, &framedOutput{Output: out, max: args.Frames}, opener)
	})
	return exitcode
}

// session runs a scene on a host until it quits, then reports statistics.
func session(ctx context.Context, args Run, cfg emu.Config, scene emu.Scene, out emu.Output, opener audio.Opener) int {
	host, err := emu.NewHost(cfg, scene, out, opener)
	if err != nil {
		out.Close()
		fmt.Fprintf(os.Stderr, "failed to start scene: %v\n", err)
		return 1
	}

	exitcode := 0
	if err := host.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "scene error: %v\n", err)
		exitcode = 1
	}
	if err := host.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		exitcode = 1
	}

	stats := host.Stats()
	stats.Scene = args.Scene
	if args.Stats != nil {
		if err := stats.WriteJSON(args.Stats); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write stats: %v\n", err)
			exitcode = 1
		}
		args.Stats.Close()
	}
	if args.Stats == nil || args.Stats.name != "stdout" {
		printStats(os.Stdout, stats)
	}
	return exitcode
}

// framedOutput stops a windowed run after a number of frames.
type framedOutput struct {
	emu.Output
	max    int64
	frames int64
}

func (o *framedOutput) Present(frame *vga.Frame) error {
	o.frames++
	return o.Output.Present(frame)
}

func (o *framedOutput) Poll(input emu.InputHandler) bool {
	if o.max > 0 && o.frames >= o.max {
		return false
	}
	return o.Output.Poll(input)
}
