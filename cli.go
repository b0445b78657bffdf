package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"modex/demos"
	"modex/emu"
	"modex/emu/log"
	"modex/hw/audio"
	"modex/hw/shaders"
)

type mode byte

const (
	runMode     mode = iota // Run a demo scene
	listMode                // List demo scenes
	versionMode             // Show modex version
)

type (
	CLI struct {
		Run     Run     `cmd:"" help:"Run a demo scene. (default command)" default:"withargs"`
		List    List    `cmd:"" help:"List demo scenes."`
		Version Version `cmd:"" help:"Show modex version."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		Scene string `arg:"" name:"scene" help:"${scene_help}" optional:"" default:"plasma"`

		Config     string `name:"config" help:"${config_help}" type:"path" placeholder:"FILE"`
		SaveConfig bool   `name:"save-config" help:"Write the resulting configuration to the config file and exit."`

		// Video. Zero values keep the configured ones.
		Mode        string `name:"mode" help:"Video mode: 320x200, 320x240 or 640x480." placeholder:"WxH"`
		FPS         int    `name:"fps" help:"Target frame rate."`
		Scale       int    `name:"scale" help:"Window scale factor."`
		Latch       string `name:"latch" help:"${latch_help}" placeholder:"scanline|frame"`
		Shader      string `name:"shader" help:"${shader_help}"`
		NoVSync     bool   `name:"no-vsync" help:"Disable vertical sync."`
		Unthrottled bool   `name:"unthrottled" help:"Disable frame pacing."`

		// Audio. Negative values keep the configured ones.
		Rate         int    `name:"rate" help:"Audio device sample rate, 0 disables audio." default:"-1"`
		Buffer       int    `name:"buffer" help:"Audio buffer size, in samples (power of 2)." default:"-1"`
		Channels     int    `name:"channels" help:"Audio channels (1 or 2)." default:"-1"`
		Format       string `name:"format" help:"Audio sample format: s16 or u8." placeholder:"s16|u8"`
		DACRate      int    `name:"dac-rate" help:"${dacrate_help}" default:"-1"`
		TimeConstant int    `name:"time-constant" help:"Set the DAC rate from a SoundBlaster DSP time constant (0-255)." default:"-1"`
		AudioBackend string `name:"audio-backend" help:"Audio backend: sdl or oto." placeholder:"sdl|oto"`
		Prefetch     bool   `name:"prefetch" help:"Produce audio ahead of the device, on a separate goroutine."`
		Wav          string `name:"wav" help:"Record audio output to a WAV file." type:"path" placeholder:"FILE"`

		// Headless runs.
		Headless   bool     `name:"headless" help:"Run without a window nor an audio device."`
		Frames     int64    `name:"frames" help:"Stop after that many frames (0 runs forever)."`
		Screenshot string   `name:"screenshot" help:"Save the last frame as PNG on exit." type:"path" placeholder:"FILE"`
		Stats      *outfile `name:"stats" help:"Write session statistics as JSON." placeholder:"FILE|stdout|stderr"`
	}

	List    struct{}
	Version struct{}
)

var vars = kong.Vars{
	"scene_help":   "Demo scene to run: " + strings.Join(demos.Names(), ", ") + ".",
	"config_help":  "Configuration file (default: modex/config.toml in the user configuration directory).",
	"latch_help":   "When palette changes are sampled: on every scanline or once per frame.",
	"shader_help":  "Fragment shader: " + strings.Join(shaders.Names(), ", ") + ".",
	"dacrate_help": "Rate at which scenes produce samples, resampled to the device rate. 0 for the device rate.",
	"log_help":     "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("modex"),
		kong.Description("VGA Mode X demo machine: framebuffer, palette, raster timing and a sound card."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch ctx.Command() {
	case "list":
		cfg.mode = listMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

// apply overrides cfg with the flags that have been set.
func (r *Run) apply(cfg *emu.Config) error {
	if r.Mode != "" {
		if err := cfg.Video.Mode.UnmarshalText([]byte(r.Mode)); err != nil {
			return err
		}
	}
	if r.FPS != 0 {
		cfg.Video.FPS = r.FPS
	}
	if r.Scale != 0 {
		cfg.Video.Scale = r.Scale
	}
	if r.Latch != "" {
		if err := cfg.Video.Latch.UnmarshalText([]byte(r.Latch)); err != nil {
			return err
		}
	}
	if r.Shader != "" {
		if !shaders.Exists(r.Shader) {
			return fmt.Errorf("unknown shader %q", r.Shader)
		}
		cfg.Video.Shader = r.Shader
	}
	cfg.Video.DisableVSync = cfg.Video.DisableVSync || r.NoVSync
	cfg.Video.Unthrottled = r.Unthrottled

	if r.Rate >= 0 {
		cfg.Audio.SampleRate = r.Rate
	}
	if r.Buffer >= 0 {
		cfg.Audio.BufferSize = r.Buffer
	}
	if r.Channels >= 0 {
		cfg.Audio.Channels = r.Channels
	}
	if r.Format != "" {
		if err := cfg.Audio.Format.UnmarshalText([]byte(r.Format)); err != nil {
			return err
		}
	}
	if r.DACRate >= 0 {
		cfg.Audio.SourceRate = r.DACRate
	}
	if r.TimeConstant >= 0 {
		if r.TimeConstant > 255 {
			return fmt.Errorf("time constant %d out of range [0, 255]", r.TimeConstant)
		}
		cfg.Audio.SourceRate = audio.TimeConstantRate(uint8(r.TimeConstant))
	}
	if r.AudioBackend != "" {
		cfg.Audio.Backend = r.AudioBackend
	}
	cfg.Audio.Prefetch = cfg.Audio.Prefetch || r.Prefetch
	cfg.Audio.WavPath = r.Wav
	return nil
}

func (r *Run) configPath() string {
	if r.Config != "" {
		return r.Config
	}
	return emu.DefaultConfigPath()
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	mask, nolog, err := parseLogModules(tok.Value.(string))
	if err != nil {
		return err
	}
	if nolog {
		log.Disable()
		return nil
	}
	log.EnableDebugModules(mask)
	return nil
}

// parseLogModules parses a comma-separated list of log modules. nolog is set
// for "no".
func parseLogModules(list string) (mask log.ModuleMask, nolog bool, err error) {
	allLogs := false
	for _, v := range strings.Split(list, ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return 0, false, fmt.Errorf("unknown log module %s", v)
			}
			mask |= mod.Mask()
		}
	}

	if nolog {
		if allLogs {
			return 0, false, fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if mask != 0 {
			return 0, false, fmt.Errorf("cannot combine 'no' with other log modules")
		}
		return 0, true, nil
	}
	if allLogs {
		mask = log.ModuleMaskAll
	}
	return mask, false, nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func check(err error) {
	if err == nil {
		return
	}
	fatalf("%s", err)
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
