package emu

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"modex/emu/log"
	"modex/hw/audio"
	"modex/hw/vga"
)

type Config struct {
	Video VideoConfig `toml:"video"`
	Audio AudioConfig `toml:"audio"`
}

type VideoConfig struct {
	Mode         vga.Mode  `toml:"mode"`
	FPS          int       `toml:"fps"`
	Scale        int       `toml:"scale"`
	Title        string    `toml:"title"`
	DisableVSync bool      `toml:"disable_vsync"`
	Shader       string    `toml:"shader"`
	Latch        LatchMode `toml:"latch"`

	// Unthrottled disables frame pacing.
	Unthrottled bool `toml:"-"`
}

type AudioConfig struct {
	SampleRate int          `toml:"sample_rate"` // 0 disables audio
	BufferSize int          `toml:"buffer_size"`
	Format     audio.Format `toml:"format"`
	Channels   int          `toml:"channels"`
	SourceRate int          `toml:"source_rate"` // DAC rate, 0 for sample_rate
	Backend    string       `toml:"backend"`     // sdl or oto
	Prefetch   bool         `toml:"prefetch"`

	// WavPath, if set, is where to record the audio output.
	WavPath string `toml:"-"`
}

// Device returns the audio device configuration.
func (c AudioConfig) Device() audio.Config {
	return audio.Config{
		SampleRate: c.SampleRate,
		Format:     c.Format,
		Channels:   c.Channels,
		BufferSize: c.BufferSize,
		SourceRate: c.SourceRate,
	}
}

var AudioBackends = []string{"sdl", "oto"}

// DefaultConfig is a 320x200 VGA at 70Hz with a SoundBlaster.
func DefaultConfig() Config {
	return Config{
		Video: VideoConfig{
			Mode:  vga.Mode320x200,
			FPS:   70,
			Scale: 3,
			Title: "modex",
			Latch: LatchScanline,
		},
		Audio: AudioConfig{
			SampleRate: audio.SoundBlaster.SampleRate,
			BufferSize: audio.SoundBlaster.BufferSize,
			Format:     audio.SoundBlaster.Format,
			Channels:   audio.SoundBlaster.Channels,
			Backend:    "sdl",
		},
	}
}

func (cfg *Config) Validate() error {
	var errs []error
	if cfg.Video.FPS <= 0 || cfg.Video.FPS > 1000 {
		errs = append(errs, fmt.Errorf("fps %d out of range [1, 1000]", cfg.Video.FPS))
	}
	if cfg.Video.Scale < 1 || cfg.Video.Scale > 8 {
		errs = append(errs, fmt.Errorf("scale %d out of range [1, 8]", cfg.Video.Scale))
	}
	if cfg.Audio.SampleRate != 0 {
		if err := cfg.Audio.Device().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("audio: %w", err))
		}
		if !validBackend(cfg.Audio.Backend) {
			errs = append(errs, fmt.Errorf("unknown audio backend %q", cfg.Audio.Backend))
		}
	}
	return errors.Join(errs...)
}

func validBackend(name string) bool {
	for _, b := range AudioBackends {
		if b == name {
			return true
		}
	}
	return false
}

// ConfigDir returns the modex configuration directory, creating it if needed.
var ConfigDir = sync.OnceValue(func() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		log.ModEmu.Warnf("no user config directory, using the current directory: %v", err)
		return "."
	}
	dir = filepath.Join(dir, "modex")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.ModEmu.Warnf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

// DefaultConfigPath returns the path of the config file in ConfigDir.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), cfgFilename)
}

// LoadConfig loads the configuration at path over the default one. Settings
// missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return DefaultConfig(), err
	}
	for _, key := range md.Undecoded() {
		log.ModEmu.Warnf("%s: unknown setting %q", path, key.String())
	}
	return cfg, nil
}

// SaveConfig writes cfg to path.
func SaveConfig(cfg Config, path string) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}
