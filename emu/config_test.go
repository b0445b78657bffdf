package emu

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"modex/hw/audio"
	"modex/hw/vga"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	want := DefaultConfig()
	want.Video.Mode = vga.Mode640x480
	want.Video.Latch = LatchFrame
	want.Video.Shader = "crt"
	want.Audio = AudioConfig{
		SampleRate: 44100,
		BufferSize: 1024,
		Format:     audio.U8,
		Channels:   2,
		SourceRate: 8000,
		Backend:    "oto",
		Prefetch:   true,
	}

	if err := SaveConfig(want, path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	const content = `
[video]
mode = "320x240"
fps = 60
latch = "frame"

[audio]
sample_rate = 0
unknown = 1
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig()
	want.Video.Mode = vga.Mode320x240
	want.Video.FPS = 60
	want.Video.Latch = LatchFrame
	want.Audio.SampleRate = 0
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadConfig(missing) = %v, want ErrNotExist", err)
	}

	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[video]\nmode = \"1024x768\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err == nil {
		t.Fatalf("invalid mode accepted")
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("LoadConfig should return the default config on error (-want +got):\n%s", diff)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string // substring of the error, "" for a valid config
	}{
		{"default", func(*Config) {}, ""},
		{"no-audio", func(c *Config) { c.Audio.SampleRate = 0; c.Audio.Backend = "" }, ""},
		{"fps", func(c *Config) { c.Video.FPS = 0 }, "fps"},
		{"scale", func(c *Config) { c.Video.Scale = 9 }, "scale"},
		{"backend", func(c *Config) { c.Audio.Backend = "alsa" }, "backend"},
		{"buffer", func(c *Config) { c.Audio.BufferSize = 1000 }, "audio"},
		{"rate", func(c *Config) { c.Audio.SampleRate = 1000 }, "audio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			switch {
			case tt.want == "" && err != nil:
				t.Errorf("Validate() = %v, want nil", err)
			case tt.want != "" && (err == nil || !strings.Contains(err.Error(), tt.want)):
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestAudioConfigDevice(t *testing.T) {
	cfg := DefaultConfig()
	if diff := cmp.Diff(audio.SoundBlaster, cfg.Audio.Device()); diff != "" {
		t.Errorf("default audio config mismatch (-want +got):\n%s", diff)
	}
}
