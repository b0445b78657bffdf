package audio

import (
	"errors"
	"fmt"
	"time"
)

// Format is the sample format negotiated with the audio device.
type Format uint8

const (
	S16 Format = iota // signed 16-bit little endian
	U8                // unsigned 8-bit
)

func (f Format) String() string {
	switch f {
	case S16:
		return "s16"
	case U8:
		return "u8"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// BytesPerSample returns the size of a single sample for one channel.
func (f Format) BytesPerSample() int {
	if f == U8 {
		return 1
	}
	return 2
}

func (f Format) MarshalText() ([]byte, error) {
	if f > U8 {
		return nil, fmt.Errorf("invalid audio format %d", f)
	}
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	switch string(text) {
	case "s16", "S16":
		*f = S16
	case "u8", "U8":
		*f = U8
	default:
		return fmt.Errorf("unsupported audio format %q (want s16 or u8)", text)
	}
	return nil
}

// Config describes an audio session.
type Config struct {
	SampleRate int    // device rate in Hz, 0 disables audio
	Format     Format // device sample format
	Channels   int    // 1 (mono) or 2 (stereo)
	BufferSize int    // sample frames per hardware buffer

	// SourceRate is the rate at which producers generate samples, like the
	// playback rate programmed into a SoundBlaster DSP. 0 means SampleRate.
	SourceRate int
}

var (
	// SoundBlaster mimics a SoundBlaster Pro/16 streaming mono samples.
	SoundBlaster = Config{SampleRate: 22050, Format: S16, Channels: 1, BufferSize: 512}

	// CDQuality is 44.1kHz stereo.
	CDQuality = Config{SampleRate: 44100, Format: S16, Channels: 2, BufferSize: 1024}
)

const (
	MinSampleRate = 4000
	MaxSampleRate = 96000
	MaxBufferSize = 16384
)

// Enabled reports whether audio is enabled.
func (c Config) Enabled() bool { return c.SampleRate != 0 }

// Rate returns the rate at which producers are called.
func (c Config) Rate() int {
	if c.SourceRate != 0 {
		return c.SourceRate
	}
	return c.SampleRate
}

// FrameSize is the number of bytes of a sample frame (all channels).
func (c Config) FrameSize() int { return c.Format.BytesPerSample() * c.Channels }

// Period returns the duration of one hardware buffer.
func (c Config) Period() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	return time.Duration(c.BufferSize) * time.Second / time.Duration(c.SampleRate)
}

func (c Config) Validate() error {
	if !c.Enabled() {
		return nil
	}
	var errs []error
	if c.SampleRate < MinSampleRate || c.SampleRate > MaxSampleRate {
		errs = append(errs, fmt.Errorf("sample rate %d out of range [%d, %d]", c.SampleRate, MinSampleRate, MaxSampleRate))
	}
	if c.SourceRate != 0 && (c.SourceRate < MinSampleRate || c.SourceRate > MaxSampleRate) {
		errs = append(errs, fmt.Errorf("source rate %d out of range [%d, %d]", c.SourceRate, MinSampleRate, MaxSampleRate))
	}
	if c.Channels != 1 && c.Channels != 2 {
		errs = append(errs, fmt.Errorf("invalid channel count %d", c.Channels))
	}
	if c.Format > U8 {
		errs = append(errs, fmt.Errorf("invalid audio format %d", c.Format))
	}
	if c.BufferSize <= 0 || c.BufferSize > MaxBufferSize || c.BufferSize&(c.BufferSize-1) != 0 {
		errs = append(errs, fmt.Errorf("buffer size %d must be a power of 2 in [1, %d]", c.BufferSize, MaxBufferSize))
	}
	return errors.Join(errs...)
}

// TimeConstantRate returns the playback rate programmed by a SoundBlaster
// DSP time constant (command 40h).
func TimeConstantRate(tc uint8) int {
	return 1_000_000 / (256 - int(tc))
}
