package audio

import "encoding/binary"

// Encoder converts mono 16-bit samples to the byte layout of a device.
type Encoder struct {
	Format   Format
	Channels int
}

func NewEncoder(cfg Config) Encoder {
	return Encoder{Format: cfg.Format, Channels: cfg.Channels}
}

// FrameSize returns the number of bytes one mono sample expands to.
func (e Encoder) FrameSize() int { return e.Format.BytesPerSample() * e.Channels }

// Encode writes src into dst, which must hold len(src)*FrameSize() bytes,
// and returns the number of bytes written. Stereo output duplicates each
// sample on both channels.
func (e Encoder) Encode(dst []byte, src []int16) int {
	n := 0
	switch e.Format {
	case U8:
		for _, s := range src {
			b := uint8(s>>8) + 128
			for range e.Channels {
				dst[n] = b
				n++
			}
		}
	case S16:
		for _, s := range src {
			for range e.Channels {
				binary.LittleEndian.PutUint16(dst[n:], uint16(s))
				n += 2
			}
		}
	}
	return n
}

// Silence returns the byte value of a silent sample.
func (e Encoder) Silence() byte {
	if e.Format == U8 {
		return 128
	}
	return 0
}
