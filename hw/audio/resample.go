package audio

import (
	"github.com/arl/blip"
)

// Resampler converts samples generated at the source rate (the rate a
// SoundBlaster DAC would play them at) to the device rate, with band-limited
// synthesis. Each source sample is treated as a step of the DAC output.
type Resampler struct {
	src   Producer
	buf   *blip.Buffer
	in    []int16 // source samples for one chunk
	prev  int16
	chunk int // max device samples per frame
}

// NewResampler returns a resampler pulling from src at srcRate, and producing
// up to chunk samples at a time at dstRate.
func NewResampler(src Producer, srcRate, dstRate, chunk int) *Resampler {
	chunk = min(chunk, blip.MaxFrame)
	r := &Resampler{
		src:   src,
		buf:   blip.NewBuffer(chunk),
		chunk: chunk,
	}
	r.buf.SetRates(float64(srcRate), float64(dstRate))
	r.in = make([]int16, chunk*srcRate/dstRate+4)
	return r
}

// FillAudio implements Producer, at the device rate.
func (r *Resampler) FillAudio(out []int16) error {
	for len(out) > 0 {
		want := min(len(out), r.chunk)
		if need := want - r.buf.SamplesAvailable(); need > 0 {
			clocks := r.buf.ClocksNeeded(need)
			in := r.in[:clocks]
			if err := r.src.FillAudio(in); err != nil {
				return err
			}
			for i, s := range in {
				if d := int32(s) - int32(r.prev); d != 0 {
					r.buf.AddDelta(uint64(i), d)
					r.prev = s
				}
			}
			r.buf.EndFrame(clocks)
		}
		n := r.buf.ReadSamples(out, want, blip.Mono)
		out = out[n:]
	}
	return nil
}

// Reset drops buffered samples.
func (r *Resampler) Reset() {
	r.buf.Clear()
	r.prev = 0
}
