package audio

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"golang.org/x/sync/errgroup"

	"modex/emu/log"
)

const recorderBlocks = 8

// Recorder is a Producer that captures everything its source produces into a
// 16-bit mono WAV file. Encoding and file I/O run on a separate goroutine:
// FillAudio only copies samples into a preallocated block, and drops them if
// the writer is lagging behind, unless the recorder is lossless.
type Recorder struct {
	src Producer
	out io.WriteSeeker
	enc *wav.Encoder

	free, full chan *recBlock
	cur        *recBlock // being filled, audio goroutine only
	closed     atomic.Bool
	lossless   bool

	written atomic.Int64 // samples
	dropped atomic.Int64 // samples

	g errgroup.Group
}

type recBlock struct {
	samples []int16
	n       int
}

// NewRecorder starts recording the samples produced by src, at the given
// sample rate, into w.
func NewRecorder(w io.WriteSeeker, src Producer, rate, blockSize int) *Recorder {
	r := &Recorder{
		src:  src,
		out:  w,
		enc:  wav.NewEncoder(w, rate, 16, 1, 1),
		free: make(chan *recBlock, recorderBlocks),
		full: make(chan *recBlock, recorderBlocks),
	}
	for range recorderBlocks {
		r.free <- &recBlock{samples: make([]int16, blockSize)}
	}

	ibuf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           make([]int, blockSize),
		SourceBitDepth: 16,
	}
	r.g.Go(func() error {
		return r.write(ibuf)
	})
	return r
}

// CreateRecorder creates (or truncates) the WAV file at path.
func CreateRecorder(path string, src Producer, rate, blockSize int) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create wav file: %w", err)
	}
	log.ModAudio.InfoZ("recording audio").String("path", path).Int("rate", rate).End()
	return NewRecorder(f, src, rate, blockSize), nil
}

func (r *Recorder) write(ibuf *goaudio.IntBuffer) error {
	var failed error
	for blk := range r.full {
		if failed == nil {
			data := ibuf.Data[:blk.n]
			for i, s := range blk.samples[:blk.n] {
				data[i] = int(s)
			}
			ibuf.Data = data
			if err := r.enc.Write(ibuf); err != nil {
				failed = fmt.Errorf("failed to write wav samples: %w", err)
			} else {
				r.written.Add(int64(blk.n))
			}
			ibuf.Data = ibuf.Data[:cap(ibuf.Data)]
		}
		r.free <- blk
	}
	return failed
}

// FillAudio implements Producer.
func (r *Recorder) FillAudio(buf []int16) error {
	if err := r.src.FillAudio(buf); err != nil {
		return err
	}
	if r.closed.Load() {
		return nil
	}

	for len(buf) > 0 {
		if r.cur == nil {
			if r.lossless {
				r.cur = <-r.free
			} else {
				select {
				case r.cur = <-r.free:
				default:
					r.dropped.Add(int64(len(buf)))
					return nil
				}
			}
			r.cur.n = 0
		}
		n := copy(r.cur.samples[r.cur.n:], buf)
		r.cur.n += n
		buf = buf[n:]
		if r.cur.n == len(r.cur.samples) {
			r.full <- r.cur // never blocks, there are as many slots as blocks
			r.cur = nil
		}
	}
	return nil
}

// SetLossless makes FillAudio wait for the writer rather than dropping
// samples. It must be called before the first FillAudio.
func (r *Recorder) SetLossless(lossless bool) { r.lossless = lossless }

// Written returns the number of samples written to the file so far.
func (r *Recorder) Written() int64 { return r.written.Load() }

// Dropped returns the number of samples that could not be recorded.
func (r *Recorder) Dropped() int64 { return r.dropped.Load() }

// Close flushes pending samples and finalizes the WAV header. It must be
// called once the audio device has stopped calling FillAudio.
func (r *Recorder) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	if r.cur != nil && r.cur.n > 0 {
		r.full <- r.cur
		r.cur = nil
	}
	close(r.full)

	err := r.g.Wait()
	if cerr := r.enc.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to finalize wav file: %w", cerr)
	}
	if c, ok := r.out.(io.Closer); ok {
		if cerr := c.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}

	log.ModAudio.InfoZ("audio recording closed").
		Int64("samples", r.Written()).
		Int64("dropped", r.Dropped()).
		End()
	return err
}
