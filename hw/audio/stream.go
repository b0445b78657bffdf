package audio

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"modex/emu/log"
)

// Streamer pre-computes samples on its own goroutine, one block ahead of the
// audio device. The producer goroutine fills the back half of a SampleBuffer
// and flags it ready; the device side (FillAudio) commits it to the front
// when it has drained the previous block, and wakes the producer up.
type Streamer struct {
	src Producer
	buf *SampleBuffer

	ready atomic.Bool
	wake  chan struct{}
	pos   int // read position in front, device side only

	failures atomic.Uint64

	cancel context.CancelFunc
	g      *errgroup.Group
}

// NewStreamer returns a Streamer producing blocks of blockSize samples.
func NewStreamer(src Producer, blockSize int) *Streamer {
	s := &Streamer{
		src:  src,
		buf:  NewSampleBuffer(blockSize),
		wake: make(chan struct{}, 1),
	}
	s.pos = s.buf.Len()
	s.wake <- struct{}{}
	return s
}

// Start starts the producer goroutine.
func (s *Streamer) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.g, ctx = errgroup.WithContext(ctx)
	s.g.Go(func() error {
		return s.produce(ctx)
	})
}

// Stop stops the producer goroutine and waits for it.
func (s *Streamer) Stop() error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	return s.g.Wait()
}

func (s *Streamer) produce(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.wake:
		}

		back := s.buf.Back()
		if err := s.src.FillAudio(back); err != nil {
			clear(back)
			if s.failures.Add(1) == 1 {
				log.ModAudio.WarnZ("streamed producer failed, playing silence").Error("err", err).End()
			}
		}
		s.ready.Store(true)
	}
}

// FillAudio copies prefetched samples into out, which must not be longer
// than the block size. It returns ErrUnderrun, without consuming anything, if
// the producer goroutine couldn't keep up.
func (s *Streamer) FillAudio(out []int16) error {
	avail := s.buf.Len() - s.pos
	if s.ready.Load() {
		avail += s.buf.Len()
	}
	if avail < len(out) {
		return ErrUnderrun
	}

	for len(out) > 0 {
		if s.pos == s.buf.Len() {
			s.buf.Commit()
			s.pos = 0
			s.ready.Store(false)
			select {
			case s.wake <- struct{}{}:
			default:
			}
		}
		n := copy(out, s.buf.Front()[s.pos:])
		s.pos += n
		out = out[n:]
	}
	return nil
}

// Failures returns the number of blocks the source failed to produce.
func (s *Streamer) Failures() uint64 { return s.failures.Load() }
