package audio

import "sync/atomic"

// SampleBuffer is a pair of equally sized sample arrays. The producer side
// exclusively writes Back, the consumer side exclusively reads Front. Only
// the consumer calls Commit, which exchanges the roles.
type SampleBuffer struct {
	bufs  [2][]int16
	front atomic.Uint32
}

func NewSampleBuffer(n int) *SampleBuffer {
	return &SampleBuffer{
		bufs: [2][]int16{make([]int16, n), make([]int16, n)},
	}
}

func (sb *SampleBuffer) Len() int { return len(sb.bufs[0]) }

func (sb *SampleBuffer) Front() []int16 { return sb.bufs[sb.front.Load()] }
func (sb *SampleBuffer) Back() []int16  { return sb.bufs[sb.front.Load()^1] }

// Commit makes the back buffer the front one.
func (sb *SampleBuffer) Commit() {
	sb.front.Store(sb.front.Load() ^ 1)
}
