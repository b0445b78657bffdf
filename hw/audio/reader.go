package audio

// Reader serves the callback output as an encoded byte stream, for pull
// based backends that read arbitrary amounts of bytes. The callback is always
// called with full hardware buffers; bytes left over from a buffer are served
// by the next Read.
type Reader struct {
	cb      *Callback
	enc     Encoder
	samples []int16
	buf     []byte
	pending []byte
}

func NewReader(cfg Config, cb *Callback) *Reader {
	enc := NewEncoder(cfg)
	return &Reader{
		cb:      cb,
		enc:     enc,
		samples: make([]int16, cfg.BufferSize),
		buf:     make([]byte, cfg.BufferSize*enc.FrameSize()),
	}
}

// Read fills p entirely. It never fails: failures of the producers turn
// into silence.
func (r *Reader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(r.pending) == 0 {
			r.cb.Fill(r.samples)
			r.pending = r.buf[:r.enc.Encode(r.buf, r.samples)]
		}
		c := copy(p[n:], r.pending)
		r.pending = r.pending[c:]
		n += c
	}
	return n, nil
}
