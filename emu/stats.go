package emu

import (
	"io"
	"time"

	"github.com/go-faster/jx"
)

// Stats summarizes a session.
type Stats struct {
	Scene      string
	Mode       string
	Frames     uint64
	LateFrames uint64
	Elapsed    time.Duration

	AudioEnabled    bool
	AudioBuffers    uint64
	AudioFailures   uint64
	AudioUnderruns  uint64
	RecordedSamples int64
	DroppedSamples  int64
}

// FPS returns the average frame rate.
func (s Stats) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

// Encode writes s as a JSON object.
func (s Stats) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("scene")
	e.Str(s.Scene)
	e.FieldStart("mode")
	e.Str(s.Mode)

	e.FieldStart("video")
	e.ObjStart()
	e.FieldStart("frames")
	e.UInt64(s.Frames)
	e.FieldStart("late_frames")
	e.UInt64(s.LateFrames)
	e.FieldStart("elapsed_ms")
	e.Int64(s.Elapsed.Milliseconds())
	e.FieldStart("fps")
	e.Float64(s.FPS())
	e.ObjEnd()

	e.FieldStart("audio")
	if !s.AudioEnabled {
		e.Null()
	} else {
		e.ObjStart()
		e.FieldStart("buffers")
		e.UInt64(s.AudioBuffers)
		e.FieldStart("failures")
		e.UInt64(s.AudioFailures)
		e.FieldStart("underruns")
		e.UInt64(s.AudioUnderruns)
		e.FieldStart("recorded_samples")
		e.Int64(s.RecordedSamples)
		e.FieldStart("dropped_samples")
		e.Int64(s.DroppedSamples)
		e.ObjEnd()
	}
	e.ObjEnd()
}

// WriteJSON writes s as indented JSON.
func (s Stats) WriteJSON(w io.Writer) error {
	var e jx.Encoder
	e.SetIdent(2)
	s.Encode(&e)
	_, err := w.Write(append(e.Bytes(), '\n'))
	return err
}
