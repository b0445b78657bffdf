package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/google/go-cmp/cmp"
)

func TestRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	src := &counter{}
	rec, err := CreateRecorder(path, src, 22050, 64)
	if err != nil {
		t.Fatal(err)
	}

	// Odd sized reads, the last block is incomplete.
	buf := make([]int16, 50)
	for range 5 {
		if err := rec.FillAudio(buf); err != nil {
			t.Fatal(err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	if rec.Dropped() != 0 {
		t.Fatalf("Dropped() = %d, want 0", rec.Dropped())
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatalf("%s is not a valid wav file", path)
	}
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if dec.SampleRate != 22050 || dec.NumChans != 1 || dec.BitDepth != 16 {
		t.Errorf("wav header: rate=%d chans=%d depth=%d", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}

	want := make([]int, 250)
	for i := range want {
		want[i] = i
	}
	if diff := cmp.Diff(want, pcm.Data); diff != "" {
		t.Errorf("recorded samples mismatch (-want +got):\n%s", diff)
	}
}

func TestRecorderPassesErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "err.wav")
	rec, err := CreateRecorder(path, ProducerFunc(func([]int16) error { return errBroken }), 8000, 16)
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.FillAudio(make([]int16, 16)); err != errBroken {
		t.Errorf("FillAudio() = %v, want %v", err, errBroken)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	if rec.Written() != 0 {
		t.Errorf("Written() = %d, want 0", rec.Written())
	}
}

func TestRecorderLossless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lossless.wav")
	rec, err := CreateRecorder(path, &counter{}, 8000, 4)
	if err != nil {
		t.Fatal(err)
	}
	rec.SetLossless(true)

	// Many more blocks than the recorder holds: FillAudio has to wait for
	// the writer.
	buf := make([]int16, 16)
	for range 100 {
		if err := rec.FillAudio(buf); err != nil {
			t.Fatal(err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	if rec.Written() != 1600 || rec.Dropped() != 0 {
		t.Errorf("Written()=%d Dropped()=%d, want 1600 and 0", rec.Written(), rec.Dropped())
	}
}
