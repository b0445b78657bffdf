package vga

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlipParity(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	front0 := &fb.Front()[0]

	for n := 1; n <= 9; n++ {
		fb.Flip()
		same := &fb.Front()[0] == front0
		if even := n%2 == 0; same != even {
			t.Fatalf("after %d flips, front is original = %t, want %t", n, same, even)
		}
	}
}

func TestFlipDoesNotCopy(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	fb.Clear(7)
	fb.Flip()

	if got := fb.Back(); !bytes.Equal(got, make([]byte, 16)) {
		t.Errorf("back after flip = %v, want untouched zeroes", got)
	}
	fb.Clear(3)
	fb.Flip()

	// Undrawn content from two frames ago is still there.
	for i, c := range fb.Back() {
		if c != 7 {
			t.Fatalf("back[%d] = %d, want 7", i, c)
		}
	}
}

func TestEndToEnd4x4(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	fb.Clear(0)
	fb.PutPixel(1, 1, 5)
	fb.Flip()

	want := make([]byte, 16)
	want[1*4+1] = 5
	if diff := cmp.Diff(want, fb.Front()); diff != "" {
		t.Errorf("front mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(make([]byte, 16), fb.Back()); diff != "" {
		t.Errorf("back mismatch (-want +got):\n%s", diff)
	}
}

func TestClipping(t *testing.T) {
	tests := []struct {
		name string
		draw func(fb *FrameBuffer)
		want []string
	}{
		{
			name: "hline clipped both sides",
			draw: func(fb *FrameBuffer) { fb.HLine(-2, 1, 10, 1) },
			want: []string{
				"....",
				"1111",
				"....",
				"....",
			},
		},
		{
			name: "hline outside",
			draw: func(fb *FrameBuffer) { fb.HLine(0, 4, 4, 1); fb.HLine(4, 0, 2, 1); fb.HLine(0, -1, 4, 1) },
			want: []string{
				"....",
				"....",
				"....",
				"....",
			},
		},
		{
			name: "vline clipped",
			draw: func(fb *FrameBuffer) { fb.VLine(2, -1, 3, 2) },
			want: []string{
				"..2.",
				"..2.",
				"....",
				"....",
			},
		},
		{
			name: "fillrect over corner",
			draw: func(fb *FrameBuffer) { fb.FillRect(2, 2, 5, 5, 3) },
			want: []string{
				"....",
				"....",
				"..33",
				"..33",
			},
		},
		{
			name: "fillrect huge height",
			draw: func(fb *FrameBuffer) { fb.FillRect(1, -3, 2, math.MaxInt, 4) },
			want: []string{
				".44.",
				".44.",
				".44.",
				".44.",
			},
		},
		{
			name: "fillrect far outside",
			draw: func(fb *FrameBuffer) { fb.FillRect(0, math.MinInt, 4, 5, 4); fb.FillRect(0, math.MaxInt, 4, 5, 4) },
			want: []string{
				"....",
				"....",
				"....",
				"....",
			},
		},
		{
			name: "blit clipped",
			draw: func(fb *FrameBuffer) {
				fb.Blit([]byte{
					1, 2, 3,
					4, 5, 6,
					7, 8, 9,
				}, -1, 2, 3)
			},
			want: []string{
				"....",
				"....",
				"23..",
				"56..",
			},
		},
		{
			name: "blit partial row ignored",
			draw: func(fb *FrameBuffer) { fb.Blit([]byte{1, 2, 3, 4, 5}, 1, 0, 2) },
			want: []string{
				".12.",
				".34.",
				"....",
				"....",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFrameBuffer(4, 4)
			tt.draw(fb)
			if diff := cmp.Diff(tt.want, dump(fb)); diff != "" {
				t.Errorf("back buffer mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// dump renders the back buffer, one string per row, '.' for index 0.
func dump(fb *FrameBuffer) []string {
	var rows []string
	for y := range fb.Height() {
		row := make([]byte, fb.Width())
		for x := range row {
			c := fb.Pixel(x, y)
			if c == 0 {
				row[x] = '.'
			} else {
				row[x] = '0' + c
			}
		}
		rows = append(rows, string(row))
	}
	return rows
}
