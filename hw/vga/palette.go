package vga

// NumColors is the number of palette (DAC) entries.
const NumColors = 256

// Palette is a double-buffered 256-entry color lookup table. Reads and writes
// go to the back table, Commit makes it the displayed one.
type Palette struct {
	tabs [2][NumColors]RGB
	back uint8
}

func NewPalette() *Palette {
	return &Palette{}
}

// At returns back table entry i.
func (p *Palette) At(i uint8) RGB { return p.tabs[p.back][i] }

// Set writes back table entry i.
func (p *Palette) Set(i uint8, c RGB) { p.tabs[p.back][i] = c }

// Back returns the writable table.
func (p *Palette) Back() *[NumColors]RGB { return &p.tabs[p.back] }

// Front returns the displayed table, read-only by convention.
func (p *Palette) Front() *[NumColors]RGB { return &p.tabs[p.back^1] }

// Commit swaps the front and back tables.
func (p *Palette) Commit() { p.back ^= 1 }

// PullFrontToBack copies the displayed table into the back one, so that edits
// start from what is currently on screen.
func (p *Palette) PullFrontToBack() {
	p.tabs[p.back] = p.tabs[p.back^1]
}

// SetGradient fills count entries starting at first with a linear gradient
// going from 'from' to 'to', both included. The range doesn't wrap around:
// first+count must not exceed 256.
func (p *Palette) SetGradient(first, count int, from, to RGB) {
	tab := &p.tabs[p.back]
	for i := range count {
		t := 0.0
		if count > 1 {
			t = float64(i) / float64(count-1)
		}
		tab[first+i] = from.Lerp(to, t)
	}
}

// Rotate cycles count entries starting at first by one step. Going forward,
// each entry moves to the next higher index and the last one wraps around to
// first. reverse goes the other way.
func (p *Palette) Rotate(first, count int, reverse bool) {
	if count < 2 {
		return
	}
	r := p.tabs[p.back][first : first+count]
	if !reverse {
		last := r[len(r)-1]
		copy(r[1:], r[:len(r)-1])
		r[0] = last
	} else {
		head := r[0]
		copy(r, r[1:])
		r[len(r)-1] = head
	}
}
