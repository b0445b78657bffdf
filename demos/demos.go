// Package demos holds the demo scenes.
package demos

import (
	"fmt"
	"slices"

	"modex/emu"
	"modex/emu/log"
)

var modDemo = log.NewModule("demo")

type Info struct {
	Name        string
	Description string
	New         func() emu.Scene
}

var registry = []Info{
	{"plasma", "Sine plasma with a rotating palette", func() emu.Scene { return &Plasma{} }},
	{"cycling", "Palette cycling over a static picture", func() emu.Scene { return &Cycling{} }},
	{"copper", "Copper bars: palette changes on every scanline", func() emu.Scene { return &Copper{} }},
	{"scroller", "Hardware scrolling and split screen with the CRTC", func() emu.Scene { return &Scroller{} }},
	{"synth", "Oscilloscope of a sawtooth through an opening lowpass", func() emu.Scene { return &Synth{} }},
}

// All returns all demos, sorted by name.
func All() []Info {
	all := slices.Clone(registry)
	slices.SortFunc(all, func(a, b Info) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return all
}

// Names returns the sorted demo names.
func Names() []string {
	var names []string
	for _, d := range All() {
		names = append(names, d.Name)
	}
	return names
}

// ByName returns a new instance of the named demo.
func ByName(name string) (emu.Scene, error) {
	for _, d := range registry {
		if d.Name == name {
			return d.New(), nil
		}
	}
	return nil, fmt.Errorf("unknown demo %q", name)
}
