package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"modex/demos"
	"modex/emu"
)

var styles = struct {
	title lipgloss.Style
	name  lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	warn  lipgloss.Style
}{
	title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)),
	name:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)).Width(10),
	label: lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(4)).Width(18),
	value: lipgloss.NewStyle().Bold(true),
	warn:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(1)),
}

func printDemos(w io.Writer) {
	fmt.Fprintln(w, styles.title.Render("Demo scenes"))
	for _, d := range demos.All() {
		fmt.Fprintln(w, "  "+styles.name.Render(d.Name)+" "+d.Description)
	}
}

func printStats(w io.Writer, s emu.Stats) {
	var sb strings.Builder
	row := func(label, value string, bad bool) {
		st := styles.value
		if bad {
			st = styles.warn
		}
		sb.WriteString("  " + styles.label.Render(label) + st.Render(value) + "\n")
	}

	sb.WriteString(styles.title.Render(fmt.Sprintf("%s (%s)", s.Scene, s.Mode)) + "\n")
	row("frames", fmt.Sprint(s.Frames), false)
	row("late frames", fmt.Sprint(s.LateFrames), s.LateFrames > 0)
	row("elapsed", s.Elapsed.Round(time.Millisecond).String(), false)
	row("average fps", fmt.Sprintf("%.2f", s.FPS()), false)
	if s.AudioEnabled {
		row("audio buffers", fmt.Sprint(s.AudioBuffers), false)
		row("audio failures", fmt.Sprint(s.AudioFailures), s.AudioFailures > 0)
		row("audio underruns", fmt.Sprint(s.AudioUnderruns), s.AudioUnderruns > 0)
		if s.RecordedSamples > 0 || s.DroppedSamples > 0 {
			row("recorded samples", fmt.Sprint(s.RecordedSamples), false)
			row("dropped samples", fmt.Sprint(s.DroppedSamples), s.DroppedSamples > 0)
		}
	} else {
		row("audio", "disabled", false)
	}
	io.WriteString(w, sb.String())
}
