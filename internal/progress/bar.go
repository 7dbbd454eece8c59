package progress

import (
	"fmt"
	"math"
)

const (
	barFill   = "="
	barEmpty  = "-"
	barMarker = ">"

	// suffixSpace is reserved for the "current/total (pp%)" text after
	// the track.
	suffixSpace = 25

	// minTrack is the floor on the track width at narrow terminals.
	minTrack = 10
)

// DrawBar renders a "[====>----] current/total (pp%)" line for the
// given display width. Pure formatting: no coupling to any display
// surface. A zero total reports 0% rather than dividing by zero; the
// result is truncated to width, never padded beyond it.
func DrawBar(current, total, width int) string {
	var percentage float64
	if total != 0 {
		percentage = float64(current) / float64(total) * 100
	}

	track := width - suffixSpace
	if track < minTrack {
		track = minTrack
	}

	filled := int(math.Floor(float64(track) * percentage / 100))
	if filled > track {
		filled = track
	}

	bar := ""
	for i := 0; i < filled; i++ {
		bar += barFill
	}
	// A single transition marker sits right after the filled segment
	// unless the bar is full.
	if filled < track {
		bar += barMarker
	}
	for len(bar) < track {
		bar += barEmpty
	}

	out := fmt.Sprintf("[%s] %d/%d (%.0f%%)", bar, current, total, percentage)
	if len(out) > width {
		out = out[:width]
	}
	return out
}
