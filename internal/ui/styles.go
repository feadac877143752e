package ui

import "fmt"

// ANSI256 color codes.
const (
	colorAccent = 74  // blue, slide positions
	colorEvent  = 114 // green, live events
	colorMuted  = 245 // medium gray, timestamps and metadata
)

var noColor bool

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorAccent, s)
}

// RenderEvent returns s styled as a live event (green).
func RenderEvent(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorEvent, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorMuted, s)
}

// FormatSlide renders a 0-based slide index as the 1-based position a
// presenter talks about, e.g. "3/12".
func FormatSlide(slide, total int) string {
	if total > 0 {
		return fmt.Sprintf("%d/%d", slide+1, total)
	}
	return fmt.Sprintf("%d", slide+1)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
