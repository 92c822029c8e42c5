// Package utils provides shared utility functions for the TUI.
package utils

import "github.com/mattn/go-runewidth"

// TruncateString truncates a string to the given width, appending "…" if truncated.
// It measures cells with runewidth so Cyrillic and wide characters cut cleanly.
func TruncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}

	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > width-1 { // -1 for ellipsis
			return s[:i] + "…"
		}
		w += rw
	}
	return s
}

// Clamp bounds v to [lo, hi]. When hi < lo it returns lo.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
