// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"github.com/mattn/go-runewidth"
)

// TruncateRunes truncates s to at most maxLen runes, appending an ellipsis
// when content was cut. Rune-based so multibyte text is never split.
func TruncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return string(runes[:1])
	}
	return string(runes[:maxLen-1]) + "…"
}

// PadRight pads s with spaces to the given display width, accounting for
// wide characters. Strings already at or past the width are returned as-is.
func PadRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	for w < width {
		s += " "
		w++
	}
	return s
}

// TruncateWidth truncates s to the given display width, appending an
// ellipsis when content was cut.
func TruncateWidth(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
