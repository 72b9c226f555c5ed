package textutil

import (
	"strings"
	"unicode/utf8"
)

// Wrap breaks text into lines no longer than width characters, splitting on
// word boundaries. Width counts runes, not bytes, so multi-byte scripts wrap
// where they should. Words longer than the width occupy their own line rather
// than being split. A non-positive width returns the text unchanged.
func Wrap(text string, width int) string {
	text = strings.TrimSpace(text)
	if text == "" || width <= 0 {
		return text
	}

	words := strings.Fields(text)
	var (
		lines   []string
		current strings.Builder
		length  int
	)
	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		if length == 0 {
			current.WriteString(word)
			length = wordLen
			continue
		}
		if length+1+wordLen > width {
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			length = wordLen
			continue
		}
		current.WriteByte(' ')
		current.WriteString(word)
		length += 1 + wordLen
	}
	if length > 0 {
		lines = append(lines, current.String())
	}
	return strings.Join(lines, "\n")
}
