package domain

import (
	"strings"
	"unicode"
)

// SplitFirst trims text and splits it at the first run of whitespace.
// rest keeps everything after that run verbatim, so a trailing label
// retains its inner spacing. ok is false when text holds a single token.
func SplitFirst(text string) (head, rest string, ok bool) {
	text = strings.TrimSpace(text)
	idx := strings.IndexFunc(text, unicode.IsSpace)
	if idx < 0 {
		return text, "", false
	}
	return text[:idx], strings.TrimLeftFunc(text[idx:], unicode.IsSpace), true
}
