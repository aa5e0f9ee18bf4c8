package utils

import (
	"strings"
	"unicode"
)

// Slugify lowercases name and collapses every non-alphanumeric run into a
// single hyphen: "Deluxe  Suite!" -> "deluxe-suite". Returns "" when nothing
// usable remains.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
