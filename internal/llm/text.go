package llm

import "unicode/utf8"

// ClipText returns s cut to at most max runes. A non-positive max leaves s
// untouched.
func ClipText(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
