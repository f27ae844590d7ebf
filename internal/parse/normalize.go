package parse

import (
	"strings"
	"unicode"
)

// Normalize collapses any run of whitespace into a single space, trims the
// result, and drops ASCII control characters including DEL. Empty input
// returns the empty string. The function is idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		case r < 0x20 || r == 0x7f:
			// control character outside normal whitespace
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}
