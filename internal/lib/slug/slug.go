// Package slug derives filesystem-safe file stems from free text.
package slug

import "strings"

const maxLen = 48

// Make lowercases s, strips everything outside [a-z0-9 -], collapses
// whitespace runs into single hyphens and trims the result to a bounded
// length. Returns "" when nothing survives, so callers can fall back to a
// generated id.
func Make(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '-', r == '_':
			b.WriteRune(' ')
		}
	}

	out := strings.Join(strings.Fields(b.String()), "-")

	if len(out) > maxLen {
		out = out[:maxLen]
		out = strings.Trim(out, "-")
	}

	return out
}
