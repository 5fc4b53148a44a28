package library

import "strings"

const maxFileNameLength = 200

// SanitizeFileName makes a feed-supplied string safe to use as a file or
// directory name. The mapping is total and idempotent, and never emits a
// path separator. Colons, slashes and pipes become dashes, quotes become
// apostrophes, wildcard characters are dropped, and anything else a
// filesystem rejects becomes an underscore.
func SanitizeFileName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch r {
		case ':', '/', '\\', '|':
			b.WriteRune('-')
		case '?', '*', '<', '>':
			// dropped
		case '"':
			b.WriteRune('\'')
		default:
			if r < 0x20 || r == 0x7f {
				b.WriteRune('_')
			} else {
				b.WriteRune(r)
			}
		}
	}

	out := b.String()
	if runes := []rune(out); len(runes) > maxFileNameLength {
		out = string(runes[:maxFileNameLength])
	}
	return strings.TrimSpace(out)
}
