package article

import "strings"

// Normalize converts a raw text run into display text. With preserve set the
// text is returned untouched; otherwise every run of HTML whitespace becomes
// a single space, so a leading or trailing run survives as exactly one space
// and an all-whitespace input becomes " ".
func Normalize(raw string, preserve bool) string {
	if preserve || raw == "" {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw))
	prevSpace := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if isHTMLSpace(rune(c)) {
			if !prevSpace {
				b.WriteByte(' ')
			}
			prevSpace = true
			continue
		}
		b.WriteByte(c)
		prevSpace = false
	}
	return b.String()
}

func isHTMLSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	default:
		return false
	}
}
