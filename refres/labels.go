package refres

import (
	"strings"
	"unicode"
)

// NormalizeLabel implements CommonMark's link-label normalisation: case
// fold and collapse internal whitespace, so `[Foo Bar]` and `[foo   bar]`
// refer to the same definition.
func NormalizeLabel(s string) string {
	fields := strings.Fields(s)
	return strings.ToLower(strings.Join(fields, " "))
}

// Slugify turns heading text into the lowercase, hyphen-joined anchor
// fragment used by heading labels: non-alphanumeric runs become a single
// `-`, and the result is trimmed of leading/trailing hyphens.
func Slugify(text string) string {
	var b strings.Builder
	lastDash := true // treat start as if a dash was just written, to trim leading ones
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := b.String()
	out = strings.TrimSuffix(out, "-")
	return out
}
