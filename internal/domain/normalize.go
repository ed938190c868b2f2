package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeQuery prepares search text for comparison and cache keys:
//   - NFC-normalizes so composed and decomposed accents compare equal
//   - trims leading/trailing whitespace
//   - case-folds
//   - compresses runs of whitespace into one space
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeQuery(text string) string {
	text = strings.TrimSpace(norm.NFC.String(text))
	if text == "" {
		return ""
	}
	text = cases.Fold().String(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' || r == '\t' {
			if prevSpace {
				continue
			}
			prevSpace = true
			r = ' '
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
