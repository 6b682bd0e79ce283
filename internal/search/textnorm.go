package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// normalizeText prepares a string for fuzzy comparison: lowercase, strip
// diacritics, collapse whitespace.
func normalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}

	s = stripDiacritics(s)

	return strings.Join(strings.Fields(s), " ")
}

// stripDiacritics removes accent marks by decomposing to NFD form and
// dropping combining marks.
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)

	var result strings.Builder
	result.Grow(len(decomposed))

	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}

		result.WriteRune(r)
	}

	return result.String()
}
