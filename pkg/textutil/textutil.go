// Package textutil provides small text helpers shared by the normalizer and
// the report renderer.
package textutil

import "strings"

// NormalizeWhitespace trims the string and collapses internal whitespace
// runs to single spaces.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate shortens a string to maxLength runes, appending an ellipsis when
// anything was cut.
func Truncate(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}

	return string(runes[:maxLength]) + "..."
}

// JoinNonEmpty joins the non-empty parts with the separator, trimming each
// part first. Empty parts contribute no separator.
func JoinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))

	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}

	return strings.Join(kept, sep)
}
