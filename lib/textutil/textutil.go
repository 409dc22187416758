package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases and trims name, the inner text is kept as is.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CompactName is NormalizeName with all inner whitespace removed.
func CompactName(name string) string {
	return whitespaceRegex.ReplaceAllString(NormalizeName(name), "")
}

// MatchName reports whether the normalized name contains any of the matchers,
// matchers are expected to already be lowercase.
func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

var leadingNumberRegex = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// LeadingNumber returns the decimal number that text starts with after leading
// whitespace, trailing garbage is ignored ("3.0 credits" -> 3).
func LeadingNumber(text string) (string, bool) {
	match := leadingNumberRegex.FindString(strings.TrimSpace(text))
	return match, match != ""
}
