package utils

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var wsRe = regexp.MustCompile(`\s+`)

// NormalizeNameLower canonicalizes user-entered text for case-insensitive
// matching: NFKC normalization, collapsed whitespace, lower case.
func NormalizeNameLower(s string) string {
	s = norm.NFKC.String(s)
	s = strings.TrimSpace(s)
	s = wsRe.ReplaceAllString(s, " ")
	return strings.ToLower(s)
}
