package rating

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxIdeaLength is the longest idea text accepted for rating and storage.
const MaxIdeaLength = 180

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeText collapses every run of whitespace to a single space and trims
// the ends, keeping stored idea text clean and predictable.
func NormalizeText(value string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(value, " "))
}

// TruncateRunes shortens value to at most n characters without splitting a
// multibyte rune. Length limits are counted in characters, not bytes.
func TruncateRunes(value string, n int) string {
	if utf8.RuneCountInString(value) <= n {
		return value
	}
	return string([]rune(value)[:n])
}
