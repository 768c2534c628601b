// Package rating defines the canonical idea rating labels and the
// deterministic normalization rules applied to AI output.
package rating

import (
	"fmt"
	"regexp"
	"strings"
)

// Rating is one of the four canonical labels an idea can receive.
type Rating string

// The four canonical labels, ordered from worst to best.
const (
	Dumb       Rating = "Dumb"
	Meh        Rating = "Meh"
	KindaGood  Rating = "Kinda Good"
	ReallyGood Rating = "Really Good"
)

// All returns the canonical labels in fixed scan order. Fallback text
// extraction depends on this order, so it must not change.
func All() []Rating {
	return []Rating{Dumb, Meh, KindaGood, ReallyGood}
}

// String returns the label text.
func (r Rating) String() string {
	return string(r)
}

// Valid reports whether r is one of the four canonical labels.
func (r Rating) Valid() bool {
	switch r {
	case Dumb, Meh, KindaGood, ReallyGood:
		return true
	}
	return false
}

// Canonicalize maps a short rating string to a canonical label, accepting
// arbitrary casing, surrounding whitespace, and hyphenated two-word forms.
func Canonicalize(value string) (Rating, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dumb":
		return Dumb, true
	case "meh":
		return Meh, true
	case "kinda good", "kinda-good":
		return KindaGood, true
	case "really good", "really-good":
		return ReallyGood, true
	}
	return "", false
}

// labelPatterns holds one compiled word-boundary pattern per label, in the
// same order as All(). Internal spaces match any run of whitespace.
var labelPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(All()))
	for _, r := range All() {
		expr := fmt.Sprintf(`(?i)\b%s\b`, strings.ReplaceAll(string(r), " ", `\s+`))
		patterns = append(patterns, regexp.MustCompile(expr))
	}
	return patterns
}()

// FromText extracts a canonical label from free text. It tries the direct
// match first, then scans for each label as a whole word in fixed order.
// Used when the AI answers with a sentence instead of a bare label.
func FromText(text string) (Rating, bool) {
	if r, ok := Canonicalize(text); ok {
		return r, true
	}
	for i, pattern := range labelPatterns {
		if pattern.MatchString(text) {
			return All()[i], true
		}
	}
	return "", false
}

// DefaultNote returns the fallback justification shown when the AI supplied
// no usable note for the given label.
func DefaultNote(r Rating) string {
	switch r {
	case Dumb:
		return "Bold, chaotic, and financially allergic."
	case Meh:
		return "Cute concept, but the profit math is missing."
	case KindaGood:
		return "Some potential, but it needs a clearer path to real profit."
	case ReallyGood:
		return "Strong, realistic, and clearly profit-oriented."
	}
	return ""
}
