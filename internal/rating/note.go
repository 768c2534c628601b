package rating

import "strings"

// MaxNoteLength is the storage bound for a rating note.
const MaxNoteLength = 160

// maxNormalizedNote is the display length a note is truncated to.
const maxNormalizedNote = 90

// legacyDefaultNotes lists default-note wordings shipped by earlier
// deployments. A stored note matching one of these was never authored by the
// AI, so it renders as the current default instead.
var legacyDefaultNotes = map[string]struct{}{
	"No additional notes.":                          {},
	"No note provided.":                             {},
	"Rated automatically.":                          {},
	"dumb - no further comment.":                    {},
	"meh - no further comment.":                     {},
	"Solid idea with real monetization potential.":  {},
	"Questionable execution, questionable returns.": {},
}

// NormalizeNote cleans a candidate justification for the given label.
// Empty or placeholder-only input falls back to the label's default note.
// Low ratings are prefixed with their lower-cased label so the verdict is
// readable without the rating column.
func NormalizeNote(note string, r Rating) string {
	cleaned := strings.TrimRight(NormalizeText(note), ".")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return DefaultNote(r)
	}

	cleaned = TruncateRunes(cleaned, maxNormalizedNote)

	switch r {
	case Dumb:
		return ensurePrefix(cleaned, "dumb - ")
	case Meh:
		return ensurePrefix(cleaned, "meh - ")
	}
	return cleaned
}

// DisplayNote resolves the note to show for a stored record. Blank notes and
// legacy placeholders render as the current default for the record's rating.
func DisplayNote(stored string, r Rating) string {
	trimmed := strings.TrimSpace(stored)
	if trimmed == "" {
		return DefaultNote(r)
	}
	if _, legacy := legacyDefaultNotes[trimmed]; legacy {
		return DefaultNote(r)
	}
	return stored
}

func ensurePrefix(note, prefix string) string {
	if strings.HasPrefix(strings.ToLower(note), prefix) {
		return note
	}
	return prefix + strings.ToLower(note)
}
