package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/idea-rater/internal/rating"
)

const systemPrompt = "You are a strict startup evaluator. Rate each idea by realistic execution and profitability potential."

// verdictSchema describes the shape the evaluator is asked to reply with.
// A reply that fails validation falls back to free-text extraction.
const verdictSchema = `{
	"type": "object",
	"properties": {
		"rating": {"type": "string"},
		"note": {"type": "string"}
	},
	"required": ["rating"]
}`

var verdictSchemaLoader = gojsonschema.NewStringLoader(verdictSchema)

// maxRawNoteLength caps an AI-supplied note before normalization. Anything
// longer is treated as absent and replaced with the label's default.
const maxRawNoteLength = 140

// Verdict is a finalized rating and justification for one idea.
type Verdict struct {
	Rating rating.Rating
	Note   string
}

// Rater turns idea text into a canonical verdict via a completion client.
type Rater struct {
	client Client
}

// NewRater creates a Rater backed by the given client
func NewRater(client Client) *Rater {
	return &Rater{client: client}
}

func userPrompt(ideaText string) string {
	return fmt.Sprintf("Idea: %s\n\n", ideaText) +
		`Respond with JSON exactly like {"rating":"<one label>","note":"<short verdict>"} ` +
		"where rating is exactly one of: Dumb, Meh, Kinda Good, Really Good. " +
		"The note must be short, direct, and explain realism/profitability. " +
		"If rating is Dumb or Meh, make the note witty but not mean, max 12 words."
}

// RateIdea asks the completion service for a verdict and normalizes the reply.
// It returns an ExternalServiceError when the call fails and an
// InvalidRatingError when no canonical label can be extracted.
func (r *Rater) RateIdea(ctx context.Context, ideaText string) (*Verdict, error) {
	content, err := r.client.GenerateJSON(ctx, systemPrompt, userPrompt(ideaText))
	if err != nil {
		return nil, err
	}

	label, note, ok := parseVerdict(content)
	if !ok {
		label, ok = rating.FromText(content)
		if !ok {
			return nil, &InvalidRatingError{Content: content}
		}
		note = ""
	}

	if utf8.RuneCountInString(note) > maxRawNoteLength {
		note = ""
	}
	return &Verdict{
		Rating: label,
		Note:   rating.NormalizeNote(note, label),
	}, nil
}

// parseVerdict attempts the structured path: strip code fences, check the
// reply against the verdict schema, and canonicalize the rating field.
func parseVerdict(content string) (rating.Rating, string, bool) {
	cleaned := CleanJSONBlock(content)
	if !strings.HasPrefix(strings.TrimSpace(cleaned), "{") {
		return "", "", false
	}

	result, err := gojsonschema.Validate(verdictSchemaLoader, gojsonschema.NewStringLoader(cleaned))
	if err != nil || !result.Valid() {
		return "", "", false
	}

	var parsed struct {
		Rating string `json:"rating"`
		Note   string `json:"note"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return "", "", false
	}

	label, ok := rating.Canonicalize(parsed.Rating)
	if !ok {
		return "", "", false
	}
	return label, strings.TrimSpace(parsed.Note), true
}
