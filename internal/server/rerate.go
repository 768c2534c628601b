package server

import (
	"context"
	"fmt"

	"github.com/jonathan/idea-rater/internal/rating"
)

// RerateIdeas recomputes ratings for the limit most recent ideas, one record
// at a time. Each record's AI call and store update complete before the next
// begins, so progress made before a failure persists. Returns the number of
// records selected and the number updated before completion or failure.
func RerateIdeas(ctx context.Context, store IdeaStore, rater IdeaRater, limit int) (selected, updated int, err error) {
	ideas, err := store.ListRecentIdeas(ctx, limit)
	if err != nil {
		return 0, 0, err
	}

	for _, idea := range ideas {
		verdict, err := rater.RateIdea(ctx, idea.IdeaText)
		if err != nil {
			return len(ideas), updated, fmt.Errorf("re-rate idea %d: %w", idea.ID, err)
		}

		label, note := rating.ApplyGuardrail(idea.IdeaText, verdict.Rating, verdict.Note)
		if err := store.UpdateIdeaRating(ctx, idea.ID, label.String(), note); err != nil {
			return len(ideas), updated, fmt.Errorf("re-rate idea %d: %w", idea.ID, err)
		}
		updated++
	}
	return len(ideas), updated, nil
}

// ClampRerateLimit bounds the re-rate batch size to [1, 50]. An absent limit
// defaults to 20; an explicit out-of-range value clamps to the nearest bound.
func ClampRerateLimit(limit *int) int {
	if limit == nil {
		return rerateDefaultLimit
	}
	if *limit < 1 {
		return 1
	}
	if *limit > rerateMaxLimit {
		return rerateMaxLimit
	}
	return *limit
}
