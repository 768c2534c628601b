package db

import (
	"context"
	"fmt"
)

// DefaultListLimit caps ListRecentIdeas when the caller passes no limit
const DefaultListLimit = 100

// InsertIdea inserts one idea row and returns the fully populated record
func (db *DB) InsertIdea(ctx context.Context, ideaText, rating, note string) (*Idea, error) {
	var idea Idea
	err := db.pool.QueryRow(ctx,
		`INSERT INTO ideas (idea_text, rating, rating_note)
		 VALUES ($1, $2, $3)
		 RETURNING id, idea_text, rating, rating_note, created_at`,
		ideaText, rating, note,
	).Scan(&idea.ID, &idea.IdeaText, &idea.Rating, &idea.RatingNote, &idea.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert idea: %w", err)
	}
	return &idea, nil
}

// ListRecentIdeas retrieves up to limit ideas, newest first
func (db *DB) ListRecentIdeas(ctx context.Context, limit int) ([]Idea, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, idea_text, rating, rating_note, created_at
		 FROM ideas ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	defer rows.Close()

	var ideas []Idea
	for rows.Next() {
		var idea Idea
		if err := rows.Scan(&idea.ID, &idea.IdeaText, &idea.Rating, &idea.RatingNote, &idea.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan idea: %w", err)
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	return ideas, nil
}

// UpdateIdeaRating overwrites the rating and note of one idea
func (db *DB) UpdateIdeaRating(ctx context.Context, id int64, rating, note string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE ideas SET rating = $1, rating_note = $2 WHERE id = $3`,
		rating, note, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update idea %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("idea not found: %d", id)
	}
	return nil
}
