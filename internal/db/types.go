package db

import "time"

// Idea represents one stored idea record
type Idea struct {
	ID         int64     `json:"id"`
	IdeaText   string    `json:"idea_text"`
	Rating     string    `json:"rating"`
	RatingNote string    `json:"rating_note"`
	CreatedAt  time.Time `json:"created_at"`
}
