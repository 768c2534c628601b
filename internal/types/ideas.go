// Package types provides request payload definitions for the idea-rater API.
package types

import "github.com/go-playground/validator/v10"

// RerateAction is the action value that triggers the bulk re-rate flow.
const RerateAction = "rerate_all"

// PostIdeasRequest is the body of POST /ideas. A plain submission carries
// only Idea; the authenticated maintenance flow carries Action, AdminToken,
// and an optional Limit.
type PostIdeasRequest struct {
	Idea       string `json:"idea,omitempty"`
	Action     string `json:"action,omitempty" validate:"omitempty,oneof=rerate_all"`
	AdminToken string `json:"adminToken,omitempty"`
	// Limit distinguishes "absent" (nil, default applies) from an explicit 0.
	Limit *int `json:"limit,omitempty"`
}

// IsRerate reports whether the request targets the re-rate maintenance action.
func (r *PostIdeasRequest) IsRerate() bool {
	return r.Action == RerateAction
}

// Validate validates the PostIdeasRequest using the validator.
func (r *PostIdeasRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
