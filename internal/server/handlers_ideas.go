package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/jonathan/idea-rater/internal/db"
	"github.com/jonathan/idea-rater/internal/rating"
	"github.com/jonathan/idea-rater/internal/types"
)

// allowedMethods lists the methods /ideas accepts, for the Allow header.
var allowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}

const (
	listLimit = 100

	rerateDefaultLimit = 20
	rerateMaxLimit     = 50

	// rerateWriteBudget is the response write deadline for a re-rate run. A
	// full batch is rerateMaxLimit sequential AI calls at up to 12s each, so
	// the server-wide write timeout cannot cover it.
	rerateWriteBudget = 11 * time.Minute
)

// handleIdeas dispatches /ideas by method. OPTIONS preflight is answered by
// the CORS middleware before reaching here.
func (s *Server) handleIdeas(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	switch r.Method {
	case http.MethodGet:
		s.handleListIdeas(w, r)
	case http.MethodPost:
		s.handlePostIdeas(w, r)
	default:
		s.handleError(w, &ErrMethodNotAllowed{Allowed: allowedMethods})
	}
}

// handleListIdeas returns the newest ideas, re-rendering legacy notes
func (s *Server) handleListIdeas(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.store.EnsureSchema(ctx); err != nil {
		s.handleError(w, err)
		return
	}

	ideas, err := s.store.ListRecentIdeas(ctx, listLimit)
	if err != nil {
		s.handleError(w, err)
		return
	}

	if ideas == nil {
		ideas = []db.Idea{}
	}
	for i := range ideas {
		ideas[i].RatingNote = rating.DisplayNote(ideas[i].RatingNote, rating.Rating(ideas[i].Rating))
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"ideas": ideas})
}

// parseRequestBody decodes the POST body. An empty body yields an empty
// request; malformed JSON is a validation failure, not a server error.
func parseRequestBody(r *http.Request) (*types.PostIdeasRequest, error) {
	var req types.PostIdeasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return &req, nil
		}
		return nil, &ErrValidation{Message: "Invalid JSON body."}
	}
	return &req, nil
}

// handlePostIdeas routes a POST to either idea submission or the
// authenticated re-rate maintenance action
func (s *Server) handlePostIdeas(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequestBody(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, &ErrValidation{Message: "Unsupported action."})
		return
	}

	if req.IsRerate() {
		s.handleRerate(w, r, req)
		return
	}
	s.handleCreateIdea(w, r, req)
}

// handleCreateIdea runs the rating pipeline and persists the idea
func (s *Server) handleCreateIdea(w http.ResponseWriter, r *http.Request, req *types.PostIdeasRequest) {
	ctx := r.Context()

	idea := rating.NormalizeText(req.Idea)
	if idea == "" {
		s.handleError(w, &ErrValidation{Message: "Idea is required."})
		return
	}
	if utf8.RuneCountInString(idea) > rating.MaxIdeaLength {
		s.handleError(w, &ErrValidation{
			Message: fmt.Sprintf("Idea must be %d characters or less.", rating.MaxIdeaLength),
		})
		return
	}

	if err := s.store.EnsureSchema(ctx); err != nil {
		s.handleError(w, err)
		return
	}

	verdict, err := s.rater.RateIdea(ctx, idea)
	if err != nil {
		s.handleError(w, err)
		return
	}

	label, note := rating.ApplyGuardrail(idea, verdict.Rating, verdict.Note)

	created, err := s.store.InsertIdea(ctx, idea, label.String(), note)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{"idea": created})
}

// handleRerate recomputes ratings for the most recent ideas. Records are
// processed one at a time so partial progress persists if a later AI call
// fails.
func (s *Server) handleRerate(w http.ResponseWriter, r *http.Request, req *types.PostIdeasRequest) {
	ctx := r.Context()

	if s.adminToken == "" {
		s.handleError(w, &ErrConfiguration{Setting: "ADMIN_TOKEN"})
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.AdminToken), []byte(s.adminToken)) != 1 {
		s.handleError(w, &ErrAuthorization{})
		return
	}

	// Extend the write deadline for this response only; other requests keep
	// the server-wide timeout.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Now().Add(rerateWriteBudget)); err != nil && !errors.Is(err, http.ErrNotSupported) {
		log.Printf("extend write deadline for re-rate: %v", err)
	}

	limit := ClampRerateLimit(req.Limit)

	if err := s.store.EnsureSchema(ctx); err != nil {
		s.handleError(w, err)
		return
	}

	selected, updated, err := RerateIdeas(ctx, s.store, s.rater, limit)
	if err != nil {
		log.Printf("re-rate stopped after %d of %d updates: %v", updated, selected, err)
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message":  fmt.Sprintf("Re-rated %d of %d ideas.", updated, selected),
		"selected": selected,
		"updated":  updated,
	})
}
