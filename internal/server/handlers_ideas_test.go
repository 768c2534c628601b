package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/idea-rater/internal/llm"
	"github.com/jonathan/idea-rater/internal/rating"
)

func postIdeas(t *testing.T, s *testServer, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/ideas", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.handleIdeas(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// TestCreateIdea tests the end-to-end submit path with a stubbed AI verdict
func TestCreateIdea(t *testing.T) {
	s := newTestServer()
	s.rater.verdict = &llm.Verdict{Rating: rating.ReallyGood, Note: "solid niche e-commerce"}

	w := postIdeas(t, s, `{"idea":"Sell handmade candles online"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeJSON(t, w)
	idea, ok := resp["idea"].(map[string]any)
	require.True(t, ok, "expected idea object in response")
	assert.Equal(t, "Sell handmade candles online", idea["idea_text"])
	assert.Equal(t, "Really Good", idea["rating"])
	assert.Equal(t, "solid niche e-commerce", idea["rating_note"])
	assert.EqualValues(t, 1, idea["id"])

	require.Len(t, s.store.ideas, 1)
	assert.Equal(t, 1, s.store.ensureCalls)
}

// TestCreateIdea_GuardrailDemotion tests that the guardrail overrides the AI
// verdict before persistence
func TestCreateIdea_GuardrailDemotion(t *testing.T) {
	s := newTestServer()
	s.rater.verdict = &llm.Verdict{Rating: rating.ReallyGood, Note: "so wholesome"}

	w := postIdeas(t, s, `{"idea":"A free app to feed homeless people"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeJSON(t, w)
	idea := resp["idea"].(map[string]any)
	assert.Equal(t, "Meh", idea["rating"])
	assert.NotEqual(t, "so wholesome", idea["rating_note"])
}

// TestCreateIdea_NormalizesText tests whitespace collapsing before storage
func TestCreateIdea_NormalizesText(t *testing.T) {
	s := newTestServer()

	w := postIdeas(t, s, `{"idea":"  too   many   spaces  "}`)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeJSON(t, w)
	idea := resp["idea"].(map[string]any)
	assert.Equal(t, "too many spaces", idea["idea_text"])
}

// TestCreateIdea_EmptyIdea tests the missing-idea validation
func TestCreateIdea_EmptyIdea(t *testing.T) {
	s := newTestServer()

	for _, body := range []string{`{}`, `{"idea":""}`, `{"idea":"   "}`, ``} {
		w := postIdeas(t, s, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		resp := decodeJSON(t, w)
		assert.Equal(t, "Idea is required.", resp["error"], "body %q", body)
	}
	assert.Zero(t, s.rater.calls, "validation failures must not reach the AI")
}

// TestCreateIdea_TooLong tests the max-length validation before the pipeline
func TestCreateIdea_TooLong(t *testing.T) {
	s := newTestServer()

	long := strings.Repeat("a", 181)
	w := postIdeas(t, s, `{"idea":"`+long+`"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "Idea must be 180 characters or less.", resp["error"])
	assert.Zero(t, s.rater.calls)
	assert.Empty(t, s.store.ideas)
}

// TestCreateIdea_MultibyteLength tests that the cap counts characters, not
// bytes
func TestCreateIdea_MultibyteLength(t *testing.T) {
	s := newTestServer()

	// 180 two-byte runes: within the cap even though it is 360 bytes.
	w := postIdeas(t, s, `{"idea":"`+strings.Repeat("é", 180)+`"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 1, s.rater.calls)

	w = postIdeas(t, s, `{"idea":"`+strings.Repeat("é", 181)+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, s.rater.calls, "over-length ideas must not reach the AI")
}

// TestCreateIdea_MalformedBody tests the malformed-JSON branch
func TestCreateIdea_MalformedBody(t *testing.T) {
	s := newTestServer()

	w := postIdeas(t, s, `{"idea": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "Invalid JSON body.", resp["error"])
}

// TestCreateIdea_AIFailureIsGeneric tests that upstream errors never leak
func TestCreateIdea_AIFailureIsGeneric(t *testing.T) {
	s := newTestServer()
	s.rater.err = &llm.ExternalServiceError{Message: "secret upstream detail"}

	w := postIdeas(t, s, `{"idea":"a perfectly fine idea"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "Failed to process request.", resp["error"])
	assert.NotContains(t, w.Body.String(), "secret upstream detail")
	assert.Empty(t, s.store.ideas)
}

// TestCreateIdea_InvalidRatingIsGeneric tests the uninterpretable-AI-reply path
func TestCreateIdea_InvalidRatingIsGeneric(t *testing.T) {
	s := newTestServer()
	s.rater.err = &llm.InvalidRatingError{Content: "garbled"}

	w := postIdeas(t, s, `{"idea":"a perfectly fine idea"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "Failed to process request.", resp["error"])
}

// TestListIdeas tests the GET path including legacy note re-rendering
func TestListIdeas(t *testing.T) {
	s := newTestServer()
	_, err := s.store.InsertIdea(context.Background(), "older idea", "Meh", "No additional notes.")
	require.NoError(t, err)
	_, err = s.store.InsertIdea(context.Background(), "newer idea", "Really Good", "authored note")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/ideas", nil)
	w := httptest.NewRecorder()
	s.handleIdeas(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	resp := decodeJSON(t, w)
	ideas, ok := resp["ideas"].([]any)
	require.True(t, ok)
	require.Len(t, ideas, 2)

	newest := ideas[0].(map[string]any)
	assert.Equal(t, "newer idea", newest["idea_text"])
	assert.Equal(t, "authored note", newest["rating_note"])

	legacy := ideas[1].(map[string]any)
	assert.Equal(t, rating.DefaultNote(rating.Meh), legacy["rating_note"])
}

// TestListIdeas_Empty tests that an empty store lists as an empty array
func TestListIdeas_Empty(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/ideas", nil)
	w := httptest.NewRecorder()
	s.handleIdeas(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ideas":[]}`, w.Body.String())
}

// TestMethodNotAllowed tests the 405 with an Allow header
func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodDelete, "/ideas", nil)
	w := httptest.NewRecorder()
	s.handleIdeas(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Allow"))
	resp := decodeJSON(t, w)
	assert.Equal(t, "Method not allowed.", resp["error"])
}
