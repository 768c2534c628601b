package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/idea-rater/internal/llm"
	"github.com/jonathan/idea-rater/internal/rating"
)

func seedIdeas(t *testing.T, s *testServer, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		_, err := s.store.InsertIdea(context.Background(),
			fmt.Sprintf("seeded idea %d with a subscription model", i), "Meh", "meh - seeded")
		require.NoError(t, err)
	}
}

// TestRerate tests the authenticated bulk re-rate flow
func TestRerate(t *testing.T) {
	s := newTestServer()
	seedIdeas(t, s, 3)
	s.rater.verdict = &llm.Verdict{Rating: rating.ReallyGood, Note: "rerated verdict"}

	w := postIdeas(t, s, `{"action":"rerate_all","adminToken":"test-admin-token"}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)
	assert.EqualValues(t, 3, resp["selected"])
	assert.EqualValues(t, 3, resp["updated"])
	assert.Equal(t, "Re-rated 3 of 3 ideas.", resp["message"])

	for _, idea := range s.store.ideas {
		assert.Equal(t, "Really Good", idea.Rating)
		assert.Equal(t, "rerated verdict", idea.RatingNote)
	}
}

// TestRerate_OverLiveConnection tests the re-rate flow through a real server
// connection, where the handler extends the response write deadline before
// running the batch
func TestRerate_OverLiveConnection(t *testing.T) {
	s := newTestServer()
	seedIdeas(t, s, 2)
	s.rater.verdict = &llm.Verdict{Rating: rating.ReallyGood, Note: "rerated verdict"}

	srv := httptest.NewServer(s.handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/ideas", "application/json",
		strings.NewReader(`{"action":"rerate_all","adminToken":"test-admin-token"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 2, body["updated"])
}

// TestRerate_DefaultLimit tests that an absent limit selects 20
func TestRerate_DefaultLimit(t *testing.T) {
	s := newTestServer()

	w := postIdeas(t, s, `{"action":"rerate_all","adminToken":"test-admin-token"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, s.store.listLimits, 1)
	assert.Equal(t, 20, s.store.listLimits[0])
}

// TestRerate_LimitClamping tests the [1, 50] clamp
func TestRerate_LimitClamping(t *testing.T) {
	tests := []struct {
		name      string
		limit     string
		wantLimit int
	}{
		{name: "oversized clamps to 50", limit: "1000", wantLimit: 50},
		{name: "zero clamps to 1", limit: "0", wantLimit: 1},
		{name: "negative clamps to 1", limit: "-7", wantLimit: 1},
		{name: "in range passes", limit: "35", wantLimit: 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			body := `{"action":"rerate_all","adminToken":"test-admin-token","limit":` + tt.limit + `}`

			w := postIdeas(t, s, body)

			require.Equal(t, http.StatusOK, w.Code)
			require.Len(t, s.store.listLimits, 1)
			assert.Equal(t, tt.wantLimit, s.store.listLimits[0])
		})
	}
}

// TestRerate_TokenNotConfigured tests the 500 when no admin token is set
func TestRerate_TokenNotConfigured(t *testing.T) {
	s := newTestServer()
	s.adminToken = ""

	w := postIdeas(t, s, `{"action":"rerate_all","adminToken":"anything"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "Failed to process request.", resp["error"])
}

// TestRerate_BadToken tests the 401 on token mismatch
func TestRerate_BadToken(t *testing.T) {
	s := newTestServer()
	seedIdeas(t, s, 1)

	for _, body := range []string{
		`{"action":"rerate_all"}`,
		`{"action":"rerate_all","adminToken":"wrong"}`,
	} {
		w := postIdeas(t, s, body)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "body %s", body)
		resp := decodeJSON(t, w)
		assert.Equal(t, "Unauthorized.", resp["error"])
	}
	assert.Zero(t, s.rater.calls)
}

// TestRerate_UnsupportedAction tests rejection of unknown actions
func TestRerate_UnsupportedAction(t *testing.T) {
	s := newTestServer()

	w := postIdeas(t, s, `{"action":"drop_all","adminToken":"test-admin-token"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "Unsupported action.", resp["error"])
}

// TestRerate_FailFastKeepsPartialProgress tests sequential processing: rows
// updated before the first failure stay updated
func TestRerate_FailFastKeepsPartialProgress(t *testing.T) {
	s := newTestServer()
	seedIdeas(t, s, 3)
	s.rater.verdict = &llm.Verdict{Rating: rating.KindaGood, Note: "fresh verdict"}

	// The second record the loop reaches fails at the store layer.
	secondID := s.store.ideas[1].ID
	s.store.updateErrByID[secondID] = fmt.Errorf("write refused")

	w := postIdeas(t, s, `{"action":"rerate_all","adminToken":"test-admin-token"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "Failed to process request.", resp["error"])

	// First record was processed and persisted before the failure.
	assert.Equal(t, "Kinda Good", s.store.ideas[0].Rating)
	// Later records were never reached.
	assert.Equal(t, "Meh", s.store.ideas[2].Rating)
	assert.Equal(t, 2, s.rater.calls)
}
