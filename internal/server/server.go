package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/idea-rater/internal/db"
	"github.com/jonathan/idea-rater/internal/llm"
)

// IdeaStore is the persistence surface the handlers need
type IdeaStore interface {
	EnsureSchema(ctx context.Context) error
	InsertIdea(ctx context.Context, ideaText, rating, note string) (*db.Idea, error)
	ListRecentIdeas(ctx context.Context, limit int) ([]db.Idea, error)
	UpdateIdeaRating(ctx context.Context, id int64, rating, note string) error
}

// IdeaRater produces a finalized verdict for one idea
type IdeaRater interface {
	RateIdea(ctx context.Context, ideaText string) (*llm.Verdict, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      IdeaStore
	rater      IdeaRater
	adminToken string
	llmClient  llm.Client
	database   *db.DB
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
	Model       string
	Provider    llm.Provider
	AdminToken  string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmClient, err := llm.NewClient(context.Background(), &llm.Config{
		Provider: cfg.Provider,
		Model:    cfg.Model,
	}, cfg.APIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	s := &Server{
		store:      database,
		rater:      llm.NewRater(llmClient),
		adminToken: cfg.AdminToken,
		llmClient:  llmClient,
		database:   database,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ideas", s.handleIdeas)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // The re-rate handler extends its own deadline
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := s.llmClient.Close(); err != nil {
		log.Printf("Error closing completion client: %v", err)
	}
	s.database.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers and answers preflight requests
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging with a per-request ID
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()
		log.Printf("[%s] %s %s %s", requestID, r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s %s completed in %v", requestID, r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps an error to its response. Validation, authorization, and
// method errors surface precisely; everything else is logged in full and
// collapsed into one generic 500 so upstream detail never reaches clients.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	var methodErr *ErrMethodNotAllowed
	if errors.As(err, &methodErr) {
		w.Header().Set("Allow", strings.Join(methodErr.Allowed, ", "))
		s.errorResponse(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	var validationErr *ErrValidation
	if errors.As(err, &validationErr) {
		s.errorResponse(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	var authErr *ErrAuthorization
	if errors.As(err, &authErr) {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	log.Printf("ideas API error: %v", err)
	s.errorResponse(w, HTTPStatus(err), "Failed to process request.")
}
