// Package chi exposes the HTTP API: chat, catalog browsing, and health.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shahtirth07/pagepal/internal/domain"
	healthuc "github.com/shahtirth07/pagepal/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers and their use case dependencies.
type Server struct {
	chat          ChatService
	library       LibraryService
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(chat ChatService, library LibraryService, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		chat:    chat,
		library: library,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidBookID, http.StatusBadRequest),
		sentinelHandler(domain.ErrBookNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrChatProviderError, http.StatusBadGateway),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway),
	}
	return s
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/api/hello", s.Hello)
	r.Post("/api/chat", s.Chat)
	r.Get("/api/books", s.ListBooks)
	r.Get("/api/books/{bookID}", s.GetBook)
	r.Get("/api/genres", s.ListGenres)
	r.Get("/healthz", s.Healthz)
	r.Handle("/metrics", promhttp.Handler())
}

// Hello handles GET /api/hello.
func (s *Server) Hello(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Hello from the PagePal backend!",
	})
}

type chatRequest struct {
	Query      string        `json:"query"`
	BookFilter domain.Filter `json:"book_filter,omitempty"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

// Chat handles POST /api/chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "Missing 'query' in request body")
		return
	}

	answer, err := s.chat.Answer(r.Context(), req.Query, req.BookFilter)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Answer: answer})
}

type bookResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Genre    string `json:"genre"`
	FilePath string `json:"file_path,omitempty"`
}

// ListBooks handles GET /api/books. An optional genre query parameter narrows
// the listing case-insensitively.
func (s *Server) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.library.ListBooks(r.Context(), r.URL.Query().Get("genre"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	out := make([]bookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, bookToResponse(&b))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetBook handles GET /api/books/{bookID}.
func (s *Server) GetBook(w http.ResponseWriter, r *http.Request) {
	book, err := s.library.GetBook(r.Context(), chi.URLParam(r, "bookID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bookToResponse(book))
}

// ListGenres handles GET /api/genres.
func (s *Server) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.library.ListGenres(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, genres)
}

// Healthz handles GET /healthz. Degraded still returns 200 so orchestrators
// keep routing catalog traffic while the embedding provider recovers.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func bookToResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		Genre:    b.Genre,
		FilePath: b.FilePath,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidBookID,
		domain.ErrBookNotFound,
		domain.ErrChatProviderError,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "An error occurred processing your request."
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "An error occurred processing your request.")
}
