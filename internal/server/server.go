// Package server exposes the orchestrator's state and actions as a JSON API
// for the presentation layer.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"ragbooks/internal/app"
	"ragbooks/internal/ratelimit"
	"ragbooks/internal/util"
	"ragbooks/pkg/domain"
	"ragbooks/pkg/format"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App            *app.App
	QueryLimiter   *ratelimit.FixedWindowLimiter
	TrustedProxies *util.TrustedProxies
}

// Server exposes HTTP endpoints for the assistant service.
type Server struct {
	app          *app.App
	queryLimiter *ratelimit.FixedWindowLimiter
	trusted      *util.TrustedProxies
	mux          *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app:          cfg.App,
		queryLimiter: cfg.QueryLimiter,
		trusted:      cfg.TrustedProxies,
		mux:          http.NewServeMux(),
	}
	s.routes()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithSecurityHeaders(util.WithCORS(util.WithRequestID(util.WithRequestLog(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/api/rag/query", s.handleQuery)
	s.mux.HandleFunc("/api/conversations", s.handleConversations)
	s.mux.HandleFunc("/api/books", s.handleBooks)
	s.mux.HandleFunc("/api/search", s.handleSearch)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type queryRequest struct {
	Question string `json:"question"`
}

type queryResponse struct {
	SessionID string           `json:"sessionId"`
	Result    domain.RagResult `json:"result"`
	Blocks    []format.Block   `json:"blocks"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if s.queryLimiter != nil && !s.queryLimiter.Allow(util.ClientIP(r, s.trusted)) {
		writeError(w, http.StatusTooManyRequests, "too many queries")
		return
	}
	var req queryRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	result, err := s.app.Ask(r.Context(), req.Question)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmptyQuestion):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrBusy):
			writeError(w, http.StatusConflict, err.Error())
		default:
			util.LoggerFromContext(r.Context()).Error("query failed", "err", err)
			writeError(w, http.StatusInternalServerError, "RAG query failed")
		}
		return
	}
	writeJSON(w, http.StatusOK, queryResponse{
		SessionID: s.app.SessionID(),
		Result:    *result,
		Blocks:    format.Render(result.Response),
	})
}

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{
			"sessionId":     s.app.SessionID(),
			"conversations": s.app.Conversation(),
		})
	case http.MethodDelete:
		sessionID := s.app.Clear()
		writeJSON(w, http.StatusOK, map[string]string{"sessionId": sessionID})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.app.Books())
	case http.MethodPost:
		var book domain.Book
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&book); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		added, err := s.app.AddBook(book)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, added)
	default:
		methodNotAllowed(w)
	}
}

type searchRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req searchRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	books := s.app.SearchBooks(req.Query)
	if books == nil {
		books = []domain.Book{}
	}
	writeJSON(w, http.StatusOK, books)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
