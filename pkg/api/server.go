// Package api exposes the amendment parser over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/coolbeans/amendtree/pkg/document"
)

// MaxBodyBytes bounds the size of a submitted document.
const MaxBodyBytes = 10 << 20

// Server is the HTTP API server for amendtree.
type Server struct {
	router chi.Router
	log    zerolog.Logger
}

// NewServer creates and configures the HTTP server.
func NewServer(log zerolog.Logger) *Server {
	s := &Server{log: log}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/parse", s.handleParse)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleParse decodes a document body, parses it and answers with the edit
// tree. Query parameters: format (json or yaml) and article, a comma
// separated list of article orders.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	format, formatErr := document.ParseFormat(r.URL.Query().Get("format"))
	if formatErr != nil {
		jsonError(w, formatErr.Error(), http.StatusBadRequest)
		return
	}
	articles, articlesErr := parseArticleList(r.URL.Query().Get("article"))
	if articlesErr != nil {
		jsonError(w, articlesErr.Error(), http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	var doc *document.Document
	var decodeErr error
	if isYAML(r.Header.Get("Content-Type")) {
		doc, decodeErr = document.DecodeYAML(r.Body)
	} else {
		doc, decodeErr = document.Decode(r.Body)
	}
	if decodeErr != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(decodeErr, &tooLarge) {
			jsonError(w, "document too large", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, decodeErr.Error(), http.StatusBadRequest)
		return
	}

	logger := s.log.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
	tree, parseErr := document.Parse(doc, document.Options{Articles: articles, Logger: &logger})
	if parseErr != nil {
		jsonError(w, parseErr.Error(), http.StatusUnprocessableEntity)
		return
	}

	if format == document.FormatYAML {
		w.Header().Set("Content-Type", "application/yaml")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	if encodeErr := document.Encode(w, tree, format); encodeErr != nil {
		s.log.Error().Err(encodeErr).Msg("writing parse response")
	}
}

func parseArticleList(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var orders []int
	for _, field := range strings.Split(raw, ",") {
		order, convErr := strconv.Atoi(strings.TrimSpace(field))
		if convErr != nil {
			return nil, errors.New("article must be a comma separated list of integers")
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func isYAML(contentType string) bool {
	return strings.Contains(contentType, "yaml")
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
