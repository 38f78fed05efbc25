// Package server serves the watchlist REST resource and the market-data proxy.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"StockWatch/internal/model"
	"StockWatch/internal/store"
)

// Server is the persistence backend plus the credential-holding market proxy.
type Server struct {
	store store.WatchlistStore
	proxy *MarketProxy
	log   *slog.Logger
}

// New creates a server. proxy may be nil to disable the market routes.
func New(st store.WatchlistStore, proxy *MarketProxy, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{store: st, proxy: proxy, log: log}
}

// RegisterRoutes registers all routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /watchList", s.handleList)
	mux.HandleFunc("POST /watchList", s.handleCreate)
	mux.HandleFunc("GET /watchList/{id}", s.handleGet)
	mux.HandleFunc("PATCH /watchList/{id}", s.handlePatch)
	mux.HandleFunc("DELETE /watchList/{id}", s.handleDelete)
	if s.proxy != nil {
		mux.Handle("GET /market/", http.StripPrefix("/market", s.proxy))
	}
}

// Handler returns an http.Handler with CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(s.logMiddleware(mux))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "status", sw.status, "elapsed", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func (s *Server) storeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.log.Error("watchlist store", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.List(r.Context())
	if err != nil {
		s.storeError(w, "list", err)
		return
	}
	if entries == nil {
		entries = []model.WatchlistEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	e, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.storeError(w, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var d model.WatchlistDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	d.Symbol = strings.ToUpper(strings.TrimSpace(d.Symbol))
	if d.Symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	e, err := s.store.Create(r.Context(), d)
	if err != nil {
		s.storeError(w, "create", err)
		return
	}
	s.log.Info("watchlist entry created", "id", e.ID, "symbol", e.Symbol)
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handlePatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var e model.WatchlistEntry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if e.ID != 0 && e.ID != id {
		writeError(w, http.StatusBadRequest, "id in body does not match path")
		return
	}
	e.ID = id
	updated, err := s.store.Update(r.Context(), e)
	if err != nil {
		s.storeError(w, "update", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.storeError(w, "delete", err)
		return
	}
	s.log.Info("watchlist entry deleted", "id", id)
	writeJSON(w, http.StatusOK, struct{}{})
}
