package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// Engine defines the outline API surface the server exposes: the Outliner
// port plus the lookups and the change feed only the HTTP API serves.
// *arbor.Engine satisfies it.
type Engine interface {
	ports.Outliner
	Entry(ctx context.Context, entryID string) (domain.Entry, error)
	Watch(ctx context.Context) (<-chan string, error)
}

// Server hosts the outline REST API.
type Server struct {
	Engine  Engine
	Logger  *slog.Logger
	Metrics http.Handler
	Version string
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.Logger = logger }
}

// WithMetrics mounts a metrics endpoint (typically promhttp) at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.Metrics = h }
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) { s.Version = v }
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine:  engine,
		Logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(requestLogger(s.Logger))

	r.Get("/healthz", s.health)
	r.Get("/info", s.info)
	r.Get("/outline", s.outline)
	r.Get("/outline/roots", s.roots)
	r.Get("/outline/{id}", s.entry)
	r.Get("/outline/{id}/children", s.children)
	r.Get("/search", s.search)
	r.Post("/scroll/step", s.scrollStep)
	r.Post("/reload", s.reload)
	r.Get("/events", s.events)

	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"app":     "arbor-http",
		"version": s.Version,
	})
}

// outline handles GET /outline. An optional ?depth= query caps how deep the
// returned projection goes.
func (s *Server) outline(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Engine.Outline(r.Context())
	if err != nil {
		s.serverError(w, "Outline failed", err)
		return
	}

	if raw := r.URL.Query().Get("depth"); raw != "" {
		depth, err := strconv.Atoi(raw)
		if err != nil || depth < 0 {
			http.Error(w, "Invalid depth", http.StatusBadRequest)
			return
		}
		capped := make([]domain.Entry, 0, len(entries))
		for _, e := range entries {
			if e.Depth <= depth {
				capped = append(capped, e)
			}
		}
		entries = capped
	}

	s.writeJSON(w, entries)
}

func (s *Server) roots(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Engine.Roots(r.Context())
	if err != nil {
		s.serverError(w, "Roots failed", err)
		return
	}
	s.writeJSON(w, entries)
}

func (s *Server) entry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, err := s.Engine.Entry(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.serverError(w, "Entry failed", err)
		return
	}
	s.writeJSON(w, entry)
}

func (s *Server) children(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entries, err := s.Engine.Children(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.serverError(w, "Children failed", err)
		return
	}
	s.writeJSON(w, entries)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Engine.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.serverError(w, "Search failed", err)
		return
	}
	s.writeJSON(w, entries)
}

type stepRequest struct {
	Scroll  domain.Scroll `json:"scroll"`
	Elapsed float64       `json:"dt"`
}

// scrollStep handles POST /scroll/step. A blocked step answers 204 with no
// body; movement answers 200 with the next scroll state.
func (s *Server) scrollStep(w http.ResponseWriter, r *http.Request) {
	var body stepRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	next, moving := s.Engine.Step(body.Scroll, body.Elapsed)
	if !moving {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.writeJSON(w, next)
}

func (s *Server) reload(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.Reload(r.Context()); err != nil {
		s.serverError(w, "Reload failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// events handles GET /events (SSE). Each document change is forwarded as one
// data line until the client disconnects.
func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	events, err := s.Engine.Watch(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Watch error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			s.Logger.Debug("forwarding change event", "event", event)
			fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Response encode failed", "err", err)
	}
}

func (s *Server) serverError(w http.ResponseWriter, msg string, err error) {
	http.Error(w, fmt.Sprintf("%s: %v", msg, err), http.StatusInternalServerError)
	s.Logger.Error(msg, "err", err)
}
