// Package api implements the dashboard's HTTP API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/NoNoBzH22/CineVault-Lite/internal/events"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Config holds API server configuration.
type Config struct {
	RateLimitWindow time.Duration
	RateLimitMax    int
	TrustProxy      bool   // Take the client address from X-Forwarded-For
	StaticDir       string // Optional web UI directory
}

// Server is the API server.
type Server struct {
	deps     ServerDeps
	cfg      Config
	limiter  *rateLimiter
	registry *events.Registry
	log      *slog.Logger
}

// NewWithDeps creates a Server from explicit dependencies.
func NewWithDeps(deps ServerDeps, cfg Config, log *slog.Logger) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingDependency, err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		deps:     deps,
		cfg:      cfg,
		limiter:  newRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax, cfg.TrustProxy),
		registry: events.DefaultRegistry(),
		log:      log.With("component", "api"),
	}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	protected := func(h http.HandlerFunc) http.Handler {
		return s.deps.Sessions.Require(h)
	}
	limited := func(h http.HandlerFunc) http.Handler {
		return s.limiter.middleware(protected(h))
	}

	// Session
	mux.HandleFunc("POST /login", s.login)
	mux.HandleFunc("GET /check-session", s.checkSession)
	mux.HandleFunc("POST /logout", s.logout)
	mux.HandleFunc("GET /status", s.status)

	// Download manager
	mux.Handle("POST /direct-download", limited(s.directDownload))
	mux.Handle("GET /download-status", limited(s.downloadStatus))

	// Music
	mux.Handle("POST /download-music", limited(s.downloadMusic))
	mux.Handle("GET /music-status", protected(s.musicStatus))

	// Media server
	mux.Handle("POST /sync-playlist", limited(s.syncPlaylist))
	mux.Handle("GET /plex-inventory", limited(s.plexInventory))
	mux.Handle("POST /refresh-plex", limited(s.refreshPlex))
	mux.Handle("GET /plex-users", protected(s.plexUsers))

	// Audit log
	mux.Handle("GET /events", protected(s.requireEvents(s.listEvents)))
}

// Handler returns the complete HTTP handler: API routes, the optional web
// UI and security headers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	if s.cfg.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}
	return securityHeaders(mux)
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeJSON reads a JSON body. An empty body decodes to the zero value.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid JSON body.")
		return false
	}
	return true
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
