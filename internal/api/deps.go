package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/NoNoBzH22/CineVault-Lite/internal/events"
	"github.com/NoNoBzH22/CineVault-Lite/internal/jdownloader"
	"github.com/NoNoBzH22/CineVault-Lite/internal/jobfile"
	"github.com/NoNoBzH22/CineVault-Lite/internal/music"
	"github.com/NoNoBzH22/CineVault-Lite/internal/plex"
)

//go:generate mockgen -source=deps.go -destination=mocks/mocks.go -package=mocks

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// MusicService runs music downloads.
type MusicService interface {
	Start(ctx context.Context, url string) (*music.Job, error)
	Status() music.Record
}

// StatusGateway reports the download manager's queue.
type StatusGateway interface {
	Status(ctx context.Context) []jdownloader.Item
}

// JobEmitter hands links to the download manager.
type JobEmitter interface {
	Emit(ctx context.Context, req jobfile.Request) (*jobfile.Result, error)
}

// Inventory lists and rescans the media server library.
type Inventory interface {
	Inventory(ctx context.Context) []plex.InventoryItem
	Refresh(ctx context.Context) error
}

// LibrarySync runs the playlist-sync script.
type LibrarySync interface {
	SyncPlaylist(ctx context.Context, url, name, userID string) (string, error)
	ListUsers(ctx context.Context) (json.RawMessage, error)
}

// SessionGate authenticates the operator.
type SessionGate interface {
	Login(w http.ResponseWriter, r *http.Request, password string) error
	Logout(w http.ResponseWriter, r *http.Request) error
	IsLoggedIn(r *http.Request) bool
	Require(next http.Handler) http.Handler
}

// EventSource reads the audit log.
type EventSource interface {
	Recent(ctx context.Context, limit int) ([]events.RawEvent, error)
	Since(ctx context.Context, t time.Time, limit int) ([]events.RawEvent, error)
	ForEntity(ctx context.Context, entityType, entityID string) ([]events.RawEvent, error)
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Sessions  SessionGate
	Music     MusicService
	Downloads StatusGateway
	Jobs      JobEmitter
	Library   Inventory
	Sync      LibrarySync

	// Optional dependencies (nil if not configured)
	Events EventSource
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	switch {
	case d.Sessions == nil:
		return errors.New("session gate is required")
	case d.Music == nil:
		return errors.New("music service is required")
	case d.Downloads == nil:
		return errors.New("status gateway is required")
	case d.Jobs == nil:
		return errors.New("job emitter is required")
	case d.Library == nil:
		return errors.New("library inventory is required")
	case d.Sync == nil:
		return errors.New("library sync is required")
	}
	return nil
}
