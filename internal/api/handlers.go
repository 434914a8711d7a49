package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/NoNoBzH22/CineVault-Lite/internal/bridge"
	"github.com/NoNoBzH22/CineVault-Lite/internal/events"
	"github.com/NoNoBzH22/CineVault-Lite/internal/jobfile"
	"github.com/NoNoBzH22/CineVault-Lite/internal/music"
	"github.com/NoNoBzH22/CineVault-Lite/internal/plex"
	"github.com/NoNoBzH22/CineVault-Lite/internal/session"
)

const serviceMessage = "CineVault-Lite service operational."

type loginRequest struct {
	Password string `json:"password"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type sessionResponse struct {
	IsLoggedIn bool `json:"isLoggedIn"`
}

type statusResponse struct {
	IsOffline bool   `json:"isOffline"`
	Message   string `json:"message"`
}

type directDownloadRequest struct {
	Link  string `json:"link"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

type musicRequest struct {
	URL string `json:"url"`
}

type syncRequest struct {
	URL    string `json:"url"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.deps.Sessions.Login(w, r, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, successResponse{Success: true})
	case errors.Is(err, session.ErrMissingPassword):
		writeError(w, http.StatusBadRequest, "Missing password.")
	case errors.Is(err, session.ErrInvalidPassword):
		writeError(w, http.StatusUnauthorized, "Invalid API Password.")
	default:
		s.log.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error.")
	}
}

func (s *Server) checkSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{IsLoggedIn: s.deps.Sessions.IsLoggedIn(r)})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Sessions.Logout(w, r); err != nil {
		s.log.Warn("logout failed", "error", err)
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{IsOffline: false, Message: serviceMessage})
}

func (s *Server) directDownload(w http.ResponseWriter, r *http.Request) {
	var req directDownloadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, err := s.deps.Jobs.Emit(r.Context(), jobfile.Request{
		Link:  req.Link,
		Title: req.Title,
		Kind:  jobfile.ParseKind(req.Type),
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, messageResponse{Message: "Link successfully sent to JDownloader!"})
	case errors.Is(err, jobfile.ErrMissingLink):
		writeError(w, http.StatusBadRequest, "Missing link.")
	case errors.Is(err, jobfile.ErrPathTraversal):
		writeError(w, http.StatusBadRequest, "Invalid title.")
	default:
		writeError(w, http.StatusInternalServerError, "Error writing JD file.")
	}
}

func (s *Server) downloadStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Downloads.Status(r.Context()))
}

func (s *Server) downloadMusic(w http.ResponseWriter, r *http.Request) {
	var req musicRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, err := s.deps.Music.Start(r.Context(), req.URL)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, messageResponse{Message: "Download started!"})
	case errors.Is(err, music.ErrMissingURL):
		writeError(w, http.StatusBadRequest, "Missing URL.")
	case errors.Is(err, music.ErrUnsupportedURL):
		writeError(w, http.StatusBadRequest, "Unsupported URL (Spotify or YouTube only).")
	case errors.Is(err, music.ErrBusy):
		writeError(w, http.StatusConflict, "A music download is already in progress.")
	default:
		s.log.Error("music download failed to start", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not start download.")
	}
}

func (s *Server) musicStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Music.Status())
}

func (s *Server) syncPlaylist(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	msg, err := s.deps.Sync.SyncPlaylist(r.Context(), req.URL, req.Name, req.UserID)
	if err == nil {
		writeJSON(w, http.StatusOK, messageResponse{Message: msg})
		return
	}
	if errors.Is(err, bridge.ErrIncomplete) {
		writeError(w, http.StatusBadRequest, "Incomplete data.")
		return
	}
	var scriptErr *bridge.ScriptError
	if errors.As(err, &scriptErr) {
		writeError(w, http.StatusInternalServerError, scriptErr.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, "Python Script Error")
}

// plexInventory returns the movie library, optionally narrowed by ?q=.
func (s *Server) plexInventory(w http.ResponseWriter, r *http.Request) {
	items := s.deps.Library.Inventory(r.Context())
	if q := r.URL.Query().Get("q"); q != "" {
		items = plex.Search(items, q, queryInt(r, "limit", 0))
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) refreshPlex(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Library.Refresh(r.Context()); err != nil {
		s.log.Warn("plex refresh failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Cannot contact Plex.")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Plex Scan initiated!"})
}

func (s *Server) plexUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.deps.Sync.ListUsers(r.Context())
	if err != nil {
		s.log.Warn("listing plex users failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Error reading users")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(users)
}

const (
	defaultEventLimit = 50
	maxEventLimit     = 1000
)

// listEvents returns audit events. ?since= accepts an RFC 3339 time or a
// duration such as "24h"; ?entity_type= with ?entity_id= returns one
// entity's history, oldest first. Otherwise the newest events are returned.
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultEventLimit)
	if limit <= 0 {
		limit = defaultEventLimit
	}
	if limit > maxEventLimit {
		limit = maxEventLimit
	}

	q := r.URL.Query()
	entityType, entityID := q.Get("entity_type"), q.Get("entity_id")
	since := q.Get("since")

	var (
		evts []events.RawEvent
		err  error
	)
	switch {
	case entityType != "" || entityID != "":
		if entityType == "" || entityID == "" {
			writeError(w, http.StatusBadRequest, "entity_type and entity_id must be set together.")
			return
		}
		evts, err = s.deps.Events.ForEntity(r.Context(), entityType, entityID)
		if len(evts) > limit {
			evts = evts[len(evts)-limit:]
		}
	case since != "":
		t, perr := parseSince(since, time.Now())
		if perr != nil {
			writeError(w, http.StatusBadRequest, "Invalid since parameter.")
			return
		}
		evts, err = s.deps.Events.Since(r.Context(), t, limit)
	default:
		evts, err = s.deps.Events.Recent(r.Context(), limit)
	}
	if err != nil {
		s.log.Error("reading events failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Error reading events.")
		return
	}
	writeJSON(w, http.StatusOK, s.eventViews(evts))
}

// eventView is a stored event plus its one-line description.
type eventView struct {
	events.RawEvent
	Summary string `json:"summary"`
}

func (s *Server) eventViews(evts []events.RawEvent) []eventView {
	out := make([]eventView, len(evts))
	for i, e := range evts {
		out[i] = eventView{RawEvent: e, Summary: s.registry.Summarize(e)}
	}
	return out
}

func parseSince(v string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return now.Add(-d), nil
	}
	return time.Parse(time.RFC3339, v)
}
