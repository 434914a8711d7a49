// Package session implements single-password authentication with
// server-side sessions and signed cookies.
package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NoNoBzH22/CineVault-Lite/internal/events"
)

var (
	// ErrMissingPassword indicates an empty login submission.
	ErrMissingPassword = errors.New("missing password")

	// ErrInvalidPassword indicates a password that does not match.
	ErrInvalidPassword = errors.New("invalid password")
)

const unauthorizedMessage = "Session expired or invalid. Please log in again."

// CheckPassword compares submitted against configured in constant time.
// Both sides are hashed first so their lengths always match.
func CheckPassword(configured, submitted string) bool {
	want := sha256.Sum256([]byte(configured))
	got := sha256.Sum256([]byte(submitted))
	return subtle.ConstantTimeCompare(want[:], got[:]) == 1
}

// Config holds session settings.
type Config struct {
	Password   string
	Secret     string // HMAC key for cookie signatures
	TTL        time.Duration
	CookieName string
	Secure     bool
}

// Manager issues, checks and destroys sessions.
type Manager struct {
	cfg   Config
	store Store
	bus   *events.Bus
	log   *slog.Logger
	now   func() time.Time
}

// NewManager creates a Manager. bus may be nil.
func NewManager(cfg Config, store Store, bus *events.Bus, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 48 * time.Hour
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "cinevault.sid"
	}
	return &Manager{
		cfg:   cfg,
		store: store,
		bus:   bus,
		log:   log.With("component", "session"),
		now:   time.Now,
	}
}

// Login checks password and, on success, starts a session and sets its cookie.
// Any session already carried by the request is discarded.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, password string) error {
	if password == "" {
		return ErrMissingPassword
	}
	ctx := r.Context()

	if !CheckPassword(m.cfg.Password, password) {
		m.log.Warn("login failed", "remote", r.RemoteAddr)
		m.publish(ctx, events.EventLoginFailed, "", r.RemoteAddr)
		return ErrInvalidPassword
	}

	if id, ok := m.cookieID(r); ok {
		_ = m.store.Delete(ctx, id)
	}

	now := m.now()
	sess := Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.cfg.TTL),
	}
	if err := m.store.Create(ctx, sess); err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    m.sign(sess.ID),
		Path:     "/",
		MaxAge:   int(m.cfg.TTL.Seconds()),
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	m.log.Info("login successful", "remote", r.RemoteAddr)
	// Only a prefix goes into the audit log.
	m.publish(ctx, events.EventLoginSucceeded, sess.ID[:8], r.RemoteAddr)
	return nil
}

// Logout destroys the request's session and clears the cookie.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	var err error
	if id, ok := m.cookieID(r); ok {
		err = m.store.Delete(r.Context(), id)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return err
}

// IsLoggedIn reports whether the request carries a live session.
// Expired sessions are deleted on sight.
func (m *Manager) IsLoggedIn(r *http.Request) bool {
	id, ok := m.cookieID(r)
	if !ok {
		return false
	}

	ctx := r.Context()
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.log.Error("session lookup failed", "error", err)
		}
		return false
	}
	if sess.Expired(m.now()) {
		_ = m.store.Delete(ctx, id)
		return false
	}
	return true
}

// Require rejects requests without a live session with 401.
func (m *Manager) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.IsLoggedIn(r) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": unauthorizedMessage})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Prune deletes expired sessions.
func (m *Manager) Prune(ctx context.Context) (int64, error) {
	return m.store.Prune(ctx, m.now())
}

// sign returns "<id>.<base64url(hmac(id))>".
func (m *Manager) sign(id string) string {
	return id + "." + base64.RawURLEncoding.EncodeToString(m.mac(id))
}

func (m *Manager) mac(id string) []byte {
	h := hmac.New(sha256.New, []byte(m.cfg.Secret))
	h.Write([]byte(id))
	return h.Sum(nil)
}

// cookieID extracts and verifies the session ID from the request cookie.
func (m *Manager) cookieID(r *http.Request) (string, bool) {
	c, err := r.Cookie(m.cfg.CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	id, sig, ok := strings.Cut(c.Value, ".")
	if !ok {
		return "", false
	}
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil || !hmac.Equal(got, m.mac(id)) {
		return "", false
	}
	return id, true
}

func (m *Manager) publish(ctx context.Context, eventType, id, remote string) {
	if m.bus == nil {
		return
	}
	if id == "" {
		id = "-"
	}
	_ = m.bus.Publish(ctx, &events.LoginAttempt{
		BaseEvent:  events.NewBaseEvent(eventType, events.EntitySession, id),
		RemoteAddr: remote,
	})
}
