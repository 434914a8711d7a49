// Package bridge runs the external playlist-sync script.
package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/NoNoBzH22/CineVault-Lite/internal/events"
	"github.com/NoNoBzH22/CineVault-Lite/internal/proc"
)

const (
	successMarker  = "SUCCESS:"
	errorMarker    = "ERROR:"
	genericFailure = "Python Script Error"
	defaultUser    = "main"
)

var (
	// ErrIncomplete indicates a sync request without a URL or playlist name.
	ErrIncomplete = errors.New("incomplete data")

	// ErrInvalidOutput indicates the script printed something other than JSON.
	ErrInvalidOutput = errors.New("script output is not valid JSON")
)

// ScriptError carries the failure message the script reported.
type ScriptError struct {
	Message string
	Code    int   // Exit code, 0 if the script never ran
	Err     error // Launch failure, if any
}

func (e *ScriptError) Error() string { return e.Message }
func (e *ScriptError) Unwrap() error { return e.Err }

// Config holds the interpreter, script and the credentials it needs.
type Config struct {
	Python        string
	Script        string
	Dir           string
	PlexURL       string
	PlexToken     string
	SpotifyID     string
	SpotifySecret string
}

// Bridge invokes the sync script.
type Bridge struct {
	cfg    Config
	runner proc.Runner
	bus    *events.Bus
	log    *slog.Logger
}

// New creates a Bridge. runner defaults to proc.ExecRunner and bus may be nil.
func New(cfg Config, runner proc.Runner, bus *events.Bus, log *slog.Logger) *Bridge {
	if log == nil {
		log = slog.Default()
	}
	if runner == nil {
		runner = proc.ExecRunner{}
	}
	return &Bridge{
		cfg:    cfg,
		runner: runner,
		bus:    bus,
		log:    log.With("component", "bridge"),
	}
}

// SyncPlaylist mirrors a Spotify playlist into a Plex playlist for userID
// ("main" when empty) and returns the script's success message.
func (b *Bridge) SyncPlaylist(ctx context.Context, url, name, userID string) (string, error) {
	url, name = strings.TrimSpace(url), strings.TrimSpace(name)
	if url == "" || name == "" {
		return "", ErrIncomplete
	}
	if userID == "" {
		userID = defaultUser
	}
	b.log.Info("playlist sync", "name", name, "user", userID)

	// A half-finished sync leaves a partial Plex playlist, so the script
	// always runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	stdout, err := b.run(ctx, "sync_spotify", "--url", url, "--name", name, "--user", userID)
	if err == nil && strings.Contains(stdout, successMarker) {
		msg := afterMarker(stdout, successMarker)
		b.publish(ctx, &events.PlaylistSynced{
			BaseEvent: events.NewBaseEvent(events.EventPlaylistSynced, events.EntityPlaylist, name),
			URL:       url,
			UserID:    userID,
			Message:   msg,
		})
		return msg, nil
	}

	scriptErr := &ScriptError{Message: genericFailure}
	if strings.Contains(stdout, errorMarker) {
		scriptErr.Message = afterMarker(stdout, errorMarker)
	}
	var exitErr *proc.ExitError
	switch {
	case errors.As(err, &exitErr):
		scriptErr.Code = exitErr.Code
	case err != nil:
		scriptErr.Err = err
	}
	b.log.Warn("playlist sync failed", "name", name, "code", scriptErr.Code, "error", scriptErr.Message)
	b.publish(ctx, &events.PlaylistSyncFailed{
		BaseEvent: events.NewBaseEvent(events.EventPlaylistSyncFailed, events.EntityPlaylist, name),
		URL:       url,
		UserID:    userID,
		Reason:    scriptErr.Message,
	})
	return "", scriptErr
}

// ListUsers returns the script's user list verbatim.
func (b *Bridge) ListUsers(ctx context.Context) (json.RawMessage, error) {
	stdout, err := b.run(ctx, "list_users")
	var exitErr *proc.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, err
	}

	out := bytes.TrimSpace([]byte(stdout))
	if len(out) == 0 || !json.Valid(out) {
		b.log.Warn("list users returned invalid output", "bytes", len(out))
		return nil, ErrInvalidOutput
	}
	return json.RawMessage(out), nil
}

// run starts the script with action and args, and collects stdout.
// Exit status is reported as *proc.ExitError alongside the output.
// Cancelling ctx does not stop a running script.
func (b *Bridge) run(ctx context.Context, action string, args ...string) (string, error) {
	spec := proc.Spec{
		Name: b.cfg.Python,
		Args: append([]string{b.cfg.Script, action}, args...),
		Dir:  b.cfg.Dir,
		Env: []string{
			"PLEX_URL=" + b.cfg.PlexURL,
			"PLEX_TOKEN=" + b.cfg.PlexToken,
			"SPOTIFY_CLIENT_ID=" + b.cfg.SpotifyID,
			"SPOTIFY_CLIENT_SECRET=" + b.cfg.SpotifySecret,
			"PYTHONIOENCODING=utf-8",
		},
	}

	p, err := b.runner.Start(context.WithoutCancel(ctx), spec)
	if err != nil {
		b.log.Error("script launch failed", "action", action, "error", err)
		return "", fmt.Errorf("launch %s: %w", action, err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(p.Stderr())
		for scanner.Scan() {
			b.log.Debug("script stderr", "action", action, "line", scanner.Text())
		}
		_, _ = io.Copy(io.Discard, p.Stderr())
	}()

	var stdout bytes.Buffer
	_, copyErr := io.Copy(&stdout, p.Stdout())
	wg.Wait()

	if err := p.Wait(); err != nil {
		return stdout.String(), err
	}
	if copyErr != nil {
		return stdout.String(), fmt.Errorf("read output: %w", copyErr)
	}
	return stdout.String(), nil
}

func (b *Bridge) publish(ctx context.Context, e events.Event) {
	if b.bus != nil {
		_ = b.bus.Publish(ctx, e)
	}
}

// afterMarker returns the trimmed text between the first occurrence of
// marker and the next one, or the end of output.
func afterMarker(out, marker string) string {
	_, rest, _ := strings.Cut(out, marker)
	rest, _, _ = strings.Cut(rest, marker)
	return strings.TrimSpace(rest)
}
