package bridge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoNoBzH22/CineVault-Lite/internal/events"
)

// newTestBridge runs body with /bin/sh in place of the Python interpreter.
func newTestBridge(t *testing.T, body string) *Bridge {
	t.Helper()
	dir := t.TempDir()
	script := filepath.Join(dir, "plex_bridge.sh")
	require.NoError(t, os.WriteFile(script, []byte(body), 0644))

	return New(Config{
		Python:        "/bin/sh",
		Script:        "plex_bridge.sh",
		Dir:           dir,
		PlexURL:       "http://plex:32400",
		PlexToken:     "tok",
		SpotifyID:     "sid",
		SpotifySecret: "ssecret",
	}, nil, nil, nil)
}

func TestBridge_SyncPlaylist_Success(t *testing.T) {
	b := newTestBridge(t, `
[ "$1" = "sync_spotify" ] || exit 7
[ "$PLEX_TOKEN" = "tok" ] || exit 8
[ "$SPOTIFY_CLIENT_ID" = "sid" ] || exit 8
echo "Matched 10/12 tracks"
echo "SUCCESS: Playlist '$5' created for $7"
`)

	msg, err := b.SyncPlaylist(context.Background(), "https://open.spotify.com/playlist/x", "Road Trip", "")
	require.NoError(t, err)
	assert.Equal(t, "Playlist 'Road Trip' created for main", msg)
}

func TestBridge_SyncPlaylist_ExplicitUser(t *testing.T) {
	b := newTestBridge(t, `echo "SUCCESS: user=$7"`)

	msg, err := b.SyncPlaylist(context.Background(), "https://open.spotify.com/playlist/x", "Mix", "42")
	require.NoError(t, err)
	assert.Equal(t, "user=42", msg)
}

func TestBridge_SyncPlaylist_ScriptError(t *testing.T) {
	b := newTestBridge(t, `echo "ERROR: Playlist not found"; exit 1`)

	_, err := b.SyncPlaylist(context.Background(), "https://open.spotify.com/playlist/x", "Mix", "")
	var scriptErr *ScriptError
	require.ErrorAs(t, err, &scriptErr)
	assert.Equal(t, "Playlist not found", scriptErr.Message)
	assert.Equal(t, 1, scriptErr.Code)
}

func TestBridge_SyncPlaylist_NoMarker(t *testing.T) {
	b := newTestBridge(t, `echo "Traceback (most recent call last):" >&2; exit 1`)

	_, err := b.SyncPlaylist(context.Background(), "https://open.spotify.com/playlist/x", "Mix", "")
	var scriptErr *ScriptError
	require.ErrorAs(t, err, &scriptErr)
	assert.Equal(t, "Python Script Error", scriptErr.Message)
}

func TestBridge_SyncPlaylist_SuccessMarkerWithBadExit(t *testing.T) {
	b := newTestBridge(t, `echo "SUCCESS: half done"; exit 2`)

	_, err := b.SyncPlaylist(context.Background(), "https://open.spotify.com/playlist/x", "Mix", "")
	var scriptErr *ScriptError
	require.ErrorAs(t, err, &scriptErr)
	assert.Equal(t, "Python Script Error", scriptErr.Message)
	assert.Equal(t, 2, scriptErr.Code)
}

func TestBridge_SyncPlaylist_Incomplete(t *testing.T) {
	b := newTestBridge(t, `exit 0`)

	_, err := b.SyncPlaylist(context.Background(), "", "Mix", "")
	assert.ErrorIs(t, err, ErrIncomplete)
	_, err = b.SyncPlaylist(context.Background(), "https://x", "  ", "")
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestBridge_SyncPlaylist_LaunchFailure(t *testing.T) {
	b := New(Config{Python: "/nonexistent/python3", Script: "x.py"}, nil, nil, nil)

	_, err := b.SyncPlaylist(context.Background(), "https://x", "Mix", "")
	var scriptErr *ScriptError
	require.ErrorAs(t, err, &scriptErr)
	assert.Equal(t, "Python Script Error", scriptErr.Message)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestBridge_SyncPlaylist_PublishesEvent(t *testing.T) {
	b := newTestBridge(t, `echo "SUCCESS: ok"`)
	bus := events.NewBus(nil, nil)
	defer bus.Close()
	ch := bus.Subscribe(events.EventPlaylistSynced, 1)
	b.bus = bus

	_, err := b.SyncPlaylist(context.Background(), "https://x", "Mix", "")
	require.NoError(t, err)

	select {
	case e := <-ch:
		assert.Equal(t, "Mix", e.EntityID())
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestBridge_SyncPlaylist_OutlivesCaller(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "done")
	b := newTestBridge(t, `sleep 0.5
touch "`+marker+`"
echo "SUCCESS: Playlist synced"`)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	msg, err := b.SyncPlaylist(ctx, "https://open.spotify.com/playlist/x", "Road Trip", "")
	require.NoError(t, err)
	assert.Equal(t, "Playlist synced", msg)
	assert.FileExists(t, marker)
}

func TestBridge_ListUsers_CancelledContext(t *testing.T) {
	b := newTestBridge(t, `echo '[{"id":"main","title":"Owner"}]'`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	users, err := b.ListUsers(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"main","title":"Owner"}]`, string(users))
}

func TestBridge_ListUsers(t *testing.T) {
	b := newTestBridge(t, `[ "$1" = "list_users" ] || exit 7
echo '[{"id":"main","title":"Owner"},{"id":"42","title":"Kid"}]'`)

	users, err := b.ListUsers(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"main","title":"Owner"},{"id":"42","title":"Kid"}]`, string(users))
}

func TestBridge_ListUsers_InvalidOutput(t *testing.T) {
	b := newTestBridge(t, `echo "plexapi not installed"`)

	_, err := b.ListUsers(context.Background())
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestBridge_ListUsers_Empty(t *testing.T) {
	b := newTestBridge(t, `exit 1`)

	_, err := b.ListUsers(context.Background())
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestAfterMarker(t *testing.T) {
	assert.Equal(t, "done", afterMarker("log\nSUCCESS: done\n", "SUCCESS:"))
	assert.Equal(t, "first", afterMarker("SUCCESS: first SUCCESS: second", "SUCCESS:"))
}
