package events

import "fmt"

// Entity types
const (
	EntityMusicJob = "music_job"
	EntityJobFile  = "jobfile"
	EntityPlaylist = "playlist"
	EntityLibrary  = "library"
	EntitySession  = "session"
)

// Event type constants
const (
	EventMusicJobStarted    = "music.started"
	EventMusicJobCompleted  = "music.completed"
	EventMusicJobFailed     = "music.failed"
	EventJobFileWritten     = "jobfile.written"
	EventPlaylistSynced     = "playlist.synced"
	EventPlaylistSyncFailed = "playlist.failed"
	EventLibraryRefreshed   = "library.refresh.requested"
	EventLoginSucceeded     = "auth.login.succeeded"
	EventLoginFailed        = "auth.login.failed"
)

// MusicJobStarted is emitted when the music downloader is launched.
type MusicJobStarted struct {
	BaseEvent
	URL string `json:"url"`
}

// MusicJobCompleted is emitted when the music downloader exits cleanly.
type MusicJobCompleted struct {
	BaseEvent
	URL        string `json:"url"`
	TotalSongs int    `json:"total_songs"`
}

// MusicJobFailed is emitted when the music downloader cannot start or exits non-zero.
type MusicJobFailed struct {
	BaseEvent
	URL      string `json:"url"`
	Reason   string `json:"reason"`
	ExitCode int    `json:"exit_code,omitempty"`
}

// JobFileWritten is emitted when a crawljob lands in the watch folder.
type JobFileWritten struct {
	BaseEvent
	Link        string `json:"link"`
	PackageName string `json:"package_name,omitempty"`
	Kind        string `json:"kind"`
	Path        string `json:"path"`
}

// PlaylistSynced is emitted when the bridge script reports success.
type PlaylistSynced struct {
	BaseEvent
	URL     string `json:"url"`
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// PlaylistSyncFailed is emitted when the bridge script reports failure.
type PlaylistSyncFailed struct {
	BaseEvent
	URL    string `json:"url"`
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

// LibraryRefreshed is emitted when a media server scan is requested.
type LibraryRefreshed struct {
	BaseEvent
}

// LoginAttempt is emitted for every password submission.
type LoginAttempt struct {
	BaseEvent
	RemoteAddr string `json:"remote_addr"`
}

func (e *MusicJobStarted) Summary() string { return "music download started: " + e.URL }

func (e *MusicJobCompleted) Summary() string {
	return fmt.Sprintf("music download finished, %d songs: %s", e.TotalSongs, e.URL)
}

func (e *MusicJobFailed) Summary() string {
	return fmt.Sprintf("music download failed (%s): %s", e.Reason, e.URL)
}

func (e *JobFileWritten) Summary() string {
	return fmt.Sprintf("%s sent to JDownloader as %q", e.Kind, e.PackageName)
}

func (e *PlaylistSynced) Summary() string {
	return fmt.Sprintf("playlist %q synced for %s", e.EntityID(), e.UserID)
}

func (e *PlaylistSyncFailed) Summary() string {
	return fmt.Sprintf("playlist %q sync failed: %s", e.EntityID(), e.Reason)
}

func (e *LibraryRefreshed) Summary() string { return "Plex library scan requested" }

func (e *LoginAttempt) Summary() string {
	if e.EventType() == EventLoginFailed {
		return "failed login from " + e.RemoteAddr
	}
	return "login from " + e.RemoteAddr
}
