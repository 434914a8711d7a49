package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0, "[----------]"},
		{50, "[#####-----]"},
		{100, "[##########]"},
		{150, "[##########]"},
		{-5, "[----------]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, progressBar(tt.pct, 10), "pct=%v", tt.pct)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a very ...", truncate("a very long name", 10))
	assert.Equal(t, "Amé", truncate("Amélie", 3))
}

func TestFormatTimeAgo(t *testing.T) {
	assert.Equal(t, "never", formatTimeAgo(time.Time{}))
	assert.Equal(t, "2 hours ago", formatTimeAgo(time.Now().Add(-2*time.Hour)))
}

func TestPrintDownloads(t *testing.T) {
	var buf bytes.Buffer
	printDownloads(&buf, nil)
	assert.Equal(t, "No active downloads\n", buf.String())

	buf.Reset()
	printDownloads(&buf, []DownloadItem{{Name: "movie.mkv", Percent: 50}})
	assert.Contains(t, buf.String(), "Downloads (1):")
	assert.Contains(t, buf.String(), "50.0%")
	assert.Contains(t, buf.String(), "movie.mkv")
}

func TestPrintMusicStatus(t *testing.T) {
	song := "Track 3"
	var buf bytes.Buffer
	printMusicStatus(&buf, &MusicStatusResponse{
		IsDownloading:   true,
		CurrentSong:     &song,
		Progress:        40,
		Message:         "Downloading...",
		TotalSongs:      5,
		DownloadedCount: 2,
	})
	out := buf.String()
	assert.Contains(t, out, "downloading")
	assert.Contains(t, out, "2/5")
	assert.Contains(t, out, "Track 3")

	buf.Reset()
	printMusicStatus(&buf, &MusicStatusResponse{Message: "Waiting...", TotalSongs: 1})
	assert.Contains(t, buf.String(), "idle")
	assert.NotContains(t, buf.String(), "Current:")
}

func TestPrintInventory(t *testing.T) {
	var buf bytes.Buffer
	printInventory(&buf, []InventoryItem{
		{Title: "Alien", Year: json.RawMessage(`1979`)},
		{Title: "Amélie", Year: json.RawMessage(`"N/A"`)},
	})
	out := buf.String()
	assert.Contains(t, out, "1979")
	assert.Contains(t, out, "N/A")
	assert.NotContains(t, out, `"N/A"`)
	assert.Contains(t, out, "2 movies")
}

func TestPrintEvents(t *testing.T) {
	var buf bytes.Buffer
	printEvents(&buf, nil)
	assert.Equal(t, "No events\n", buf.String())

	buf.Reset()
	printEvents(&buf, []EventResponse{{
		EventType:  "music.started",
		EntityType: "music_job",
		EntityID:   "abc",
		OccurredAt: time.Now().Add(-3 * time.Minute),
	}})
	assert.Contains(t, buf.String(), "music.started")
	assert.Contains(t, buf.String(), "music_job/abc")
	assert.Contains(t, buf.String(), "3 minutes ago")

	buf.Reset()
	printEvents(&buf, []EventResponse{{
		EventType:  "playlist.synced",
		EntityType: "playlist",
		EntityID:   "Road Trip",
		Summary:    `playlist "Road Trip" synced for main`,
		OccurredAt: time.Now(),
	}})
	assert.Contains(t, buf.String(), `playlist "Road Trip" synced for main`)
	assert.NotContains(t, buf.String(), "playlist/Road Trip")
}
