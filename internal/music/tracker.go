// internal/music/tracker.go
package music

import (
	"fmt"
	"math"
	"sync"
)

// Record is the progress of the current or last music download.
type Record struct {
	IsDownloading   bool    `json:"isDownloading"`
	CurrentSong     *string `json:"currentSong"`
	Progress        int     `json:"progress"`
	Message         string  `json:"message"`
	TotalSongs      int     `json:"totalSongs"`
	DownloadedCount int     `json:"downloadedCount"`
}

// Tracker owns a Record and applies updates to it. It is safe for concurrent use.
type Tracker struct {
	mu  sync.Mutex
	rec Record
}

// NewTracker returns a tracker in the idle state.
func NewTracker() *Tracker {
	return &Tracker{rec: Record{Message: "Waiting...", TotalSongs: 1}}
}

// Reset discards all prior state and marks a new download as starting.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rec = Record{
		IsDownloading: true,
		CurrentSong:   strPtr("Analyzing..."),
		Message:       "Starting...",
		TotalSongs:    1,
	}
}

// Apply folds one output classification into the record.
func (t *Tracker) Apply(l Line) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch v := l.(type) {
	case CountAnnounced:
		t.rec.TotalSongs = v.N
		t.rec.Message = fmt.Sprintf("Playlist: %d songs detected.", v.N)
	case ItemStarted:
		t.rec.CurrentSong = strPtr(v.Name)
	case ItemFinished:
		t.rec.DownloadedCount++
		t.rec.Progress = percent(t.rec.DownloadedCount, t.rec.TotalSongs)
		if t.rec.TotalSongs > 1 {
			t.rec.Message = fmt.Sprintf("Progress: %d / %d", t.rec.DownloadedCount, t.rec.TotalSongs)
		} else {
			t.rec.Message = "Finalizing..."
		}
	}
}

// Succeed marks the download as finished.
func (t *Tracker) Succeed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rec.IsDownloading = false
	t.rec.Progress = 100
	t.rec.DownloadedCount = t.rec.TotalSongs
	t.rec.Message = "Finished successfully!"
}

// Fail marks the download as stopped with msg. Progress stays frozen.
func (t *Tracker) Fail(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rec.IsDownloading = false
	t.rec.Message = msg
}

// Abort clears the downloading flag and leaves everything else untouched.
func (t *Tracker) Abort() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rec.IsDownloading = false
}

// Snapshot returns a copy of the record.
func (t *Tracker) Snapshot() Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec := t.rec
	if rec.CurrentSong != nil {
		rec.CurrentSong = strPtr(*rec.CurrentSong)
	}
	return rec
}

// percent is capped at 99 so only a clean exit reports 100.
func percent(done, total int) int {
	if total <= 0 {
		return 99
	}
	p := int(math.Round(float64(done) / float64(total) * 100))
	return min(p, 99)
}

func strPtr(s string) *string { return &s }
