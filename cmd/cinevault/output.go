package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func formatTimeAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

// progressBar renders pct (0-100) as a fixed-width bar.
func progressBar(pct float64, width int) string {
	switch {
	case pct < 0:
		pct = 0
	case pct > 100:
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func printDownloads(w io.Writer, items []DownloadItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No active downloads")
		return
	}

	fmt.Fprintf(w, "Downloads (%d):\n\n", len(items))
	for _, it := range items {
		fmt.Fprintf(w, "  %s %6.1f%%  %s\n", progressBar(it.Percent, 20), it.Percent, truncate(it.Name, 60))
	}
}

func printMusicStatus(w io.Writer, s *MusicStatusResponse) {
	state := "idle"
	if s.IsDownloading {
		state = "downloading"
	}
	fmt.Fprintf(w, "Music: %s  %s %d%%\n", state, progressBar(float64(s.Progress), 20), s.Progress)
	fmt.Fprintf(w, "  Songs:   %d/%d\n", s.DownloadedCount, s.TotalSongs)
	if s.CurrentSong != nil && *s.CurrentSong != "" {
		fmt.Fprintf(w, "  Current: %s\n", *s.CurrentSong)
	}
	fmt.Fprintf(w, "  Status:  %s\n", s.Message)
}

func printInventory(w io.Writer, items []InventoryItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No movies found")
		return
	}

	fmt.Fprintf(w, "  %-50s %s\n", "TITLE", "YEAR")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 56))
	for _, it := range items {
		fmt.Fprintf(w, "  %-50s %s\n", truncate(it.Title, 50), it.YearString())
	}
	fmt.Fprintf(w, "\n%s movies\n", humanize.Comma(int64(len(items))))
}

func printEvents(w io.Writer, evts []EventResponse) {
	if len(evts) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}

	fmt.Fprintf(w, "Events (%d):\n\n", len(evts))
	fmt.Fprintf(w, "  %-16s %-26s %s\n", "TIME", "TYPE", "DETAIL")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 90))
	for _, e := range evts {
		detail := e.Summary
		if detail == "" || detail == e.EventType {
			detail = fmt.Sprintf("%s/%s", e.EntityType, e.EntityID)
		}
		fmt.Fprintf(w, "  %-16s %-26s %s\n", formatTimeAgo(e.OccurredAt), e.EventType, truncate(detail, 60))
	}
}
