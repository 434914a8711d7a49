// Package jobfile hands direct-download links to JDownloader by dropping
// crawljob files into its folder-watch directory.
package jobfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/NoNoBzH22/CineVault-Lite/internal/events"
)

const lineEnding = "\r\n"

// Kind selects which download folder a job lands in.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// ParseKind maps the UI's type field to a Kind. Anything that is not a
// series is treated as a movie.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "serie", "series":
		return KindSeries
	default:
		return KindMovie
	}
}

// Config holds emitter settings.
type Config struct {
	WatchDir     string // Local directory JDownloader watches
	MoviesFolder string // downloadFolder base for movies, as seen by JDownloader
	SeriesFolder string // downloadFolder base for series, as seen by JDownloader
}

// Request describes one link submission.
type Request struct {
	Link  string
	Title string
	Kind  Kind
}

// Job is a fully resolved crawljob.
type Job struct {
	Link           string
	PackageName    string
	DownloadFolder string
}

// Render produces the crawljob body.
func (j Job) Render() string {
	var b strings.Builder
	b.WriteString("text=" + j.Link + lineEnding)
	b.WriteString("autoStart=TRUE" + lineEnding)
	if j.PackageName != "" {
		b.WriteString("packageName=" + j.PackageName + lineEnding)
	}
	if j.DownloadFolder != "" {
		b.WriteString("downloadFolder=" + j.DownloadFolder + lineEnding)
	}
	return b.String()
}

// Result describes a written job file.
type Result struct {
	FileName    string `json:"file_name"`
	Path        string `json:"path"`
	PackageName string `json:"package_name"`
	Kind        Kind   `json:"kind"`
}

// Emitter writes crawljob files. It is safe for concurrent use.
type Emitter struct {
	cfg Config
	bus *events.Bus
	log *slog.Logger
	now func() time.Time

	mu     sync.Mutex
	lastMS int64
}

// New creates an Emitter. bus may be nil.
func New(cfg Config, bus *events.Bus, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{
		cfg: cfg,
		bus: bus,
		log: logger,
		now: time.Now,
	}
}

// Build resolves a request into a Job. stamp supplies the default title.
func (e *Emitter) Build(req Request, stamp int64) (Job, error) {
	link := strings.TrimSpace(req.Link)
	if link == "" {
		return Job{}, ErrMissingLink
	}

	title := SanitizeTitle(req.Title)
	if title == "" {
		title = fmt.Sprintf("Manual_Add_%d", stamp)
	}

	base := e.cfg.MoviesFolder
	if req.Kind == KindSeries {
		base = e.cfg.SeriesFolder
	}

	job := Job{Link: link, PackageName: title}
	if base != "" {
		folder := path.Join(base, title)
		if err := validateFolder(folder, base); err != nil {
			return Job{}, fmt.Errorf("title %q: %w", req.Title, err)
		}
		job.DownloadFolder = folder
	}
	return job, nil
}

// Emit writes one crawljob into the watch directory. Ownership of the file
// passes to JDownloader once it is written.
func (e *Emitter) Emit(ctx context.Context, req Request) (*Result, error) {
	stamp := e.nextStamp()
	job, err := e.Build(req, stamp)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("manual_%d.crawljob", stamp)
	full := filepath.Join(e.cfg.WatchDir, name)

	if err := writeExclusive(full, job.Render()); err != nil {
		e.log.Error("job file write failed", "file", name, "error", err)
		return nil, fmt.Errorf("write job file: %w", err)
	}
	// JDownloader runs as another user and deletes the file after pickup.
	if err := os.Chmod(full, 0666); err != nil {
		e.log.Error("job file chmod failed", "file", name, "error", err)
		return nil, fmt.Errorf("chmod job file: %w", err)
	}

	kind := req.Kind
	if kind == "" {
		kind = KindMovie
	}
	e.log.Info("job file written", "file", name, "package", job.PackageName, "kind", kind)

	if e.bus != nil {
		_ = e.bus.Publish(ctx, &events.JobFileWritten{
			BaseEvent:   events.NewBaseEvent(events.EventJobFileWritten, events.EntityJobFile, name),
			Link:        job.Link,
			PackageName: job.PackageName,
			Kind:        string(kind),
			Path:        full,
		})
	}

	return &Result{
		FileName:    name,
		Path:        full,
		PackageName: job.PackageName,
		Kind:        kind,
	}, nil
}

// nextStamp returns a unix-ms timestamp that never repeats within the process.
func (e *Emitter) nextStamp() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	ms := e.now().UnixMilli()
	if ms <= e.lastMS {
		ms = e.lastMS + 1
	}
	e.lastMS = ms
	return ms
}

func writeExclusive(name, body string) error {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
