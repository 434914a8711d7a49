// Package music drives the spotdl downloader and tracks its progress.
package music

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/NoNoBzH22/CineVault-Lite/internal/events"
	"github.com/NoNoBzH22/CineVault-Lite/internal/proc"
)

var supportedHosts = []string{"spotify.com", "youtube.com", "youtu.be"}

// Config holds downloader settings.
type Config struct {
	SpotDLPath   string
	MusicRoot    string
	Format       string
	ClientID     string
	ClientSecret string
}

// ValidateURL strips the query string and checks the host is supported.
func ValidateURL(raw string) (string, error) {
	clean, _, _ := strings.Cut(raw, "?")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return "", ErrMissingURL
	}
	for _, host := range supportedHosts {
		if strings.Contains(clean, host) {
			return clean, nil
		}
	}
	return "", ErrUnsupportedURL
}

// Job is one downloader run.
type Job struct {
	ID  string
	URL string

	done chan struct{}
	err  error
}

// Done is closed when the job reaches a terminal state.
func (j *Job) Done() <-chan struct{} { return j.done }

// Wait blocks until the job finishes and returns nil, *ExitError or *LaunchError.
func (j *Job) Wait() error {
	<-j.done
	return j.err
}

// Supervisor runs at most one downloader at a time.
type Supervisor struct {
	cfg     Config
	tracker *Tracker
	runner  proc.Runner
	bus     *events.Bus
	log     *slog.Logger

	mu      sync.Mutex
	running *Job
}

// NewSupervisor creates a Supervisor. bus may be nil.
func NewSupervisor(cfg Config, runner proc.Runner, bus *events.Bus, logger *slog.Logger) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	if runner == nil {
		runner = proc.ExecRunner{}
	}
	return &Supervisor{
		cfg:     cfg,
		tracker: NewTracker(),
		runner:  runner,
		bus:     bus,
		log:     logger,
	}
}

// Status returns the current progress record.
func (s *Supervisor) Status() Record {
	return s.tracker.Snapshot()
}

// Start launches a download and returns without waiting for it.
// It fails with ErrBusy while another job is in progress, and with
// ErrMissingURL or ErrUnsupportedURL before anything is spawned.
// A process that cannot be launched resolves the returned job with *LaunchError.
func (s *Supervisor) Start(ctx context.Context, rawURL string) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running != nil {
		return nil, ErrBusy
	}

	s.tracker.Reset()
	url, err := ValidateURL(rawURL)
	if err != nil {
		s.tracker.Abort()
		s.log.Warn("music download rejected", "url", rawURL, "error", err)
		return nil, err
	}

	job := &Job{ID: uuid.NewString(), URL: url, done: make(chan struct{})}
	s.log.Info("launching spotdl", "job", job.ID, "url", url)

	// The download outlives the request that started it.
	p, err := s.runner.Start(context.WithoutCancel(ctx), s.command(url))
	if err != nil {
		s.tracker.Abort()
		s.log.Error("spotdl launch failed", "job", job.ID, "error", err)
		job.err = &LaunchError{Err: err}
		close(job.done)
		s.publish(&events.MusicJobFailed{
			BaseEvent: events.NewBaseEvent(events.EventMusicJobFailed, events.EntityMusicJob, job.ID),
			URL:       url,
			Reason:    job.err.Error(),
		})
		return job, nil
	}

	s.running = job
	s.publish(&events.MusicJobStarted{
		BaseEvent: events.NewBaseEvent(events.EventMusicJobStarted, events.EntityMusicJob, job.ID),
		URL:       url,
	})
	go s.supervise(job, p)
	return job, nil
}

// Drain blocks until the running job, if any, has finished and returns its
// terminal error. It returns ctx.Err() if ctx ends first.
func (s *Supervisor) Drain(ctx context.Context) error {
	s.mu.Lock()
	job := s.running
	s.mu.Unlock()
	if job == nil {
		return nil
	}

	s.log.Info("waiting for music download", "job", job.ID)
	select {
	case <-job.Done():
		return job.Wait()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Supervisor) command(url string) proc.Spec {
	output := s.cfg.MusicRoot + "/{artist}/{album}/{track-number}. {title}.{output-ext}"
	return proc.Spec{
		Name: s.cfg.SpotDLPath,
		Args: []string{
			url,
			"--format", s.cfg.Format,
			"--output", output,
			"--client-id", s.cfg.ClientID,
			"--client-secret", s.cfg.ClientSecret,
		},
		Env: []string{
			"SPOTIPY_CLIENT_ID=" + s.cfg.ClientID,
			"SPOTIPY_CLIENT_SECRET=" + s.cfg.ClientSecret,
			"PYTHONIOENCODING=utf-8",
		},
	}
}

func (s *Supervisor) supervise(job *Job, p proc.Process) {
	log := s.log.With("job", job.ID)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		scanLines(p.Stderr(), log, func(line string) {
			log.Info("spotdl stderr", "line", line)
		})
	}()

	scanLines(p.Stdout(), log, func(line string) {
		log.Debug("spotdl", "line", line)
		for _, l := range Classify(line) {
			s.tracker.Apply(l)
		}
	})
	wg.Wait()

	err := p.Wait()
	var exitErr *proc.ExitError
	switch {
	case err == nil:
		s.tracker.Succeed()
		rec := s.tracker.Snapshot()
		log.Info("spotdl finished", "songs", rec.TotalSongs)
		s.publish(&events.MusicJobCompleted{
			BaseEvent:  events.NewBaseEvent(events.EventMusicJobCompleted, events.EntityMusicJob, job.ID),
			URL:        job.URL,
			TotalSongs: rec.TotalSongs,
		})
	case errors.As(err, &exitErr):
		s.tracker.Fail(fmt.Sprintf("Error (Code %d)", exitErr.Code))
		job.err = &ExitError{Code: exitErr.Code}
		log.Error("spotdl failed", "code", exitErr.Code)
		s.publish(&events.MusicJobFailed{
			BaseEvent: events.NewBaseEvent(events.EventMusicJobFailed, events.EntityMusicJob, job.ID),
			URL:       job.URL,
			Reason:    job.err.Error(),
			ExitCode:  exitErr.Code,
		})
	default:
		s.tracker.Abort()
		job.err = &LaunchError{Err: err}
		log.Error("spotdl did not exit cleanly", "error", err)
		s.publish(&events.MusicJobFailed{
			BaseEvent: events.NewBaseEvent(events.EventMusicJobFailed, events.EntityMusicJob, job.ID),
			URL:       job.URL,
			Reason:    job.err.Error(),
		})
	}

	s.mu.Lock()
	s.running = nil
	s.mu.Unlock()
	close(job.done)
}

func (s *Supervisor) publish(e events.Event) {
	if s.bus == nil {
		return
	}
	_ = s.bus.Publish(context.Background(), e)
}

// scanLines calls fn for every non-empty trimmed line. If a line is too long
// to scan, the rest of the stream is discarded so the child never blocks.
func scanLines(r io.Reader, log *slog.Logger, fn func(string)) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			fn(line)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Warn("output scan stopped", "error", err)
		_, _ = io.Copy(io.Discard, r)
	}
}
