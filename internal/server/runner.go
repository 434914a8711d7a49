// Package server runs the HTTP listener and the background maintenance loops.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Config for the server runner.
type Config struct {
	Addr            string
	PruneInterval   time.Duration // How often expired sessions and old events are removed
	EventRetention  time.Duration // Age after which audit events are pruned; 0 keeps them forever
	ShutdownTimeout time.Duration
}

// SessionPruner removes expired sessions.
type SessionPruner interface {
	Prune(ctx context.Context) (int64, error)
}

// EventPruner removes audit events older than a given age.
type EventPruner interface {
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Runner manages the server components.
type Runner struct {
	config   Config
	handler  http.Handler
	sessions SessionPruner
	events   EventPruner
	logger   *slog.Logger
	extra    []func(ctx context.Context) error
}

// NewRunner creates a new runner. sessions and events may be nil.
func NewRunner(cfg Config, handler http.Handler, sessions SessionPruner, events EventPruner, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PruneInterval <= 0 {
		cfg.PruneInterval = time.Hour
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	return &Runner{
		config:   cfg,
		handler:  handler,
		sessions: sessions,
		events:   events,
		logger:   logger.With("component", "runner"),
	}
}

// Go adds a component that runs alongside the server. It must return when
// ctx is canceled. Call before Run.
func (r *Runner) Go(fn func(ctx context.Context) error) {
	r.extra = append(r.extra, fn)
}

// Run listens on the configured address and serves until ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", r.config.Addr, err)
	}
	return r.Serve(ctx, ln)
}

// Serve starts all components on ln.
// It blocks until the context is canceled or a component fails.
func (r *Runner) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           r.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("http listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		// Graceful shutdown gets its own deadline; ctx is already done.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		r.logger.Info("http stopped")
		return nil
	})

	g.Go(func() error {
		r.pruneLoop(ctx)
		return nil
	})

	for _, fn := range r.extra {
		g.Go(func() error { return fn(ctx) })
	}

	return g.Wait()
}

func (r *Runner) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(r.config.PruneInterval)
	defer ticker.Stop()

	r.prune(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.prune(ctx)
		}
	}
}

func (r *Runner) prune(ctx context.Context) {
	if r.sessions != nil {
		n, err := r.sessions.Prune(ctx)
		if err != nil && ctx.Err() == nil {
			r.logger.Error("session prune failed", "error", err)
		} else if n > 0 {
			r.logger.Debug("pruned sessions", "count", n)
		}
	}
	if r.events != nil && r.config.EventRetention > 0 {
		n, err := r.events.Prune(ctx, r.config.EventRetention)
		if err != nil && ctx.Err() == nil {
			r.logger.Error("event prune failed", "error", err)
		} else if n > 0 {
			r.logger.Debug("pruned events", "count", n)
		}
	}
}
