package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/NoNoBzH22/CineVault-Lite/internal/api"
	"github.com/NoNoBzH22/CineVault-Lite/internal/bridge"
	"github.com/NoNoBzH22/CineVault-Lite/internal/config"
	"github.com/NoNoBzH22/CineVault-Lite/internal/events"
	"github.com/NoNoBzH22/CineVault-Lite/internal/jdownloader"
	"github.com/NoNoBzH22/CineVault-Lite/internal/jobfile"
	"github.com/NoNoBzH22/CineVault-Lite/internal/migrations"
	"github.com/NoNoBzH22/CineVault-Lite/internal/music"
	"github.com/NoNoBzH22/CineVault-Lite/internal/plex"
	"github.com/NoNoBzH22/CineVault-Lite/internal/proc"
	"github.com/NoNoBzH22/CineVault-Lite/internal/server"
	"github.com/NoNoBzH22/CineVault-Lite/internal/session"
)

// eventRetention is how long audit events are kept.
const eventRetention = 7 * 24 * time.Hour

// musicDrainTimeout bounds how long shutdown waits for a music download.
const musicDrainTimeout = 30 * time.Second

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func runServer(configPath string) error {
	configPath, err := resolveConfigPath(configPath)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))
	for _, w := range cfg.Warnings() {
		logger.Warn("config warning", "detail", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()
	// SQLite allows one writer; serialize access instead of retrying on SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// Run migrations
	if err := migrations.Apply(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// === Event bus ===
	eventLog := events.NewEventLog(db)
	bus := events.NewBus(eventLog, logger.With("component", "bus"))
	defer func() { _ = bus.Close() }()

	// === Clients (optional - nil if not configured) ===
	var plexClient *plex.Client
	if cfg.Plex.Configured() {
		plexClient = plex.NewClient(cfg.Plex.URL, cfg.Plex.Token, logger)
		probePlex(ctx, plexClient, logger)
	}
	jdClient := jdownloader.NewClient(cfg.JDownloader.BaseURL(), logger)

	// === Services ===
	runner := proc.ExecRunner{}

	sessions := session.NewManager(session.Config{
		Password:   cfg.Auth.Password,
		Secret:     cfg.Auth.SessionSecret,
		TTL:        cfg.Auth.SessionTTL.Duration,
		CookieName: cfg.Auth.CookieName,
		Secure:     cfg.Auth.SecureCookie,
	}, session.NewSQLStore(db), bus, logger)

	supervisor := music.NewSupervisor(music.Config{
		SpotDLPath:   cfg.Music.SpotDLPath,
		MusicRoot:    cfg.Music.Root,
		Format:       cfg.Music.Format,
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
	}, runner, bus, logger.With("component", "music"))

	emitter := jobfile.New(jobfile.Config{
		WatchDir:     cfg.JDownloader.WatchDir,
		MoviesFolder: cfg.JDownloader.MoviesFolder,
		SeriesFolder: cfg.JDownloader.SeriesFolder,
	}, bus, logger.With("component", "jobfile"))

	var sectionClient plex.SectionClient
	if plexClient != nil {
		sectionClient = plexClient
	}
	library := plex.NewLibrary(sectionClient, cfg.Plex.MovieSection, bus, logger)
	library.SetCacheTTL(cfg.Plex.CacheTTL.Duration)

	syncer := bridge.New(bridge.Config{
		Python:        cfg.Bridge.Python,
		Script:        cfg.Bridge.Script,
		Dir:           cfg.Bridge.WorkDir,
		PlexURL:       cfg.Plex.URL,
		PlexToken:     cfg.Plex.Token,
		SpotifyID:     cfg.Spotify.ClientID,
		SpotifySecret: cfg.Spotify.ClientSecret,
	}, runner, bus, logger)

	// === HTTP Setup ===
	apiServer, err := api.NewWithDeps(api.ServerDeps{
		Sessions:  sessions,
		Music:     supervisor,
		Downloads: jdownloader.NewGateway(jdClient, logger),
		Jobs:      emitter,
		Library:   library,
		Sync:      syncer,
		Events:    eventLog,
	}, api.Config{
		RateLimitWindow: cfg.RateLimit.Window.Duration,
		RateLimitMax:    cfg.RateLimit.Max,
		TrustProxy:      cfg.Server.TrustProxy,
		StaticDir:       cfg.Server.StaticDir,
	}, logger)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"config", configPath,
		"database", cfg.Database.Path,
		"jdownloader", cfg.JDownloader.Host != "",
		"plex", plexClient != nil,
		"watch_dir", cfg.JDownloader.WatchDir,
		"music_root", cfg.Music.Root,
		"log_level", cfg.Server.LogLevel,
	)

	r := server.NewRunner(server.Config{
		Addr:            addr,
		PruneInterval:   time.Hour,
		EventRetention:  eventRetention,
		ShutdownTimeout: 30 * time.Second,
	}, logRequests(apiServer.Handler(), logger), sessions, eventLog, logger)

	if plexClient != nil && cfg.Plex.AutoRefresh {
		completed := bus.Subscribe(events.EventMusicJobCompleted, 8)
		r.Go(func(ctx context.Context) error {
			return library.RefreshOn(ctx, completed)
		})
	}

	runErr := r.Run(ctx)

	// Let a running spotdl finish so its final state reaches the event log
	// before the deferred bus and database close.
	drainCtx, cancel := context.WithTimeout(context.Background(), musicDrainTimeout)
	defer cancel()
	if err := supervisor.Drain(drainCtx); errors.Is(err, context.DeadlineExceeded) {
		logger.Warn("music download unfinished at exit", "error", err)
	}

	if runErr != nil {
		return runErr
	}
	logger.Info("server stopped")
	return nil
}

// probePlex logs whether Plex answers. A failure is not fatal.
func probePlex(ctx context.Context, client *plex.Client, log *slog.Logger) {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := client.GetIdentity(probeCtx)
	if err != nil {
		log.Warn("plex unreachable", "error", err)
		return
	}
	log.Info("plex connected", "server", id.Name, "version", id.Version)
}
