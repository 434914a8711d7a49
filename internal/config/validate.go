// internal/config/validate.go
package config

import (
	"fmt"
	"os"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// Auth validation
	if c.Auth.Password == "" {
		errs = append(errs, "auth.password: required")
	}
	if c.Auth.SessionSecret == "" {
		errs = append(errs, "auth.session_secret: required")
	}
	if c.Auth.SessionTTL.Duration < 0 {
		errs = append(errs, "auth.session_ttl: must be positive")
	}

	// JDownloader validation
	if c.JDownloader.WatchDir == "" {
		errs = append(errs, "jdownloader.watch_dir: required")
	}
	if c.JDownloader.APIPort < 1 || c.JDownloader.APIPort > 65535 {
		errs = append(errs, fmt.Sprintf("jdownloader.api_port: must be between 1 and 65535, got %d", c.JDownloader.APIPort))
	}

	// Plex validation
	if (c.Plex.URL == "") != (c.Plex.Token == "") {
		errs = append(errs, "plex: url and token must be set together")
	}

	// Music validation
	if c.Music.Root == "" {
		errs = append(errs, "music.root: required")
	}

	if c.RateLimit.Max < 0 {
		errs = append(errs, fmt.Sprintf("ratelimit.max: must not be negative, got %d", c.RateLimit.Max))
	}

	return errs
}

// Warnings returns non-fatal configuration problems worth logging at startup.
func (c *Config) Warnings() []string {
	var warns []string
	for _, dir := range []struct{ key, path string }{
		{"jdownloader.watch_dir", c.JDownloader.WatchDir},
		{"music.root", c.Music.Root},
	} {
		if dir.path == "" {
			continue
		}
		if _, err := os.Stat(dir.path); os.IsNotExist(err) {
			warns = append(warns, fmt.Sprintf("%s: directory %q does not exist", dir.key, dir.path))
		}
	}
	if !c.Plex.Configured() {
		warns = append(warns, "plex: not configured, inventory and refresh are disabled")
	}
	if c.JDownloader.Host == "" {
		warns = append(warns, "jdownloader.host: not set, download status is disabled")
	}
	if c.Spotify.ClientID == "" || c.Spotify.ClientSecret == "" {
		warns = append(warns, "spotify: client credentials not set, Spotify downloads and playlist sync will fail")
	}
	return warns
}
