// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Auth        AuthConfig        `toml:"auth"`
	Database    DatabaseConfig    `toml:"database"`
	JDownloader JDownloaderConfig `toml:"jdownloader"`
	Plex        PlexConfig        `toml:"plex"`
	Spotify     SpotifyConfig     `toml:"spotify"`
	Music       MusicConfig       `toml:"music"`
	Bridge      BridgeConfig      `toml:"bridge"`
	RateLimit   RateLimitConfig   `toml:"ratelimit"`
}

type ServerConfig struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	LogLevel   string `toml:"log_level"`
	StaticDir  string `toml:"static_dir"`  // Optional web UI directory
	TrustProxy bool   `toml:"trust_proxy"` // Behind one reverse proxy hop
}

type AuthConfig struct {
	Password      string   `toml:"password"`
	SessionSecret string   `toml:"session_secret"`
	SessionTTL    Duration `toml:"session_ttl"`
	CookieName    string   `toml:"cookie_name"`
	SecureCookie  bool     `toml:"secure_cookie"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type JDownloaderConfig struct {
	Host         string `toml:"host"`
	APIPort      int    `toml:"api_port"`
	WatchDir     string `toml:"watch_dir"`     // Folder watched by the folderwatch extension
	MoviesFolder string `toml:"movies_folder"` // downloadFolder base for movies
	SeriesFolder string `toml:"series_folder"` // downloadFolder base for series
}

// BaseURL returns the deprecated local API address, or "" if no host is set.
func (c JDownloaderConfig) BaseURL() string {
	if c.Host == "" {
		return ""
	}
	return fmt.Sprintf("http://%s:%d", c.Host, c.APIPort)
}

type PlexConfig struct {
	URL          string   `toml:"url"`
	Token        string   `toml:"token"`
	MovieSection string   `toml:"movie_section"`
	CacheTTL     Duration `toml:"cache_ttl"`    // Inventory cache; 0 disables
	AutoRefresh  bool     `toml:"auto_refresh"` // Rescan after each finished music download
}

// Configured reports whether both address and token are set.
func (c PlexConfig) Configured() bool {
	return c.URL != "" && c.Token != ""
}

type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

type MusicConfig struct {
	Root       string `toml:"root"`
	SpotDLPath string `toml:"spotdl_path"`
	Format     string `toml:"format"`
}

type BridgeConfig struct {
	Python  string `toml:"python"`
	Script  string `toml:"script"`
	WorkDir string `toml:"workdir"`
}

type RateLimitConfig struct {
	Window Duration `toml:"window"`
	Max    int      `toml:"max"`
}

// Duration wraps time.Duration so it can be written as "48h" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Load reads, parses, and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := newConfigError(path, missing, cfg.Validate())
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// defaults but skipping validation. Unresolved variables are left as-is.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Auth.SessionTTL.Duration == 0 {
		c.Auth.SessionTTL.Duration = 48 * time.Hour
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "cinevault.sid"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/cinevault.db"
	}
	if c.JDownloader.APIPort == 0 {
		c.JDownloader.APIPort = 3128
	}
	if c.JDownloader.WatchDir == "" {
		c.JDownloader.WatchDir = "/downloads"
	}
	if c.Music.SpotDLPath == "" {
		c.Music.SpotDLPath = "spotdl"
	}
	if c.Music.Format == "" {
		c.Music.Format = "ogg"
	}
	if c.Bridge.Python == "" {
		c.Bridge.Python = "python3"
	}
	if c.Bridge.Script == "" {
		c.Bridge.Script = "plex_bridge.py"
	}
	if c.RateLimit.Window.Duration == 0 {
		c.RateLimit.Window.Duration = 5 * time.Minute
	}
	if c.RateLimit.Max == 0 {
		c.RateLimit.Max = 100
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces variable references with environment values.
// Unresolved references are left unchanged and reported in missing.
// Comment lines are copied verbatim.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		var m []string
		lines[i], m = substituteLine(line)
		missing = append(missing, m...)
	}
	return strings.Join(lines, ""), missing
}

func substituteLine(line string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(line, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, op, arg := parts[1], parts[2], parts[3]

		value, ok := os.LookupEnv(name)
		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, fmt.Sprintf("%s: %s", name, strings.TrimSpace(arg)))
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})
	return out, missing
}
