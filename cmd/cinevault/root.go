package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL  string
	password   string
	jsonOutput bool
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "cinevault",
	Short: "CLI client for the CineVault-Lite dashboard",
	Long: `cinevault - CLI client for the CineVault-Lite dashboard

Send links to JDownloader, start music downloads, and manage
the Plex library from the terminal.

Run 'cinevaultd' to start the server daemon.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		normalized, err := normalizeServerURL(serverURL)
		if err != nil {
			return err
		}
		serverURL = normalized
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&serverURL, "server", envOr("CINEVAULT_SERVER", "http://localhost:3000"), "Server URL (or CINEVAULT_SERVER)")
	flags.StringVar(&password, "password", os.Getenv("CINEVAULT_PASSWORD"), "Dashboard password (or CINEVAULT_PASSWORD)")
	flags.BoolVar(&jsonOutput, "json", false, "Output as JSON")
	flags.DurationVar(&timeout, "timeout", 30*time.Second, "HTTP request timeout")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("cinevault {{.Version}}\n")
}

// normalizeServerURL accepts "host:port" or a full http(s) URL and strips
// any trailing slash.
func normalizeServerURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("--server is empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("--server %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("--server %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("--server %q: missing host", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
